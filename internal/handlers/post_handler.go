package handlers

import (
	"blog/internal/middleware"
	"blog/internal/models"
	"blog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	service *services.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(service *services.PostService) *PostHandler {
	return &PostHandler{
		service: service,
	}
}

// RegisterRoutes registers the post routes. Reads of a single post and all
// writes to an existing post are limited to its author and admins.
func (h *PostHandler) RegisterRoutes(router fiber.Router, guard *middleware.Guard) {
	router.Get("/post", h.HandleGetPosts)
	router.Post("/post", guard.UserRequired(), h.HandleCreatePost)
	router.Get("/post/:id", guard.OwnerOrAdmin(), h.HandleGetPostByID)
	router.Put("/post/:id", guard.OwnerOrAdmin(), h.HandleUpdatePost)
	router.Delete("/post/:id", guard.OwnerOrAdmin(), h.HandleDeletePost)
	router.Get("/users/:userId/posts", h.HandleGetUserPosts)
}

// HandleGetPosts lists all posts. Defaults: page=1, limit=10.
func (h *PostHandler) HandleGetPosts(c *fiber.Ctx) error {
	page, err := h.service.ListAll(pageParam(c, "page", "1"), pageParam(c, "limit", "10"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// HandleGetUserPosts lists the posts of one author. Defaults: page=1, limit=1.
func (h *PostHandler) HandleGetUserPosts(c *fiber.Ctx) error {
	page, err := h.service.ListByUser(c.Params("userId"), pageParam(c, "page", "1"), pageParam(c, "limit", "1"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// HandleGetPostByID retrieves a single post by its ID.
func (h *PostHandler) HandleGetPostByID(c *fiber.Ctx) error {
	post, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// HandleCreatePost creates a post authored by the caller.
func (h *PostHandler) HandleCreatePost(c *fiber.Ctx) error {
	var input services.CreatePostInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}

	post, err := h.service.Create(input, middleware.BearerToken(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// HandleUpdatePost updates the title and/or content of a post.
func (h *PostHandler) HandleUpdatePost(c *fiber.Ctx) error {
	var patch models.PostPatch
	if err := c.BodyParser(&patch); err != nil {
		return invalidBody(c, err)
	}

	post, err := h.service.Update(c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// HandleDeletePost deletes a post and echoes it back.
func (h *PostHandler) HandleDeletePost(c *fiber.Ctx) error {
	post, err := h.service.Delete(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Post deleted",
		"post":    post,
	})
}
