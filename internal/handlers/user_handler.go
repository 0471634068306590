package handlers

import (
	"blog/internal/middleware"
	"blog/internal/models"
	"blog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler exposes account management to admins.
type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterRoutes registers the admin-only user routes. The guard is attached
// per route; a group-level guard on /users would also cover the public
// /users/:userId/posts listing.
func (h *UserHandler) RegisterRoutes(router fiber.Router, guard *middleware.Guard) {
	admin := guard.AdminRequired()
	router.Get("/users", admin, h.HandleGetUsers)
	router.Get("/users/:id", admin, h.HandleGetUserByID)
	router.Put("/users/:id", admin, h.HandleUpdateUser)
	router.Delete("/users/:id", admin, h.HandleDeleteUser)
}

func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	page, err := h.service.ListAll(pageParam(c, "page", "1"), pageParam(c, "limit", "10"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	user, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleUpdateUser accepts {name?, password?}; other fields are ignored.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var patch models.UserPatch
	if err := c.BodyParser(&patch); err != nil {
		return invalidBody(c, err)
	}

	user, err := h.service.Update(c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	user, err := h.service.Delete(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
