package services

import (
	"errors"
	"fmt"

	"blog/internal/common"
	"blog/internal/models"
	"blog/internal/repositories"
)

// CreatePostInput is the client-supplied part of a new post.
type CreatePostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PostService handles business logic related to posts.
type PostService struct {
	repo   repositories.PostRepository
	tokens *TokenService
	events EventPublisher
}

// NewPostService creates a new PostService. events may be nil.
func NewPostService(repo repositories.PostRepository, tokens *TokenService, events EventPublisher) *PostService {
	return &PostService{
		repo:   repo,
		tokens: tokens,
		events: events,
	}
}

func (s *PostService) list(filter models.PostFilter, page, limit int) (models.Page[models.Post], error) {
	page, limit = models.NormalizePaging(page, limit)

	posts, err := s.repo.List(filter, models.Skip(page, limit), limit)
	if err != nil {
		return models.Page[models.Post]{}, err
	}
	total, err := s.repo.Count(filter)
	if err != nil {
		return models.Page[models.Post]{}, err
	}
	return models.NewPage(posts, total, page, limit), nil
}

// ListAll returns one page of all posts in insertion order.
func (s *PostService) ListAll(page, limit int) (models.Page[models.Post], error) {
	return s.list(models.PostFilter{}, page, limit)
}

// ListByUser returns one page of the posts written by userID.
func (s *PostService) ListByUser(userID string, page, limit int) (models.Page[models.Post], error) {
	if !repositories.IsValidID(userID) {
		return models.Page[models.Post]{}, common.Validation("Invalid user Id")
	}
	return s.list(models.PostFilter{Author: userID}, page, limit)
}

// GetByID retrieves a single post by its ID.
func (s *PostService) GetByID(id string) (*models.Post, error) {
	if !repositories.IsValidID(id) {
		return nil, common.Validation("Invalid post Id")
	}
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, postLookupError(err)
	}
	return post, nil
}

// Create stores a post authored by the principal identified by token.
func (s *PostService) Create(input CreatePostInput, token string) (*models.Post, error) {
	if token == "" {
		return nil, common.Unauthorized("Token required", nil)
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, common.Unauthorized("Invalid or expired token", err)
	}

	post := &models.Post{
		Title:   input.Title,
		Content: input.Content,
		Author:  claims.UserID,
	}
	if err := checkStruct(post); err != nil {
		return nil, err
	}
	if err := s.repo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	publish(s.events, EventPostCreated, map[string]interface{}{
		"postId": post.ID,
		"author": post.Author,
	})
	return post, nil
}

// Update applies the provided title and/or content.
func (s *PostService) Update(id string, patch models.PostPatch) (*models.Post, error) {
	if !repositories.IsValidID(id) {
		return nil, common.Validation("Invalid post Id")
	}
	if err := checkStruct(patch); err != nil {
		return nil, err
	}
	post, err := s.repo.Update(id, patch)
	if err != nil {
		return nil, postLookupError(err)
	}

	publish(s.events, EventPostUpdated, map[string]interface{}{"postId": post.ID})
	return post, nil
}

// Delete removes a post and returns it.
func (s *PostService) Delete(id string) (*models.Post, error) {
	if !repositories.IsValidID(id) {
		return nil, common.Validation("Invalid post Id")
	}
	post, err := s.repo.Delete(id)
	if err != nil {
		return nil, postLookupError(err)
	}

	publish(s.events, EventPostDeleted, map[string]interface{}{"postId": post.ID})
	return post, nil
}

func postLookupError(err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return common.NotFound("Post not found")
	}
	return err
}
