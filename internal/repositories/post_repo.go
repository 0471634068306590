package repositories

import (
	"blog/internal/models"
)

// PostRepository defines the interface for post data access.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id string) (*models.Post, error)
	List(filter models.PostFilter, skip, limit int) ([]models.Post, error)
	Count(filter models.PostFilter) (int64, error)
	Update(id string, patch models.PostPatch) (*models.Post, error)
	Delete(id string) (*models.Post, error)
}
