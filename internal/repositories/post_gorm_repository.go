package repositories

import (
	"errors"
	"fmt"

	"blog/internal/common"
	"blog/internal/models"

	"gorm.io/gorm"
)

// GORMPostRepository is a GORM implementation of PostRepository.
type GORMPostRepository struct {
	db *gorm.DB
}

// NewGORMPostRepository creates a new instance of GORMPostRepository.
func NewGORMPostRepository(db *gorm.DB) *GORMPostRepository {
	return &GORMPostRepository{
		db: db,
	}
}

func (r *GORMPostRepository) scoped(filter models.PostFilter) *gorm.DB {
	q := r.db.Model(&models.Post{})
	if filter.Author != "" {
		q = q.Where("author = ?", filter.Author)
	}
	return q
}

// List retrieves posts matching filter in insertion order.
func (r *GORMPostRepository) List(filter models.PostFilter, skip, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.scoped(filter).Order("created_at asc, id asc").Offset(skip).Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// Count returns the number of posts matching filter.
func (r *GORMPostRepository) Count(filter models.PostFilter) (int64, error) {
	var total int64
	if err := r.scoped(filter).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return total, nil
}

// GetByID retrieves a single post by its ID from the database.
func (r *GORMPostRepository) GetByID(id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post with ID %s: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post by ID %s: %w", id, err)
	}
	return &post, nil
}

// Create creates a new post in the database.
func (r *GORMPostRepository) Create(post *models.Post) error {
	if post.ID == "" {
		post.ID = newID()
	}
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// Update applies the non-nil fields of patch and returns the stored post.
func (r *GORMPostRepository) Update(id string, patch models.PostPatch) (*models.Post, error) {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Content != nil {
		updates["content"] = *patch.Content
	}

	var post models.Post
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, "id = ?", id).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&post).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&post, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post with ID %s not found for update: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return &post, nil
}

// Delete deletes a post by its ID and returns the removed record.
func (r *GORMPostRepository) Delete(id string) (*models.Post, error) {
	var post models.Post
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post with ID %s not found for deletion: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}
	return &post, nil
}
