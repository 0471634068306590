package repositories

import (
	"fmt"
	"sync"
	"time"

	"blog/internal/common"
	"blog/internal/models"
)

// MockPostRepository is an in-memory implementation of PostRepository.
// Listings follow insertion order.
type MockPostRepository struct {
	posts map[string]models.Post
	order []string
	mu    sync.RWMutex
}

// NewMockPostRepository creates a new instance of MockPostRepository.
func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{
		posts: make(map[string]models.Post),
	}
}

func (r *MockPostRepository) matching(filter models.PostFilter) []models.Post {
	out := make([]models.Post, 0, len(r.order))
	for _, id := range r.order {
		p := r.posts[id]
		if filter.Author != "" && p.Author != filter.Author {
			continue
		}
		out = append(out, p)
	}
	return out
}

// List returns a window of the posts matching filter.
func (r *MockPostRepository) List(filter models.PostFilter, skip, limit int) ([]models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.matching(filter)
	start, end := window(len(all), skip, limit)
	return all[start:end], nil
}

// Count returns the number of posts matching filter.
func (r *MockPostRepository) Count(filter models.PostFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.matching(filter))), nil
}

// GetByID returns a post by its ID.
func (r *MockPostRepository) GetByID(id string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, fmt.Errorf("post with ID %s: %w", id, common.ErrNotFound)
	}
	return &post, nil
}

// Create adds a new post.
func (r *MockPostRepository) Create(post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if post.ID == "" {
		post.ID = newID()
	}
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if _, exists := r.posts[post.ID]; !exists {
		r.order = append(r.order, post.ID)
	}
	r.posts[post.ID] = *post
	return nil
}

// Update modifies an existing post.
func (r *MockPostRepository) Update(id string, patch models.PostPatch) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, fmt.Errorf("post with ID %s not found for update: %w", id, common.ErrNotFound)
	}
	if patch.Title != nil {
		post.Title = *patch.Title
	}
	if patch.Content != nil {
		post.Content = *patch.Content
	}
	post.UpdatedAt = time.Now()
	r.posts[id] = post
	return &post, nil
}

// Delete removes a post by its ID.
func (r *MockPostRepository) Delete(id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, fmt.Errorf("post with ID %s not found for deletion: %w", id, common.ErrNotFound)
	}
	delete(r.posts, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return &post, nil
}

// window clamps [skip, skip+limit) to [0, n) without overflowing.
func window(n, skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if skip >= n {
		return n, n
	}
	if limit < 0 || limit > n-skip {
		return skip, n
	}
	return skip, skip + limit
}
