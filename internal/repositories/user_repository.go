package repositories

import (
	"blog/internal/models"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data access.
//
// Lookups of absent users return an error wrapping common.ErrNotFound.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List(skip, limit int) ([]models.User, error)
	Count() (int64, error)
	Update(id string, patch models.UserPatch) (*models.User, error)
	Delete(id string) (*models.User, error)
}

// newID returns a time-ordered UUIDv7, so listings ordered by id follow
// insertion order even when created_at values collide.
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// IsValidID reports whether id has the shape of a store-assigned identifier.
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
