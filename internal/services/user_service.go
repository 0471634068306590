package services

import (
	"errors"

	"blog/internal/common"
	"blog/internal/models"
	"blog/internal/repositories"
)

// UserService manages existing accounts. Callers are expected to be admins;
// the route guard enforces that.
type UserService struct {
	repo   repositories.UserRepository
	hasher PasswordHasher
	events EventPublisher
}

// NewUserService creates a new UserService. events may be nil.
func NewUserService(repo repositories.UserRepository, hasher PasswordHasher, events EventPublisher) *UserService {
	return &UserService{
		repo:   repo,
		hasher: hasher,
		events: events,
	}
}

// ListAll returns one page of users in insertion order.
func (s *UserService) ListAll(page, limit int) (models.Page[models.User], error) {
	page, limit = models.NormalizePaging(page, limit)

	users, err := s.repo.List(models.Skip(page, limit), limit)
	if err != nil {
		return models.Page[models.User]{}, err
	}
	total, err := s.repo.Count()
	if err != nil {
		return models.Page[models.User]{}, err
	}
	return models.NewPage(users, total, page, limit), nil
}

func (s *UserService) GetByID(id string) (*models.User, error) {
	if !repositories.IsValidID(id) {
		return nil, common.Validation("Invalid user Id")
	}
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, userLookupError(err)
	}
	return user, nil
}

// Update changes a user's name and/or password. Empty fields are ignored and
// a new password is stored hashed, the same as at registration.
func (s *UserService) Update(id string, patch models.UserPatch) (*models.User, error) {
	if !repositories.IsValidID(id) {
		return nil, common.Validation("Invalid user Id")
	}
	if patch.Name != nil && *patch.Name == "" {
		patch.Name = nil
	}
	if patch.Password != nil && *patch.Password == "" {
		patch.Password = nil
	}
	if err := checkStruct(patch); err != nil {
		return nil, err
	}

	if patch.Password != nil {
		hashed, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		patch.Password = &hashed
	}

	user, err := s.repo.Update(id, patch)
	if err != nil {
		return nil, userLookupError(err)
	}

	publish(s.events, EventUserUpdated, map[string]interface{}{"userId": user.ID})
	return user, nil
}

func (s *UserService) Delete(id string) (*models.User, error) {
	if !repositories.IsValidID(id) {
		return nil, common.Validation("Invalid user Id")
	}
	user, err := s.repo.Delete(id)
	if err != nil {
		return nil, userLookupError(err)
	}

	publish(s.events, EventUserDeleted, map[string]interface{}{"userId": user.ID})
	return user, nil
}

func userLookupError(err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return common.NotFound("User not found")
	}
	return err
}
