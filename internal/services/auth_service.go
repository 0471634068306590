package services

import (
	"errors"
	"fmt"

	"blog/internal/common"
	"blog/internal/models"
	"blog/internal/repositories"

	"github.com/sirupsen/logrus"
)

// RegisterResult acknowledges a successful registration.
type RegisterResult struct {
	Message string `json:"message"`
}

// LoginResult carries the access token issued on login.
type LoginResult struct {
	Token   string `json:"token"`
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo repositories.UserRepository
	tokens   *TokenService
	hasher   PasswordHasher
	events   EventPublisher
}

// NewAuthService creates a new AuthService. events may be nil.
func NewAuthService(userRepo repositories.UserRepository, tokens *TokenService, hasher PasswordHasher, events EventPublisher) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
		events:   events,
	}
}

// Register creates a user with the "user" role. No token is issued.
func (s *AuthService) Register(name, email, password string) (*RegisterResult, error) {
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     models.RoleUser,
	}
	if err := checkStruct(user); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, common.Conflict("Email has been used")
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.Conflict("Email has been used")
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	logrus.WithField("user_id", user.ID).Info("user registered")
	publish(s.events, EventUserRegistered, map[string]interface{}{
		"userId": user.ID,
		"email":  user.Email,
	})
	return &RegisterResult{Message: "Registered successfully!"}, nil
}

// Login checks the credentials and issues a token encoding the stored role.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("User not exist")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Compare(password, user.Password) {
		return nil, common.Unauthorized("Password is incorrect", nil)
	}

	token, err := s.tokens.Issue(user.ID, user.Role, 0)
	if err != nil {
		return nil, err
	}

	message := "User logged in successfully"
	if user.Role == models.RoleAdmin {
		message = "Admin logged in successfully"
	}
	return &LoginResult{Token: token, Message: message, UserID: user.ID}, nil
}

// EnsureAdmin creates an admin account unless a user with email already
// exists. It reports whether an account was created.
func (s *AuthService) EnsureAdmin(name, email, password string) (bool, error) {
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return false, nil
	} else if !errors.Is(err, common.ErrNotFound) {
		return false, fmt.Errorf("failed to check admin: %w", err)
	}

	admin := &models.User{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
	}
	if err := checkStruct(admin); err != nil {
		return false, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return false, err
	}
	admin.Password = hashed

	if err := s.userRepo.Create(admin); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create admin: %w", err)
	}
	return true, nil
}
