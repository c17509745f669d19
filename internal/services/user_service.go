package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/teamhub/project-management-api/internal/models"
	"github.com/teamhub/project-management-api/internal/policy"
	"github.com/teamhub/project-management-api/internal/repository"
)

// UserService handles user listing and profile operations.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns every user. Admin only.
func (s *UserService) ListUsers(actor policy.Actor) ([]models.User, error) {
	if !policy.CanListUsers(actor) {
		return nil, ErrForbidden
	}

	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser returns a user by id. Admins may read anyone; everyone may read
// themselves.
func (s *UserService) GetUser(actor policy.Actor, id uint64) (*models.User, error) {
	if !policy.CanViewUser(actor, id) {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.FindByID(id, "Role")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateProfileInput carries the optional profile fields. Nil means the field
// was omitted and stays unchanged.
type UpdateProfileInput struct {
	Username *string
	Email    *string
}

// UpdateProfile updates the actor's own username and/or email.
func (s *UserService) UpdateProfile(actor policy.Actor, input UpdateProfileInput) (*models.User, error) {
	if !policy.CanUpdateUser(actor, actor.UserID) {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.FindByID(actor.UserID, "Role")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, ErrUsernameRequired
		}
		user.Username = username
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email == "" {
			return nil, ErrEmailRequired
		}
		user.Email = email
	}

	if input.Username != nil || input.Email != nil {
		conflicts, err := s.userRepo.CountConflicts(user.Username, user.Email, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check uniqueness: %w", err)
		}
		if conflicts > 0 {
			return nil, ErrUsernameOrEmailTaken
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}
