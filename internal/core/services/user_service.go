package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shelfwise/internal/adapters/persistence/models"
	"shelfwise/internal/adapters/persistence/repositories"
	"shelfwise/internal/core/domain"
	"shelfwise/internal/pkg/password"

	"gorm.io/gorm"
)

// UserService handles member management business logic
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents create user input
type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserInput represents update user input.
// An empty password leaves the stored hash unchanged.
type UpdateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// Create validates and persists a new active user with the base role.
// The password is stored only as a bcrypt hash.
func (s *UserService) Create(ctx context.Context, input *CreateUserInput) (*models.User, error) {
	user := &models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.TrimSpace(input.Email),
		Password: input.Password,
		Roles:    models.RoleList{domain.RoleUser},
		Status:   domain.UserStatusActive,
	}

	violations := user.Validate()
	if input.Password != "" && !password.ValidatePassword(input.Password) {
		violations = append(violations, fmt.Sprintf("Password must be at least %d characters.", password.MinLength))
	}
	if len(violations) > 0 {
		return nil, validationError(violations)
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, user.Email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// Update validates and persists edits to name, email and optionally password
func (s *UserService) Update(ctx context.Context, id uint, input *UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	user.Name = strings.TrimSpace(input.Name)
	user.Email = strings.TrimSpace(input.Email)

	violations := user.Validate()
	if input.Password != "" && !password.ValidatePassword(input.Password) {
		violations = append(violations, fmt.Sprintf("Password must be at least %d characters.", password.MinLength))
	}
	if len(violations) > 0 {
		return nil, validationError(violations)
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, user.Email, user.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	if input.Password != "" {
		hashed, err := password.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// Delete marks the user as deleted and removes them from normal lookups
func (s *UserService) Delete(ctx context.Context, id uint) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	user.MarkDeleted()
	return s.userRepo.SoftDelete(ctx, user)
}

// GetByID gets a user by ID. A soft-deleted user behaves as not found.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// List lists users with pagination
func (s *UserService) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, offset, limit)
}
