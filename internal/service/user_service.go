// Package service implements business logic on top of the repository layer.
package service

import (
	"context"
	"strings"

	"chronicle/internal/models"
	"chronicle/internal/repository"
	"chronicle/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService owns account lifecycle and credential verification.
type UserService struct {
	userRepo repository.UserRepository
}

// RegisterInput carries the fields a new account is created from. Everything
// else (display name, gender, avatar, flags) is defaulted server-side.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileInput carries the mutable profile fields. Username and
// password are immutable through this path.
type UpdateProfileInput struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
	Email       string `json:"email"`
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// FindByUsername looks up an account by exact username. Returns (nil, nil)
// when absent.
func (s *UserService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

// SearchByDisplayName returns accounts whose display name contains query.
func (s *UserService) SearchByDisplayName(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	return s.userRepo.SearchByDisplayName(ctx, query, limit, offset)
}

// Register creates a new account together with its empty relationship record.
// The username is lowercased, so the uniqueness check is case-insensitive.
// Both writes belong to one logical transaction: if the relationship record
// cannot be written the registration fails visibly.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if username == "" || in.Password == "" {
		return nil, models.NewValidationError("Username and password are required")
	}
	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Email != "" {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewConflictError("Username already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:    username,
		Email:       in.Email,
		Password:    string(hashed),
		DisplayName: username,
		Avatar:      models.DefaultAvatar,
		Gender:      "Other",
		IsActivated: false,
		IsDeleted:   false,
	}

	if err := s.userRepo.Register(ctx, user, models.NewUserRelationship(username)); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the allowed profile fields and bumps the update
// timestamp. Fails with a not-found error when the account is absent.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	// Load straight from the database: the record is saved back whole, and a
	// cache-sourced copy has no password hash.
	user, err := s.userRepo.GetWithCredentials(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", in.Username)
	}

	if in.DisplayName != "" {
		user.DisplayName = in.DisplayName
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}
	if in.Email != "" {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = in.Email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete physically removes the account record. It does not cascade to the
// relationship or journal records.
func (s *UserService) Delete(ctx context.Context, username string) (bool, error) {
	return s.userRepo.Delete(ctx, username)
}

// Authenticate verifies the credentials. An unknown username and a wrong
// password produce the same error so the two cases cannot be told apart.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetWithCredentials(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid username or password")
	}
	return user, nil
}
