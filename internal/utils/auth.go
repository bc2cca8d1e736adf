package utils

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/notehive/notehive-backend/internal/apierr"
	"github.com/notehive/notehive-backend/internal/normalization"
	"github.com/notehive/notehive-backend/internal/repos"
	"github.com/notehive/notehive-backend/internal/types"
)

// NormalizeUserFields trims every registration field and lower-cases
// the email, so store lookups stay case-insensitive.
func NormalizeUserFields(user *types.User) {
	user.Email = normalization.ParseInputString(user.Email)
	user.Name = normalization.TrimInputString(user.Name)
}

// ValidateRegistration enforces the registration rules: no empty
// fields, no reused email, and never a role above USER.
func ValidateRegistration(ctx context.Context, userRepo repos.UserRepo, user *types.User) error {
	if user.Name == "" {
		return apierr.InvalidInput("a name is required to register")
	}
	if user.Email == "" {
		return apierr.InvalidInput("an email is required to register")
	}
	if user.Password == "" {
		return apierr.InvalidInput("a password is required to register")
	}
	if user.Role != types.RoleUser {
		return apierr.RoleNotPermitted("only USER role can be registered")
	}
	emailExists, err := userRepo.EmailExists(ctx, nil, user.Email)
	if err != nil {
		return err
	}
	if emailExists {
		return apierr.DuplicateEmail("email is already in use")
	}
	return nil
}

func HashPassword(user *types.User) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return nil
}

func PasswordMatches(stored, given string, hashed bool) bool {
	if hashed {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return stored == given
}
