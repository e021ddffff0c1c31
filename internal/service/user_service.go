// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"
	"log/slog"
	"strings"

	"commune/internal/middleware"
	"commune/internal/models"
	"commune/internal/outbox"
	"commune/internal/repository"
)

// UserService keeps the local user table in sync with the identity provider
// and resolves caller identities to stored users.
type UserService struct {
	userRepo  repository.UserRepository
	publisher *outbox.Publisher
}

// SyncUserInput carries the fields of a user.created / user.updated event.
type SyncUserInput struct {
	ClerkID      string
	FirstName    string
	LastName     string
	Email        string
	ProfileImage string
}

// FullName joins the name parts the way the profile stores them.
func (in SyncUserInput) FullName() string {
	return strings.TrimSpace(in.FirstName + " " + in.LastName)
}

// NewUserService creates a UserService. publisher may be nil when no Kafka
// brokers are configured.
func NewUserService(userRepo repository.UserRepository, publisher *outbox.Publisher) *UserService {
	return &UserService{userRepo: userRepo, publisher: publisher}
}

// CurrentUser resolves the explicit caller identity to a stored user by
// email. A missing identity or an email matching no user yields (nil, nil);
// absence is never an error.
func (s *UserService) CurrentUser(ctx context.Context, ident models.Identity) (*models.User, error) {
	if ident.IsZero() || ident.Email == "" {
		return nil, nil
	}
	return s.userRepo.GetByEmail(ctx, ident.Email)
}

// GetUserByClerkID returns the user with the given external id, or
// (nil, nil) when none exists.
func (s *UserService) GetUserByClerkID(ctx context.Context, clerkID string) (*models.User, error) {
	return s.userRepo.GetByClerkID(ctx, clerkID)
}

// SyncUser reconciles a user.created or user.updated event: the existing
// user with the event's clerk id is patched, otherwise a new row is
// inserted. Both event types converge to the same state, so duplicate and
// reordered deliveries are safe.
func (s *UserService) SyncUser(ctx context.Context, in SyncUserInput) (*models.User, error) {
	if in.ClerkID == "" {
		return nil, models.NewValidationError("Clerk id is required")
	}
	if in.Email == "" {
		return nil, models.NewValidationError("Email is required")
	}

	existing, err := s.userRepo.GetByClerkID(ctx, in.ClerkID)
	if err != nil {
		return nil, err
	}

	var user *models.User
	if existing != nil {
		user, err = s.userRepo.UpdateProfile(ctx, in.ClerkID, in.FullName(), in.Email, in.ProfileImage)
		if err != nil {
			return nil, err
		}
	} else {
		user = &models.User{
			FullName:     in.FullName(),
			Email:        in.Email,
			ProfileImage: in.ProfileImage,
			ClerkID:      in.ClerkID,
		}
		err = s.userRepo.Create(ctx, user)
		if models.IsCode(err, "CONFLICT") {
			// Lost a create race against a concurrent delivery; the row
			// exists now, so patch it instead.
			user, err = s.userRepo.UpdateProfile(ctx, in.ClerkID, in.FullName(), in.Email, in.ProfileImage)
		}
		if err != nil {
			return nil, err
		}
	}

	s.publisher.UserSynced(ctx, user.ClerkID, user.Email, user.FullName)
	return user, nil
}

// DeleteUser removes the user with the given clerk id and everything the
// user owns. Deleting an absent user is a success: the provider may deliver
// user.deleted more than once.
func (s *UserService) DeleteUser(ctx context.Context, clerkID string) error {
	if clerkID == "" {
		return models.NewValidationError("Clerk id is required")
	}

	found, err := s.userRepo.Delete(ctx, clerkID)
	if err != nil {
		return err
	}
	if !found {
		middleware.Logger.InfoContext(ctx, "delete for unknown user, treating as no-op",
			slog.String("clerk_id", clerkID))
		return nil
	}

	s.publisher.UserDeleted(ctx, clerkID)
	return nil
}

// ListUsers returns users ordered by creation time.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}
