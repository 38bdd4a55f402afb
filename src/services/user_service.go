package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campusmatch/Backend-Study-Match/src/lib"
	"github.com/campusmatch/Backend-Study-Match/src/models"
	"github.com/campusmatch/Backend-Study-Match/src/store"
)

// UserService handles registration, authentication and profile lifecycle.
type UserService struct {
	store  store.UserStore
	hasher lib.PasswordHasher
	log    *slog.Logger
}

func NewUserService(st store.UserStore, hasher lib.PasswordHasher, log *slog.Logger) *UserService {
	return &UserService{store: st, hasher: hasher, log: log}
}

type RegisterInput struct {
	Name             string
	Email            string
	ProgramOfStudy   string
	Interest         string
	Skills           []string
	ProjectIdea      string
	AvailabilityDate time.Time
	Password         string
}

type UpdateProfileInput struct {
	Name             *string
	Email            *string
	ProgramOfStudy   *string
	Interest         *string
	Skills           []string
	ProjectIdea      *string
	AvailabilityDate *time.Time
}

// Register creates a new active student profile. The email is stored
// lowercased so uniqueness is case-insensitive.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.log.Error("hashing password failed", "err", err)
		return nil, fmt.Errorf("register: %w", ErrInternal)
	}

	user := &models.User{
		Name:               strings.TrimSpace(in.Name),
		Email:              email,
		ProgramOfStudy:     strings.TrimSpace(in.ProgramOfStudy),
		Interest:           strings.TrimSpace(in.Interest),
		Skills:             in.Skills,
		ProjectIdea:        strings.TrimSpace(in.ProjectIdea),
		AvailabilityDate:   in.AvailabilityDate,
		Password:           hash,
		Role:               models.RoleStudent,
		IsActive:           true,
		Connections:        []primitive.ObjectID{},
		PendingConnections: []primitive.ObjectID{},
	}

	created, err := s.store.Create(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, ErrEmailExists
		}
		s.log.Error("creating user failed", "err", err)
		return nil, fmt.Errorf("register: %w", ErrInternal)
	}
	return created, nil
}

// Authenticate verifies credentials and stamps lastLogin on success.
// Inactive accounts cannot log in.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.ByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.log.Error("looking up user failed", "err", err)
		return nil, fmt.Errorf("authenticate: %w", ErrInternal)
	}

	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	if !s.hasher.Check(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	updated, err := s.store.Update(ctx, user.Id, store.UserPatch{LastLogin: &now})
	if err != nil {
		// Login still succeeds; the stamp is best effort.
		s.log.Warn("updating last login failed", "user_id", user.Id.Hex(), "err", err)
		return user, nil
	}
	return updated, nil
}

func (s *UserService) ByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.store.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("looking up user failed", "err", err)
		return nil, fmt.Errorf("by id: %w", ErrInternal)
	}
	return user, nil
}

// UpdateProfile applies a partial update. A changed email is re-checked for
// uniqueness case-insensitively before the write.
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, in UpdateProfileInput) (*models.User, error) {
	current, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := store.UserPatch{
		Name:             in.Name,
		ProgramOfStudy:   in.ProgramOfStudy,
		Interest:         in.Interest,
		Skills:           in.Skills,
		ProjectIdea:      in.ProjectIdea,
		AvailabilityDate: in.AvailabilityDate,
	}

	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != current.Email {
			if _, err := s.store.ByEmail(ctx, email); err == nil {
				return nil, ErrEmailExists
			} else if !errors.Is(err, store.ErrNotFound) {
				s.log.Error("checking email uniqueness failed", "err", err)
				return nil, fmt.Errorf("update profile: %w", ErrInternal)
			}
		}
		patch.Email = &email
	}

	updated, err := s.store.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, store.ErrDuplicateEmail):
			return nil, ErrEmailExists
		default:
			s.log.Error("updating user failed", "err", err)
			return nil, fmt.Errorf("update profile: %w", ErrInternal)
		}
	}
	return updated, nil
}

// ListActive returns every active user. Admin-only at the boundary.
func (s *UserService) ListActive(ctx context.Context) ([]models.User, error) {
	users, err := s.store.ActiveUsers(ctx)
	if err != nil {
		s.log.Error("listing users failed", "err", err)
		return nil, fmt.Errorf("list active: %w", ErrInternal)
	}
	return users, nil
}

// Deactivate soft-deletes a user: the record stays but the account is
// excluded from login and matching.
func (s *UserService) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	user, err := s.ByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.IsActive {
		return ErrAlreadyInactive
	}

	inactive := false
	now := time.Now().UTC()
	if _, err := s.store.Update(ctx, id, store.UserPatch{IsActive: &inactive, LastLogin: &now}); err != nil {
		s.log.Error("deactivating user failed", "user_id", id.Hex(), "err", err)
		return fmt.Errorf("deactivate: %w", ErrInternal)
	}
	return nil
}
