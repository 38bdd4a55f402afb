// Package store defines the persistence contract for user profiles and the
// atomic set-membership updates the connection workflow depends on.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campusmatch/Backend-Study-Match/src/models"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// SetField names a set-valued field that AddToSet/RemoveFromSet may touch.
type SetField string

const (
	FieldConnections        SetField = "connections"
	FieldPendingConnections SetField = "pendingConnections"
)

// UserPatch is a partial update; nil fields are left untouched.
type UserPatch struct {
	Name             *string
	Email            *string
	ProgramOfStudy   *string
	Interest         *string
	Skills           []string
	ProjectIdea      *string
	AvailabilityDate *time.Time
	IsActive         *bool
	LastLogin        *time.Time
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, patch UserPatch) (*models.User, error)

	// ActiveUsers returns every active user regardless of role.
	ActiveUsers(ctx context.Context) ([]models.User, error)
	// ActiveStudents returns active non-admin users whose id is not in exclude.
	ActiveStudents(ctx context.Context, exclude []primitive.ObjectID) ([]models.User, error)
	// IDsWithPendingFrom returns the ids of active users whose
	// pendingConnections contain id, i.e. everyone id has requested.
	IDsWithPendingFrom(ctx context.Context, id primitive.ObjectID) ([]primitive.ObjectID, error)

	AddToSet(ctx context.Context, id primitive.ObjectID, field SetField, value primitive.ObjectID) error
	RemoveFromSet(ctx context.Context, id primitive.ObjectID, field SetField, value primitive.ObjectID) error
}
