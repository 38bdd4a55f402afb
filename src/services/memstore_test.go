package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campusmatch/Backend-Study-Match/src/models"
	"github.com/campusmatch/Backend-Study-Match/src/store"
)

// memStore is an in-memory UserStore with deterministic scan order
// (insertion order), used by all service tests.
type memStore struct {
	mu    sync.Mutex
	order []primitive.ObjectID
	users map[primitive.ObjectID]*models.User

	// failAddToSet makes AddToSet fail for the given user id, to exercise
	// the accept rollback path.
	failAddToSet map[primitive.ObjectID]error
}

func newMemStore() *memStore {
	return &memStore{
		users:        map[primitive.ObjectID]*models.User{},
		failAddToSet: map[primitive.ObjectID]error{},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func cloneUser(u *models.User) *models.User {
	clone := *u
	clone.Skills = append([]string(nil), u.Skills...)
	clone.Connections = append([]primitive.ObjectID{}, u.Connections...)
	clone.PendingConnections = append([]primitive.ObjectID{}, u.PendingConnections...)
	return &clone
}

func (m *memStore) Create(_ context.Context, user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == user.Email {
			return nil, store.ErrDuplicateEmail
		}
	}

	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	m.users[user.Id] = cloneUser(user)
	m.order = append(m.order, user.Id)
	return cloneUser(user), nil
}

func (m *memStore) ByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneUser(user), nil
}

func (m *memStore) ByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range m.order {
		if m.users[id].Email == email {
			return cloneUser(m.users[id]), nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) ByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := []models.User{}
	for _, id := range ids {
		if user, ok := m.users[id]; ok {
			users = append(users, *cloneUser(user))
		}
	}
	return users, nil
}

func (m *memStore) Update(_ context.Context, id primitive.ObjectID, patch store.UserPatch) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	if patch.Email != nil {
		for otherID, other := range m.users {
			if otherID != id && other.Email == *patch.Email {
				return nil, store.ErrDuplicateEmail
			}
		}
		user.Email = *patch.Email
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.ProgramOfStudy != nil {
		user.ProgramOfStudy = *patch.ProgramOfStudy
	}
	if patch.Interest != nil {
		user.Interest = *patch.Interest
	}
	if patch.Skills != nil {
		user.Skills = append([]string(nil), patch.Skills...)
	}
	if patch.ProjectIdea != nil {
		user.ProjectIdea = *patch.ProjectIdea
	}
	if patch.AvailabilityDate != nil {
		user.AvailabilityDate = *patch.AvailabilityDate
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}
	if patch.LastLogin != nil {
		lastLogin := *patch.LastLogin
		user.LastLogin = &lastLogin
	}
	user.UpdatedAt = time.Now().UTC()

	return cloneUser(user), nil
}

func (m *memStore) ActiveUsers(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := []models.User{}
	for _, id := range m.order {
		if m.users[id].IsActive {
			users = append(users, *cloneUser(m.users[id]))
		}
	}
	return users, nil
}

func (m *memStore) ActiveStudents(_ context.Context, exclude []primitive.ObjectID) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	excluded := map[primitive.ObjectID]bool{}
	for _, id := range exclude {
		excluded[id] = true
	}

	users := []models.User{}
	for _, id := range m.order {
		user := m.users[id]
		if !user.IsActive || user.IsAdmin() || excluded[id] {
			continue
		}
		users = append(users, *cloneUser(user))
	}
	return users, nil
}

func (m *memStore) IDsWithPendingFrom(_ context.Context, id primitive.ObjectID) ([]primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ids []primitive.ObjectID
	for _, userID := range m.order {
		user := m.users[userID]
		if user.IsActive && user.HasPendingFrom(id) {
			ids = append(ids, userID)
		}
	}
	return ids, nil
}

func (m *memStore) AddToSet(_ context.Context, id primitive.ObjectID, field store.SetField, value primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.failAddToSet[id]; ok {
		return err
	}

	user, ok := m.users[id]
	if !ok {
		return store.ErrNotFound
	}

	set := m.setFor(user, field)
	for _, existing := range *set {
		if existing == value {
			return nil
		}
	}
	*set = append(*set, value)
	return nil
}

func (m *memStore) RemoveFromSet(_ context.Context, id primitive.ObjectID, field store.SetField, value primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return store.ErrNotFound
	}

	set := m.setFor(user, field)
	filtered := (*set)[:0]
	for _, existing := range *set {
		if existing != value {
			filtered = append(filtered, existing)
		}
	}
	*set = filtered
	return nil
}

func (m *memStore) setFor(user *models.User, field store.SetField) *[]primitive.ObjectID {
	if field == store.FieldConnections {
		return &user.Connections
	}
	return &user.PendingConnections
}

// seedUser inserts an active student with the given matching fields.
func seedUser(m *memStore, name, email, interest string, skills []string, projectIdea string) *models.User {
	user := &models.User{
		Name:               name,
		Email:              email,
		ProgramOfStudy:     "Computer Science",
		Interest:           interest,
		Skills:             skills,
		ProjectIdea:        projectIdea,
		AvailabilityDate:   time.Now().Add(24 * time.Hour),
		Password:           "irrelevant",
		Role:               models.RoleStudent,
		IsActive:           true,
		Connections:        []primitive.ObjectID{},
		PendingConnections: []primitive.ObjectID{},
	}
	created, err := m.Create(context.Background(), user)
	if err != nil {
		panic(err)
	}
	return created
}
