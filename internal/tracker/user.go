package tracker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"teamboard/internal/models"
)

// UserManager owns the user collection.
type UserManager struct {
	mu     *sync.Mutex
	users  *collection[models.User]
	teams  teamDirectory
	logger *slog.Logger
	now    func() time.Time
}

// CreateUser registers a user under a globally unique name.
func (m *UserManager) CreateUser(ctx context.Context, req CreateUserRequest) (CreatedResponse, error) {
	if err := checkRequest(req); err != nil {
		return CreatedResponse{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users.all() {
		if u.Name == req.Name {
			return CreatedResponse{}, validationf("name", "%q is already taken", req.Name)
		}
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		DisplayName:  req.DisplayName,
		CreationTime: m.now().UTC(),
	}
	if err := m.users.save(ctx, user.ID, user); err != nil {
		return CreatedResponse{}, err
	}

	m.logger.Info("user created", slog.String("id", user.ID), slog.String("name", user.Name))
	return CreatedResponse{ID: user.ID}, nil
}

// ListUsers returns every user in creation order.
func (m *UserManager) ListUsers() []models.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := m.users.all()
	out := make([]models.User, 0, len(all))
	for _, u := range all {
		out = append(out, *u)
	}
	return out
}

func (m *UserManager) DescribeUser(id string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users.get(id)
	if !ok {
		return models.User{}, &NotFoundError{Resource: "user", ID: id}
	}
	return *u, nil
}

// UpdateUser changes the display name. The user name is immutable.
func (m *UserManager) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (StatusResponse, error) {
	if err := checkRequest(req); err != nil {
		return StatusResponse{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.users.get(id)
	if !ok {
		return StatusResponse{}, &NotFoundError{Resource: "user", ID: id}
	}

	updated := *cur
	updated.DisplayName = req.DisplayName
	if err := m.users.save(ctx, id, &updated); err != nil {
		return StatusResponse{}, err
	}

	m.logger.Info("user updated", slog.String("id", id))
	return success, nil
}

// GetUserTeams lists the teams whose membership contains the user.
func (m *UserManager) GetUserTeams(id string) ([]models.TeamSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users.get(id); !ok {
		return nil, &NotFoundError{Resource: "user", ID: id}
	}
	teams := m.teams.teamsWithMember(id)
	if teams == nil {
		teams = []models.TeamSummary{}
	}
	return teams, nil
}

func (m *UserManager) user(id string) (*models.User, bool) {
	return m.users.get(id)
}
