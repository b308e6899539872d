package tracker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"teamboard/internal/models"
)

// TeamManager owns the team collection and its membership lists.
type TeamManager struct {
	mu     *sync.Mutex
	teams  *collection[models.Team]
	users  userDirectory
	logger *slog.Logger
	now    func() time.Time
}

// CreateTeam registers a team with its admin as the only member.
func (m *TeamManager) CreateTeam(ctx context.Context, req CreateTeamRequest) (CreatedResponse, error) {
	if err := checkRequest(req); err != nil {
		return CreatedResponse{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.nameTaken(req.Name, "") {
		return CreatedResponse{}, validationf("name", "%q is already used by another team", req.Name)
	}

	team := &models.Team{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		Admin:        req.Admin,
		Users:        []string{req.Admin},
		CreationTime: m.now().UTC(),
	}
	if err := m.teams.save(ctx, team.ID, team); err != nil {
		return CreatedResponse{}, err
	}

	m.logger.Info("team created", slog.String("id", team.ID), slog.String("name", team.Name))
	return CreatedResponse{ID: team.ID}, nil
}

// ListTeams returns every team in creation order.
func (m *TeamManager) ListTeams() []models.Team {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := m.teams.all()
	out := make([]models.Team, 0, len(all))
	for _, t := range all {
		out = append(out, cloneTeam(t))
	}
	return out
}

// DescribeTeam returns the full team record.
func (m *TeamManager) DescribeTeam(id string) (models.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.teams.get(id)
	if !ok {
		return models.Team{}, &NotFoundError{Resource: "team", ID: id}
	}
	return cloneTeam(t), nil
}

// UpdateTeam replaces the name, description and admin of a team. A new
// admin who is not yet a member is enrolled.
func (m *TeamManager) UpdateTeam(ctx context.Context, id string, req UpdateTeamRequest) (StatusResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.teams.get(id)
	if !ok {
		return StatusResponse{}, &NotFoundError{Resource: "team", ID: id}
	}
	if err := checkRequest(req); err != nil {
		return StatusResponse{}, err
	}
	if m.nameTaken(req.Name, id) {
		return StatusResponse{}, validationf("name", "%q is already used by another team", req.Name)
	}

	updated := cloneTeam(cur)
	updated.Name = req.Name
	updated.Description = req.Description
	updated.Admin = req.Admin
	if !updated.HasMember(req.Admin) {
		updated.Users = append(updated.Users, req.Admin)
		if len(updated.Users) > models.MaxTeamMembers {
			return StatusResponse{}, &CapacityError{Resource: "team", ID: id, Limit: models.MaxTeamMembers, Requested: len(updated.Users)}
		}
	}
	if err := m.teams.save(ctx, id, &updated); err != nil {
		return StatusResponse{}, err
	}

	m.logger.Info("team updated", slog.String("id", id), slog.String("name", updated.Name))
	return success, nil
}

// AddUsersToTeam enrolls user ids into the team. Ids already present, or
// repeated within the request, are enrolled once. The call is rejected as a
// whole if the team would exceed its member cap.
func (m *TeamManager) AddUsersToTeam(ctx context.Context, id string, req MembershipRequest) (StatusResponse, error) {
	if err := checkRequest(req); err != nil {
		return StatusResponse{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.teams.get(id)
	if !ok {
		return StatusResponse{}, &NotFoundError{Resource: "team", ID: id}
	}

	updated := cloneTeam(cur)
	seen := make(map[string]struct{}, len(updated.Users)+len(req.Users))
	for _, u := range updated.Users {
		seen[u] = struct{}{}
	}
	for _, u := range req.Users {
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		updated.Users = append(updated.Users, u)
	}

	if len(updated.Users) > models.MaxTeamMembers {
		return StatusResponse{}, &CapacityError{Resource: "team", ID: id, Limit: models.MaxTeamMembers, Requested: len(updated.Users)}
	}
	added := len(updated.Users) - len(cur.Users)
	if added == 0 {
		return success, nil
	}
	if err := m.teams.save(ctx, id, &updated); err != nil {
		return StatusResponse{}, err
	}

	m.logger.Info("team members added", slog.String("id", id), slog.Int("added", added), slog.Int("members", len(updated.Users)))
	return success, nil
}

// RemoveUsersFromTeam drops the given ids from the membership list. Ids that
// are not members are ignored. The admin cannot be removed.
func (m *TeamManager) RemoveUsersFromTeam(ctx context.Context, id string, req MembershipRequest) (StatusResponse, error) {
	if err := checkRequest(req); err != nil {
		return StatusResponse{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.teams.get(id)
	if !ok {
		return StatusResponse{}, &NotFoundError{Resource: "team", ID: id}
	}

	drop := make(map[string]struct{}, len(req.Users))
	for _, u := range req.Users {
		if u == cur.Admin {
			return StatusResponse{}, validationf("users", "cannot remove admin %q from the team", u)
		}
		drop[u] = struct{}{}
	}

	updated := cloneTeam(cur)
	updated.Users = updated.Users[:0]
	for _, u := range cur.Users {
		if _, ok := drop[u]; !ok {
			updated.Users = append(updated.Users, u)
		}
	}
	removed := len(cur.Users) - len(updated.Users)
	if removed == 0 {
		return success, nil
	}
	if err := m.teams.save(ctx, id, &updated); err != nil {
		return StatusResponse{}, err
	}

	m.logger.Info("team members removed", slog.String("id", id), slog.Int("removed", removed))
	return success, nil
}

// ListTeamUsers resolves every member id against the user collection.
func (m *TeamManager) ListTeamUsers(id string) ([]models.TeamMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.teams.get(id)
	if !ok {
		return nil, &NotFoundError{Resource: "team", ID: id}
	}

	members := make([]models.TeamMember, 0, len(t.Users))
	for _, uid := range t.Users {
		member := models.TeamMember{ID: uid}
		if u, ok := m.users.user(uid); ok {
			member.Name = u.Name
			member.DisplayName = u.DisplayName
			member.Registered = true
		} else {
			m.logger.Warn("team member is not a registered user", slog.String("team", id), slog.String("user", uid))
		}
		members = append(members, member)
	}
	return members, nil
}

func (m *TeamManager) team(id string) (*models.Team, bool) {
	return m.teams.get(id)
}

func (m *TeamManager) teamsWithMember(userID string) []models.TeamSummary {
	var out []models.TeamSummary
	for _, t := range m.teams.all() {
		if t.HasMember(userID) {
			out = append(out, models.TeamSummary{
				ID:           t.ID,
				Name:         t.Name,
				Description:  t.Description,
				CreationTime: t.CreationTime,
			})
		}
	}
	return out
}

// nameTaken reports whether another team than exceptID uses name.
func (m *TeamManager) nameTaken(name, exceptID string) bool {
	for _, t := range m.teams.all() {
		if t.ID != exceptID && t.Name == name {
			return true
		}
	}
	return false
}

func cloneTeam(t *models.Team) models.Team {
	c := *t
	c.Users = append([]string(nil), t.Users...)
	return c
}
