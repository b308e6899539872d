// Package tracker implements the entity managers for teams, users, boards
// and tasks.
//
// Each manager owns one collection and is the only writer of it. Managers
// reference each other's records by id only and read across collections
// through small lookup interfaces that are wired by New. All four managers
// share one mutex, so operations on a Tracker run one at a time. Separate
// Tracker instances over the same store do not coordinate.
package tracker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"teamboard/internal/models"
	"teamboard/internal/report"
	"teamboard/internal/storage"
)

// Tracker bundles the four managers built over one store.
type Tracker struct {
	Teams  *TeamManager
	Users  *UserManager
	Boards *BoardManager
	Tasks  *TaskManager
}

// The lookups below are called with the shared mutex held.

type userDirectory interface {
	user(id string) (*models.User, bool)
}

type teamDirectory interface {
	team(id string) (*models.Team, bool)
	teamsWithMember(userID string) []models.TeamSummary
}

type boardDirectory interface {
	board(id string) (*models.Board, bool)
}

type taskDirectory interface {
	tasksOnBoard(boardID string) []models.Task
}

// New loads every collection from store and wires the managers together.
// An empty store is a valid starting point; unreadable records are
// reported as a StorageError.
func New(ctx context.Context, store storage.Store, reports *report.Writer, logger *slog.Logger) (*Tracker, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if reports == nil {
		reports = report.NewWriter(nil, "")
	}

	teams, err := loadCollection[models.Team](ctx, store, storage.Teams)
	if err != nil {
		return nil, err
	}
	users, err := loadCollection[models.User](ctx, store, storage.Users)
	if err != nil {
		return nil, err
	}
	boards, err := loadCollection[models.Board](ctx, store, storage.Boards)
	if err != nil {
		return nil, err
	}
	tasks, err := loadCollection[models.Task](ctx, store, storage.Tasks)
	if err != nil {
		return nil, err
	}

	mu := &sync.Mutex{}
	tm := &TeamManager{mu: mu, teams: teams, logger: logger.With(slog.String("manager", "teams")), now: time.Now}
	um := &UserManager{mu: mu, users: users, teams: tm, logger: logger.With(slog.String("manager", "users")), now: time.Now}
	tm.users = um
	bm := &BoardManager{mu: mu, boards: boards, teams: tm, reports: reports, logger: logger.With(slog.String("manager", "boards")), now: time.Now}
	km := &TaskManager{mu: mu, tasks: tasks, boards: bm, logger: logger.With(slog.String("manager", "tasks")), now: time.Now}
	bm.tasks = km

	logger.Info("collections loaded",
		slog.Int("teams", len(teams.order)),
		slog.Int("users", len(users.order)),
		slog.Int("boards", len(boards.order)),
		slog.Int("tasks", len(tasks.order)),
	)

	return &Tracker{Teams: tm, Users: um, Boards: bm, Tasks: km}, nil
}

// setClock replaces the time source of every manager.
func (t *Tracker) setClock(now func() time.Time) {
	t.Teams.now = now
	t.Users.now = now
	t.Boards.now = now
	t.Tasks.now = now
}

// creationTime returns requested, or now when requested is zero.
func creationTime(requested time.Time, now func() time.Time) time.Time {
	if requested.IsZero() {
		return now().UTC()
	}
	return requested
}
