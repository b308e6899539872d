package tracker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"

	"teamboard/internal/models"
	"teamboard/internal/report"
	"teamboard/internal/storage"
	"teamboard/internal/storage/sqlite"
)

var fixedNow = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

type testEnv struct {
	tr    *Tracker
	store storage.Store
	fs    afero.Fs
	path  string
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	path := filepath.Join(t.TempDir(), "teamboard.db")
	store, err := sqlite.Open(path, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	fs := afero.NewMemMapFs()
	tr, err := New(context.Background(), store, report.NewWriter(fs, "out"), discardLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tr.setClock(func() time.Time { return fixedNow })
	return &testEnv{tr: tr, store: store, fs: fs, path: path}
}

// reload builds a second tracker over the same store.
func (e *testEnv) reload(t *testing.T) *Tracker {
	t.Helper()
	tr, err := New(context.Background(), e.store, report.NewWriter(e.fs, "out"), discardLogger())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	return tr
}

func mustCreateTeam(t *testing.T, tr *Tracker, name, admin string) string {
	t.Helper()
	resp, err := tr.Teams.CreateTeam(context.Background(), CreateTeamRequest{Name: name, Description: name + " team", Admin: admin})
	if err != nil {
		t.Fatalf("CreateTeam %q: %v", name, err)
	}
	return resp.ID
}

func mustCreateUser(t *testing.T, tr *Tracker, name string) string {
	t.Helper()
	resp, err := tr.Users.CreateUser(context.Background(), CreateUserRequest{Name: name, DisplayName: "Display " + name})
	if err != nil {
		t.Fatalf("CreateUser %q: %v", name, err)
	}
	return resp.ID
}

func mustCreateBoard(t *testing.T, tr *Tracker, teamID, name string) string {
	t.Helper()
	resp, err := tr.Boards.CreateBoard(context.Background(), CreateBoardRequest{Name: name, Description: "board " + name, TeamID: teamID})
	if err != nil {
		t.Fatalf("CreateBoard %q: %v", name, err)
	}
	return resp.ID
}

func mustAddTask(t *testing.T, tr *Tracker, boardID, title string) string {
	t.Helper()
	resp, err := tr.Tasks.AddTask(context.Background(), AddTaskRequest{Title: title, Description: "task " + title, UserID: "u1", BoardID: boardID})
	if err != nil {
		t.Fatalf("AddTask %q: %v", title, err)
	}
	return resp.ID
}

func assertErrorKind(t *testing.T, err, kind error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %T, got nil", kind)
	}
	if !errors.Is(err, kind) {
		t.Fatalf("expected %T, got %T: %v", kind, err, err)
	}
}

// failingStore delegates to a real store until failPuts is set.
type failingStore struct {
	storage.Store
	failPuts bool
	failList bool
}

var errDiskFull = errors.New("disk full")

func (s *failingStore) Put(ctx context.Context, collection, id string, body []byte) error {
	if s.failPuts {
		return errDiskFull
	}
	return s.Store.Put(ctx, collection, id, body)
}

func (s *failingStore) List(ctx context.Context, collection string) ([]storage.Record, error) {
	if s.failList {
		return nil, errDiskFull
	}
	return s.Store.List(ctx, collection)
}

func TestNew_EmptyStore(t *testing.T) {
	env := newTestEnv(t)
	if got := env.tr.Teams.ListTeams(); len(got) != 0 {
		t.Errorf("want no teams, got %d", len(got))
	}
	if got := env.tr.Users.ListUsers(); len(got) != 0 {
		t.Errorf("want no users, got %d", len(got))
	}
}

func TestNew_ListFailureIsStorageError(t *testing.T) {
	env := newTestEnv(t)
	fs := &failingStore{Store: env.store, failList: true}

	_, err := New(context.Background(), fs, nil, discardLogger())
	assertErrorKind(t, err, &StorageError{})
	if !errors.Is(err, errDiskFull) {
		t.Errorf("StorageError should wrap the cause, got %v", err)
	}
}

func TestNew_CorruptRecordIsStorageError(t *testing.T) {
	env := newTestEnv(t)
	if err := env.store.Put(context.Background(), storage.Teams, "bad", []byte("{not json")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	_, err := New(context.Background(), env.store, nil, discardLogger())
	assertErrorKind(t, err, &StorageError{})
}

func TestReloadReproducesState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tr := env.tr

	teamID := mustCreateTeam(t, tr, "Eng", "u1")
	userID := mustCreateUser(t, tr, "alice")
	if _, err := tr.Teams.AddUsersToTeam(ctx, teamID, MembershipRequest{Users: []string{userID}}); err != nil {
		t.Fatalf("AddUsersToTeam: %v", err)
	}
	boardID := mustCreateBoard(t, tr, teamID, "Sprint1")
	taskID := mustAddTask(t, tr, boardID, "Fix bug")
	if _, err := tr.Tasks.UpdateTaskStatus(ctx, taskID, UpdateTaskStatusRequest{Status: models.TaskComplete}); err != nil {
		t.Fatalf("UpdateTaskStatus: %v", err)
	}
	if _, err := tr.Boards.CloseBoard(ctx, boardID); err != nil {
		t.Fatalf("CloseBoard: %v", err)
	}

	again := env.reload(t)

	team, err := again.Teams.DescribeTeam(teamID)
	if err != nil {
		t.Fatalf("DescribeTeam after reload: %v", err)
	}
	if len(team.Users) != 2 || team.Users[1] != userID {
		t.Errorf("membership not persisted: %v", team.Users)
	}
	board, err := again.Boards.DescribeBoard(boardID)
	if err != nil {
		t.Fatalf("DescribeBoard after reload: %v", err)
	}
	if board.Status != models.BoardClosed || board.EndTime == nil {
		t.Errorf("board state not persisted: %+v", board)
	}
	task, err := again.Tasks.DescribeTask(taskID)
	if err != nil {
		t.Fatalf("DescribeTask after reload: %v", err)
	}
	if task.Status != models.TaskComplete {
		t.Errorf("task status = %s, want COMPLETE", task.Status)
	}
}

func TestStorageFailureLeavesStateUnchanged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fs := &failingStore{Store: env.store}

	tr, err := New(ctx, fs, report.NewWriter(env.fs, "out"), discardLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	teamID := mustCreateTeam(t, tr, "Eng", "u1")
	boardID := mustCreateBoard(t, tr, teamID, "Sprint1")

	fs.failPuts = true

	_, err = tr.Teams.CreateTeam(ctx, CreateTeamRequest{Name: "Ops", Admin: "u2"})
	assertErrorKind(t, err, &StorageError{})
	if got := len(tr.Teams.ListTeams()); got != 1 {
		t.Errorf("failed create changed team count to %d", got)
	}

	_, err = tr.Teams.AddUsersToTeam(ctx, teamID, MembershipRequest{Users: []string{"u9"}})
	assertErrorKind(t, err, &StorageError{})
	team, _ := tr.Teams.DescribeTeam(teamID)
	if len(team.Users) != 1 {
		t.Errorf("failed add changed membership: %v", team.Users)
	}

	_, err = tr.Boards.CloseBoard(ctx, boardID)
	assertErrorKind(t, err, &StorageError{})
	board, _ := tr.Boards.DescribeBoard(boardID)
	if board.Status != models.BoardOpen || board.EndTime != nil {
		t.Errorf("failed close changed board: %+v", board)
	}

	fs.failPuts = false
	if _, err := tr.Boards.CloseBoard(ctx, boardID); err != nil {
		t.Fatalf("CloseBoard after recovery: %v", err)
	}
}

// Walks the end-to-end example: team, board, task, complete, close.
func TestLifecycleExample(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tr := env.tr

	teamID := mustCreateTeam(t, tr, "Eng", "u1")
	boardID := mustCreateBoard(t, tr, teamID, "Sprint1")
	taskID := mustAddTask(t, tr, boardID, "Fix bug")

	if _, err := tr.Tasks.UpdateTaskStatus(ctx, taskID, UpdateTaskStatusRequest{Status: models.TaskComplete}); err != nil {
		t.Fatalf("UpdateTaskStatus: %v", err)
	}
	resp, err := tr.Boards.CloseBoard(ctx, boardID)
	if err != nil {
		t.Fatalf("CloseBoard: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("status = %q, want success", resp.Status)
	}

	board, err := tr.Boards.DescribeBoard(boardID)
	if err != nil {
		t.Fatalf("DescribeBoard: %v", err)
	}
	if board.Status != models.BoardClosed {
		t.Errorf("board status = %s, want CLOSED", board.Status)
	}
	if board.EndTime == nil || !board.EndTime.Equal(fixedNow) {
		t.Errorf("end_time = %v, want %v", board.EndTime, fixedNow)
	}
}
