package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"teamboard/internal/models"
	"teamboard/internal/report"
)

// BoardManager owns the board collection and the board lifecycle:
// a board is created OPEN and closes once, when all of its tasks are
// COMPLETE.
type BoardManager struct {
	mu      *sync.Mutex
	boards  *collection[models.Board]
	teams   teamDirectory
	tasks   taskDirectory
	reports *report.Writer
	logger  *slog.Logger
	now     func() time.Time
}

// CreateBoard adds an OPEN board to an existing team. Board names are
// unique within a team.
func (m *BoardManager) CreateBoard(ctx context.Context, req CreateBoardRequest) (CreatedResponse, error) {
	if err := checkRequest(req); err != nil {
		return CreatedResponse{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.teams.team(req.TeamID); !ok {
		return CreatedResponse{}, &NotFoundError{Resource: "team", ID: req.TeamID}
	}
	for _, b := range m.boards.all() {
		if b.TeamID == req.TeamID && b.Name == req.Name {
			return CreatedResponse{}, validationf("name", "%q is already used by a board of this team", req.Name)
		}
	}

	board := &models.Board{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		TeamID:       req.TeamID,
		CreationTime: creationTime(req.CreationTime, m.now),
		Status:       models.BoardOpen,
	}
	if err := m.boards.save(ctx, board.ID, board); err != nil {
		return CreatedResponse{}, err
	}

	m.logger.Info("board created", slog.String("id", board.ID), slog.String("team", board.TeamID), slog.String("name", board.Name))
	return CreatedResponse{ID: board.ID}, nil
}

// CloseBoard moves an OPEN board to CLOSED and stamps its end time. Every
// task on the board must be COMPLETE; a board without tasks closes freely.
func (m *BoardManager) CloseBoard(ctx context.Context, id string) (StatusResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.boards.get(id)
	if !ok {
		return StatusResponse{}, &NotFoundError{Resource: "board", ID: id}
	}
	if cur.Status != models.BoardOpen {
		return StatusResponse{}, &InvalidStateError{Resource: "board", ID: id, State: string(cur.Status), Op: "close board"}
	}

	incomplete := 0
	for _, t := range m.tasks.tasksOnBoard(id) {
		if t.Status != models.TaskComplete {
			incomplete++
		}
	}
	if incomplete > 0 {
		return StatusResponse{}, &PreconditionError{
			Resource: "board",
			ID:       id,
			Reason:   fmt.Sprintf("%d task(s) are not COMPLETE", incomplete),
		}
	}

	end := m.now().UTC()
	updated := *cur
	updated.Status = models.BoardClosed
	updated.EndTime = &end
	if err := m.boards.save(ctx, id, &updated); err != nil {
		return StatusResponse{}, err
	}

	m.logger.Info("board closed", slog.String("id", id))
	return success, nil
}

// ListBoards returns the OPEN boards of a team.
func (m *BoardManager) ListBoards(teamID string) ([]models.BoardSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.teams.team(teamID); !ok {
		return nil, &NotFoundError{Resource: "team", ID: teamID}
	}

	out := []models.BoardSummary{}
	for _, b := range m.boards.all() {
		if b.TeamID == teamID && b.Status == models.BoardOpen {
			out = append(out, models.BoardSummary{ID: b.ID, Name: b.Name})
		}
	}
	return out, nil
}

func (m *BoardManager) DescribeBoard(id string) (models.Board, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.boards.get(id)
	if !ok {
		return models.Board{}, &NotFoundError{Resource: "board", ID: id}
	}
	return cloneBoard(b), nil
}

// ExportBoard writes the board report and returns its path. Board and task
// state are not modified.
func (m *BoardManager) ExportBoard(ctx context.Context, id string) (ExportResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.boards.get(id)
	if !ok {
		return ExportResponse{}, &NotFoundError{Resource: "board", ID: id}
	}

	path, err := m.reports.WriteBoard(cloneBoard(b), m.tasks.tasksOnBoard(id))
	if err != nil {
		return ExportResponse{}, &StorageError{Op: "export board " + id, Err: err}
	}

	m.logger.Info("board exported", slog.String("id", id), slog.String("path", path))
	return ExportResponse{OutFile: path}, nil
}

func (m *BoardManager) board(id string) (*models.Board, bool) {
	return m.boards.get(id)
}

func cloneBoard(b *models.Board) models.Board {
	c := *b
	if b.EndTime != nil {
		end := *b.EndTime
		c.EndTime = &end
	}
	return c
}
