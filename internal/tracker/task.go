package tracker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"teamboard/internal/models"
)

// TaskManager owns the task collection. Tasks can only be added to OPEN
// boards, but their status may change freely afterwards.
type TaskManager struct {
	mu     *sync.Mutex
	tasks  *collection[models.Task]
	boards boardDirectory
	logger *slog.Logger
	now    func() time.Time
}

// AddTask creates an OPEN task on an OPEN board. Titles are unique within a
// board. The assignee is not checked against team membership.
func (m *TaskManager) AddTask(ctx context.Context, req AddTaskRequest) (CreatedResponse, error) {
	if err := checkRequest(req); err != nil {
		return CreatedResponse{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	board, ok := m.boards.board(req.BoardID)
	if !ok {
		return CreatedResponse{}, &NotFoundError{Resource: "board", ID: req.BoardID}
	}
	if board.Status != models.BoardOpen {
		return CreatedResponse{}, &InvalidStateError{Resource: "board", ID: board.ID, State: string(board.Status), Op: "add task"}
	}
	for _, t := range m.tasks.all() {
		if t.BoardID == req.BoardID && t.Title == req.Title {
			return CreatedResponse{}, validationf("title", "%q is already used on this board", req.Title)
		}
	}

	task := &models.Task{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Description:  req.Description,
		UserID:       req.UserID,
		BoardID:      req.BoardID,
		CreationTime: creationTime(req.CreationTime, m.now),
		Status:       models.TaskOpen,
	}
	if err := m.tasks.save(ctx, task.ID, task); err != nil {
		return CreatedResponse{}, err
	}

	m.logger.Info("task added", slog.String("id", task.ID), slog.String("board", task.BoardID), slog.String("title", task.Title))
	return CreatedResponse{ID: task.ID}, nil
}

// UpdateTaskStatus moves a task to any of the known statuses, including
// back from COMPLETE.
func (m *TaskManager) UpdateTaskStatus(ctx context.Context, id string, req UpdateTaskStatusRequest) (StatusResponse, error) {
	if err := checkRequest(req); err != nil {
		return StatusResponse{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.tasks.get(id)
	if !ok {
		return StatusResponse{}, &NotFoundError{Resource: "task", ID: id}
	}
	if cur.Status == req.Status {
		return success, nil
	}

	updated := *cur
	updated.Status = req.Status
	if err := m.tasks.save(ctx, id, &updated); err != nil {
		return StatusResponse{}, err
	}

	m.logger.Info("task status changed", slog.String("id", id), slog.String("from", string(cur.Status)), slog.String("to", string(req.Status)))
	return success, nil
}

func (m *TaskManager) DescribeTask(id string) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks.get(id)
	if !ok {
		return models.Task{}, &NotFoundError{Resource: "task", ID: id}
	}
	return *t, nil
}

// ListTasks returns the tasks of a board in creation order.
func (m *TaskManager) ListTasks(boardID string) ([]models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.boards.board(boardID); !ok {
		return nil, &NotFoundError{Resource: "board", ID: boardID}
	}
	return m.tasksOnBoard(boardID), nil
}

func (m *TaskManager) tasksOnBoard(boardID string) []models.Task {
	out := []models.Task{}
	for _, t := range m.tasks.all() {
		if t.BoardID == boardID {
			out = append(out, *t)
		}
	}
	return out
}
