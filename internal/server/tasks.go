package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"teamboard/internal/tracker"
)

type taskRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	UserID       string    `json:"user_id"`
	CreationTime time.Time `json:"creation_time"`
}

// handleListTasks fetches tasks for a board.
func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.tracker.Tasks.ListTasks(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, tasks)
}

// handleAddTask inserts a new task on the board named in the path.
func (s *Server) handleAddTask(c *gin.Context) {
	var req taskRequest
	if !s.bindJSON(c, &req) {
		return
	}

	resp, err := s.tracker.Tasks.AddTask(c.Request.Context(), tracker.AddTaskRequest{
		Title:        req.Title,
		Description:  req.Description,
		UserID:       req.UserID,
		BoardID:      c.Param("id"),
		CreationTime: req.CreationTime,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, resp)
}

func (s *Server) handleDescribeTask(c *gin.Context) {
	task, err := s.tracker.Tasks.DescribeTask(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, task)
}

// handleUpdateTaskStatus moves a task to another status.
func (s *Server) handleUpdateTaskStatus(c *gin.Context) {
	var req tracker.UpdateTaskStatusRequest
	if !s.bindJSON(c, &req) {
		return
	}
	resp, err := s.tracker.Tasks.UpdateTaskStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, resp)
}
