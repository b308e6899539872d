package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamboard/internal/tracker"
)

// handleCreateBoard adds a board to a team.
func (s *Server) handleCreateBoard(c *gin.Context) {
	var req tracker.CreateBoardRequest
	if !s.bindJSON(c, &req) {
		return
	}
	resp, err := s.tracker.Boards.CreateBoard(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, resp)
}

func (s *Server) handleDescribeBoard(c *gin.Context) {
	board, err := s.tracker.Boards.DescribeBoard(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, board)
}

// handleCloseBoard closes a board whose tasks are all complete.
func (s *Server) handleCloseBoard(c *gin.Context) {
	resp, err := s.tracker.Boards.CloseBoard(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, resp)
}

// handleExportBoard writes the board report and returns its path.
func (s *Server) handleExportBoard(c *gin.Context) {
	resp, err := s.tracker.Boards.ExportBoard(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, resp)
}
