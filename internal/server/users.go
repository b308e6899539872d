package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamboard/internal/tracker"
)

func (s *Server) handleListUsers(c *gin.Context) {
	respondSuccess(c, http.StatusOK, s.tracker.Users.ListUsers())
}

func (s *Server) handleCreateUser(c *gin.Context) {
	var req tracker.CreateUserRequest
	if !s.bindJSON(c, &req) {
		return
	}
	resp, err := s.tracker.Users.CreateUser(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, resp)
}

func (s *Server) handleDescribeUser(c *gin.Context) {
	user, err := s.tracker.Users.DescribeUser(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, user)
}

// handleUpdateUser changes the display name only.
func (s *Server) handleUpdateUser(c *gin.Context) {
	var req tracker.UpdateUserRequest
	if !s.bindJSON(c, &req) {
		return
	}
	resp, err := s.tracker.Users.UpdateUser(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, resp)
}

func (s *Server) handleUserTeams(c *gin.Context) {
	teams, err := s.tracker.Users.GetUserTeams(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, teams)
}
