package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamboard/internal/tracker"
)

// handleListTeams returns all teams.
func (s *Server) handleListTeams(c *gin.Context) {
	respondSuccess(c, http.StatusOK, s.tracker.Teams.ListTeams())
}

// handleCreateTeam registers a new team.
func (s *Server) handleCreateTeam(c *gin.Context) {
	var req tracker.CreateTeamRequest
	if !s.bindJSON(c, &req) {
		return
	}
	resp, err := s.tracker.Teams.CreateTeam(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, resp)
}

func (s *Server) handleDescribeTeam(c *gin.Context) {
	team, err := s.tracker.Teams.DescribeTeam(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, team)
}

// handleUpdateTeam replaces name, description and admin.
func (s *Server) handleUpdateTeam(c *gin.Context) {
	var req tracker.UpdateTeamRequest
	if !s.bindJSON(c, &req) {
		return
	}
	resp, err := s.tracker.Teams.UpdateTeam(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, resp)
}

func (s *Server) handleListTeamUsers(c *gin.Context) {
	members, err := s.tracker.Teams.ListTeamUsers(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, members)
}

func (s *Server) handleAddTeamUsers(c *gin.Context) {
	var req tracker.MembershipRequest
	if !s.bindJSON(c, &req) {
		return
	}
	resp, err := s.tracker.Teams.AddUsersToTeam(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, resp)
}

func (s *Server) handleRemoveTeamUsers(c *gin.Context) {
	var req tracker.MembershipRequest
	if !s.bindJSON(c, &req) {
		return
	}
	resp, err := s.tracker.Teams.RemoveUsersFromTeam(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, resp)
}

// handleListBoards returns the open boards of a team.
func (s *Server) handleListBoards(c *gin.Context) {
	boards, err := s.tracker.Boards.ListBoards(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, boards)
}
