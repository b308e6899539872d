package tracker

import (
	"time"

	"teamboard/internal/models"
)

// CreateTeamRequest is the payload of CreateTeam.
type CreateTeamRequest struct {
	Name        string `json:"name" validate:"required,max=64"`
	Description string `json:"description" validate:"max=128"`
	Admin       string `json:"admin" validate:"required"`
}

// UpdateTeamRequest replaces the mutable fields of a team.
type UpdateTeamRequest struct {
	Name        string `json:"name" validate:"required,max=64"`
	Description string `json:"description" validate:"max=128"`
	Admin       string `json:"admin" validate:"required"`
}

// MembershipRequest lists user ids to add to or remove from a team.
type MembershipRequest struct {
	Users []string `json:"users" validate:"dive,required"`
}

// CreateUserRequest is the payload of CreateUser.
type CreateUserRequest struct {
	Name        string `json:"name" validate:"required,max=64"`
	DisplayName string `json:"display_name" validate:"max=64"`
}

// UpdateUserRequest carries the only mutable user field.
type UpdateUserRequest struct {
	DisplayName string `json:"display_name" validate:"max=64"`
}

// CreateBoardRequest is the payload of CreateBoard. A zero CreationTime is
// replaced by the current time.
type CreateBoardRequest struct {
	Name         string    `json:"name" validate:"required,max=64"`
	Description  string    `json:"description" validate:"max=128"`
	TeamID       string    `json:"team_id" validate:"required"`
	CreationTime time.Time `json:"creation_time"`
}

// AddTaskRequest is the payload of AddTask. A zero CreationTime is replaced
// by the current time.
type AddTaskRequest struct {
	Title        string    `json:"title" validate:"required,max=64"`
	Description  string    `json:"description" validate:"max=128"`
	UserID       string    `json:"user_id"`
	BoardID      string    `json:"board_id" validate:"required"`
	CreationTime time.Time `json:"creation_time"`
}

// UpdateTaskStatusRequest moves a task to a new status.
type UpdateTaskStatusRequest struct {
	Status models.TaskStatus `json:"status" validate:"required,task_status"`
}

// CreatedResponse is returned by every create operation.
type CreatedResponse struct {
	ID string `json:"id"`
}

// StatusResponse is returned by every mutation that creates nothing.
type StatusResponse struct {
	Status string `json:"status"`
}

// ExportResponse names the written report file.
type ExportResponse struct {
	OutFile string `json:"out_file"`
}

var success = StatusResponse{Status: "success"}
