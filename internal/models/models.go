package models

import "time"

// Limits shared by every entity.
const (
	MaxNameLength        = 64
	MaxDescriptionLength = 128
	MaxTeamMembers       = 50
)

// BoardStatus is the lifecycle state of a board.
type BoardStatus string

const (
	BoardOpen   BoardStatus = "OPEN"
	BoardClosed BoardStatus = "CLOSED"
)

// TaskStatus is the progress state of a task.
type TaskStatus string

const (
	TaskOpen       TaskStatus = "OPEN"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskComplete   TaskStatus = "COMPLETE"
)

// ValidTaskStatuses enumerates the statuses a task may be moved to.
var ValidTaskStatuses = map[TaskStatus]struct{}{
	TaskOpen:       {},
	TaskInProgress: {},
	TaskComplete:   {},
}

// Team groups users under an admin and owns project boards.
type Team struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Admin        string    `json:"admin"`
	Users        []string  `json:"users"`
	CreationTime time.Time `json:"creation_time"`
}

// HasMember reports whether userID is in the team's membership list.
func (t *Team) HasMember(userID string) bool {
	for _, id := range t.Users {
		if id == userID {
			return true
		}
	}
	return false
}

// User is a registered person that can be enrolled into teams.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	DisplayName  string    `json:"display_name"`
	CreationTime time.Time `json:"creation_time"`
}

// Board is a unit of delivery for a team. Each board holds a set of tasks.
type Board struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	TeamID       string      `json:"team_id"`
	CreationTime time.Time   `json:"creation_time"`
	Status       BoardStatus `json:"status"`
	EndTime      *time.Time  `json:"end_time"`
}

// Task represents a single card on a board.
type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	UserID       string     `json:"user_id"`
	BoardID      string     `json:"board_id"`
	CreationTime time.Time  `json:"creation_time"`
	Status       TaskStatus `json:"status"`
}

// BoardSummary is the list projection of an open board.
type BoardSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TeamSummary is the projection returned when listing a user's teams.
type TeamSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CreationTime time.Time `json:"creation_time"`
}

// TeamMember is a member id resolved against the user collection.
// Registered is false when the id does not belong to a known user.
type TeamMember struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Registered  bool   `json:"registered"`
}
