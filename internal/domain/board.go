package domain

import "time"

// Board is a kanban board inside a project.
type Board struct {
	ID        string
	ProjectID string
	Name      string
	Removed   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Card sits in a (swimlane, column) cell of a board.
type Card struct {
	ID          string
	SwimlaneID  string
	ColumnID    string
	PriorityID  string
	StatusID    string
	Name        string
	Description string
	Removed     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
