package dto

// CreateBoardRequest payload.
type CreateBoardRequest struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
}

// UpdateBoardRequest payload; omitted fields stay untouched.
type UpdateBoardRequest struct {
	ProjectID *string `json:"project_id"`
	Name      *string `json:"name"`
}

// CreateCardRequest payload.
type CreateCardRequest struct {
	SwimlaneID  string `json:"swimlane_id"`
	ColumnID    string `json:"column_id"`
	PriorityID  string `json:"priority_id"`
	StatusID    string `json:"status_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateCardRequest payload; omitted fields stay untouched.
type UpdateCardRequest struct {
	SwimlaneID  *string `json:"swimlane_id"`
	ColumnID    *string `json:"column_id"`
	PriorityID  *string `json:"priority_id"`
	StatusID    *string `json:"status_id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
