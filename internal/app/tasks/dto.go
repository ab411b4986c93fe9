package tasks

import "fleurish/internal/app/ports"

type Board string

const (
	BoardOngoing   Board = "ongoing"
	BoardCompleted Board = "completed"
)

type ListCommunityRequest struct {
	SessionID   string
	CommunityID string
}

type ListMineRequest struct {
	SessionID string
	Board     Board
}

type UpdateRequest struct {
	SessionID string
	TaskID    string
	Update    ports.TaskUpdate
}

type CompleteRequest struct {
	SessionID string
	TaskID    string
}

type ListResponse struct {
	Tasks []ports.Task `json:"tasks"`
}

type TaskResponse struct {
	Task ports.Task `json:"task"`
}
