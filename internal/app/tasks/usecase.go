package tasks

import (
	"context"
	"errors"
	"strings"

	"fleurish/internal/app/ports"
	"fleurish/internal/app/shared/authtoken"

	"go.uber.org/zap"
)

var ErrInvalidRequest = errors.New("invalid task request")

// IsCompleted reports whether a backend status belongs on the completed board.
func IsCompleted(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "completed", "closed", "done":
		return true
	default:
		return false
	}
}

type UseCase struct {
	Backend ports.Backend
	Tokens  ports.TokenStore
	Logger  *zap.Logger
}

func (u UseCase) ListCommunity(ctx context.Context, req ListCommunityRequest) (ListResponse, error) {
	if strings.TrimSpace(req.CommunityID) == "" {
		return ListResponse{}, ErrInvalidRequest
	}
	token, err := authtoken.Resolve(ctx, u.Tokens, req.SessionID)
	if err != nil {
		return ListResponse{}, err
	}
	tasks, err := u.Backend.ListCommunityTasks(ctx, token, req.CommunityID)
	if err != nil {
		return ListResponse{}, u.fail(ctx, req.SessionID, "list community tasks failed", err)
	}
	return ListResponse{Tasks: tasks}, nil
}

// ListMine returns the current user's tasks on one board; an empty board
// returns all of them.
func (u UseCase) ListMine(ctx context.Context, req ListMineRequest) (ListResponse, error) {
	switch req.Board {
	case "", BoardOngoing, BoardCompleted:
	default:
		return ListResponse{}, ErrInvalidRequest
	}
	token, err := authtoken.Resolve(ctx, u.Tokens, req.SessionID)
	if err != nil {
		return ListResponse{}, err
	}
	me, err := u.Backend.Me(ctx, token)
	if err != nil {
		return ListResponse{}, u.fail(ctx, req.SessionID, "fetch current user failed", err)
	}
	all, err := u.Backend.ListUserTasks(ctx, token, me.ID)
	if err != nil {
		return ListResponse{}, u.fail(ctx, req.SessionID, "list user tasks failed", err)
	}
	if req.Board == "" {
		return ListResponse{Tasks: all}, nil
	}
	wantCompleted := req.Board == BoardCompleted
	out := make([]ports.Task, 0, len(all))
	for _, t := range all {
		if IsCompleted(t.Status) == wantCompleted {
			out = append(out, t)
		}
	}
	return ListResponse{Tasks: out}, nil
}

func (u UseCase) Update(ctx context.Context, req UpdateRequest) (TaskResponse, error) {
	if strings.TrimSpace(req.TaskID) == "" {
		return TaskResponse{}, ErrInvalidRequest
	}
	up := req.Update
	if up.Title == nil && up.Description == nil && up.Points == nil && up.Status == nil {
		return TaskResponse{}, ErrInvalidRequest
	}
	if up.Points != nil && *up.Points < 0 {
		return TaskResponse{}, ErrInvalidRequest
	}
	token, err := authtoken.Resolve(ctx, u.Tokens, req.SessionID)
	if err != nil {
		return TaskResponse{}, err
	}
	task, err := u.Backend.UpdateTask(ctx, token, req.TaskID, up)
	if err != nil {
		return TaskResponse{}, u.fail(ctx, req.SessionID, "update task failed", err)
	}
	return TaskResponse{Task: task}, nil
}

func (u UseCase) Complete(ctx context.Context, req CompleteRequest) (TaskResponse, error) {
	if strings.TrimSpace(req.TaskID) == "" {
		return TaskResponse{}, ErrInvalidRequest
	}
	token, err := authtoken.Resolve(ctx, u.Tokens, req.SessionID)
	if err != nil {
		return TaskResponse{}, err
	}
	task, err := u.Backend.CompleteTask(ctx, token, req.TaskID)
	if err != nil {
		return TaskResponse{}, u.fail(ctx, req.SessionID, "complete task failed", err)
	}
	return TaskResponse{Task: task}, nil
}

func (u UseCase) fail(ctx context.Context, sessionID, msg string, err error) error {
	log := u.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log.Warn(msg, zap.String("session_id", sessionID), zap.Error(err))
	return authtoken.ClearOnUnauthenticated(ctx, u.Tokens, sessionID, err)
}
