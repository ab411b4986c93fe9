package fleurishapi

import (
	"context"
	"net/url"

	"fleurish/internal/app/ports"

	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type taskDTO struct {
	ID          string `json:"_id"`
	AltID       string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	Status      string `json:"status"`
	CommunityID string `json:"communityId"`
	UserID      string `json:"userId"`
}

func (d taskDTO) toPort() ports.Task {
	return ports.Task{
		ID:          firstNonEmpty(d.ID, d.AltID),
		Title:       d.Title,
		Description: d.Description,
		Points:      d.Points,
		Status:      d.Status,
		CommunityID: d.CommunityID,
		UserID:      d.UserID,
	}
}

func (c *Client) ListCommunityTasks(ctx context.Context, token, communityID string) ([]ports.Task, error) {
	return c.listTasks(ctx, "list community tasks", "tasks/community/"+url.PathEscape(communityID), token)
}

func (c *Client) ListUserTasks(ctx context.Context, token, userID string) ([]ports.Task, error) {
	return c.listTasks(ctx, "list user tasks", "tasks/user/"+url.PathEscape(userID), token)
}

func (c *Client) listTasks(ctx context.Context, op, path, token string) ([]ports.Task, error) {
	body, err := c.do(ctx, call{op: op, method: consts.MethodGet, path: path, token: token})
	if err != nil {
		return nil, err
	}
	dtos := decodeList[taskDTO](c, op, body, "tasks")
	out := make([]ports.Task, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toPort())
	}
	return out, nil
}

func (c *Client) UpdateTask(ctx context.Context, token, taskID string, update ports.TaskUpdate) (ports.Task, error) {
	return c.mutateTask(ctx, call{
		op:     "update task",
		method: consts.MethodPut,
		path:   "tasks/" + url.PathEscape(taskID),
		token:  token,
		body:   update,
	}, taskID)
}

func (c *Client) CompleteTask(ctx context.Context, token, taskID string) (ports.Task, error) {
	return c.mutateTask(ctx, call{
		op:     "complete task",
		method: consts.MethodPatch,
		path:   "tasks/" + url.PathEscape(taskID) + "/complete",
		token:  token,
	}, taskID)
}

func (c *Client) mutateTask(ctx context.Context, cl call, taskID string) (ports.Task, error) {
	body, err := c.do(ctx, cl)
	if err != nil {
		return ports.Task{}, err
	}
	var wrapped struct {
		Task *taskDTO `json:"task"`
		taskDTO
	}
	if err := c.decodeObject(cl.op, body, &wrapped); err != nil {
		return ports.Task{}, err
	}
	d := wrapped.taskDTO
	if wrapped.Task != nil {
		d = *wrapped.Task
	}
	task := d.toPort()
	if task.ID == "" {
		task.ID = taskID
	}
	return task, nil
}
