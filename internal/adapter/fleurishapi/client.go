// Package fleurishapi is the typed client of the Fleurish REST backend.
package fleurishapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"fleurish/internal/app/ports"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// Doer sends one request. *client.Client satisfies it.
type Doer interface {
	Do(ctx context.Context, req *protocol.Request, resp *protocol.Response) error
}

type Client struct {
	baseURL string
	doer    Doer
	logger  *zap.Logger
}

var _ ports.Backend = (*Client)(nil)

func NewClient(baseURL string, doer Doer, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		doer:    doer,
		logger:  logger,
	}
}

// NewHertzDoer builds the production transport. There is no retry policy.
func NewHertzDoer(timeout time.Duration) (Doer, error) {
	c, err := client.NewClient(
		client.WithDialTimeout(timeout),
		client.WithClientReadTimeout(timeout),
		client.WithWriteTimeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("new hertz client: %w", err)
	}
	return c, nil
}

// UpstreamError is a failed backend call. It unwraps to ports.ErrUpstream,
// ports.ErrNotAuthenticated or ports.ErrNotFound.
type UpstreamError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

type call struct {
	op     string
	method string
	path   string
	query  url.Values
	token  string
	// public calls send the token when there is one but never require it.
	public bool
	body   any
}

// do runs the call and returns the raw response body of a 2xx answer.
func (c *Client) do(ctx context.Context, cl call) ([]byte, error) {
	if !cl.public && strings.TrimSpace(cl.token) == "" {
		return nil, fmt.Errorf("%s: %w", cl.op, ports.ErrNotAuthenticated)
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer protocol.ReleaseRequest(req)
	defer protocol.ReleaseResponse(resp)

	uri := c.baseURL + "/" + strings.TrimLeft(cl.path, "/")
	if len(cl.query) > 0 {
		uri += "?" + cl.query.Encode()
	}
	req.SetRequestURI(uri)
	req.SetMethod(cl.method)
	req.Header.Set(requestIDHeader, uuid.NewString())
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}
	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode body: %w", cl.op, err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.SetBody(b)
	}

	if err := c.doer.Do(ctx, req, resp); err != nil {
		c.logger.Warn("backend request failed", zap.String("op", cl.op), zap.String("path", cl.path), zap.Error(err))
		return nil, &UpstreamError{Op: cl.op, Message: err.Error(), Err: ports.ErrUpstream}
	}

	status := resp.StatusCode()
	body := append([]byte(nil), resp.Body()...)
	if status < consts.StatusOK || status >= consts.StatusMultipleChoices {
		upErr := &UpstreamError{Op: cl.op, Status: status, Message: errorMessage(body, cl.op), Err: ports.ErrUpstream}
		switch status {
		case consts.StatusUnauthorized, consts.StatusForbidden:
			upErr.Err = ports.ErrNotAuthenticated
		case consts.StatusNotFound:
			upErr.Err = ports.ErrNotFound
		}
		c.logger.Warn("backend rejected request",
			zap.String("op", cl.op),
			zap.String("path", cl.path),
			zap.Int("status", status),
			zap.String("message", upErr.Message),
		)
		return nil, upErr
	}
	return body, nil
}

// decodeObject decodes the payload of a 2xx answer into out. A payload that
// does not match the shape is an upstream error.
func (c *Client) decodeObject(op string, body []byte, out any) error {
	if err := json.Unmarshal(payload(body), out); err != nil {
		c.logger.Warn("unexpected backend response shape", zap.String("op", op), zap.Error(err))
		return &UpstreamError{Op: op, Message: "unexpected response shape", Err: ports.ErrUpstream}
	}
	return nil
}

// decodeList decodes a list payload, either a bare array or an object holding
// the array under field. A mismatch yields an empty list.
func decodeList[T any](c *Client, op string, body []byte, field string) []T {
	items, err := listPayload[T](payload(body), field)
	if err != nil {
		c.logger.Warn("unexpected backend list shape", zap.String("op", op), zap.Error(err))
		return []T{}
	}
	return items
}
