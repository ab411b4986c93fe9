package fleurishapi

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cloudwego/hertz/pkg/protocol"
	"go.uber.org/zap"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   string
}

type fakeRoute struct {
	status int
	body   string
}

// fakeDoer answers requests from a route table keyed by "METHOD /path".
type fakeDoer struct {
	mu       sync.Mutex
	routes   map[string]fakeRoute
	err      error
	requests []recordedRequest
}

func newFakeDoer() *fakeDoer {
	return &fakeDoer{routes: map[string]fakeRoute{}}
}

func (d *fakeDoer) on(method, path string, status int, body string) *fakeDoer {
	d.routes[method+" "+path] = fakeRoute{status: status, body: body}
	return d
}

func (d *fakeDoer) Do(_ context.Context, req *protocol.Request, resp *protocol.Response) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	rec := recordedRequest{
		Method: string(req.Header.Method()),
		Path:   string(req.URI().Path()),
		Query:  string(req.URI().QueryString()),
		Auth:   req.Header.Get("Authorization"),
		Body:   string(req.Body()),
	}
	d.requests = append(d.requests, rec)
	if d.err != nil {
		return d.err
	}
	route, ok := d.routes[rec.Method+" "+rec.Path]
	if !ok {
		resp.SetStatusCode(404)
		resp.SetBody([]byte(`{"success":false,"error":"no route"}`))
		return nil
	}
	resp.SetStatusCode(route.status)
	resp.SetBody([]byte(route.body))
	return nil
}

func (d *fakeDoer) calls() []recordedRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]recordedRequest(nil), d.requests...)
}

var errDialFailed = errors.New("dial tcp: connection refused")

func newTestClient(t *testing.T, d *fakeDoer) *Client {
	t.Helper()
	return NewClient("http://backend.test/api/", d, zap.NewNop())
}
