package feedly

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// capturedRequest is what the fake Feedly server saw
type capturedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   string
}

// recorder is a fake Feedly server that records requests and replies from a queue
type recorder struct {
	mu       sync.Mutex
	requests []capturedRequest
	replies  []reply
}

type reply struct {
	status int
	body   string
}

func (r *recorder) handle(w http.ResponseWriter, req *http.Request) {
	body, _ := io.ReadAll(req.Body)

	r.mu.Lock()
	r.requests = append(r.requests, capturedRequest{
		Method: req.Method,
		Path:   req.URL.EscapedPath(),
		Query:  req.URL.Query(),
		Header: req.Header.Clone(),
		Body:   string(body),
	})
	rep := reply{status: http.StatusOK}
	if len(r.replies) > 0 {
		rep = r.replies[0]
		if len(r.replies) > 1 {
			r.replies = r.replies[1:]
		}
	}
	r.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rep.status)
	_, _ = io.WriteString(w, rep.body)
}

func (r *recorder) all() []capturedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]capturedRequest(nil), r.requests...)
}

func (r *recorder) last(t *testing.T) capturedRequest {
	t.Helper()
	reqs := r.all()
	if len(reqs) == 0 {
		t.Fatal("no request reached the server")
	}
	return reqs[len(reqs)-1]
}

// newTestClient starts a fake server replying with the given replies in order.
// The last reply repeats once the queue is drained.
func newTestClient(t *testing.T, cfg Config, replies ...reply) (*Client, *recorder) {
	t.Helper()

	rec := &recorder{replies: replies}
	cfg.BaseURL = newServer(t, rec)
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client, rec
}

// newServer starts a fake Feedly server backed by rec and returns its URL
func newServer(t *testing.T, rec *recorder) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(rec.handle))
	t.Cleanup(server.Close)
	return server.URL
}

func ok(body string) reply { return reply{status: http.StatusOK, body: body} }
