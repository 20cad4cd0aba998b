package infiniti

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"
)

type recordedRequest struct {
	Method      string
	Path        string
	EscapedPath string
	RawQuery    string
	Query       url.Values
	Body        []byte
	Header      http.Header
}

func (r recordedRequest) jsonBody(t *testing.T) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(r.Body, &m); err != nil {
		t.Fatalf("request body is not JSON: %s", r.Body)
	}
	return m
}

// fakeCamera records every request and answers with a fixed status and body.
type fakeCamera struct {
	server *httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func newFakeCamera(t *testing.T, body string) *fakeCamera {
	t.Helper()
	f := &fakeCamera{status: http.StatusOK, body: body}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)

		f.mu.Lock()
		defer f.mu.Unlock()
		f.requests = append(f.requests, recordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			EscapedPath: r.URL.EscapedPath(),
			RawQuery:    r.URL.RawQuery,
			Query:       r.URL.Query(),
			Body:        b,
			Header:      r.Header.Clone(),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		io.WriteString(w, f.body)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeCamera) respond(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
	f.body = body
}

func (f *fakeCamera) client(t *testing.T) Client {
	t.Helper()
	c, err := NewClient(f.server.URL, "admin", "secret", WithTimeout(2*time.Second))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(c.Close)
	return c
}

func (f *fakeCamera) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeCamera) last(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		t.Fatal("no request reached the camera")
	}
	return f.requests[len(f.requests)-1]
}

func (f *fakeCamera) expectOne(t *testing.T, method string, path string, rawQuery string) recordedRequest {
	t.Helper()
	if n := f.count(); n != 1 {
		t.Fatalf("camera received %d requests, want 1", n)
	}
	r := f.last(t)
	if r.Method != method || r.Path != path || r.RawQuery != rawQuery {
		t.Errorf("got %s %s?%s, want %s %s?%s",
			r.Method, r.Path, r.RawQuery, method, path, rawQuery)
	}
	return r
}
