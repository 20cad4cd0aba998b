package service

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/CE-Thesis-2023/infiniti/internal/infiniti"
)

// routedCamera answers each path with a fixed body and records path?query of
// every request. Unknown paths answer with an empty envelope.
type routedCamera struct {
	server *httptest.Server

	mu       sync.Mutex
	routes   map[string]string
	requests []string
}

func newRoutedCamera(t *testing.T, routes map[string]string) *routedCamera {
	t.Helper()
	c := &routedCamera{routes: routes}
	c.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.mu.Lock()
		defer c.mu.Unlock()
		target := r.URL.Path
		if len(r.URL.RawQuery) > 0 {
			target += "?" + r.URL.RawQuery
		}
		c.requests = append(c.requests, r.Method+" "+target)

		body, ok := c.routes[r.URL.Path]
		if !ok {
			body = `{"data":null}`
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(c.server.Close)
	return c
}

func (c *routedCamera) client(t *testing.T) infiniti.Client {
	t.Helper()
	client, err := infiniti.NewClient(c.server.URL, "admin", "secret",
		infiniti.WithTimeout(2*time.Second))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(client.Close)
	return client
}

func (c *routedCamera) seen() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.requests...)
}
