package infiniti

import (
	"net/http"
	"time"
)

type InfinitiClientOptioner func(o *infinitiOptions)

func WithTimeout(dur time.Duration) InfinitiClientOptioner {
	return func(o *infinitiOptions) {
		o.Timeout = dur
	}
}

func WithRequestLogging(enabled bool) InfinitiClientOptioner {
	return func(o *infinitiOptions) {
		o.RequestLogging = enabled
	}
}

// WithHttpClient replaces the session client. Timeout and request logging are
// ignored when it is set.
func WithHttpClient(c *http.Client) InfinitiClientOptioner {
	return func(o *infinitiOptions) {
		o.HttpClient = c
	}
}

type infinitiOptions struct {
	Timeout        time.Duration `json:"timeout"`
	RequestLogging bool          `json:"requestLogging"`
	HttpClient     *http.Client  `json:"-"`
}
