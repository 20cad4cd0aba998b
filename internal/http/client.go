package custhttp

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/CE-Thesis-2023/infiniti/internal/logger"

	"github.com/bytedance/sonic"
	"github.com/motemen/go-loghttp"
	"go.uber.org/zap"
)

type Options struct {
	timeout        time.Duration
	requestLogging bool
	transport      http.RoundTripper
}

type ClientOptioner func(o *Options)

func WithTimeout(dur time.Duration) ClientOptioner {
	return func(o *Options) {
		o.timeout = dur
	}
}

// WithRequestLogging logs every request line and response status at debug level.
func WithRequestLogging(enabled bool) ClientOptioner {
	return func(o *Options) {
		o.requestLogging = enabled
	}
}

func WithTransport(t http.RoundTripper) ClientOptioner {
	return func(o *Options) {
		o.transport = t
	}
}

func NewHttpClient(ctx context.Context, opts ...ClientOptioner) *http.Client {
	options := &Options{}
	for _, o := range opts {
		o(options)
	}

	transport := options.transport
	if transport == nil {
		transport = http.DefaultTransport.(*http.Transport).Clone()
	}
	if options.requestLogging {
		transport = &loghttp.Transport{
			Transport: transport,
			LogRequest: func(req *http.Request) {
				logger.SDebug("HTTP request",
					zap.String("method", req.Method),
					zap.String("url", req.URL.Redacted()))
			},
			LogResponse: func(resp *http.Response) {
				logger.SDebug("HTTP response",
					zap.String("method", resp.Request.Method),
					zap.String("url", resp.Request.URL.Redacted()),
					zap.Int("status", resp.StatusCode))
			},
		}
	}

	client := &http.Client{
		Timeout:   options.timeout,
		Transport: transport,
	}
	return client
}

type HttpRequestOptions struct {
	headers  map[string]string
	body     []byte
	bodyErr  error
	username string
	password string
}

// hasBasicAuth reports whether either half of the credential pair was supplied.
func (o *HttpRequestOptions) hasBasicAuth() bool {
	return o.username != "" || o.password != ""
}

type HttpRequestOptioner func(o *HttpRequestOptions)

func WithHeader(key string, value string) HttpRequestOptioner {
	return func(o *HttpRequestOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[key] = value
	}
}

func WithHeaders(headers map[string]string) HttpRequestOptioner {
	return func(o *HttpRequestOptions) {
		for key, value := range headers {
			WithHeader(key, value)(o)
		}
	}
}

func WithJSONBody(body interface{}) HttpRequestOptioner {
	return func(o *HttpRequestOptions) {
		bodyBytes, err := sonic.Marshal(body)
		if err != nil {
			logger.SDebug("failed to marshal JSON body",
				zap.Error(err))
			o.bodyErr = err
			return
		}
		o.body = bodyBytes
	}
}

func WithBasicAuth(username, password string) HttpRequestOptioner {
	return func(o *HttpRequestOptions) {
		o.username = username
		o.password = password
	}
}

func WithContentType(contentType string) HttpRequestOptioner {
	return func(o *HttpRequestOptions) {
		WithHeader("Content-Type", contentType)(o)
	}
}

func NewHttpRequest(ctx context.Context, url string, method string, options ...HttpRequestOptioner) (*http.Request, error) {
	reqOptions := &HttpRequestOptions{}
	for _, o := range options {
		o(reqOptions)
	}
	if reqOptions.bodyErr != nil {
		return nil, reqOptions.bodyErr
	}

	var bodyReader io.Reader
	if reqOptions.body != nil {
		bodyReader = bytes.NewReader(reqOptions.body)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		method,
		url,
		bodyReader)
	if err != nil {
		logger.SDebug("unable to create new http request",
			zap.Error(err))
		return nil, err
	}

	if reqOptions.hasBasicAuth() {
		req.SetBasicAuth(reqOptions.username, reqOptions.password)
	}
	for key, value := range reqOptions.headers {
		req.Header.Set(key, value)
	}
	return req, nil
}

func JSONResponse(resp *http.Response, dest interface{}) error {
	body := resp.Body
	defer body.Close()

	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		logger.SDebug("failed to read HTTP response body",
			zap.Error(err))
		return err
	}

	if err := sonic.Unmarshal(bodyBytes, dest); err != nil {
		logger.SDebug("failed to unmarshal JSON response",
			zap.Error(err))
		return err
	}

	return nil
}
