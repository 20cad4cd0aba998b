package infiniti

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	custhttp "github.com/CE-Thesis-2023/infiniti/internal/http"
	"github.com/CE-Thesis-2023/infiniti/internal/logger"

	"go.uber.org/zap"
)

// Result is the "data" member of a response envelope, decoded into maps,
// slices and scalars.
//
// A nil Result is the absent-result sentinel. It is returned when the request
// failed, when the response was not a {"data": ...} envelope, and also when the
// camera legitimately answered with a null or empty payload. These cases cannot
// be told apart from the Result alone; the cause of a failure is only logged.
type Result interface{}

// Caller owns the camera session and turns every call into one HTTP request.
type Caller struct {
	baseUrl    string
	username   string
	password   string
	httpClient *http.Client
}

func NewCaller(baseUrl string, username string, password string, httpClient *http.Client) *Caller {
	return &Caller{
		baseUrl:    strings.TrimRight(baseUrl, "/"),
		username:   username,
		password:   password,
		httpClient: httpClient,
	}
}

func (c *Caller) BaseUrl() string {
	return c.baseUrl
}

func (c *Caller) Get(ctx context.Context, path string, options ...custhttp.HttpRequestOptioner) Result {
	return c.send(ctx, http.MethodGet, path, options...)
}

func (c *Caller) Post(ctx context.Context, path string, body interface{}, options ...custhttp.HttpRequestOptioner) Result {
	options = append([]custhttp.HttpRequestOptioner{
		custhttp.WithContentType("application/json"),
		custhttp.WithJSONBody(body),
	}, options...)
	return c.send(ctx, http.MethodPost, path, options...)
}

// BuildPath joins the base URL, prefix and optional sub path with "/".
// An empty subPath leaves the prefix as the last segment.
func (c *Caller) BuildPath(prefix string, subPath string) string {
	p := fmt.Sprintf("%s/%s", c.baseUrl, strings.Trim(prefix, "/"))
	if len(subPath) == 0 {
		return p
	}
	return fmt.Sprintf("%s/%s", p, strings.TrimLeft(subPath, "/"))
}

func (c *Caller) BuildPathWithQuery(prefix string, subPath string, params QueryParams) string {
	p := c.BuildPath(prefix, subPath)
	if len(params) == 0 {
		return p
	}
	return fmt.Sprintf("%s?%s", p, params.Encode())
}

// Close releases idle connections held by the session.
func (c *Caller) Close() {
	c.httpClient.CloseIdleConnections()
}

func (c *Caller) resolve(path string) string {
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}
	return fmt.Sprintf("%s/%s", c.baseUrl, strings.TrimLeft(path, "/"))
}

func (c *Caller) send(ctx context.Context, method string, path string, options ...custhttp.HttpRequestOptioner) Result {
	target := c.resolve(path)

	reqOptions := []custhttp.HttpRequestOptioner{
		custhttp.WithBasicAuth(c.username, c.password),
		custhttp.WithHeader("Accept", "application/json"),
	}
	reqOptions = append(reqOptions, options...)

	request, err := custhttp.NewHttpRequest(ctx, target, method, reqOptions...)
	if err != nil {
		logger.SError("failed to build camera request",
			zap.String("method", method),
			zap.String("path", target),
			zap.Error(err))
		return nil
	}

	resp, err := c.httpClient.Do(request)
	if err != nil {
		logger.SError("camera request failed",
			zap.String("method", method),
			zap.String("path", target),
			zap.Error(err))
		return nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		logger.SError("camera request returned error status",
			zap.String("method", method),
			zap.String("path", target),
			zap.Int("status", resp.StatusCode))
		return nil
	}

	if resp.StatusCode == http.StatusNoContent {
		resp.Body.Close()
		logger.SDebug("camera response has no content",
			zap.String("method", method),
			zap.String("path", target))
		return nil
	}

	var parsedResp interface{}
	if err := custhttp.JSONResponse(resp, &parsedResp); err != nil {
		logger.SError("camera response is not valid JSON",
			zap.String("method", method),
			zap.String("path", target),
			zap.Int("status", resp.StatusCode),
			zap.Error(err))
		return nil
	}

	envelope, ok := parsedResp.(map[string]interface{})
	if !ok {
		logger.SWarn("unexpected response envelope",
			zap.String("method", method),
			zap.String("path", target),
			logger.Json("response", parsedResp))
		return nil
	}
	data, ok := envelope["data"]
	if !ok {
		logger.SWarn("unexpected response envelope",
			zap.String("method", method),
			zap.String("path", target),
			logger.Json("response", parsedResp))
		return nil
	}
	return data
}

type QueryParam struct {
	Key   string
	Value interface{}
}

// QueryParams keeps insertion order, which is the order the camera receives.
type QueryParams []QueryParam

func Query(key string, value interface{}) QueryParams {
	return QueryParams{{Key: key, Value: value}}
}

func (q QueryParams) With(key string, value interface{}) QueryParams {
	out := make(QueryParams, len(q), len(q)+1)
	copy(out, q)
	return append(out, QueryParam{Key: key, Value: value})
}

// Encode joins key=value pairs with "&" in insertion order. Keys and values
// are percent-encoded, so plain tokens and numbers pass through unchanged.
func (q QueryParams) Encode() string {
	pairs := make([]string, 0, len(q))
	for _, p := range q {
		pairs = append(pairs, fmt.Sprintf("%s=%s",
			escapeQuery(p.Key),
			escapeQuery(formatQueryValue(p.Value))))
	}
	return strings.Join(pairs, "&")
}

// escapeQuery encodes spaces as %20 rather than "+".
func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func formatQueryValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		// the firmware has always been sent capitalized booleans
		if v {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
