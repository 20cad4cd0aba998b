package infiniti

import (
	"context"
	"net/url"

	custerror "github.com/CE-Thesis-2023/infiniti/internal/error"
	custhttp "github.com/CE-Thesis-2023/infiniti/internal/http"
	"github.com/CE-Thesis-2023/infiniti/internal/logger"

	"go.uber.org/zap"
)

// Client is the single entry point to one camera. All endpoint groups share
// the same Caller and therefore the same session.
type Client interface {
	Caller() *Caller
	System() SystemApiInterface
	Device() DeviceApiInterface
	PanTilt() PanTiltApiInterface
	Visible() VisibleLensApiInterface
	Close()
}

type client struct {
	caller  *Caller
	system  *systemApiClient
	device  *deviceApiClient
	pantilt *panTiltApiClient
	visible *visibleLensApiClient
}

// NewClient builds a facade over one session. Basic auth is sent on every
// request unless both username and password are empty.
func NewClient(baseUrl string, username string, password string, options ...InfinitiClientOptioner) (Client, error) {
	opts := infinitiOptions{}
	for _, o := range options {
		o(&opts)
	}

	u, err := url.Parse(baseUrl)
	if err != nil || len(u.Scheme) == 0 || len(u.Host) == 0 {
		logger.SError("failed to parse camera base URL",
			zap.String("baseUrl", baseUrl),
			zap.Error(err))
		return nil, custerror.FormatInvalidArgument("invalid camera base URL %q", baseUrl)
	}

	httpClient := opts.HttpClient
	if httpClient == nil {
		httpClient = custhttp.NewHttpClient(
			context.Background(),
			custhttp.WithTimeout(opts.Timeout),
			custhttp.WithRequestLogging(opts.RequestLogging))
	}

	caller := NewCaller(baseUrl, username, password, httpClient)
	return &client{
		caller:  caller,
		system:  &systemApiClient{caller: caller},
		device:  &deviceApiClient{caller: caller},
		pantilt: &panTiltApiClient{caller: caller},
		visible: &visibleLensApiClient{caller: caller},
	}, nil
}

func (c *client) Caller() *Caller {
	return c.caller
}

func (c *client) System() SystemApiInterface {
	return c.system
}

func (c *client) Device() DeviceApiInterface {
	return c.device
}

func (c *client) PanTilt() PanTiltApiInterface {
	return c.pantilt
}

func (c *client) Visible() VisibleLensApiInterface {
	return c.visible
}

func (c *client) Close() {
	c.caller.Close()
}
