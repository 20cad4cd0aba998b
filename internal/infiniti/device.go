package infiniti

import (
	"context"
	"net/url"
)

type DeviceApiInterface interface {
	Devices(ctx context.Context) Result
	DeviceState(ctx context.Context, deviceName string) Result
	ReinitializeDevice(ctx context.Context, deviceName string) Result
}

type deviceApiClient struct {
	caller *Caller
}

var _ DeviceApiInterface = (*deviceApiClient)(nil)

func (c *deviceApiClient) getBaseUrl() string {
	return "api/devices"
}

func (c *deviceApiClient) Devices(ctx context.Context) Result {
	return c.caller.Get(ctx, c.getBaseUrl())
}

func (c *deviceApiClient) DeviceState(ctx context.Context, deviceName string) Result {
	return c.caller.Get(ctx, c.caller.BuildPath(c.getBaseUrl(), url.PathEscape(deviceName)))
}

func (c *deviceApiClient) ReinitializeDevice(ctx context.Context, deviceName string) Result {
	p := c.caller.BuildPathWithQuery(c.getBaseUrl(), url.PathEscape(deviceName), Query("command", "initialize"))
	return c.caller.Get(ctx, p)
}
