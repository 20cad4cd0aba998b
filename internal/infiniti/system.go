package infiniti

import (
	"context"
	"fmt"
	"net/url"
)

type SystemApiInterface interface {
	Status(ctx context.Context) Result
	Versions(ctx context.Context) Result
	Info(ctx context.Context) Result
	Time(ctx context.Context) Result
	SetTime(ctx context.Context, timestamp int64) Result
	Ethernet(ctx context.Context) Result
	Accounts(ctx context.Context) Result
	Account(ctx context.Context, name string) Result
	RestartHardware(ctx context.Context) Result
	RestartSoftware(ctx context.Context) Result
	Presets(ctx context.Context) Result
	Preset(ctx context.Context, presetId int) Result
	DeletePreset(ctx context.Context, presetId int) Result
	GotoPreset(ctx context.Context, presetId int) Result
	StopPresetMove(ctx context.Context) Result
	DeleteAllPresets(ctx context.Context) Result
}

type systemApiClient struct {
	caller *Caller
}

var _ SystemApiInterface = (*systemApiClient)(nil)

func (c *systemApiClient) getBaseUrl() string {
	return "api/system"
}

func (c *systemApiClient) getPresetUrl(presetId int) string {
	return fmt.Sprintf("presets/%d", presetId)
}

func (c *systemApiClient) Status(ctx context.Context) Result {
	return c.caller.Get(ctx, c.caller.BuildPath(c.getBaseUrl(), ""))
}

func (c *systemApiClient) Versions(ctx context.Context) Result {
	return c.caller.Get(ctx, c.caller.BuildPath(c.getBaseUrl(), "versions"))
}

func (c *systemApiClient) Info(ctx context.Context) Result {
	return c.caller.Get(ctx, c.caller.BuildPath(c.getBaseUrl(), "info"))
}

func (c *systemApiClient) Time(ctx context.Context) Result {
	return c.caller.Get(ctx, c.caller.BuildPath(c.getBaseUrl(), "time"))
}

type setTimeRequest struct {
	Timestamp int64 `json:"timestamp"`
}

// SetTime sets the camera clock to a Unix timestamp in seconds.
func (c *systemApiClient) SetTime(ctx context.Context, timestamp int64) Result {
	return c.caller.Post(ctx,
		c.caller.BuildPath(c.getBaseUrl(), "time"),
		&setTimeRequest{Timestamp: timestamp})
}

func (c *systemApiClient) Ethernet(ctx context.Context) Result {
	return c.caller.Get(ctx, c.caller.BuildPath(c.getBaseUrl(), "ethernet"))
}

func (c *systemApiClient) Accounts(ctx context.Context) Result {
	return c.caller.Get(ctx, c.caller.BuildPath(c.getBaseUrl(), "accounts"))
}

func (c *systemApiClient) Account(ctx context.Context, name string) Result {
	return c.caller.Get(ctx, c.caller.BuildPath(c.getBaseUrl(), fmt.Sprintf("accounts/%s", url.PathEscape(name))))
}

func (c *systemApiClient) RestartHardware(ctx context.Context) Result {
	p := c.caller.BuildPathWithQuery(c.getBaseUrl(), "", Query("command", "hardwareRestart"))
	return c.caller.Get(ctx, p)
}

func (c *systemApiClient) RestartSoftware(ctx context.Context) Result {
	p := c.caller.BuildPathWithQuery(c.getBaseUrl(), "", Query("command", "softwareRestart"))
	return c.caller.Get(ctx, p)
}

func (c *systemApiClient) Presets(ctx context.Context) Result {
	return c.caller.Get(ctx, c.caller.BuildPath(c.getBaseUrl(), "presets"))
}

func (c *systemApiClient) Preset(ctx context.Context, presetId int) Result {
	return c.caller.Get(ctx, c.caller.BuildPath(c.getBaseUrl(), c.getPresetUrl(presetId)))
}

func (c *systemApiClient) DeletePreset(ctx context.Context, presetId int) Result {
	p := c.caller.BuildPathWithQuery(c.getBaseUrl(), c.getPresetUrl(presetId), Query("action", "clear"))
	return c.caller.Get(ctx, p)
}

func (c *systemApiClient) GotoPreset(ctx context.Context, presetId int) Result {
	p := c.caller.BuildPathWithQuery(c.getBaseUrl(), c.getPresetUrl(presetId), Query("action", "goto"))
	return c.caller.Get(ctx, p)
}

// StopPresetMove interrupts a GotoPreset still in progress.
func (c *systemApiClient) StopPresetMove(ctx context.Context) Result {
	p := c.caller.BuildPathWithQuery(c.getBaseUrl(), "presets", Query("command", "stop"))
	return c.caller.Get(ctx, p)
}

func (c *systemApiClient) DeleteAllPresets(ctx context.Context) Result {
	p := c.caller.BuildPathWithQuery(c.getBaseUrl(), "presets", Query("command", "clearAll"))
	return c.caller.Get(ctx, p)
}
