package infiniti

import (
	"context"

	"github.com/CE-Thesis-2023/infiniti/internal/logger"
)

// VisibleLensApiInterface controls the daylight camera lens.
//
// Setters returning a bool follow the firmware convention: an accepted
// command answers with an empty envelope, so true means the Result was nil and
// false means the camera sent a payload back. A failed request also yields
// nil and therefore true.
type VisibleLensApiInterface interface {
	Position(ctx context.Context) *LensPosition
	SetZoom(ctx context.Context, zoom int) bool
	SetPosition(ctx context.Context, zoom int, focus int) bool
	SetColor(ctx context.Context, mode ColorMode) (bool, error)
	RunBackfocus(ctx context.Context) bool
	SetDigitalZoom(ctx context.Context, mode string) bool
	SetDigitalStabilization(ctx context.Context, enable bool) bool
	MoveLens(ctx context.Context, move LensMove) (bool, error)
	ZoomTele(ctx context.Context) bool
	ZoomWide(ctx context.Context) bool
	FocusFar(ctx context.Context) bool
	FocusNear(ctx context.Context) bool
	ContinuousZoom(ctx context.Context, speed int) bool
	StopLens(ctx context.Context) bool
	SetFogFilter(ctx context.Context, state bool) bool
	SetAutofocusMode(ctx context.Context, enable bool) bool
	Autofocus(ctx context.Context) bool
	SetHeatwaveIntensity(ctx context.Context, mode HeatwaveIntensity) (bool, error)
	Config(ctx context.Context) Result
	SetDefaultConfig(ctx context.Context) Result
}

type visibleLensApiClient struct {
	caller *Caller
}

var _ VisibleLensApiInterface = (*visibleLensApiClient)(nil)

func (c *visibleLensApiClient) getBaseUrl() string {
	return "api/devices/visible"
}

func accepted(result Result) bool {
	return result == nil
}

func (c *visibleLensApiClient) command(ctx context.Context, params QueryParams) bool {
	return accepted(c.caller.Get(ctx, c.caller.BuildPathWithQuery(c.getBaseUrl(), "", params)))
}

func (c *visibleLensApiClient) Position(ctx context.Context) *LensPosition {
	data := c.caller.Get(ctx, c.caller.BuildPath(c.getBaseUrl(), "position"))
	if data == nil {
		return nil
	}

	var position LensPosition
	if !decodeFields(data, &position, "zoom", "focus") {
		logger.SWarn("visible lens position payload is missing fields",
			logger.Json("payload", data))
		return nil
	}
	return &position
}

type lensZoomRequest struct {
	Zoom int `json:"zoom"`
}

func (c *visibleLensApiClient) SetZoom(ctx context.Context, zoom int) bool {
	return accepted(c.caller.Post(ctx,
		c.caller.BuildPath(c.getBaseUrl(), "position"),
		&lensZoomRequest{Zoom: zoom}))
}

type lensPositionRequest struct {
	Zoom  int `json:"zoom"`
	Focus int `json:"focus"`
}

func (c *visibleLensApiClient) SetPosition(ctx context.Context, zoom int, focus int) bool {
	return accepted(c.caller.Post(ctx,
		c.caller.BuildPath(c.getBaseUrl(), "position"),
		&lensPositionRequest{Zoom: zoom, Focus: focus}))
}

func (c *visibleLensApiClient) SetColor(ctx context.Context, mode ColorMode) (bool, error) {
	if err := mode.Validate(); err != nil {
		return false, err
	}
	return c.command(ctx, Query("command", mode)), nil
}

func (c *visibleLensApiClient) RunBackfocus(ctx context.Context) bool {
	return c.command(ctx, Query("command", "backfocus"))
}

func (c *visibleLensApiClient) SetDigitalZoom(ctx context.Context, mode string) bool {
	// "digitialZoom" is the command name the firmware expects
	return c.command(ctx, Query("command", "digitialZoom").With("mode", mode))
}

func (c *visibleLensApiClient) SetDigitalStabilization(ctx context.Context, enable bool) bool {
	return c.command(ctx, Query("command", "stabilization").With("enable", enable))
}

func (c *visibleLensApiClient) MoveLens(ctx context.Context, move LensMove) (bool, error) {
	if err := move.Validate(); err != nil {
		return false, err
	}
	return c.command(ctx, Query("command", move)), nil
}

func (c *visibleLensApiClient) ZoomTele(ctx context.Context) bool {
	return c.command(ctx, Query("command", LensMoveZoomTele))
}

func (c *visibleLensApiClient) ZoomWide(ctx context.Context) bool {
	return c.command(ctx, Query("command", LensMoveZoomWide))
}

func (c *visibleLensApiClient) FocusFar(ctx context.Context) bool {
	return c.command(ctx, Query("command", LensMoveFocusFar))
}

func (c *visibleLensApiClient) FocusNear(ctx context.Context) bool {
	return c.command(ctx, Query("command", LensMoveFocusNear))
}

// ContinuousZoom zooms in for a positive speed, out for a negative one and
// stops the lens at zero. Only the sign of speed is used.
func (c *visibleLensApiClient) ContinuousZoom(ctx context.Context, speed int) bool {
	switch {
	case speed > 0:
		return c.ZoomTele(ctx)
	case speed < 0:
		return c.ZoomWide(ctx)
	default:
		return c.StopLens(ctx)
	}
}

func (c *visibleLensApiClient) StopLens(ctx context.Context) bool {
	return c.command(ctx, Query("command", "stop"))
}

func (c *visibleLensApiClient) SetFogFilter(ctx context.Context, state bool) bool {
	return c.command(ctx, Query("command", "fogFilter").With("state", state))
}

func (c *visibleLensApiClient) SetAutofocusMode(ctx context.Context, enable bool) bool {
	return c.command(ctx, Query("command", "zoomTriggerAutofocus").With("enable", enable))
}

func (c *visibleLensApiClient) Autofocus(ctx context.Context) bool {
	return c.command(ctx, Query("command", "autofocus"))
}

func (c *visibleLensApiClient) SetHeatwaveIntensity(ctx context.Context, mode HeatwaveIntensity) (bool, error) {
	if err := mode.Validate(); err != nil {
		return false, err
	}
	return c.command(ctx, Query("command", "heatwaveIntensityMode").With("mode", mode)), nil
}

func (c *visibleLensApiClient) Config(ctx context.Context) Result {
	return c.caller.Get(ctx, c.caller.BuildPath(c.getBaseUrl(), "config"))
}

type LensConfig struct {
	Dnr2D          int    `json:"2dnr"`
	Dnr3D          int    `json:"3dnr"`
	AutofocusMode  string `json:"autofocusMode"`
	ColorMode      string `json:"colorMode"`
	FocusMode      string `json:"focusMode"`
	FocusSpeed     int    `json:"focusSpeed"`
	FogFilter      bool   `json:"fogFilter"`
	Gamma          int    `json:"gamma"`
	HeatWaveMode   string `json:"heatWaveMode"`
	ProcessingMode string `json:"processingMode"`
	Sharpening     int    `json:"sharpening"`
	Stabilizing    bool   `json:"stabilizing"`
	ZoomSpeed      int    `json:"zoomSpeed"`
}

func DefaultLensConfig() LensConfig {
	return LensConfig{
		Dnr2D:          55,
		Dnr3D:          55,
		AutofocusMode:  "ZOOM_TRIGGER",
		ColorMode:      "AUTO",
		FocusMode:      "DISABLED",
		FocusSpeed:     4,
		FogFilter:      false,
		Gamma:          8,
		HeatWaveMode:   "OFF",
		ProcessingMode: "WDR",
		Sharpening:     5,
		Stabilizing:    true,
		ZoomSpeed:      1,
	}
}

// SetDefaultConfig resets the lens configuration to DefaultLensConfig.
func (c *visibleLensApiClient) SetDefaultConfig(ctx context.Context) Result {
	config := DefaultLensConfig()
	return c.caller.Post(ctx, c.caller.BuildPath(c.getBaseUrl(), "config"), &config)
}
