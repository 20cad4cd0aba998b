package infiniti

import (
	"context"

	"github.com/CE-Thesis-2023/infiniti/internal/logger"

	"go.uber.org/zap"
)

type PanTiltApiInterface interface {
	Status(ctx context.Context) Result
	Position(ctx context.Context) *PanTiltPosition
	SetPosition(ctx context.Context, pan int, tilt int) Result
	RelativeMove(ctx context.Context, direction Direction, speed MoveSpeed) (Result, error)
	ContinuousMove(ctx context.Context, panSpeed int, tiltSpeed int) Result
	Stop(ctx context.Context) Result
	Home(ctx context.Context) Result
	Config(ctx context.Context) Result
	GyroStatus(ctx context.Context) Result
	SetGyroStatus(ctx context.Context, enable bool) Result
	EthernetConfig(ctx context.Context) Result
}

type panTiltApiClient struct {
	caller *Caller
}

var _ PanTiltApiInterface = (*panTiltApiClient)(nil)

func (c *panTiltApiClient) getBaseUrl() string {
	return "api/devices/pantilt"
}

func (c *panTiltApiClient) command(ctx context.Context, params QueryParams) Result {
	return c.caller.Get(ctx, c.caller.BuildPathWithQuery(c.getBaseUrl(), "", params))
}

func (c *panTiltApiClient) Status(ctx context.Context) Result {
	return c.caller.Get(ctx, c.caller.BuildPath(c.getBaseUrl(), ""))
}

// Position returns the current pan and tilt angles, or nil when the camera
// gave no usable answer.
func (c *panTiltApiClient) Position(ctx context.Context) *PanTiltPosition {
	data := c.caller.Get(ctx, c.caller.BuildPath(c.getBaseUrl(), "position"))
	if data == nil {
		return nil
	}

	var position PanTiltPosition
	if !decodeFields(data, &position, "pan", "tilt") {
		logger.SWarn("pan-tilt position payload is missing fields",
			logger.Json("payload", data))
		return nil
	}
	return &position
}

type panTiltPositionRequest struct {
	Pan  int `json:"pan"`
	Tilt int `json:"tilt"`
}

func (c *panTiltApiClient) SetPosition(ctx context.Context, pan int, tilt int) Result {
	return c.caller.Post(ctx,
		c.caller.BuildPath(c.getBaseUrl(), "position"),
		&panTiltPositionRequest{Pan: pan, Tilt: tilt})
}

func (c *panTiltApiClient) RelativeMove(ctx context.Context, direction Direction, speed MoveSpeed) (Result, error) {
	if err := direction.Validate(); err != nil {
		return nil, err
	}
	return c.move(ctx, direction, speed), nil
}

func (c *panTiltApiClient) move(ctx context.Context, direction Direction, speed MoveSpeed) Result {
	params := Query("command", "move").
		With("direction", direction)
	return c.command(ctx, speed.appendTo(params))
}

// ContinuousMove turns signed axis speeds into one move command. Positive pan
// is right and positive tilt is up. Two zero speeds stop the head instead.
func (c *panTiltApiClient) ContinuousMove(ctx context.Context, panSpeed int, tiltSpeed int) Result {
	direction := continuousDirection(panSpeed, tiltSpeed)
	if len(direction) == 0 {
		return c.Stop(ctx)
	}

	logger.SDebug("pan-tilt continuous move",
		zap.String("direction", string(direction)),
		zap.Int("panSpeed", panSpeed),
		zap.Int("tiltSpeed", tiltSpeed))

	var speed MoveSpeed
	if panSpeed == 0 || tiltSpeed == 0 {
		speed = SharedSpeed(max(abs(panSpeed), abs(tiltSpeed)))
	} else {
		speed = AxisSpeeds(abs(panSpeed), abs(tiltSpeed))
	}
	return c.move(ctx, direction, speed)
}

func continuousDirection(panSpeed int, tiltSpeed int) Direction {
	var direction string
	switch {
	case tiltSpeed > 0:
		direction = "up"
	case tiltSpeed < 0:
		direction = "down"
	}
	switch {
	case panSpeed > 0:
		direction += "right"
	case panSpeed < 0:
		direction += "left"
	}
	return Direction(direction)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (c *panTiltApiClient) Stop(ctx context.Context) Result {
	return c.command(ctx, Query("command", "stop"))
}

func (c *panTiltApiClient) Home(ctx context.Context) Result {
	return c.command(ctx, Query("command", "home"))
}

func (c *panTiltApiClient) Config(ctx context.Context) Result {
	return c.caller.Get(ctx, c.caller.BuildPath(c.getBaseUrl(), "config"))
}

func (c *panTiltApiClient) GyroStatus(ctx context.Context) Result {
	return c.caller.Get(ctx, c.caller.BuildPath(c.getBaseUrl(), "gyro"))
}

func (c *panTiltApiClient) SetGyroStatus(ctx context.Context, enable bool) Result {
	p := c.caller.BuildPathWithQuery(c.getBaseUrl(), "gyro", Query("enable", enable))
	return c.caller.Get(ctx, p)
}

func (c *panTiltApiClient) EthernetConfig(ctx context.Context) Result {
	return c.caller.Get(ctx, c.caller.BuildPath(c.getBaseUrl(), "ethernet"))
}
