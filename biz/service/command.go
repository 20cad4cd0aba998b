package service

import (
	"context"
	"time"

	custerror "github.com/CE-Thesis-2023/infiniti/internal/error"
	"github.com/CE-Thesis-2023/infiniti/internal/infiniti"
	"github.com/CE-Thesis-2023/infiniti/internal/logger"
	"github.com/CE-Thesis-2023/infiniti/models/events"

	"go.uber.org/zap"
)

// CommandService translates remote and local control requests into camera
// calls.
type CommandService struct {
	client infiniti.Client
}

func NewCommandService(client infiniti.Client) *CommandService {
	return &CommandService{
		client: client,
	}
}

func (s *CommandService) SystemStatus(ctx context.Context) (infiniti.Result, error) {
	return requireResult(s.client.System().Status(ctx))
}

func (s *CommandService) Versions(ctx context.Context) (infiniti.Result, error) {
	return requireResult(s.client.System().Versions(ctx))
}

func (s *CommandService) PanTiltPosition(ctx context.Context) (*infiniti.PanTiltPosition, error) {
	position := s.client.PanTilt().Position(ctx)
	if position == nil {
		return nil, errNoResult()
	}
	return position, nil
}

func (s *CommandService) LensPosition(ctx context.Context) (*infiniti.LensPosition, error) {
	position := s.client.Visible().Position(ctx)
	if position == nil {
		return nil, errNoResult()
	}
	return position, nil
}

// PanTiltMove starts a continuous move and, when StopAfterSeconds is set,
// blocks until it is time to stop the head again.
func (s *CommandService) PanTiltMove(ctx context.Context, req *events.CommandPanTiltMoveInfo) error {
	logger.SDebug("requested pan-tilt move",
		zap.Int("pan", req.Pan),
		zap.Int("tilt", req.Tilt))

	if req.StopAfterSeconds != nil && *req.StopAfterSeconds < 0 {
		return custerror.FormatInvalidArgument("stopAfterSeconds must not be negative, got %d", *req.StopAfterSeconds)
	}

	s.client.PanTilt().ContinuousMove(ctx, req.Pan, req.Tilt)
	if req.StopAfterSeconds == nil || (req.Pan == 0 && req.Tilt == 0) {
		return nil
	}

	err := waitFor(ctx, time.Duration(*req.StopAfterSeconds)*time.Second)
	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.client.PanTilt().Stop(stopCtx)

	logger.SDebug("pan-tilt move stopped",
		zap.Intp("stopAfterSeconds", req.StopAfterSeconds),
		zap.Error(err))
	return err
}

func (s *CommandService) PanTiltStop(ctx context.Context) error {
	s.client.PanTilt().Stop(ctx)
	return nil
}

func (s *CommandService) PanTiltHome(ctx context.Context) error {
	s.client.PanTilt().Home(ctx)
	return nil
}

func (s *CommandService) PanTiltAbsolute(ctx context.Context, req *events.CommandPanTiltAbsoluteInfo) error {
	logger.SDebug("requested pan-tilt absolute position",
		zap.Int("pan", req.Pan),
		zap.Int("tilt", req.Tilt))
	s.client.PanTilt().SetPosition(ctx, req.Pan, req.Tilt)
	return nil
}

// Zoom zooms continuously in the direction given by the sign of Speed and
// stops the lens after StopAfterSeconds when set.
func (s *CommandService) Zoom(ctx context.Context, req *events.CommandZoomInfo) error {
	logger.SDebug("requested zoom", zap.Int("speed", req.Speed))

	if req.StopAfterSeconds != nil && *req.StopAfterSeconds < 0 {
		return custerror.FormatInvalidArgument("stopAfterSeconds must not be negative, got %d", *req.StopAfterSeconds)
	}

	if !s.client.Visible().ContinuousZoom(ctx, req.Speed) {
		return custerror.FormatUnavailable("camera rejected zoom command")
	}
	if req.StopAfterSeconds == nil || req.Speed == 0 {
		return nil
	}

	err := waitFor(ctx, time.Duration(*req.StopAfterSeconds)*time.Second)
	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.client.Visible().StopLens(stopCtx)
	return err
}

func (s *CommandService) GotoPreset(ctx context.Context, req *events.CommandGotoPresetInfo) error {
	if req.PresetId < 0 {
		return custerror.FormatInvalidArgument("preset id must not be negative, got %d", req.PresetId)
	}
	logger.SDebug("requested goto preset", zap.Int("presetId", req.PresetId))
	s.client.System().GotoPreset(ctx, req.PresetId)
	return nil
}

func (s *CommandService) SetColor(ctx context.Context, req *events.CommandSetColorInfo) error {
	ok, err := s.client.Visible().SetColor(ctx, infiniti.ColorMode(req.Mode))
	if err != nil {
		return err
	}
	if !ok {
		return custerror.FormatUnavailable("camera rejected color mode %q", req.Mode)
	}
	return nil
}

func (s *CommandService) Autofocus(ctx context.Context) error {
	if !s.client.Visible().Autofocus(ctx) {
		return custerror.FormatUnavailable("camera rejected autofocus command")
	}
	return nil
}

func requireResult(result infiniti.Result) (infiniti.Result, error) {
	if result == nil {
		return nil, errNoResult()
	}
	return result, nil
}

func errNoResult() error {
	return custerror.FormatUnavailable("camera returned no result")
}

func waitFor(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
