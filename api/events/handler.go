package eventsapi

import (
	"context"
	"time"

	"github.com/CE-Thesis-2023/infiniti/biz/service"
	"github.com/CE-Thesis-2023/infiniti/helper"
	custerror "github.com/CE-Thesis-2023/infiniti/internal/error"
	"github.com/CE-Thesis-2023/infiniti/internal/logger"
	"github.com/CE-Thesis-2023/infiniti/models/events"

	"github.com/bytedance/sonic"
	"github.com/eclipse/paho.golang/paho"
	"github.com/mitchellh/mapstructure"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

const defaultCommandTimeout = time.Second * 2

type StandardEventHandler struct {
	pool      *ants.Pool
	commands  *service.CommandService
	telemetry *service.TelemetryService
}

func NewStandardEventHandler(pool *ants.Pool, commands *service.CommandService, telemetry *service.TelemetryService) *StandardEventHandler {
	return &StandardEventHandler{
		pool:      pool,
		commands:  commands,
		telemetry: telemetry,
	}
}

// ReceiveRemoteCommands parses a CommandRequest and hands it to the worker
// pool. Only parse and submit failures are returned, command failures are
// logged by the worker.
func (h *StandardEventHandler) ReceiveRemoteCommands(p *paho.Publish) error {
	logger.SDebug("ReceiveRemoteCommands", zap.String("message", string(p.Payload)))

	var msg events.CommandRequest
	if err := sonic.Unmarshal(p.Payload, &msg); err != nil {
		logger.SError("ReceiveRemoteCommands: message parsing failed", zap.Error(err))
		return custerror.FormatInvalidArgument("ReceiveRemoteCommands: message parsing failed: %s", err)
	}

	if err := h.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout(msg.Info))
		defer func() {
			if ctx.Err() != nil {
				logger.SDebug("ReceiveRemoteCommands: context exceeded")
			}
			cancel()
		}()

		if err := h.Dispatch(ctx, &msg); err != nil {
			helper.EventHandlerErrorHandler(err)
			return
		}
		logger.SInfo("ReceiveRemoteCommands: command success",
			zap.String("type", string(msg.CommandType)))
	}); err != nil {
		logger.SError("ReceiveRemoteCommands: pool.Submit", zap.Error(err))
		return err
	}

	logger.SDebug("ReceiveRemoteCommands: goroutine assigned")
	return nil
}

// ReceiveRemoteMovementControl hands a pan-tilt move to the worker pool so a
// delayed stop does not hold up the router. The payload is a bare
// CommandPanTiltMoveInfo.
func (h *StandardEventHandler) ReceiveRemoteMovementControl(p *paho.Publish) error {
	logger.SDebug("ReceiveRemoteMovementControl", zap.String("message", string(p.Payload)))

	var msg events.CommandPanTiltMoveInfo
	if err := sonic.Unmarshal(p.Payload, &msg); err != nil {
		logger.SError("ReceiveRemoteMovementControl: message parsing failed", zap.Error(err))
		return custerror.FormatInvalidArgument("ReceiveRemoteMovementControl: message parsing failed: %s", err)
	}

	dur := defaultCommandTimeout
	if msg.StopAfterSeconds != nil && *msg.StopAfterSeconds > 0 {
		dur += time.Second * time.Duration(*msg.StopAfterSeconds)
	}

	if err := h.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), dur)
		defer func() {
			if ctx.Err() != nil {
				logger.SDebug("ReceiveRemoteMovementControl: context exceeded")
			}
			cancel()
		}()

		if err := h.commands.PanTiltMove(ctx, &msg); err != nil {
			helper.EventHandlerErrorHandler(err)
			return
		}
		logger.SDebug("ReceiveRemoteMovementControl: success")
	}); err != nil {
		logger.SError("ReceiveRemoteMovementControl: pool.Submit", zap.Error(err))
		return err
	}
	return nil
}

func (h *StandardEventHandler) Dispatch(ctx context.Context, msg *events.CommandRequest) error {
	biz := h.commands
	switch msg.CommandType {
	case events.Command_PanTiltMove:
		var info events.CommandPanTiltMoveInfo
		if err := decodeInfo(msg, &info); err != nil {
			return err
		}
		return biz.PanTiltMove(ctx, &info)
	case events.Command_PanTiltStop:
		return biz.PanTiltStop(ctx)
	case events.Command_PanTiltHome:
		return biz.PanTiltHome(ctx)
	case events.Command_PanTiltAbsolute:
		var info events.CommandPanTiltAbsoluteInfo
		if err := decodeInfo(msg, &info); err != nil {
			return err
		}
		return biz.PanTiltAbsolute(ctx, &info)
	case events.Command_Zoom:
		var info events.CommandZoomInfo
		if err := decodeInfo(msg, &info); err != nil {
			return err
		}
		return biz.Zoom(ctx, &info)
	case events.Command_GotoPreset:
		var info events.CommandGotoPresetInfo
		if err := decodeInfo(msg, &info); err != nil {
			return err
		}
		return biz.GotoPreset(ctx, &info)
	case events.Command_SetColor:
		var info events.CommandSetColorInfo
		if err := decodeInfo(msg, &info); err != nil {
			return err
		}
		return biz.SetColor(ctx, &info)
	case events.Command_Autofocus:
		return biz.Autofocus(ctx)
	case events.Command_GetTelemetry:
		if h.telemetry == nil {
			return custerror.FormatUnavailable("telemetry is not enabled")
		}
		return h.telemetry.Report(ctx)
	default:
		logger.SError("ReceiveRemoteCommands: unknown command type",
			zap.String("type", string(msg.CommandType)),
			zap.String("do", "skipping"))
		return custerror.FormatInvalidArgument("unknown command type %q", msg.CommandType)
	}
}

func decodeInfo(msg *events.CommandRequest, dest interface{}) error {
	if err := mapstructure.Decode(msg.Info, dest); err != nil {
		logger.SError("ReceiveRemoteCommands: info decoding failed",
			zap.String("type", string(msg.CommandType)),
			zap.Error(err))
		return custerror.FormatInvalidArgument("info of %s is malformed: %s", msg.CommandType, err)
	}
	return nil
}

// commandTimeout extends the default timeout by stopAfterSeconds so that a
// delayed stop still fits in the command context.
func commandTimeout(info map[string]interface{}) time.Duration {
	if v, ok := info["stopAfterSeconds"].(float64); ok && v > 0 {
		return defaultCommandTimeout + time.Duration(v*float64(time.Second))
	}
	return defaultCommandTimeout
}
