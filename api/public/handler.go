package publicapi

import (
	"github.com/CE-Thesis-2023/infiniti/biz/service"
	custerror "github.com/CE-Thesis-2023/infiniti/internal/error"
	"github.com/CE-Thesis-2023/infiniti/internal/logger"
	"github.com/CE-Thesis-2023/infiniti/models/events"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func GETHealthcheck(ctx *fiber.Ctx) error {
	return ctx.SendStatus(fiber.StatusOK)
}

func GETSystemStatus(ctx *fiber.Ctx) error {
	resp, err := service.
		GetCommandService().
		SystemStatus(ctx.Context())
	if err != nil {
		return err
	}
	logger.SDebug("GETSystemStatus", logger.Json("response", resp))
	return ctx.JSON(resp)
}

func GETSystemVersions(ctx *fiber.Ctx) error {
	resp, err := service.
		GetCommandService().
		Versions(ctx.Context())
	if err != nil {
		return err
	}
	logger.SDebug("GETSystemVersions", logger.Json("response", resp))
	return ctx.JSON(resp)
}

func GETPanTiltPosition(ctx *fiber.Ctx) error {
	resp, err := service.
		GetCommandService().
		PanTiltPosition(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(resp)
}

func POSTPanTiltMove(ctx *fiber.Ctx) error {
	var req events.CommandPanTiltMoveInfo
	if err := ctx.BodyParser(&req); err != nil {
		logger.SError("POSTPanTiltMove: parse request error",
			zap.Error(err))
		return custerror.FormatInvalidArgument("malformed move request: %s", err)
	}

	if err := service.
		GetCommandService().
		PanTiltMove(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func POSTPanTiltStop(ctx *fiber.Ctx) error {
	if err := service.
		GetCommandService().
		PanTiltStop(ctx.Context()); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func GETVisiblePosition(ctx *fiber.Ctx) error {
	resp, err := service.
		GetCommandService().
		LensPosition(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(resp)
}

func POSTVisibleZoom(ctx *fiber.Ctx) error {
	var req events.CommandZoomInfo
	if err := ctx.BodyParser(&req); err != nil {
		logger.SError("POSTVisibleZoom: parse request error",
			zap.Error(err))
		return custerror.FormatInvalidArgument("malformed zoom request: %s", err)
	}

	if err := service.
		GetCommandService().
		Zoom(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func POSTVisibleColor(ctx *fiber.Ctx) error {
	var req events.CommandSetColorInfo
	if err := ctx.BodyParser(&req); err != nil {
		logger.SError("POSTVisibleColor: parse request error",
			zap.Error(err))
		return custerror.FormatInvalidArgument("malformed color request: %s", err)
	}

	if err := service.
		GetCommandService().
		SetColor(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func POSTGotoPreset(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return custerror.FormatInvalidArgument("preset id must be an integer")
	}

	if err := service.
		GetCommandService().
		GotoPreset(ctx.Context(), &events.CommandGotoPresetInfo{PresetId: id}); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
