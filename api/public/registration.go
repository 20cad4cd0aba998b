package publicapi

import "github.com/gofiber/fiber/v2"

func ServiceRegistration() func(app *fiber.App) {
	return func(app *fiber.App) {
		cameraGroup := app.Group("/api/camera")

		cameraGroup.Get("/system/status", GETSystemStatus)
		cameraGroup.Get("/system/versions", GETSystemVersions)

		cameraGroup.Get("/pantilt/position", GETPanTiltPosition)
		cameraGroup.Post("/pantilt/move", POSTPanTiltMove)
		cameraGroup.Post("/pantilt/stop", POSTPanTiltStop)

		cameraGroup.Get("/visible/position", GETVisiblePosition)
		cameraGroup.Post("/visible/zoom", POSTVisibleZoom)
		cameraGroup.Post("/visible/color", POSTVisibleColor)

		cameraGroup.Post("/presets/:id/goto", POSTGotoPreset)

		app.Get("/healthcheck", GETHealthcheck)
	}
}
