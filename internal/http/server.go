package custhttp

import (
	"context"
	"errors"
	"fmt"

	"github.com/CE-Thesis-2023/infiniti/internal/configs"
	custerror "github.com/CE-Thesis-2023/infiniti/internal/error"
	"github.com/CE-Thesis-2023/infiniti/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

type HttpServer struct {
	app           *fiber.App
	globalConfigs *configs.HttpConfigs
}

type ServerOptions struct {
	globalConfigs *configs.HttpConfigs
	errorHandler  fiber.ErrorHandler
	registration  func(app *fiber.App)
	middlewares   []fiber.Handler
}

type ServerOptioner func(o *ServerOptions)

func WithGlobalConfigs(c *configs.HttpConfigs) ServerOptioner {
	return func(o *ServerOptions) {
		o.globalConfigs = c
	}
}

func WithErrorHandler(h fiber.ErrorHandler) ServerOptioner {
	return func(o *ServerOptions) {
		o.errorHandler = h
	}
}

func WithRegistration(r func(app *fiber.App)) ServerOptioner {
	return func(o *ServerOptions) {
		o.registration = r
	}
}

func WithMiddleware(m ...fiber.Handler) ServerOptioner {
	return func(o *ServerOptions) {
		o.middlewares = append(o.middlewares, m...)
	}
}

func New(options ...ServerOptioner) *HttpServer {
	opts := &ServerOptions{}
	for _, o := range options {
		o(opts)
	}
	if opts.globalConfigs == nil {
		opts.globalConfigs = &configs.HttpConfigs{Name: "http"}
	}

	config := fiber.Config{
		AppName:               opts.globalConfigs.Name,
		DisableStartupMessage: true,
	}
	if opts.errorHandler != nil {
		config.ErrorHandler = opts.errorHandler
	}

	app := fiber.New(config)
	for _, m := range opts.middlewares {
		app.Use(m)
	}
	if opts.registration != nil {
		opts.registration(app)
	}

	return &HttpServer{
		app:           app,
		globalConfigs: opts.globalConfigs,
	}
}

func (s *HttpServer) Name() string {
	return s.globalConfigs.Name
}

func (s *HttpServer) App() *fiber.App {
	return s.app
}

func (s *HttpServer) Start() error {
	return s.app.Listen(fmt.Sprintf(":%d", s.globalConfigs.Port))
}

func (s *HttpServer) Stop(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// CommonPublicMiddlewares recovers panics, tags every request with an id and
// logs it once the handler chain returns.
func CommonPublicMiddlewares(c *configs.HttpConfigs) []fiber.Handler {
	return []fiber.Handler{
		recover.New(),
		requestid.New(),
		func(ctx *fiber.Ctx) error {
			err := ctx.Next()
			logger.SDebug("HTTP request",
				zap.String("server", c.Name),
				zap.String("method", ctx.Method()),
				zap.String("path", ctx.Path()),
				zap.Int("status", ctx.Response().StatusCode()),
				zap.String("requestId", ctx.GetRespHeader(fiber.HeaderXRequestID)))
			return err
		},
	}
}

type errorResponse struct {
	Message string `json:"message"`
}

// GlobalErrorHandler maps custerror codes onto HTTP statuses.
func GlobalErrorHandler() fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError

		var fiberErr *fiber.Error
		var custErr *custerror.CustomError
		switch {
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
		case errors.As(err, &custErr):
			status = statusFromCode(custErr.Code)
		}

		if status >= fiber.StatusInternalServerError {
			logger.SError("HTTP request failed",
				zap.String("path", ctx.Path()),
				zap.Error(err))
		} else {
			logger.SDebug("HTTP request rejected",
				zap.String("path", ctx.Path()),
				zap.Error(err))
		}
		return ctx.Status(status).JSON(errorResponse{Message: err.Error()})
	}
}

func statusFromCode(code uint32) int {
	switch code {
	case custerror.CodeInvalidArgument:
		return fiber.StatusBadRequest
	case custerror.CodeNotFound:
		return fiber.StatusNotFound
	case custerror.CodeAlreadyExists:
		return fiber.StatusConflict
	case custerror.CodePermissionDenied:
		return fiber.StatusForbidden
	case custerror.CodeUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
