package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CE-Thesis-2023/infiniti/internal/configs"
	custhttp "github.com/CE-Thesis-2023/infiniti/internal/http"
	"github.com/CE-Thesis-2023/infiniti/internal/logger"

	"go.uber.org/zap"
)

// Run loads the configurations unless they were set already, starts the
// registered servers and blocks until SIGINT or SIGTERM.
func Run(shutdownTimeout time.Duration, registration RegistrationFunc) {
	ctx := context.Background()
	if configs.Get() == nil {
		configs.Init(ctx)
	}

	globalConfigs := configs.Get()

	loggerConfigs := globalConfigs.Logger
	logger.Init(ctx, logger.WithGlobalConfigs(&loggerConfigs))

	options := registration(globalConfigs, logger.Logger())

	opts := Options{}
	for _, optioner := range options {
		optioner(&opts)
	}

	logger := zap.L().Sugar()

	logger.Infof("Run: configs = %s", globalConfigs.String())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	if opts.factoryHook != nil {
		if err := opts.factoryHook(); err != nil {
			logger.Fatalf("Run: factoryHook err = %s", err)
			return
		}
	}

	for _, s := range opts.httpServers {
		s := s
		go func() {
			logger.Infof("Run: start HTTP server name = %s", s.Name())
			if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Errorf("Run: start HTTP server err = %s", err)
			}
		}()
	}

	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, s := range opts.httpServers {
		logger.Infof("Run: stop HTTP server name = %s", s.Name())
		if err := s.Stop(ctx); err != nil {
			logger.Errorf("Run: stop HTTP server err = %s", err)
		}
	}

	if opts.shutdownHook != nil {
		opts.shutdownHook(ctx)
	}

	logger.Info("Run: shutdown complete")
	zap.L().Sync()
}

type RegistrationFunc func(configs *configs.Configs, logger *zap.Logger) []Optioner
type FactoryHook func() error
type ShutdownHook func(ctx context.Context)

type Options struct {
	httpServers []*custhttp.HttpServer

	factoryHook  FactoryHook
	shutdownHook ShutdownHook
}

type Optioner func(opts *Options)

func WithHttpServer(server *custhttp.HttpServer) Optioner {
	return func(opts *Options) {
		if server != nil {
			opts.httpServers = append(opts.httpServers, server)
		}
	}
}

func WithFactoryHook(cb FactoryHook) Optioner {
	return func(opts *Options) {
		opts.factoryHook = cb
	}
}

func WithShutdownHook(cb ShutdownHook) Optioner {
	return func(opts *Options) {
		opts.shutdownHook = cb
	}
}
