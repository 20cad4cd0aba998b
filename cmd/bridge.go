package cmd

import (
	"context"
	"time"

	eventsapi "github.com/CE-Thesis-2023/infiniti/api/events"
	publicapi "github.com/CE-Thesis-2023/infiniti/api/public"
	"github.com/CE-Thesis-2023/infiniti/biz/service"
	"github.com/CE-Thesis-2023/infiniti/helper/factory"
	"github.com/CE-Thesis-2023/infiniti/internal/app"
	"github.com/CE-Thesis-2023/infiniti/internal/configs"
	custhttp "github.com/CE-Thesis-2023/infiniti/internal/http"
	"github.com/CE-Thesis-2023/infiniti/internal/logger"
	custmqtt "github.com/CE-Thesis-2023/infiniti/internal/mqtt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func bridgeSubcommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "bridge",
		Short: "Serve the local REST API and relay MQTT commands and telemetry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.loadConfigs()
			if err != nil {
				return err
			}
			configs.Set(c)
			app.Run(time.Second*10, registration)
			return nil
		},
	}
}

func registration(configs *configs.Configs, zl *zap.Logger) []app.Optioner {
	var server *custhttp.HttpServer
	if configs.Public.Enabled {
		server = custhttp.New(
			custhttp.WithGlobalConfigs(&configs.Public),
			custhttp.WithErrorHandler(custhttp.GlobalErrorHandler()),
			custhttp.WithRegistration(publicapi.ServiceRegistration()),
			custhttp.WithMiddleware(custhttp.CommonPublicMiddlewares(&configs.Public)...),
		)
	}

	return []app.Optioner{
		app.WithHttpServer(server),
		app.WithFactoryHook(func() error {
			factory.Init(configs)

			var publisher service.Publisher
			if configs.MqttStore.Enabled {
				publisher = custmqtt.NewGlobalPublisher(0)
			}
			service.Init(factory.Infiniti(), publisher, configs)

			if configs.MqttStore.Enabled {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				eventsapi.Init()
				custmqtt.InitClient(
					ctx,
					custmqtt.WithClientGlobalConfigs(&configs.MqttStore),
					custmqtt.WithClientId(configs.DeviceInfo.DeviceId),
					custmqtt.WithOnReconnection(eventsapi.Register),
					custmqtt.WithOnConnectError(func(err error) {
						logger.Error("MQTT Connection failed", zap.Error(err))
					}),
					custmqtt.WithClientError(eventsapi.ClientErrorHandler),
					custmqtt.WithOnServerDisconnect(eventsapi.DisconnectHandler),
					custmqtt.WithHandlerRegister(eventsapi.RouterHandler(configs.DeviceInfo.DeviceId)),
				)
			}

			if configs.Telemetry.Enabled {
				if err := service.GetTelemetryService().Start(); err != nil {
					return err
				}
			}
			return nil
		}),
		app.WithShutdownHook(func(ctx context.Context) {
			service.Shutdown()
			custmqtt.StopClient(ctx)
			factory.Close()
			logger.Close()
		}),
	}
}
