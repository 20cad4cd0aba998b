package eventsapi

import (
	"context"
	"fmt"
	"time"

	"github.com/CE-Thesis-2023/infiniti/helper"
	"github.com/CE-Thesis-2023/infiniti/internal/configs"
	"github.com/CE-Thesis-2023/infiniti/internal/logger"
	custmqtt "github.com/CE-Thesis-2023/infiniti/internal/mqtt"

	"github.com/eclipse/paho.golang/autopaho"
	"github.com/eclipse/paho.golang/paho"
	"go.uber.org/zap"
)

func CommandsTopic(deviceId string) string {
	return fmt.Sprintf("commands/%s", deviceId)
}

func PtzCtrlTopic(deviceId string) string {
	return fmt.Sprintf("ptzctrl/%s", deviceId)
}

func Register(cm *autopaho.ConnectionManager, connack *paho.Connack) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	subs := makeSubscriptions(configs.Get().DeviceInfo.DeviceId)
	if _, err := cm.Subscribe(ctx, &paho.Subscribe{
		Subscriptions: subs,
	}); err != nil {
		logger.SError("unable to make MQTT subscriptions",
			zap.String("where", "api.events.Register"),
			zap.Reflect("subs", subs),
			zap.Error(err),
		)
		return
	}

	logger.SInfo("MQTT subscriptions made success", zap.Reflect("subs", subs))
}

func makeSubscriptions(deviceId string) []paho.SubscribeOptions {
	return []paho.SubscribeOptions{
		{Topic: CommandsTopic(deviceId), QoS: 1},
		{Topic: PtzCtrlTopic(deviceId), QoS: 1},
	}
}

func ClientErrorHandler(err error) {
	logger := logger.Logger()

	logger.Error("MQTT Client", zap.Error(err))
}

func DisconnectHandler(d *paho.Disconnect) {
	logger := logger.Logger()

	reason := ""
	if d.Properties != nil {
		reason = d.Properties.ReasonString
	}
	logger.Error("MQTT Server Disconnect",
		zap.Uint8("code", d.ReasonCode),
		zap.String("reason", reason))
}

func RouterHandler(deviceId string) custmqtt.RouterRegister {
	return func(router *paho.StandardRouter) {
		handlers := GetStandardEventsHandler()
		router.RegisterHandler(
			CommandsTopic(deviceId),
			WrapForHandlers(handlers.ReceiveRemoteCommands),
		)
		router.RegisterHandler(
			PtzCtrlTopic(deviceId),
			WrapForHandlers(handlers.ReceiveRemoteMovementControl),
		)
	}
}

func WrapForHandlers(handler func(p *paho.Publish) error) func(p *paho.Publish) {
	return func(p *paho.Publish) {
		if err := handler(p); err != nil {
			helper.EventHandlerErrorHandler(err)
		}
	}
}
