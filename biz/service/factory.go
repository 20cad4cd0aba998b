package service

import (
	"sync"

	"github.com/CE-Thesis-2023/infiniti/internal/configs"
	"github.com/CE-Thesis-2023/infiniti/internal/infiniti"
)

var once sync.Once

var (
	commandService   *CommandService
	telemetryService *TelemetryService
)

func Init(client infiniti.Client, publisher Publisher, globalConfigs *configs.Configs) {
	once.Do(func() {
		commandService = NewCommandService(client)
		telemetryService = NewTelemetryService(client, publisher,
			&globalConfigs.DeviceInfo,
			&globalConfigs.Telemetry)
	})
}

func GetCommandService() *CommandService {
	return commandService
}

func GetTelemetryService() *TelemetryService {
	return telemetryService
}

func Shutdown() {
	if telemetryService != nil {
		telemetryService.Stop()
	}
}
