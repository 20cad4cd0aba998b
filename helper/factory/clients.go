package factory

import (
	"sync"

	"github.com/CE-Thesis-2023/infiniti/internal/configs"
	"github.com/CE-Thesis-2023/infiniti/internal/infiniti"
	"github.com/CE-Thesis-2023/infiniti/internal/logger"

	"go.uber.org/zap"
)

var once sync.Once

var infinitiClient infiniti.Client

func Init(globalConfigs *configs.Configs) {
	once.Do(func() {
		c, err := NewInfinitiClient(&globalConfigs.Camera)
		if err != nil {
			logger.SFatal("factory.Init: infiniti.Client", zap.Error(err))
			return
		}
		infinitiClient = c
	})
}

func Infiniti() infiniti.Client {
	return infinitiClient
}

func NewInfinitiClient(cameraConfigs *configs.CameraConfigs) (infiniti.Client, error) {
	return infiniti.NewClient(
		cameraConfigs.Host,
		cameraConfigs.Username,
		cameraConfigs.Password,
		infiniti.WithTimeout(cameraConfigs.Timeout),
		infiniti.WithRequestLogging(cameraConfigs.RequestLogging),
	)
}

func Close() {
	if infinitiClient != nil {
		infinitiClient.Close()
	}
}
