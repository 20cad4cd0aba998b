package eventsapi

import (
	"sync"

	"github.com/CE-Thesis-2023/infiniti/biz/service"
	custcon "github.com/CE-Thesis-2023/infiniti/internal/concurrent"
)

var once sync.Once

var standardEventsHandler *StandardEventHandler

func Init() {
	once.Do(func() {
		standardEventsHandler = NewStandardEventHandler(
			custcon.New(16),
			service.GetCommandService(),
			service.GetTelemetryService(),
		)
	})
}

func GetStandardEventsHandler() *StandardEventHandler {
	return standardEventsHandler
}
