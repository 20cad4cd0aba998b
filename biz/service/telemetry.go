package service

import (
	"context"
	"fmt"
	"time"

	"github.com/CE-Thesis-2023/infiniti/internal/configs"
	custerror "github.com/CE-Thesis-2023/infiniti/internal/error"
	"github.com/CE-Thesis-2023/infiniti/internal/infiniti"
	"github.com/CE-Thesis-2023/infiniti/internal/logger"
	"github.com/CE-Thesis-2023/infiniti/models/events"

	"github.com/bytedance/sonic"
	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

// TelemetryService polls the camera positions and publishes them on
// telemetry/<deviceId>.
type TelemetryService struct {
	client    infiniti.Client
	publisher Publisher
	deviceId  string
	interval  time.Duration
	scheduler *gocron.Scheduler
	now       func() time.Time
}

func NewTelemetryService(client infiniti.Client, publisher Publisher, deviceInfo *configs.DeviceInfoConfigs, telemetry *configs.TelemetryConfigs) *TelemetryService {
	return &TelemetryService{
		client:    client,
		publisher: publisher,
		deviceId:  deviceInfo.DeviceId,
		interval:  telemetry.Interval,
		scheduler: gocron.NewScheduler(time.UTC),
		now:       time.Now,
	}
}

func (s *TelemetryService) Topic() string {
	return fmt.Sprintf("telemetry/%s", s.deviceId)
}

// Collect reads both positions. A section stays nil when the camera gave no
// usable answer for it.
func (s *TelemetryService) Collect(ctx context.Context) *events.TelemetryReport {
	report := &events.TelemetryReport{
		DeviceId:  s.deviceId,
		Timestamp: s.now().Unix(),
	}
	if p := s.client.PanTilt().Position(ctx); p != nil {
		report.PanTilt = &events.PanTiltReport{Pan: p.Pan, Tilt: p.Tilt}
	}
	if l := s.client.Visible().Position(ctx); l != nil {
		report.Lens = &events.LensReport{Zoom: l.Zoom, Focus: l.Focus}
	}
	return report
}

func (s *TelemetryService) Report(ctx context.Context) error {
	if s.publisher == nil {
		return custerror.FormatUnavailable("telemetry publisher is not configured")
	}

	report := s.Collect(ctx)
	payload, err := sonic.Marshal(report)
	if err != nil {
		return custerror.FormatInternalError("Report: marshal err = %s", err)
	}
	if err := s.publisher.Publish(ctx, s.Topic(), payload); err != nil {
		return err
	}
	logger.SDebug("telemetry published",
		zap.String("topic", s.Topic()),
		logger.Json("report", report))
	return nil
}

// Start schedules Report every interval. The first report is sent right away.
func (s *TelemetryService) Start() error {
	if s.interval <= 0 {
		return custerror.FormatInvalidArgument("telemetry interval must be positive, got %s", s.interval)
	}
	_, err := s.scheduler.
		Every(s.interval).
		SingletonMode().
		Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), s.interval)
			defer cancel()
			if err := s.Report(ctx); err != nil {
				logger.SError("telemetry report failed", zap.Error(err))
			}
		})
	if err != nil {
		return err
	}
	s.scheduler.StartAsync()
	logger.SInfo("telemetry started",
		zap.String("topic", s.Topic()),
		zap.Duration("interval", s.interval))
	return nil
}

func (s *TelemetryService) Stop() {
	if s.scheduler.IsRunning() {
		s.scheduler.Stop()
		logger.SInfo("telemetry stopped")
	}
}
