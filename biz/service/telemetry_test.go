package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/CE-Thesis-2023/infiniti/internal/configs"
	custerror "github.com/CE-Thesis-2023/infiniti/internal/error"
	"github.com/CE-Thesis-2023/infiniti/models/events"

	"github.com/google/go-cmp/cmp"
)

type recordingPublisher struct {
	mu       sync.Mutex
	topics   []string
	payloads [][]byte
}

func (p *recordingPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

func newTestTelemetry(t *testing.T, routes map[string]string, publisher Publisher, interval time.Duration) *TelemetryService {
	camera := newRoutedCamera(t, routes)
	s := NewTelemetryService(camera.client(t), publisher,
		&configs.DeviceInfoConfigs{DeviceId: "cam-01"},
		&configs.TelemetryConfigs{Enabled: true, Interval: interval})
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	return s
}

func TestTelemetry_Collect(t *testing.T) {
	s := newTestTelemetry(t, map[string]string{
		"/api/devices/pantilt/position": `{"data":{"pan":120,"tilt":4.5}}`,
		"/api/devices/visible/position": `{"data":{"zoom":3000,"focus":12}}`,
	}, nil, time.Second)

	want := &events.TelemetryReport{
		DeviceId:  "cam-01",
		Timestamp: 1700000000,
		PanTilt:   &events.PanTiltReport{Pan: 120, Tilt: 4.5},
		Lens:      &events.LensReport{Zoom: 3000, Focus: 12},
	}
	if diff := cmp.Diff(want, s.Collect(context.Background())); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestTelemetry_Collect_PartialAnswer(t *testing.T) {
	s := newTestTelemetry(t, map[string]string{
		"/api/devices/pantilt/position": `{"data":{"pan":1,"tilt":2}}`,
	}, nil, time.Second)

	report := s.Collect(context.Background())
	if report.PanTilt == nil {
		t.Error("expected pan-tilt section")
	}
	if report.Lens != nil {
		t.Errorf("expected no lens section, got %+v", report.Lens)
	}
}

func TestTelemetry_Report(t *testing.T) {
	publisher := &recordingPublisher{}
	s := newTestTelemetry(t, map[string]string{
		"/api/devices/pantilt/position": `{"data":{"pan":1,"tilt":2}}`,
	}, publisher, time.Second)

	if err := s.Report(context.Background()); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"telemetry/cam-01"}, publisher.topics); diff != "" {
		t.Errorf("topics mismatch (-want +got):\n%s", diff)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(publisher.payloads[0], &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]interface{}{
		"deviceId":  "cam-01",
		"timestamp": float64(1700000000),
		"panTilt":   map[string]interface{}{"pan": float64(1), "tilt": float64(2)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestTelemetry_Report_NoPublisher(t *testing.T) {
	s := newTestTelemetry(t, nil, nil, time.Second)
	if err := s.Report(context.Background()); !errors.Is(err, custerror.ErrorUnavailable) {
		t.Errorf("expected unavailable, got %v", err)
	}
}

func TestTelemetry_Start(t *testing.T) {
	publisher := &recordingPublisher{}
	s := newTestTelemetry(t, nil, publisher, 50*time.Millisecond)

	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for publisher.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if publisher.count() < 2 {
		t.Errorf("published %d reports, want at least 2", publisher.count())
	}
}

func TestTelemetry_Start_InvalidInterval(t *testing.T) {
	s := newTestTelemetry(t, nil, &recordingPublisher{}, 0)
	if err := s.Start(); !errors.Is(err, custerror.ErrorInvalidArgument) {
		t.Errorf("expected invalid argument, got %v", err)
	}
}
