package eventsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/CE-Thesis-2023/infiniti/biz/service"
	custcon "github.com/CE-Thesis-2023/infiniti/internal/concurrent"
	custerror "github.com/CE-Thesis-2023/infiniti/internal/error"
	"github.com/CE-Thesis-2023/infiniti/internal/infiniti"
	"github.com/CE-Thesis-2023/infiniti/models/events"

	"github.com/eclipse/paho.golang/paho"
	"github.com/google/go-cmp/cmp"
)

type cameraLog struct {
	mu       sync.Mutex
	requests []string
}

func (l *cameraLog) add(r *http.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()
	target := r.URL.Path
	if len(r.URL.RawQuery) > 0 {
		target += "?" + r.URL.RawQuery
	}
	l.requests = append(l.requests, r.Method+" "+target)
}

func (l *cameraLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.requests...)
}

func newTestHandler(t *testing.T) (*StandardEventHandler, *cameraLog) {
	t.Helper()
	log := &cameraLog{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.add(r)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":null}`))
	}))
	t.Cleanup(server.Close)

	client, err := infiniti.NewClient(server.URL, "admin", "secret", infiniti.WithTimeout(2*time.Second))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(client.Close)

	pool := custcon.New(2)
	t.Cleanup(pool.Release)
	return NewStandardEventHandler(pool, service.NewCommandService(client), nil), log
}

func TestDispatch(t *testing.T) {
	cases := []struct {
		name string
		msg  events.CommandRequest
		want []string
	}{
		{
			name: "pan-tilt move",
			msg: events.CommandRequest{
				CommandType: events.Command_PanTiltMove,
				Info:        map[string]interface{}{"pan": float64(-4), "tilt": float64(0)},
			},
			want: []string{"GET /api/devices/pantilt?command=move&direction=left&speed=4"},
		},
		{
			name: "pan-tilt move with stop",
			msg: events.CommandRequest{
				CommandType: events.Command_PanTiltMove,
				Info:        map[string]interface{}{"pan": float64(2), "tilt": float64(2), "stopAfterSeconds": float64(0)},
			},
			want: []string{
				"GET /api/devices/pantilt?command=move&direction=upright&panSpeed=2&tiltSpeed=2",
				"GET /api/devices/pantilt?command=stop",
			},
		},
		{
			name: "stop",
			msg:  events.CommandRequest{CommandType: events.Command_PanTiltStop},
			want: []string{"GET /api/devices/pantilt?command=stop"},
		},
		{
			name: "home",
			msg:  events.CommandRequest{CommandType: events.Command_PanTiltHome},
			want: []string{"GET /api/devices/pantilt?command=home"},
		},
		{
			name: "absolute",
			msg: events.CommandRequest{
				CommandType: events.Command_PanTiltAbsolute,
				Info:        map[string]interface{}{"pan": float64(90), "tilt": float64(-10)},
			},
			want: []string{"POST /api/devices/pantilt/position"},
		},
		{
			name: "zoom",
			msg: events.CommandRequest{
				CommandType: events.Command_Zoom,
				Info:        map[string]interface{}{"speed": float64(3)},
			},
			want: []string{"GET /api/devices/visible?command=zoomTele"},
		},
		{
			name: "goto preset",
			msg: events.CommandRequest{
				CommandType: events.Command_GotoPreset,
				Info:        map[string]interface{}{"presetId": float64(7)},
			},
			want: []string{"GET /api/system/presets/7?action=goto"},
		},
		{
			name: "color",
			msg: events.CommandRequest{
				CommandType: events.Command_SetColor,
				Info:        map[string]interface{}{"mode": "night"},
			},
			want: []string{"GET /api/devices/visible?command=night"},
		},
		{
			name: "autofocus",
			msg:  events.CommandRequest{CommandType: events.Command_Autofocus},
			want: []string{"GET /api/devices/visible?command=autofocus"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, log := newTestHandler(t)
			msg := tc.msg
			if err := h.Dispatch(context.Background(), &msg); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, log.all()); diff != "" {
				t.Errorf("requests mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDispatch_Rejected(t *testing.T) {
	cases := []struct {
		name string
		msg  events.CommandRequest
		want error
	}{
		{"unknown type", events.CommandRequest{CommandType: "Command_SelfDestruct"}, custerror.ErrorInvalidArgument},
		{"malformed info", events.CommandRequest{
			CommandType: events.Command_GotoPreset,
			Info:        map[string]interface{}{"presetId": "seven"},
		}, custerror.ErrorInvalidArgument},
		{"invalid color", events.CommandRequest{
			CommandType: events.Command_SetColor,
			Info:        map[string]interface{}{"mode": "sepia"},
		}, custerror.ErrorInvalidArgument},
		{"telemetry disabled", events.CommandRequest{CommandType: events.Command_GetTelemetry}, custerror.ErrorUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, log := newTestHandler(t)
			msg := tc.msg
			if err := h.Dispatch(context.Background(), &msg); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
			if got := log.all(); len(got) != 0 {
				t.Errorf("rejected command reached the camera: %v", got)
			}
		})
	}
}

func TestReceiveRemoteCommands(t *testing.T) {
	h, log := newTestHandler(t)

	err := h.ReceiveRemoteCommands(&paho.Publish{
		Topic:   CommandsTopic("cam-01"),
		Payload: []byte(`{"commandType":"Command_GotoPreset","info":{"presetId":2}}`),
	})
	if err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(log.all()) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if diff := cmp.Diff([]string{"GET /api/system/presets/2?action=goto"}, log.all()); diff != "" {
		t.Errorf("requests mismatch (-want +got):\n%s", diff)
	}
}

func TestReceiveRemoteCommands_BadPayload(t *testing.T) {
	h, _ := newTestHandler(t)

	err := h.ReceiveRemoteCommands(&paho.Publish{Payload: []byte(`{"commandType":`)})
	if !errors.Is(err, custerror.ErrorInvalidArgument) {
		t.Errorf("expected invalid argument, got %v", err)
	}
}

func (l *cameraLog) waitFor(t *testing.T, n int) []string {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for len(l.all()) < n && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	return l.all()
}

func TestReceiveRemoteMovementControl(t *testing.T) {
	h, log := newTestHandler(t)

	err := h.ReceiveRemoteMovementControl(&paho.Publish{
		Topic:   PtzCtrlTopic("cam-01"),
		Payload: []byte(`{"pan":0,"tilt":-6}`),
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"GET /api/devices/pantilt?command=move&direction=down&speed=6"}, log.waitFor(t, 1)); diff != "" {
		t.Errorf("requests mismatch (-want +got):\n%s", diff)
	}
}

func TestReceiveRemoteMovementControl_DelayedStopDoesNotBlock(t *testing.T) {
	h, log := newTestHandler(t)

	start := time.Now()
	err := h.ReceiveRemoteMovementControl(&paho.Publish{
		Topic:   PtzCtrlTopic("cam-01"),
		Payload: []byte(`{"pan":3,"tilt":0,"stopAfterSeconds":1}`),
	})
	if err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("handler blocked for %s", elapsed)
	}
	log.waitFor(t, 1)

	err = h.ReceiveRemoteCommands(&paho.Publish{
		Topic:   CommandsTopic("cam-01"),
		Payload: []byte(`{"commandType":"Command_PanTiltStop"}`),
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"GET /api/devices/pantilt?command=move&direction=right&speed=3",
		"GET /api/devices/pantilt?command=stop",
		"GET /api/devices/pantilt?command=stop",
	}
	if diff := cmp.Diff(want, log.waitFor(t, 3)); diff != "" {
		t.Errorf("requests mismatch (-want +got):\n%s", diff)
	}
}

func TestReceiveRemoteMovementControl_BadPayload(t *testing.T) {
	h, log := newTestHandler(t)

	err := h.ReceiveRemoteMovementControl(&paho.Publish{Payload: []byte(`{"pan":`)})
	if !errors.Is(err, custerror.ErrorInvalidArgument) {
		t.Errorf("expected invalid argument, got %v", err)
	}
	if n := len(log.all()); n != 0 {
		t.Errorf("camera received %d requests", n)
	}
}

func TestCommandTimeout(t *testing.T) {
	if got := commandTimeout(nil); got != defaultCommandTimeout {
		t.Errorf("commandTimeout(nil) = %s", got)
	}
	got := commandTimeout(map[string]interface{}{"stopAfterSeconds": float64(3)})
	if want := defaultCommandTimeout + 3*time.Second; got != want {
		t.Errorf("commandTimeout = %s, want %s", got, want)
	}
}

func TestMakeSubscriptions(t *testing.T) {
	want := []string{"commands/cam-01", "ptzctrl/cam-01"}
	var got []string
	for _, s := range makeSubscriptions("cam-01") {
		got = append(got, s.Topic)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("topics mismatch (-want +got):\n%s", diff)
	}
}
