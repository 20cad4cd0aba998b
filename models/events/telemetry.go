package events

type PanTiltReport struct {
	Pan  float64 `json:"pan"`
	Tilt float64 `json:"tilt"`
}

type LensReport struct {
	Zoom  float64 `json:"zoom"`
	Focus float64 `json:"focus"`
}

// TelemetryReport is published on telemetry/<deviceId>. A section is omitted
// when the camera did not answer for it.
type TelemetryReport struct {
	DeviceId  string         `json:"deviceId"`
	Timestamp int64          `json:"timestamp"`
	PanTilt   *PanTiltReport `json:"panTilt,omitempty"`
	Lens      *LensReport    `json:"lens,omitempty"`
}
