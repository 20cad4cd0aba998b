package infiniti

import (
	custerror "github.com/CE-Thesis-2023/infiniti/internal/error"

	"github.com/mitchellh/mapstructure"
)

type ColorMode string

const (
	ColorModeDay   ColorMode = "day"
	ColorModeNight ColorMode = "night"
	ColorModeAuto  ColorMode = "autoColor"
)

var colorModes = []ColorMode{ColorModeDay, ColorModeNight, ColorModeAuto}

func (m ColorMode) Validate() error {
	for _, v := range colorModes {
		if m == v {
			return nil
		}
	}
	return custerror.FormatInvalidArgument("invalid color mode %q, valid modes are %v", string(m), colorModes)
}

type LensMove string

const (
	LensMoveZoomTele  LensMove = "zoomTele"
	LensMoveZoomWide  LensMove = "zoomWide"
	LensMoveFocusFar  LensMove = "focusFar"
	LensMoveFocusNear LensMove = "focusNear"
)

var lensMoves = []LensMove{LensMoveZoomTele, LensMoveZoomWide, LensMoveFocusFar, LensMoveFocusNear}

func (m LensMove) Validate() error {
	for _, v := range lensMoves {
		if m == v {
			return nil
		}
	}
	return custerror.FormatInvalidArgument("invalid lens move %q, valid moves are %v", string(m), lensMoves)
}

type HeatwaveIntensity string

const (
	HeatwaveIntensityLow    HeatwaveIntensity = "Low"
	HeatwaveIntensityMedium HeatwaveIntensity = "Medium"
	HeatwaveIntensityHigh   HeatwaveIntensity = "High"
)

var heatwaveIntensities = []HeatwaveIntensity{HeatwaveIntensityLow, HeatwaveIntensityMedium, HeatwaveIntensityHigh}

func (i HeatwaveIntensity) Validate() error {
	for _, v := range heatwaveIntensities {
		if i == v {
			return nil
		}
	}
	return custerror.FormatInvalidArgument("invalid heatwave intensity %q, valid modes are %v", string(i), heatwaveIntensities)
}

// Direction is a pan-tilt move direction. Diagonals are written tilt first.
type Direction string

const (
	DirectionUp        Direction = "up"
	DirectionDown      Direction = "down"
	DirectionLeft      Direction = "left"
	DirectionRight     Direction = "right"
	DirectionUpLeft    Direction = "upleft"
	DirectionUpRight   Direction = "upright"
	DirectionDownLeft  Direction = "downleft"
	DirectionDownRight Direction = "downright"
)

var directions = []Direction{
	DirectionUp, DirectionDown, DirectionLeft, DirectionRight,
	DirectionUpLeft, DirectionUpRight, DirectionDownLeft, DirectionDownRight,
}

func (d Direction) Validate() error {
	for _, v := range directions {
		if d == v {
			return nil
		}
	}
	return custerror.FormatInvalidArgument("invalid move direction %q, valid directions are %v", string(d), directions)
}

// MoveSpeed is either one speed shared by both axes or a speed per axis.
type MoveSpeed struct {
	shared bool
	speed  int
	pan    int
	tilt   int
}

func SharedSpeed(speed int) MoveSpeed {
	return MoveSpeed{shared: true, speed: speed}
}

func AxisSpeeds(pan int, tilt int) MoveSpeed {
	return MoveSpeed{pan: pan, tilt: tilt}
}

func (s MoveSpeed) appendTo(q QueryParams) QueryParams {
	if s.shared {
		return q.With("speed", s.speed)
	}
	return q.
		With("panSpeed", s.pan).
		With("tiltSpeed", s.tilt)
}

type PanTiltPosition struct {
	Pan  float64 `json:"pan"`
	Tilt float64 `json:"tilt"`
}

type LensPosition struct {
	Zoom  float64 `json:"zoom"`
	Focus float64 `json:"focus"`
}

// decodeFields decodes an object payload into dest after checking that every
// key in required is present. It reports false for the nil sentinel, non-object
// payloads and missing keys.
func decodeFields(result Result, dest interface{}, required ...string) bool {
	m, ok := result.(map[string]interface{})
	if !ok {
		return false
	}
	for _, key := range required {
		if _, ok := m[key]; !ok {
			return false
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           dest,
	})
	if err != nil {
		return false
	}
	return decoder.Decode(m) == nil
}
