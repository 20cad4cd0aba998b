package events

type CommandType string

const (
	Command_PanTiltMove     CommandType = "Command_PanTiltMove"
	Command_PanTiltStop     CommandType = "Command_PanTiltStop"
	Command_PanTiltHome     CommandType = "Command_PanTiltHome"
	Command_PanTiltAbsolute CommandType = "Command_PanTiltAbsolute"
	Command_Zoom            CommandType = "Command_Zoom"
	Command_GotoPreset      CommandType = "Command_GotoPreset"
	Command_SetColor        CommandType = "Command_SetColor"
	Command_Autofocus       CommandType = "Command_Autofocus"
	Command_GetTelemetry    CommandType = "Command_GetTelemetry"
)

type CommandRequest struct {
	CommandType CommandType            `json:"commandType"`
	Info        map[string]interface{} `json:"info"`
}

// CommandPanTiltMoveInfo carries signed axis speeds. Positive pan is right,
// positive tilt is up. The head is stopped after StopAfterSeconds when set.
type CommandPanTiltMoveInfo struct {
	Pan              int  `json:"pan" mapstructure:"pan"`
	Tilt             int  `json:"tilt" mapstructure:"tilt"`
	StopAfterSeconds *int `json:"stopAfterSeconds,omitempty" mapstructure:"stopAfterSeconds"`
}

type CommandPanTiltAbsoluteInfo struct {
	Pan  int `json:"pan" mapstructure:"pan"`
	Tilt int `json:"tilt" mapstructure:"tilt"`
}

type CommandZoomInfo struct {
	Speed            int  `json:"speed" mapstructure:"speed"`
	StopAfterSeconds *int `json:"stopAfterSeconds,omitempty" mapstructure:"stopAfterSeconds"`
}

type CommandGotoPresetInfo struct {
	PresetId int `json:"presetId" mapstructure:"presetId"`
}

type CommandSetColorInfo struct {
	Mode string `json:"mode" mapstructure:"mode"`
}
