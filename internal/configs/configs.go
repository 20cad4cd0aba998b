package configs

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	custerror "github.com/CE-Thesis-2023/infiniti/internal/error"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var globalConfigs *Configs

type Configs struct {
	Camera     CameraConfigs     `json:"camera,omitempty" yaml:"camera,omitempty"`
	Public     HttpConfigs       `json:"public,omitempty" yaml:"public,omitempty"`
	Logger     LoggerConfigs     `json:"logger,omitempty" yaml:"logger,omitempty"`
	MqttStore  EventStoreConfigs `json:"mqttStore,omitempty" yaml:"mqttStore,omitempty"`
	DeviceInfo DeviceInfoConfigs `json:"deviceInfo,omitempty" yaml:"deviceInfo,omitempty"`
	Telemetry  TelemetryConfigs  `json:"telemetry,omitempty" yaml:"telemetry,omitempty"`
}

func (c Configs) String() string {
	redacted := c
	if len(redacted.Camera.Password) > 0 {
		redacted.Camera.Password = "***"
	}
	if len(redacted.MqttStore.Password) > 0 {
		redacted.MqttStore.Password = "***"
	}
	configBytes, _ := json.Marshal(redacted)
	return string(configBytes)
}

func Init(ctx context.Context) {
	configs, err := Load()
	if err != nil {
		log.Fatal(err)
		return
	}
	globalConfigs = configs
}

func Get() *Configs {
	return globalConfigs
}

// Set replaces the global configuration, used by commands that build it from flags.
func Set(c *Configs) {
	globalConfigs = c
}

type CameraConfigs struct {
	Host           string        `json:"host,omitempty" yaml:"host,omitempty"`
	Username       string        `json:"username,omitempty" yaml:"username,omitempty"`
	Password       string        `json:"password,omitempty" yaml:"password,omitempty"`
	Timeout        time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	RequestLogging bool          `json:"requestLogging,omitempty" yaml:"requestLogging,omitempty"`
}

type HttpConfigs struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Port    int    `json:"port,omitempty" yaml:"port,omitempty"`
	Enabled bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

type LoggerConfigs struct {
	Level    string `json:"level,omitempty" yaml:"level,omitempty"`
	Encoding string `json:"encoding,omitempty" yaml:"encoding,omitempty"`
}

type EventStoreConfigs struct {
	TlsEnabled bool   `json:"tlsEnabled,omitempty" yaml:"tlsEnabled,omitempty"`
	Host       string `json:"host,omitempty" yaml:"host,omitempty"`
	Port       int    `json:"port,omitempty" yaml:"port,omitempty"`
	Enabled    bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Username   string `json:"username,omitempty" yaml:"username,omitempty"`
	Password   string `json:"password,omitempty" yaml:"password,omitempty"`
}

func (c *EventStoreConfigs) HasAuth() bool {
	return len(c.Username) > 0 && len(c.Password) > 0
}

type DeviceInfoConfigs struct {
	DeviceId string `json:"deviceId,omitempty" yaml:"deviceId,omitempty"`
}

type TelemetryConfigs struct {
	Enabled  bool          `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Interval time.Duration `json:"interval,omitempty" yaml:"interval,omitempty"`
}

// Load reads the file named by ENV_CONFIG_FILE_PATH. Without it, the camera
// section is taken from the process environment after loading a .env file.
func Load() (*Configs, error) {
	path := os.Getenv(ENV_CONFIG_FILE_PATH)
	if len(path) == 0 {
		return readEnvironment()
	}

	configFile, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}

	configs, err := parseConfig(configFile)
	if err != nil {
		return nil, err
	}
	configs.ApplyDefaults()
	return configs, nil
}

func readEnvironment() (*Configs, error) {
	// a missing .env file is fine, the variables may already be exported
	_ = godotenv.Load()

	configs := &Configs{
		Camera: CameraConfigs{
			Host:     os.Getenv(ENV_CAMERA_HOST),
			Username: os.Getenv(ENV_CAMERA_USER),
			Password: os.Getenv(ENV_CAMERA_PASSWORD),
		},
	}
	if len(configs.Camera.Host) == 0 {
		return nil, custerror.FormatNotFound(
			"neither %s nor %s is set, unable to read configurations",
			ENV_CONFIG_FILE_PATH, ENV_CAMERA_HOST)
	}
	configs.ApplyDefaults()
	return configs, nil
}

// ApplyDefaults fills every unset field that has a default.
func (c *Configs) ApplyDefaults() {
	if c.Camera.Timeout <= 0 {
		c.Camera.Timeout = 5 * time.Second
	}
	if c.Telemetry.Interval <= 0 {
		c.Telemetry.Interval = 5 * time.Second
	}
	if len(c.Public.Name) == 0 {
		c.Public.Name = "infiniti-public"
	}
	if c.Public.Port == 0 {
		c.Public.Port = 8080
	}
	if len(c.DeviceInfo.DeviceId) == 0 {
		c.DeviceInfo.DeviceId = "infiniti"
	}
}

func readConfigFile(path string) ([]byte, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, custerror.FormatNotFound("readConfigFile: file not found")
		}
		return nil, custerror.FormatInternalError("readConfigFile: err = %s", err)
	}
	return contents, nil
}

func parseConfig(contents []byte) (*Configs, error) {
	configs := &Configs{}
	if jsonErr := json.Unmarshal(contents, configs); jsonErr != nil {
		configs = &Configs{}
		if yamlErr := yaml.Unmarshal(contents, configs); yamlErr != nil {
			return nil, custerror.FormatInvalidArgument("parseConfig: config parse JSON err = %s YAML err = %s", jsonErr, yamlErr)
		}
	}
	return configs, nil
}
