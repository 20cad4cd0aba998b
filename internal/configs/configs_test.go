package configs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	custerror "github.com/CE-Thesis-2023/infiniti/internal/error"

	"github.com/google/go-cmp/cmp"
)

const yamlConfigs = `
camera:
  host: http://192.168.1.64
  username: admin
  password: secret
  timeout: 3s
logger:
  level: debug
  encoding: console
mqttStore:
  host: broker.local
  port: 1883
  enabled: true
deviceInfo:
  deviceId: tower-01
telemetry:
  enabled: true
  interval: 10s
`

func writeConfigFile(t *testing.T, name string, contents string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_YAML(t *testing.T) {
	t.Setenv(ENV_CONFIG_FILE_PATH, writeConfigFile(t, "configs.yaml", yamlConfigs))

	c, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	want := CameraConfigs{
		Host:     "http://192.168.1.64",
		Username: "admin",
		Password: "secret",
		Timeout:  3 * time.Second,
	}
	if diff := cmp.Diff(want, c.Camera); diff != "" {
		t.Errorf("camera configs mismatch (-want +got):\n%s", diff)
	}
	if c.Telemetry.Interval != 10*time.Second {
		t.Errorf("telemetry interval = %s", c.Telemetry.Interval)
	}
	if c.DeviceInfo.DeviceId != "tower-01" {
		t.Errorf("device id = %q", c.DeviceInfo.DeviceId)
	}
	if c.Public.Port != 8080 {
		t.Errorf("expected default public port, got %d", c.Public.Port)
	}
}

func TestLoad_JSON(t *testing.T) {
	t.Setenv(ENV_CONFIG_FILE_PATH, writeConfigFile(t, "configs.json",
		`{"camera":{"host":"http://cam","username":"u","password":"p"},"public":{"port":9090}}`))

	c, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if c.Camera.Host != "http://cam" || c.Public.Port != 9090 {
		t.Errorf("unexpected configs %s", c)
	}
	if c.Camera.Timeout != 5*time.Second {
		t.Errorf("expected default timeout, got %s", c.Camera.Timeout)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv(ENV_CONFIG_FILE_PATH, "")
	t.Setenv(ENV_CAMERA_HOST, "http://10.0.0.2")
	t.Setenv(ENV_CAMERA_USER, "operator")
	t.Setenv(ENV_CAMERA_PASSWORD, "hunter2")

	c, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if c.Camera.Host != "http://10.0.0.2" || c.Camera.Username != "operator" || c.Camera.Password != "hunter2" {
		t.Errorf("unexpected camera configs %+v", c.Camera)
	}
}

func TestLoad_Missing(t *testing.T) {
	t.Setenv(ENV_CONFIG_FILE_PATH, filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	if !errors.Is(err, custerror.ErrorNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	_, err := parseConfig([]byte("camera: [unterminated"))
	if !errors.Is(err, custerror.ErrorInvalidArgument) {
		t.Errorf("expected invalid argument error, got %v", err)
	}
}

func TestConfigs_StringRedactsPasswords(t *testing.T) {
	c := Configs{Camera: CameraConfigs{Password: "secret"}}
	if strings.Contains(c.String(), "secret") {
		t.Errorf("password leaked: %s", c.String())
	}
}
