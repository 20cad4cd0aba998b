package configs

const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables read by the original camera scripts from a .env file.
	ENV_CAMERA_HOST     = "host"
	ENV_CAMERA_USER     = "user"
	ENV_CAMERA_PASSWORD = "password"
)
