package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/CE-Thesis-2023/infiniti/helper/factory"
	"github.com/CE-Thesis-2023/infiniti/internal/configs"
	"github.com/CE-Thesis-2023/infiniti/internal/infiniti"
	"github.com/CE-Thesis-2023/infiniti/internal/logger"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

// globalFlags override the values read from the configuration file or the
// environment.
type globalFlags struct {
	configPath     string
	host           string
	username       string
	password       string
	timeout        time.Duration
	logLevel       string
	requestLogging bool
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "infiniti",
		Short:         "Control an Infiniti pan-tilt camera over its HTTP API",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(context.Background(), logger.WithGlobalConfigs(&configs.LoggerConfigs{
				Level:    flags.logLevel,
				Encoding: "console",
			}))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "configuration file, YAML or JSON")
	pf.StringVar(&flags.host, "host", "", "camera base URL, e.g. http://192.168.1.64")
	pf.StringVarP(&flags.username, "user", "u", "", "camera user")
	pf.StringVarP(&flags.password, "password", "p", "", "camera password")
	pf.DurationVar(&flags.timeout, "timeout", 0, "camera request timeout")
	pf.StringVar(&flags.logLevel, "log-level", "warn", "log level")
	pf.BoolVar(&flags.requestLogging, "trace", false, "log every camera request and response")

	root.AddCommand(
		versionsSubcommand(flags),
		statusSubcommand(flags),
		positionSubcommand(flags),
		moveSubcommand(flags),
		zoomSubcommand(flags),
		presetSubcommand(flags),
		bridgeSubcommand(flags),
	)
	return root
}

// loadConfigs reads the configurations the same way the daemon does and then
// applies the command line overrides.
func (f *globalFlags) loadConfigs() (*configs.Configs, error) {
	if len(f.configPath) > 0 {
		os.Setenv(configs.ENV_CONFIG_FILE_PATH, f.configPath)
	}

	c, err := configs.Load()
	if err != nil {
		if len(f.host) == 0 {
			return nil, err
		}
		c = &configs.Configs{}
	}

	if len(f.host) > 0 {
		c.Camera.Host = f.host
	}
	if len(f.username) > 0 {
		c.Camera.Username = f.username
	}
	if len(f.password) > 0 {
		c.Camera.Password = f.password
	}
	if f.timeout > 0 {
		c.Camera.Timeout = f.timeout
	}
	if f.requestLogging {
		c.Camera.RequestLogging = true
	}
	c.ApplyDefaults()
	return c, nil
}

func (f *globalFlags) client() (infiniti.Client, error) {
	c, err := f.loadConfigs()
	if err != nil {
		return nil, err
	}
	return factory.NewInfinitiClient(&c.Camera)
}

func printJSON(w io.Writer, v interface{}) error {
	b, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
