package cmd

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/CE-Thesis-2023/infiniti/biz/service"
	custerror "github.com/CE-Thesis-2023/infiniti/internal/error"
	"github.com/CE-Thesis-2023/infiniti/internal/infiniti"
	"github.com/CE-Thesis-2023/infiniti/models/events"

	"github.com/carlmjohnson/flowmatic"
	"github.com/spf13/cobra"
)

// withClient runs fn with a fresh camera client and a context bounded by the
// client timeout plus extra.
func withClient(flags *globalFlags, extra time.Duration, fn func(ctx context.Context, c infiniti.Client) error) error {
	c, err := flags.client()
	if err != nil {
		return err
	}
	defer c.Close()

	timeout := flags.timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout+extra)
	defer cancel()
	return fn(ctx, c)
}

func versionsSubcommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "Print the firmware versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(flags, 0, func(ctx context.Context, c infiniti.Client) error {
				resp, err := service.NewCommandService(c).Versions(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
}

// cameraStatus is printed by the status command. Sections the camera did not
// answer for are null.
type cameraStatus struct {
	System  infiniti.Result           `json:"system"`
	Devices infiniti.Result           `json:"devices"`
	PanTilt *infiniti.PanTiltPosition `json:"panTilt"`
	Lens    *infiniti.LensPosition    `json:"lens"`
}

func collectStatus(ctx context.Context, c infiniti.Client) *cameraStatus {
	var (
		mu     sync.Mutex
		status cameraStatus
	)
	set := func(f func()) {
		mu.Lock()
		defer mu.Unlock()
		f()
	}
	_ = flowmatic.Do(
		func() error {
			r := c.System().Status(ctx)
			set(func() { status.System = r })
			return nil
		},
		func() error {
			r := c.Device().Devices(ctx)
			set(func() { status.Devices = r })
			return nil
		},
		func() error {
			p := c.PanTilt().Position(ctx)
			set(func() { status.PanTilt = p })
			return nil
		},
		func() error {
			l := c.Visible().Position(ctx)
			set(func() { status.Lens = l })
			return nil
		},
	)
	return &status
}

func statusSubcommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print system status, devices and positions in one go",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(flags, 0, func(ctx context.Context, c infiniti.Client) error {
				return printJSON(cmd.OutOrStdout(), collectStatus(ctx, c))
			})
		},
	}
}

func positionSubcommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "position",
		Short: "Print the pan-tilt and lens positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(flags, 0, func(ctx context.Context, c infiniti.Client) error {
				s := service.NewCommandService(c)
				panTilt, err := s.PanTiltPosition(ctx)
				if err != nil {
					return err
				}
				lens, err := s.LensPosition(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"panTilt": panTilt,
					"lens":    lens,
				})
			})
		},
	}
}

func moveSubcommand(flags *globalFlags) *cobra.Command {
	var (
		pan      int
		tilt     int
		duration int
	)
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move the pan-tilt head with signed speeds, stop with --pan 0 --tilt 0",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &events.CommandPanTiltMoveInfo{Pan: pan, Tilt: tilt}
			if duration > 0 {
				req.StopAfterSeconds = &duration
			}
			return withClient(flags, time.Duration(duration)*time.Second, func(ctx context.Context, c infiniti.Client) error {
				return service.NewCommandService(c).PanTiltMove(ctx, req)
			})
		},
	}
	cmd.Flags().IntVar(&pan, "pan", 0, "pan speed, positive is right")
	cmd.Flags().IntVar(&tilt, "tilt", 0, "tilt speed, positive is up")
	cmd.Flags().IntVar(&duration, "duration", 0, "stop after this many seconds, 0 keeps moving")
	return cmd
}

func zoomSubcommand(flags *globalFlags) *cobra.Command {
	var (
		speed    int
		duration int
	)
	cmd := &cobra.Command{
		Use:   "zoom",
		Short: "Zoom in for a positive speed, out for a negative one, stop at 0",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &events.CommandZoomInfo{Speed: speed}
			if duration > 0 {
				req.StopAfterSeconds = &duration
			}
			return withClient(flags, time.Duration(duration)*time.Second, func(ctx context.Context, c infiniti.Client) error {
				return service.NewCommandService(c).Zoom(ctx, req)
			})
		},
	}
	cmd.Flags().IntVar(&speed, "speed", 0, "zoom direction")
	cmd.Flags().IntVar(&duration, "duration", 0, "stop after this many seconds, 0 keeps zooming")
	return cmd
}

func presetSubcommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "preset <id>",
		Short: "Move to a stored preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return custerror.FormatInvalidArgument("preset id must be an integer, got %q", args[0])
			}
			return withClient(flags, 0, func(ctx context.Context, c infiniti.Client) error {
				return service.NewCommandService(c).GotoPreset(ctx, &events.CommandGotoPresetInfo{PresetId: id})
			})
		},
	}
}
