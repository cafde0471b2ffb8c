package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frc-utilities/libds/pkgs/app"
	"github.com/frc-utilities/libds/pkgs/state"
)

func NewRunCommand(app *app.DsApp) *cobra.Command {
	type RunFlags struct {
		Team      uint16
		Mode      string
		Enable    bool
		Joysticks string
		Metrics   string
	}

	cmdFlags := RunFlags{}
	command := &cobra.Command{
		Use:   "run",
		Short: "Drive a robot: emit control packets and track its replies",
		Long: `Drive a robot: emit control packets and track its replies.

Examples:
  ds run --team 4499
  ds run --team 4499 --mode autonomous --enable
  ds run --team 4499 --joystick 6a10b1h,2a4b
  ds run --team 4499 --metrics :9100`,
		RunE: func(command *cobra.Command, args []string) error {
			if err := app.Initialize(); err != nil {
				return err
			}

			mode, modeErr := parseMode(cmdFlags.Mode)
			if modeErr != nil {
				return modeErr
			}

			return app.RunAction(cmdFlags.Team, mode, cmdFlags.Enable, cmdFlags.Joysticks, cmdFlags.Metrics)
		},
	}

	command.Flags().BoolVarP(&app.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	command.Flags().Uint16VarP(&cmdFlags.Team, "team", "t", 0, "Team number (overrides the configuration file)")
	command.Flags().StringVarP(&cmdFlags.Mode, "mode", "m", "teleoperated", "Control mode: teleoperated, autonomous or test")
	command.Flags().BoolVarP(&cmdFlags.Enable, "enable", "e", false, "Start with the robot enabled")
	command.Flags().StringVarP(&cmdFlags.Joysticks, "joystick", "j", "", "Joystick topology list, e.g. 6a10b1h,2a4b")
	command.Flags().StringVarP(&cmdFlags.Metrics, "metrics", "", "", "Serve Prometheus metrics on this address, e.g. :9100")

	return command
}

func parseMode(mode string) (state.ControlMode, error) {
	switch mode {
	case "", "teleoperated", "teleop":
		return state.ModeTeleoperated, nil
	case "autonomous", "auto":
		return state.ModeAutonomous, nil
	case "test":
		return state.ModeTest, nil
	}
	return state.ModeTeleoperated, fmt.Errorf("invalid mode: %s. Must be teleoperated, autonomous or test", mode)
}
