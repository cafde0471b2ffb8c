package cli

import (
	"github.com/spf13/cobra"

	"github.com/frc-utilities/libds/pkgs/app"
)

func NewPacketCommand(app *app.DsApp) *cobra.Command {
	type PacketFlags struct {
		Team       uint16
		Mode       string
		Enable     bool
		EStop      bool
		RobotComms bool
		Reboot     bool
		Voltage    float64
	}

	cmdFlags := PacketFlags{}
	command := &cobra.Command{
		Use:   "packet PEER",
		Short: "Print the hex dump of one outbound packet (fms, robot or radio)",
		Long: `Print the hex dump of one outbound packet for a given state.

Examples:
  ds packet fms --team 4499 --mode autonomous --enable --voltage 12.5
  ds packet robot --team 4499 --robot-comms --reboot`,
		Args: cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			if err := app.Initialize(); err != nil {
				return err
			}

			mode, modeErr := parseMode(cmdFlags.Mode)
			if modeErr != nil {
				return modeErr
			}

			return app.PacketAction(args[0], cmdFlags.Team, mode,
				cmdFlags.Enable, cmdFlags.EStop, cmdFlags.RobotComms, cmdFlags.Reboot,
				cmdFlags.Voltage)
		},
	}

	command.Flags().BoolVarP(&app.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	command.Flags().Uint16VarP(&cmdFlags.Team, "team", "t", 0, "Team number (overrides the configuration file)")
	command.Flags().StringVarP(&cmdFlags.Mode, "mode", "m", "teleoperated", "Control mode: teleoperated, autonomous or test")
	command.Flags().BoolVarP(&cmdFlags.Enable, "enable", "e", false, "Mark the robot as enabled")
	command.Flags().BoolVarP(&cmdFlags.EStop, "estop", "", false, "Mark the robot as emergency stopped")
	command.Flags().BoolVarP(&cmdFlags.RobotComms, "robot-comms", "", false, "Mark the robot link as up")
	command.Flags().BoolVarP(&cmdFlags.Reboot, "reboot", "", false, "Arm the reboot request latch")
	command.Flags().Float64VarP(&cmdFlags.Voltage, "voltage", "", 0, "Battery voltage to report to the FMS")

	return command
}
