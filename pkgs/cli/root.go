package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/frc-utilities/libds/pkgs/app"
)

func NewRootCommand(app *app.DsApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "ds",
		Short: "Console FRC Driver Station for the 2015 control system",
		RunE: func(command *cobra.Command, args []string) error {
			return errors.New("please select a command")
		},
	}

	command.AddCommand(NewRunCommand(app))
	command.AddCommand(NewPacketCommand(app))

	return command
}
