package main

import (
	"os"

	"github.com/frc-utilities/libds/pkgs/app"
	"github.com/frc-utilities/libds/pkgs/cli"
	"github.com/frc-utilities/libds/pkgs/output"
)

func main() {
	app := app.DsApp{P: output.ConsolePrinter{}}
	cmd := cli.NewRootCommand(&app)
	args := os.Args
	if args != nil {
		args = args[1:]
		cmd.SetArgs(args)
	}
	err := cmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
