package app

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/frc-utilities/libds/pkgs/config"
	"github.com/frc-utilities/libds/pkgs/output"
)

//
// Actions - a controller level
// prints are allowed only via Printer interface
//
// Each action assembles everything needed for one driver-station task:
// run the full control loop, or dump a single packet for inspection.
//

type DsApp struct {
	Config *config.Configuration

	// runtime parameters
	Debug bool
	P     output.Printer
}

// Initialize is running after parsing the arguments, so we know how to configure the app
func (app *DsApp) Initialize() error {
	// logging
	if app.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// configuration
	logrus.Debug("Reading configuration files")
	cfg, cfgErr := config.NewConfig()
	app.Config = cfg
	if cfgErr != nil {
		return fmt.Errorf("cannot initialize app: %s", cfgErr)
	}
	return nil
}

// addressFn prefers a configured override over the protocol's derivation.
func addressFn(override string, derived func() string) func() string {
	return func() string {
		if override != "" {
			return override
		}
		return derived()
	}
}
