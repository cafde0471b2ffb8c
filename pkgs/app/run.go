package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/frc-utilities/libds/pkgs/joysticks"
	"github.com/frc-utilities/libds/pkgs/metrics"
	"github.com/frc-utilities/libds/pkgs/netconsole"
	"github.com/frc-utilities/libds/pkgs/output"
	"github.com/frc-utilities/libds/pkgs/protocol"
	"github.com/frc-utilities/libds/pkgs/scheduler"
	"github.com/frc-utilities/libds/pkgs/sockets"
	"github.com/frc-utilities/libds/pkgs/state"
	"github.com/frc-utilities/libds/pkgs/syntax"
)

// RunAction drives the full driver-station loop until interrupted.
func (app *DsApp) RunAction(team uint16, mode state.ControlMode, enable bool, joystickList string, metricsAddr string) error {
	st := state.New()
	if team == 0 {
		team = app.Config.Team
	}
	st.SetTeam(team)
	st.SetMode(mode)
	st.SetEnabled(enable)

	proto := protocol.NewFRC2015(st)
	sticks := joysticks.NewArray(proto.JoystickCaps())
	proto.AttachJoysticks(sticks)
	if joystickList != "" {
		layouts, err := syntax.ParseJoystickString(joystickList, ",")
		if err != nil {
			return err
		}
		for _, layout := range layouts {
			if _, err := sticks.Attach(layout.Axes, layout.Buttons, layout.Hats); err != nil {
				return err
			}
		}
	}

	socks := proto.Sockets()
	fms := sockets.NewPeer("fms", socks.FMS, addressFn(app.Config.Addresses.FMS, proto.FMSAddress))
	robot := sockets.NewPeer("robot", socks.Robot, addressFn(app.Config.Addresses.Robot, proto.RobotAddress))

	mets := metrics.New(nil)
	if metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				logrus.Warnf("Metrics endpoint failed: %v", err)
			}
		}()
	}

	sched := scheduler.New(proto, st, fms, robot, scheduler.Options{
		RobotGrace: time.Duration(app.Config.Watchdog.RobotGraceMs) * time.Millisecond,
		FMSGrace:   time.Duration(app.Config.Watchdog.FmsGraceMs) * time.Millisecond,
		Metrics:    mets,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	console := netconsole.New(socks.NetConsole, output.TaggedPrinter{Tag: "robot", P: app.P})
	go func() {
		if err := console.Run(ctx); err != nil {
			logrus.Warnf("Robot console listener failed: %v", err)
		}
	}()

	go app.statusLoop(ctx, st)

	app.P.Printf("Driving team %d as %s, press Ctrl+C to stop\n", team, mode)
	if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// statusLoop prints one line per second so the operator sees the link
// state without a GUI.
func (app *DsApp) statusLoop(ctx context.Context, st *state.DsState) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.P.Printf("mode=%s enabled=%t robot=%s code=%t voltage=%.2f fms=%s\n",
				st.Mode(), st.Enabled(),
				linkWord(st.RobotComms()), st.RobotCode(), st.Voltage(),
				linkWord(st.FMSComms()))
		}
	}
}

func linkWord(up bool) string {
	if up {
		return "up"
	}
	return "down"
}
