package app

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frc-utilities/libds/pkgs/config"
	"github.com/frc-utilities/libds/pkgs/state"
)

type recordingPrinter struct {
	lines []string
}

func (r *recordingPrinter) Printf(format string, a ...any) (n int, err error) {
	line := fmt.Sprintf(format, a...)
	r.lines = append(r.lines, line)
	return len(line), nil
}

func newTestApp() (*DsApp, *recordingPrinter) {
	rec := &recordingPrinter{}
	return &DsApp{Config: &config.Configuration{}, P: rec}, rec
}

func TestPacketActionFMS(t *testing.T) {
	app, rec := newTestApp()

	err := app.PacketAction("fms", 4499, state.ModeAutonomous, true, false, true, false, 12.5)
	assert.Nil(t, err)
	// control 0x2E: autonomous | enabled | robot ping | robot comms (radio comms stays down)
	assert.Equal(t, []string{"00 00 00 2E 11 93 0C 80\n"}, rec.lines)
}

func TestPacketActionRobot(t *testing.T) {
	app, rec := newTestApp()

	err := app.PacketAction("robot", 1234, state.ModeTeleoperated, false, false, true, true, 0)
	assert.Nil(t, err)
	// counter 0, general tag, no control bits, reboot request, red 1
	assert.Equal(t, []string{"00 00 01 00 08 00\n"}, rec.lines)
}

func TestPacketActionRadio(t *testing.T) {
	app, rec := newTestApp()

	err := app.PacketAction("radio", 0, state.ModeTeleoperated, false, false, false, false, 0)
	assert.Nil(t, err)
	assert.Equal(t, []string{"\n"}, rec.lines)
}

func TestPacketActionUnknownPeer(t *testing.T) {
	app, _ := newTestApp()

	err := app.PacketAction("router", 0, state.ModeTeleoperated, false, false, false, false, 0)
	assert.NotNil(t, err)
}

func TestPacketActionTeamFromConfig(t *testing.T) {
	app, rec := newTestApp()
	app.Config.Team = 254

	err := app.PacketAction("fms", 0, state.ModeTeleoperated, false, false, false, false, 0)
	assert.Nil(t, err)
	// team 254 = 0x00FE
	assert.Equal(t, []string{"00 00 00 00 00 FE 00 00\n"}, rec.lines)
}
