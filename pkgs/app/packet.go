package app

import (
	"fmt"

	"github.com/frc-utilities/libds/pkgs/protocol"
	"github.com/frc-utilities/libds/pkgs/state"
)

// PacketAction prints the hex dump of a single outbound packet for the
// given state, without touching the network. A diagnostic aid.
func (app *DsApp) PacketAction(peer string, team uint16, mode state.ControlMode, enable bool, estop bool, robotComms bool, reboot bool, voltage float64) error {
	st := state.New()
	if team == 0 {
		team = app.Config.Team
	}
	st.SetTeam(team)
	st.SetMode(mode)
	st.SetEnabled(enable)
	st.SetEmergencyStopped(estop)
	st.SetVoltage(voltage)
	st.SetRobotComms(robotComms)

	proto := protocol.NewFRC2015(st)
	if reboot {
		proto.RebootRobot()
	}

	var data []byte
	switch peer {
	case "fms":
		data = proto.BuildFMSPacket()
	case "robot":
		data = proto.BuildRobotPacket()
	case "radio":
		data = proto.BuildRadioPacket()
	default:
		return fmt.Errorf("unknown peer %q (want fms, robot or radio)", peer)
	}

	app.P.Printf("% X\n", data)
	return nil
}
