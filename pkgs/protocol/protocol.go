package protocol

import (
	"errors"
	"time"

	"github.com/frc-utilities/libds/pkgs/joysticks"
)

// ErrPacketTooShort is returned by parsers when a datagram is smaller than
// the peer's mandatory header. No state is touched in that case.
var ErrPacketTooShort = errors.New("packet too short")

// ErrRadioPacket is returned for every inbound radio datagram; the radio
// never talks back on a channel this protocol understands.
var ErrRadioPacket = errors.New("radio packets are not handled")

// SocketSpec describes one UDP endpoint pair of a protocol.
type SocketSpec struct {
	InPort   uint16
	OutPort  uint16
	Disabled bool
}

// SocketSet lists every endpoint a protocol uses.
type SocketSet struct {
	FMS        SocketSpec
	Radio      SocketSpec
	Robot      SocketSpec
	NetConsole SocketSpec
}

// Protocol binds packet construction and parsing for the three peers to
// their addresses, cadences and lifecycle hooks. Builders are called by a
// single scheduler goroutine per peer; parsers run on the socket receive
// goroutines. An interval of zero disables emission for that peer.
type Protocol interface {
	Name() string

	// Peer addresses, derived from the team number. An empty string means
	// the address is unknown until the peer talks first; the socket layer
	// then sends to the source of the most recent datagram received from
	// that peer, whether or not its parser accepted it.
	FMSAddress() string
	RadioAddress() string
	RobotAddress() string

	BuildFMSPacket() []byte
	BuildRadioPacket() []byte
	BuildRobotPacket() []byte

	ParseFMSPacket(data []byte) error
	ParseRadioPacket(data []byte) error
	ParseRobotPacket(data []byte) error

	// Reset hooks, called by the watchdog when a peer goes silent.
	ResetFMS()
	ResetRadio()
	ResetRobot()

	// RebootRobot and RestartRobotCode arm one-shot request latches that
	// ride along on the next robot packet.
	RebootRobot()
	RestartRobotCode()

	FMSInterval() time.Duration
	RadioInterval() time.Duration
	RobotInterval() time.Duration

	JoystickCaps() joysticks.Caps
	Sockets() SocketSet
}
