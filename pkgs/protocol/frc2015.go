package protocol

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/frc-utilities/libds/pkgs/joysticks"
	"github.com/frc-utilities/libds/pkgs/state"
)

// Control byte bits shared with the FMS.
//
//	bit 0x01  test mode
//	bit 0x02  autonomous (teleoperated sets no mode bit)
//	bit 0x04  enabled
//	bit 0x08  robot ping
//	bit 0x10  radio ping
//	bit 0x20  robot communications
//	bit 0x80  emergency stop
const (
	fmsModeTest   = 0x01
	fmsModeAuto   = 0x02
	fmsEnabled    = 0x04
	fmsRobotPing  = 0x08
	fmsRadioPing  = 0x10
	fmsRobotComms = 0x20
	fmsEStop      = 0x80
)

// Control byte bits sent to the robot.
const (
	robotModeTest    = 0x01
	robotModeAuto    = 0x02
	robotEnabled     = 0x04
	robotFMSAttached = 0x08
	robotEStop       = 0x80
)

// Request byte values sent to the robot. The inbound request byte reuses
// 0x01 as "send me wall-clock data".
const (
	requestNoComms     = 0x00
	requestTimeData    = 0x01
	requestRestartCode = 0x04
	requestReboot      = 0x08
	requestNormal      = 0x80
)

// Tag bytes.
const (
	tagDSVersion = 0x00 // outbound FMS packet, byte [2]
	tagGeneral   = 0x01 // outbound robot packet, byte [2]
	tagJoystick  = 0x0c
	tagDate      = 0x0f
	tagTimezone  = 0x10

	// inbound extended robot telemetry
	tagDiskInfo = 0x04
	tagCPUInfo  = 0x05
	tagRAMInfo  = 0x06
	tagCANInfo  = 0x0e
)

// Robot status byte bits.
const statusHasCode = 0x20

// Fixed length prefix of the date block in the clock payload.
const dateBlockLength = 0x0b

// UDP endpoints of the 2015 control system.
const (
	fmsInPort    = 1120
	fmsOutPort   = 1160
	robotInPort  = 1150
	robotOutPort = 1110
	consInPort   = 6666
	consOutPort  = 6668
)

// FRC2015 implements the 2015 driver-station protocol: an 8-byte status
// packet to the FMS every 500 ms and a robot packet every 20 ms whose
// payload the robot steers between joystick data and wall-clock data.
type FRC2015 struct {
	state  *state.DsState
	sticks joysticks.Source

	// Packet counters. Each one has a single writer (the emission
	// goroutine of its peer) and wraps at 2^16.
	sentFMSPackets   atomic.Uint32
	sentRobotPackets atomic.Uint32

	// One-shot latches. sendTimeData is driven by the robot parser,
	// rebootRobot/restartCode by user commands; the robot watchdog clears
	// all three.
	sendTimeData atomic.Bool
	rebootRobot  atomic.Bool
	restartCode  atomic.Bool

	now func() time.Time
}

var _ Protocol = (*FRC2015)(nil)

// NewFRC2015 binds the protocol to a live DS state. Without a joystick
// source attached the robot packets simply carry no joystick payload.
func NewFRC2015(st *state.DsState) *FRC2015 {
	return &FRC2015{state: st, now: time.Now}
}

// AttachJoysticks sets the joystick source read by the robot packet
// builder. Call it before the emission loop starts.
func (p *FRC2015) AttachJoysticks(sticks joysticks.Source) {
	p.sticks = sticks
}

func (p *FRC2015) Name() string {
	return "FRC 2015"
}

// FMSAddress is unknown up front; the socket layer sends to the source
// of the most recent FMS datagram.
func (p *FRC2015) FMSAddress() string {
	return ""
}

// RadioAddress splits the 4-digit team number in half: team 4499 lives
// behind 10.44.99.1.
func (p *FRC2015) RadioAddress() string {
	team := p.state.Team()
	return fmt.Sprintf("10.%d.%d.1", team/100, team%100)
}

func (p *FRC2015) RobotAddress() string {
	return fmt.Sprintf("roboRIO-%d.local", p.state.Team())
}

// BuildFMSPacket produces the fixed 8-byte FMS status report:
//
//	[0..2)  packet counter, big endian
//	[2]     DS version tag
//	[3]     control code
//	[4..6)  team number, big endian
//	[6]     battery voltage, integer part
//	[7]     battery voltage, fractional part
func (p *FRC2015) BuildFMSPacket() []byte {
	count := uint16(p.sentFMSPackets.Add(1) - 1)

	buf := make([]byte, 0, 8)
	buf = binary.BigEndian.AppendUint16(buf, count)
	buf = append(buf, tagDSVersion, p.fmsControlCode())
	buf = binary.BigEndian.AppendUint16(buf, p.state.Team())
	hi, lo := EncodeVoltage(p.state.Voltage())
	return append(buf, hi, lo)
}

func (p *FRC2015) fmsControlCode() byte {
	var code byte
	switch p.state.Mode() {
	case state.ModeTest:
		code |= fmsModeTest
	case state.ModeAutonomous:
		code |= fmsModeAuto
	}
	if p.state.Enabled() {
		code |= fmsEnabled
	}
	if p.state.EmergencyStopped() {
		code |= fmsEStop
	}
	if p.state.RadioComms() {
		code |= fmsRadioPing
	}
	if p.state.RobotComms() {
		code |= fmsRobotPing | fmsRobotComms
	}
	return code
}

// BuildRadioPacket emits nothing; the 2015 radio is configured out of band.
func (p *FRC2015) BuildRadioPacket() []byte {
	return []byte{}
}

// BuildRobotPacket produces the mandatory 6-byte header
//
//	[0..2)  packet counter, big endian
//	[2]     general tag
//	[3]     control code
//	[4]     request code
//	[5]     station byte
//
// followed by exactly one of: the wall-clock payload (when the robot asked
// for it), the joystick payload (from the seventh emission on), or nothing.
func (p *FRC2015) BuildRobotPacket() []byte {
	count := uint16(p.sentRobotPackets.Add(1) - 1)

	buf := make([]byte, 0, 64)
	buf = binary.BigEndian.AppendUint16(buf, count)
	buf = append(buf,
		tagGeneral,
		p.robotControlCode(),
		p.robotRequestCode(),
		StationByte(p.state.Alliance(), p.state.Position()))

	switch {
	case p.sendTimeData.Load():
		buf = p.appendClockData(buf)
	case count > 5:
		buf = p.appendJoystickData(buf)
	}
	return buf
}

func (p *FRC2015) robotControlCode() byte {
	var code byte
	switch p.state.Mode() {
	case state.ModeTest:
		code |= robotModeTest
	case state.ModeAutonomous:
		code |= robotModeAuto
	}
	if p.state.Enabled() {
		code |= robotEnabled
	}
	if p.state.FMSComms() {
		code |= robotFMSAttached
	}
	if p.state.EmergencyStopped() {
		code |= robotEStop
	}
	return code
}

// robotRequestCode reports a dead link as 0x00 no matter what is latched;
// a pending reboot outranks a pending code restart.
func (p *FRC2015) robotRequestCode() byte {
	if !p.state.RobotComms() {
		return requestNoComms
	}
	if p.rebootRobot.Load() {
		return requestReboot
	}
	if p.restartCode.Load() {
		return requestRestartCode
	}
	return requestNormal
}

// appendClockData packs the local wall clock and timezone:
//
//	[0]      date block length
//	[1]      date tag
//	[2..4)   unused
//	[4]      seconds
//	[5]      minutes
//	[6]      hours
//	[7]      day of year, zero based
//	[8]      month, zero based
//	[9]      years since 1900
//	[10]     timezone string length
//	[11]     timezone tag
//	[12..]   timezone abbreviation, UTF-8
func (p *FRC2015) appendClockData(buf []byte) []byte {
	now := p.now()
	zone, _ := now.Zone()
	if zone == "" {
		zone = "UTC"
	}

	buf = append(buf, dateBlockLength, tagDate, 0, 0,
		byte(now.Second()),
		byte(now.Minute()),
		byte(now.Hour()),
		byte(now.YearDay()-1),
		byte(int(now.Month())-1),
		byte((now.Year()-1900)%256))
	buf = append(buf, byte(len(zone)), tagTimezone)
	return append(buf, zone...)
}

// appendJoystickData packs one block per attached joystick, in enumeration
// order:
//
//	[0]          remaining block length
//	[1]          joystick tag
//	[2..2+A)     axis values, signed bytes scaled by 127
//	[2+A]        button count
//	[2+A+1..+3)  button bitfield, big endian
//	[2+A+3]      hat count
//	[2+A+4..]    one 16-bit big-endian value per hat
func (p *FRC2015) appendJoystickData(buf []byte) []byte {
	if p.sticks == nil {
		return buf
	}
	for i := 0; i < p.sticks.Count(); i++ {
		axes := p.sticks.Axes(i)
		buttons := p.sticks.Buttons(i)
		hats := p.sticks.Hats(i)

		buf = append(buf, byte(5+axes+2*hats), tagJoystick)
		for a := 0; a < axes; a++ {
			buf = append(buf, encodeAxis(p.sticks.Axis(i, a)))
		}

		var pressed uint16
		for b := 0; b < buttons; b++ {
			if p.sticks.Button(i, b) {
				pressed |= 1 << b
			}
		}
		buf = append(buf, byte(buttons))
		buf = binary.BigEndian.AppendUint16(buf, pressed)

		buf = append(buf, byte(hats))
		for h := 0; h < hats; h++ {
			buf = binary.BigEndian.AppendUint16(buf, uint16(p.sticks.Hat(i, h)))
		}
	}
	return buf
}

// encodeAxis maps [-1, 1] to a signed byte with scale 127.
func encodeAxis(value float64) byte {
	scaled := int(math.Round(value * 127))
	if scaled > 127 {
		scaled = 127
	} else if scaled < -128 {
		scaled = -128
	}
	return byte(int8(scaled))
}

// ParseFMSPacket applies an inbound FMS datagram:
//
//	[3]  control code (enable + mode)
//	[5]  station byte (alliance + position)
func (p *FRC2015) ParseFMSPacket(data []byte) error {
	if len(data) < 6 {
		return fmt.Errorf("cannot parse FMS packet of %d bytes: %w", len(data), ErrPacketTooShort)
	}

	control := data[3]
	station := data[5]

	p.state.SetEnabled(control&fmsEnabled != 0)
	switch {
	case control&fmsModeAuto != 0:
		p.state.SetMode(state.ModeAutonomous)
	case control&fmsModeTest != 0:
		p.state.SetMode(state.ModeTest)
	default:
		p.state.SetMode(state.ModeTeleoperated)
	}
	p.state.SetAlliance(AllianceOf(station))
	p.state.SetPosition(PositionOf(station))
	return nil
}

// ParseRadioPacket discards the datagram without feeding the watchdog.
func (p *FRC2015) ParseRadioPacket(data []byte) error {
	return ErrRadioPacket
}

// ParseRobotPacket applies an inbound robot datagram:
//
//	[3]      control code (e-stop echo)
//	[4]      status code (user code running)
//	[5..7)   battery voltage
//	[7]      request code (0x01 asks for wall-clock data)
//	[8..]    optional extended telemetry block
func (p *FRC2015) ParseRobotPacket(data []byte) error {
	if len(data) < 8 {
		return fmt.Errorf("cannot parse robot packet of %d bytes: %w", len(data), ErrPacketTooShort)
	}

	control := data[3]
	status := data[4]
	request := data[7]

	p.state.SetEmergencyStopped(control&robotEStop != 0)
	p.state.SetRobotCode(status&statusHasCode != 0)
	p.state.SetVoltage(DecodeVoltage(data[5], data[6]))
	p.sendTimeData.Store(request == requestTimeData)

	if len(data) > 9 {
		p.parseExtended(data[8:])
	}
	return nil
}

// parseExtended dispatches a single telemetry block on the tag that
// follows its length byte. Unknown tags and truncated values are ignored;
// the header fields above were already applied.
func (p *FRC2015) parseExtended(block []byte) {
	switch block[1] {
	case tagCPUInfo:
		if len(block) > 3 {
			p.state.SetCPUUsage(int(block[3]))
		}
	case tagRAMInfo:
		if len(block) > 4 {
			p.state.SetRAMUsage(int(block[4]))
		}
	case tagDiskInfo:
		if len(block) > 4 {
			p.state.SetDiskUsage(int(block[4]))
		}
	case tagCANInfo:
		if len(block) > 10 {
			p.state.SetCANUsage(int(block[10]))
		}
	}
}

func (p *FRC2015) ResetFMS() {}

func (p *FRC2015) ResetRadio() {}

// ResetRobot clears every latch so the next packet reflects a fresh link.
func (p *FRC2015) ResetRobot() {
	p.sendTimeData.Store(false)
	p.rebootRobot.Store(false)
	p.restartCode.Store(false)
}

func (p *FRC2015) RebootRobot() {
	p.rebootRobot.Store(true)
}

func (p *FRC2015) RestartRobotCode() {
	p.restartCode.Store(true)
}

// SentFMSPackets returns the counter the next FMS packet will carry.
func (p *FRC2015) SentFMSPackets() uint16 {
	return uint16(p.sentFMSPackets.Load())
}

// SentRobotPackets returns the counter the next robot packet will carry.
func (p *FRC2015) SentRobotPackets() uint16 {
	return uint16(p.sentRobotPackets.Load())
}

func (p *FRC2015) FMSInterval() time.Duration {
	return 500 * time.Millisecond
}

func (p *FRC2015) RadioInterval() time.Duration {
	return 0
}

func (p *FRC2015) RobotInterval() time.Duration {
	return 20 * time.Millisecond
}

func (p *FRC2015) JoystickCaps() joysticks.Caps {
	return joysticks.Caps{
		MaxJoysticks: 6,
		MaxAxes:      6,
		MaxHats:      1,
		MaxButtons:   10,
	}
}

func (p *FRC2015) Sockets() SocketSet {
	return SocketSet{
		FMS:        SocketSpec{InPort: fmsInPort, OutPort: fmsOutPort},
		Radio:      SocketSpec{Disabled: true},
		Robot:      SocketSpec{InPort: robotInPort, OutPort: robotOutPort},
		NetConsole: SocketSpec{InPort: consInPort, OutPort: consOutPort},
	}
}
