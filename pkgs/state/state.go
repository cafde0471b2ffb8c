package state

import (
	"math"
	"sync/atomic"
)

// ControlMode selects what the robot program runs when enabled.
type ControlMode int32

const (
	ModeTeleoperated ControlMode = iota
	ModeAutonomous
	ModeTest
)

func (m ControlMode) String() string {
	switch m {
	case ModeTeleoperated:
		return "teleoperated"
	case ModeAutonomous:
		return "autonomous"
	case ModeTest:
		return "test"
	}
	return "unknown"
}

// Alliance is the side of the field the team plays on.
type Alliance int32

const (
	AllianceRed Alliance = iota
	AllianceBlue
)

func (a Alliance) String() string {
	if a == AllianceBlue {
		return "blue"
	}
	return "red"
}

// Position is the station slot within an alliance.
type Position int32

const (
	Position1 Position = iota
	Position2
	Position3
)

func (p Position) String() string {
	switch p {
	case Position2:
		return "2"
	case Position3:
		return "3"
	}
	return "1"
}

// DsState is the live driver-station state shared between the packet
// builders, the packet parsers, the watchdog and the user-facing layers.
// Every field has its own atomic cell; readers never block writers and a
// packet may observe two simultaneous changes in different fields at
// different times. The next packet settles it.
type DsState struct {
	team     atomic.Uint32
	alliance atomic.Int32
	position atomic.Int32
	mode     atomic.Int32

	enabled  atomic.Bool
	estopped atomic.Bool

	robotComms atomic.Bool
	radioComms atomic.Bool
	fmsComms   atomic.Bool

	robotCode atomic.Bool
	voltage   atomic.Uint64

	cpuUsage  atomic.Int32
	ramUsage  atomic.Int32
	diskUsage atomic.Int32
	canUsage  atomic.Int32
}

func New() *DsState {
	return &DsState{}
}

func (s *DsState) Team() uint16 { return uint16(s.team.Load()) }
func (s *DsState) SetTeam(team uint16) { s.team.Store(uint32(team)) }

func (s *DsState) Alliance() Alliance { return Alliance(s.alliance.Load()) }
func (s *DsState) SetAlliance(a Alliance) { s.alliance.Store(int32(a)) }

func (s *DsState) Position() Position { return Position(s.position.Load()) }
func (s *DsState) SetPosition(p Position) { s.position.Store(int32(p)) }

func (s *DsState) Mode() ControlMode { return ControlMode(s.mode.Load()) }
func (s *DsState) SetMode(m ControlMode) { s.mode.Store(int32(m)) }

func (s *DsState) Enabled() bool { return s.enabled.Load() }
func (s *DsState) SetEnabled(on bool) { s.enabled.Store(on) }

func (s *DsState) EmergencyStopped() bool { return s.estopped.Load() }
func (s *DsState) SetEmergencyStopped(on bool) { s.estopped.Store(on) }

func (s *DsState) RobotComms() bool { return s.robotComms.Load() }
func (s *DsState) SetRobotComms(on bool) { s.robotComms.Store(on) }

func (s *DsState) RadioComms() bool { return s.radioComms.Load() }
func (s *DsState) SetRadioComms(on bool) { s.radioComms.Store(on) }

func (s *DsState) FMSComms() bool { return s.fmsComms.Load() }
func (s *DsState) SetFMSComms(on bool) { s.fmsComms.Store(on) }

func (s *DsState) RobotCode() bool { return s.robotCode.Load() }
func (s *DsState) SetRobotCode(on bool) { s.robotCode.Store(on) }

// Voltage is the last battery voltage reported by the robot, in volts.
func (s *DsState) Voltage() float64 {
	return math.Float64frombits(s.voltage.Load())
}

func (s *DsState) SetVoltage(v float64) {
	if v < 0 {
		v = 0
	}
	s.voltage.Store(math.Float64bits(v))
}

func (s *DsState) CPUUsage() int { return int(s.cpuUsage.Load()) }
func (s *DsState) SetCPUUsage(usage int) { s.cpuUsage.Store(clampUsage(usage)) }

func (s *DsState) RAMUsage() int { return int(s.ramUsage.Load()) }
func (s *DsState) SetRAMUsage(usage int) { s.ramUsage.Store(clampUsage(usage)) }

func (s *DsState) DiskUsage() int { return int(s.diskUsage.Load()) }
func (s *DsState) SetDiskUsage(usage int) { s.diskUsage.Store(clampUsage(usage)) }

func (s *DsState) CANUsage() int { return int(s.canUsage.Load()) }
func (s *DsState) SetCANUsage(usage int) { s.canUsage.Store(clampUsage(usage)) }

// clampUsage keeps utilization percentages in 0..100
func clampUsage(usage int) int32 {
	if usage < 0 {
		return 0
	}
	if usage > 100 {
		return 100
	}
	return int32(usage)
}
