package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	st := New()

	assert.Equal(t, uint16(0), st.Team())
	assert.Equal(t, ModeTeleoperated, st.Mode())
	assert.Equal(t, AllianceRed, st.Alliance())
	assert.Equal(t, Position1, st.Position())
	assert.False(t, st.Enabled())
	assert.False(t, st.EmergencyStopped())
	assert.False(t, st.RobotComms())
	assert.False(t, st.RadioComms())
	assert.False(t, st.FMSComms())
	assert.False(t, st.RobotCode())
	assert.Equal(t, 0.0, st.Voltage())
}

func TestSettersAndGetters(t *testing.T) {
	st := New()

	st.SetTeam(4499)
	st.SetMode(ModeAutonomous)
	st.SetAlliance(AllianceBlue)
	st.SetPosition(Position3)
	st.SetEnabled(true)
	st.SetEmergencyStopped(true)
	st.SetRobotComms(true)
	st.SetRadioComms(true)
	st.SetFMSComms(true)
	st.SetRobotCode(true)
	st.SetVoltage(12.34)

	assert.Equal(t, uint16(4499), st.Team())
	assert.Equal(t, ModeAutonomous, st.Mode())
	assert.Equal(t, AllianceBlue, st.Alliance())
	assert.Equal(t, Position3, st.Position())
	assert.True(t, st.Enabled())
	assert.True(t, st.EmergencyStopped())
	assert.True(t, st.RobotComms())
	assert.True(t, st.RadioComms())
	assert.True(t, st.FMSComms())
	assert.True(t, st.RobotCode())
	assert.InDelta(t, 12.34, st.Voltage(), 0.001)
}

func TestVoltageNeverNegative(t *testing.T) {
	st := New()
	st.SetVoltage(-5)
	assert.Equal(t, 0.0, st.Voltage())
}

func TestUsageClamping(t *testing.T) {
	st := New()

	st.SetCPUUsage(150)
	st.SetRAMUsage(-10)
	st.SetDiskUsage(55)
	st.SetCANUsage(100)

	assert.Equal(t, 100, st.CPUUsage())
	assert.Equal(t, 0, st.RAMUsage())
	assert.Equal(t, 55, st.DiskUsage())
	assert.Equal(t, 100, st.CANUsage())
}

func TestModeStrings(t *testing.T) {
	cases := []struct {
		mode     ControlMode
		expected string
	}{
		{ModeTeleoperated, "teleoperated"},
		{ModeAutonomous, "autonomous"},
		{ModeTest, "test"},
		{ControlMode(99), "unknown"},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, c.mode.String())
	}
}
