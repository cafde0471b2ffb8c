package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frc-utilities/libds/pkgs/state"
)

func TestParseMode_Teleoperated(t *testing.T) {
	for _, input := range []string{"", "teleoperated", "teleop"} {
		mode, err := parseMode(input)
		assert.Equal(t, nil, err, "unexpected error")
		assert.Equal(t, state.ModeTeleoperated, mode)
	}
}

func TestParseMode_Autonomous(t *testing.T) {
	for _, input := range []string{"autonomous", "auto"} {
		mode, err := parseMode(input)
		assert.Equal(t, nil, err, "unexpected error")
		assert.Equal(t, state.ModeAutonomous, mode)
	}
}

func TestParseMode_Test(t *testing.T) {
	mode, err := parseMode("test")
	assert.Equal(t, nil, err, "unexpected error")
	assert.Equal(t, state.ModeTest, mode)
}

func TestParseMode_Invalid(t *testing.T) {
	_, err := parseMode("practice")
	assert.NotNil(t, err, "expected error for invalid mode")
}
