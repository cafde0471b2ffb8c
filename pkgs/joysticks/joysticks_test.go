package joysticks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCaps() Caps {
	return Caps{MaxJoysticks: 6, MaxAxes: 6, MaxHats: 1, MaxButtons: 10}
}

func TestAttachEnforcesCaps(t *testing.T) {
	a := NewArray(testCaps())

	for i := 0; i < 6; i++ {
		idx, err := a.Attach(6, 10, 1)
		assert.Nil(t, err)
		assert.Equal(t, i, idx)
	}
	_, err := a.Attach(1, 1, 0)
	assert.NotNil(t, err, "seventh joystick must be rejected")

	a.DetachAll()
	assert.Equal(t, 0, a.Count())

	_, err = a.Attach(7, 0, 0)
	assert.NotNil(t, err, "too many axes")
	_, err = a.Attach(0, 11, 0)
	assert.NotNil(t, err, "too many buttons")
	_, err = a.Attach(0, 0, 2)
	assert.NotNil(t, err, "too many hats")
}

func TestTopologyReadback(t *testing.T) {
	a := NewArray(testCaps())
	_, err := a.Attach(2, 4, 1)
	assert.Nil(t, err)

	assert.Equal(t, 1, a.Count())
	assert.Equal(t, 2, a.Axes(0))
	assert.Equal(t, 4, a.Buttons(0))
	assert.Equal(t, 1, a.Hats(0))
}

func TestAxisClamping(t *testing.T) {
	a := NewArray(testCaps())
	_, err := a.Attach(2, 0, 0)
	assert.Nil(t, err)

	assert.Nil(t, a.SetAxis(0, 0, 1.5))
	assert.Equal(t, 1.0, a.Axis(0, 0))

	assert.Nil(t, a.SetAxis(0, 1, -2))
	assert.Equal(t, -1.0, a.Axis(0, 1))
}

func TestButtonAndHat(t *testing.T) {
	a := NewArray(testCaps())
	_, err := a.Attach(0, 2, 1)
	assert.Nil(t, err)

	assert.Nil(t, a.SetButton(0, 1, true))
	assert.True(t, a.Button(0, 1))
	assert.False(t, a.Button(0, 0))

	assert.Nil(t, a.SetHat(0, 0, 270))
	assert.Equal(t, int16(270), a.Hat(0, 0))
}

func TestOutOfRangeAccess(t *testing.T) {
	a := NewArray(testCaps())
	_, err := a.Attach(1, 1, 0)
	assert.Nil(t, err)

	assert.NotNil(t, a.SetAxis(0, 5, 0.1))
	assert.NotNil(t, a.SetButton(3, 0, true))
	assert.NotNil(t, a.SetHat(0, 0, 90))

	assert.Equal(t, 0.0, a.Axis(9, 0))
	assert.False(t, a.Button(0, 9))
	assert.Equal(t, int16(0), a.Hat(0, 0))
	assert.Equal(t, 0, a.Axes(9))
}
