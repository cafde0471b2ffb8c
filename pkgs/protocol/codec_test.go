package protocol

import (
	"testing"

	"github.com/frc-utilities/libds/pkgs/state"
)

func TestEncodeVoltage(t *testing.T) {
	cases := []struct {
		input      float64
		expectedHi byte
		expectedLo byte
	}{
		{0, 0x00, 0x00},
		{12.5, 0x0C, 0x80},
		{12.0, 0x0C, 0x00},
		{0.25, 0x00, 0x40},
		{-3, 0x00, 0x00},
		{300, 0xFF, 0xFF},
	}

	for _, c := range cases {
		hi, lo := EncodeVoltage(c.input)
		if hi != c.expectedHi || lo != c.expectedLo {
			t.Errorf("EncodeVoltage(%v) = (%02X, %02X); want (%02X, %02X)",
				c.input, hi, lo, c.expectedHi, c.expectedLo)
		}
	}
}

func TestVoltageRoundTrip(t *testing.T) {
	for v := 0.0; v < 256; v += 0.37 {
		hi, lo := EncodeVoltage(v)
		got := DecodeVoltage(hi, lo)
		diff := v - got
		if diff < 0 {
			diff = -diff
		}
		if diff > 1.0/256 {
			t.Errorf("DecodeVoltage(EncodeVoltage(%v)) = %v; off by %v", v, got, diff)
		}
	}
}

func TestEncodeU16(t *testing.T) {
	cases := []struct {
		input      uint16
		expectedHi byte
		expectedLo byte
	}{
		{0x0000, 0x00, 0x00},
		{0x0001, 0x00, 0x01},
		{0x1193, 0x11, 0x93},
		{0xFFFF, 0xFF, 0xFF},
	}

	for _, c := range cases {
		hi, lo := EncodeU16(c.input)
		if hi != c.expectedHi || lo != c.expectedLo {
			t.Errorf("EncodeU16(%04X) = (%02X, %02X); want (%02X, %02X)",
				c.input, hi, lo, c.expectedHi, c.expectedLo)
		}
	}
}

func TestStationByte(t *testing.T) {
	cases := []struct {
		alliance state.Alliance
		position state.Position
		expected byte
	}{
		{state.AllianceRed, state.Position1, 0},
		{state.AllianceRed, state.Position2, 1},
		{state.AllianceRed, state.Position3, 2},
		{state.AllianceBlue, state.Position1, 3},
		{state.AllianceBlue, state.Position2, 4},
		{state.AllianceBlue, state.Position3, 5},
	}

	for _, c := range cases {
		got := StationByte(c.alliance, c.position)
		if got != c.expected {
			t.Errorf("StationByte(%v, %v) = %d; want %d", c.alliance, c.position, got, c.expected)
		}
		if AllianceOf(got) != c.alliance || PositionOf(got) != c.position {
			t.Errorf("station byte %d does not invert to (%v, %v)", got, c.alliance, c.position)
		}
	}
}

func TestStationByteOutOfRange(t *testing.T) {
	for _, b := range []byte{6, 7, 100, 255} {
		if AllianceOf(b) != state.AllianceRed {
			t.Errorf("AllianceOf(%d) should fall back to red", b)
		}
		if PositionOf(b) != state.Position1 {
			t.Errorf("PositionOf(%d) should fall back to position 1", b)
		}
	}
}
