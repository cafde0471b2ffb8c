package protocol

import (
	"math"

	"github.com/frc-utilities/libds/pkgs/state"
)

// EncodeVoltage splits a battery voltage into the wire pair
// (integer part, fractional part * 256).
func EncodeVoltage(v float64) (byte, byte) {
	if v < 0 {
		v = 0
	}
	if v >= 256 {
		return 0xFF, 0xFF
	}
	whole := math.Floor(v)
	frac := math.Floor((v - whole) * 256)
	if frac > 255 {
		frac = 255
	}
	return byte(whole), byte(frac)
}

// DecodeVoltage reassembles the wire pair produced by EncodeVoltage.
func DecodeVoltage(hi, lo byte) float64 {
	return float64(hi) + float64(lo)/256
}

// EncodeU16 splits a 16-bit value into big-endian bytes.
func EncodeU16(x uint16) (byte, byte) {
	return byte(x >> 8), byte(x)
}

// StationByte packs alliance and position into the single wire byte:
// red 1..3 -> 0..2, blue 1..3 -> 3..5.
func StationByte(alliance state.Alliance, position state.Position) byte {
	b := byte(position)
	if alliance == state.AllianceBlue {
		b += 3
	}
	return b
}

// AllianceOf inverts the station byte. Out-of-range bytes fall back to red.
func AllianceOf(station byte) state.Alliance {
	if station >= 3 && station <= 5 {
		return state.AllianceBlue
	}
	return state.AllianceRed
}

// PositionOf inverts the station byte. Out-of-range bytes fall back to
// position 1.
func PositionOf(station byte) state.Position {
	if station > 5 {
		return state.Position1
	}
	return state.Position(station % 3)
}
