package procon2

import (
	"encoding/binary"

	"golang.org/x/exp/constraints"
)

// Input report identifiers, first byte of every frame.
const (
	ReportIDFull    = 0x30 // classic full report
	ReportIDFullUSB = 0x09 // Switch 2 USB full report
	ReportIDSimple  = 0x3F // simple report
)

// Axis output range.
const (
	AxisMax = 32767
	AxisMin = -32767
)

const (
	stickCenter   = 2048
	stickDeadZone = 200
)

// fullLayout locates the button and stick fields inside the two full
// report formats. The fields mean the same thing, only the offsets differ.
type fullLayout struct {
	buttons int // 24-bit little-endian button field
	sticks  int // 6 bytes of packed 12-bit stick values
	minLen  int
}

var fullLayouts = map[byte]fullLayout{
	ReportIDFull:    {buttons: 4, sticks: 7, minLen: 13},
	ReportIDFullUSB: {buttons: 3, sticks: 6, minLen: 12},
}

// hatDirections expands the low nibble of the simple report's d-pad byte
// onto the canonical direction bits. 0 is released, 1 through 8 walk the
// compass clockwise starting at up, and anything above 8 reports no
// direction.
var hatDirections = [16]uint32{
	1: ButtonUp,
	2: ButtonUp | ButtonRight,
	3: ButtonRight,
	4: ButtonRight | ButtonDown,
	5: ButtonDown,
	6: ButtonDown | ButtonLeft,
	7: ButtonLeft,
	8: ButtonLeft | ButtonUp,
}

// DecodeReport extracts a state snapshot from one raw frame. It returns
// false for unrecognized report identifiers and for frames shorter than
// their format's minimum length; such frames are dropped, not errors.
func DecodeReport(frame []byte) (State, bool) {
	if len(frame) == 0 {
		return State{}, false
	}
	switch frame[0] {
	case ReportIDFull, ReportIDFullUSB:
		return decodeFull(frame, fullLayouts[frame[0]])
	case ReportIDSimple:
		return decodeSimple(frame)
	}
	return State{}, false
}

func decodeFull(frame []byte, l fullLayout) (State, bool) {
	if len(frame) < l.minLen {
		return State{}, false
	}
	st := State{
		Buttons: uint32(frame[l.buttons]) |
			uint32(frame[l.buttons+1])<<8 |
			uint32(frame[l.buttons+2])<<16,
	}
	st.LX, st.LY = decodeStickPair(frame[l.sticks : l.sticks+3])
	st.RX, st.RY = decodeStickPair(frame[l.sticks+3 : l.sticks+6])
	return st, true
}

func decodeSimple(frame []byte) (State, bool) {
	if len(frame) < 12 {
		return State{}, false
	}
	st := State{
		Buttons: uint32(binary.LittleEndian.Uint16(frame[1:3])) |
			hatDirections[frame[3]&0x0F],
	}
	// Simple report axes are plain signed 16-bit values, no rescaling.
	st.LX = int16(binary.LittleEndian.Uint16(frame[4:6]))
	st.LY = int16(binary.LittleEndian.Uint16(frame[6:8]))
	st.RX = int16(binary.LittleEndian.Uint16(frame[8:10]))
	st.RY = int16(binary.LittleEndian.Uint16(frame[10:12]))
	return st, true
}

// decodeStickPair unpacks one 3-byte group holding a stick's two 12-bit
// axes: byte0 carries the low 8 bits of the horizontal axis and the low
// nibble of byte1 its high 4 bits; the high nibble of byte1 carries the
// low 4 bits of the vertical axis and byte2 its high 8 bits. The vertical
// axis is inverted so positive means down, matching the sink's Y
// orientation.
func decodeStickPair(b []byte) (h, v int16) {
	hraw := int(b[0]) | int(b[1]&0x0F)<<8
	vraw := int(b[1])>>4 | int(b[2])<<4
	return scaleAxis(hraw), -scaleAxis(vraw)
}

// scaleAxis maps one raw 12-bit sample onto [AxisMin, AxisMax], zeroing
// jitter inside the dead zone around center.
func scaleAxis(raw int) int16 {
	c := raw - stickCenter
	if abs(c) < stickDeadZone {
		return 0
	}
	return int16(clamp(c*AxisMax/stickCenter, AxisMin, AxisMax))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp[T constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
