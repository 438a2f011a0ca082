// Package sink abstracts the virtual input device the driver feeds. The
// capability set is fixed: 14 buttons, 4 d-pad directions and 4 absolute
// axes ranged [AxisMin, AxisMax].
package sink

import "fmt"

// Button identifies a discrete capability by its Linux input key code.
type Button uint16

const (
	BtnSouth  Button = 0x130
	BtnEast   Button = 0x131
	BtnC      Button = 0x132
	BtnNorth  Button = 0x133
	BtnWest   Button = 0x134
	BtnTL     Button = 0x136
	BtnTR     Button = 0x137
	BtnTL2    Button = 0x138
	BtnTR2    Button = 0x139
	BtnSelect Button = 0x13a
	BtnStart  Button = 0x13b
	BtnMode   Button = 0x13c
	BtnThumbL Button = 0x13d
	BtnThumbR Button = 0x13e

	BtnDpadUp    Button = 0x220
	BtnDpadDown  Button = 0x221
	BtnDpadLeft  Button = 0x222
	BtnDpadRight Button = 0x223
)

// Axis identifies an absolute axis by its Linux input code.
type Axis uint16

const (
	AxisX  Axis = 0x00
	AxisY  Axis = 0x01
	AxisRX Axis = 0x03
	AxisRY Axis = 0x04
)

// Axis value range declared for every absolute axis.
const (
	AxisMin = -32767
	AxisMax = 32767
)

// Buttons lists every button capability the virtual pad declares, d-pad
// directions included.
var Buttons = []Button{
	BtnSouth, BtnEast, BtnC, BtnNorth, BtnWest,
	BtnTL, BtnTR, BtnTL2, BtnTR2,
	BtnSelect, BtnStart, BtnMode,
	BtnThumbL, BtnThumbR,
	BtnDpadUp, BtnDpadDown, BtnDpadLeft, BtnDpadRight,
}

// Axes lists the absolute axes the virtual pad declares.
var Axes = []Axis{AxisX, AxisY, AxisRX, AxisRY}

// Sink is a capability-declaring virtual input device accepting
// press/release and absolute axis events. Events take effect on Sync.
type Sink interface {
	SetButton(b Button, pressed bool) error
	SetAxis(a Axis, value int32) error
	Sync() error
	Close() error
}

var buttonNames = map[Button]string{
	BtnSouth:     "south",
	BtnEast:      "east",
	BtnC:         "c",
	BtnNorth:     "north",
	BtnWest:      "west",
	BtnTL:        "tl",
	BtnTR:        "tr",
	BtnTL2:       "tl2",
	BtnTR2:       "tr2",
	BtnSelect:    "select",
	BtnStart:     "start",
	BtnMode:      "mode",
	BtnThumbL:    "thumbl",
	BtnThumbR:    "thumbr",
	BtnDpadUp:    "dpad-up",
	BtnDpadDown:  "dpad-down",
	BtnDpadLeft:  "dpad-left",
	BtnDpadRight: "dpad-right",
}

func (b Button) String() string {
	if name, ok := buttonNames[b]; ok {
		return name
	}
	return fmt.Sprintf("button(0x%x)", uint16(b))
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisRX:
		return "rx"
	case AxisRY:
		return "ry"
	}
	return fmt.Sprintf("axis(0x%x)", uint16(a))
}
