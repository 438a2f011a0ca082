// Package procon2 implements the USB/HID wire protocol of the Nintendo
// Switch 2 Pro Controller: the vendor initialization handshake and the
// decoding of its three input report formats into a normalized state
// snapshot.
package procon2

// Device identity on USB and HID.
const (
	VendorID  = 0x057E
	ProductID = 0x2069

	// USBInterfaceNumber is the vendor interface carrying the bulk
	// endpoints used for the handshake.
	USBInterfaceNumber = 1
)

// State is one decoded controller snapshot. Axes are deflections in
// [AxisMin, AxisMax] with 0 at center; Buttons uses the canonical bit
// assignment below regardless of which report format produced it.
type State struct {
	Buttons uint32

	LX, LY int16
	RX, RY int16
}

// Canonical button bit assignment, identical for every report format.
// The lower 16 bits follow the simple report's button field layout.
const (
	ButtonA uint32 = 1 << iota
	ButtonB
	ButtonY
	ButtonX
	ButtonR
	ButtonZR
	ButtonPlus
	ButtonRStick

	ButtonDown
	ButtonRight
	ButtonLeft
	ButtonUp
	ButtonL
	ButtonZL
	ButtonMinus
	ButtonLStick

	ButtonHome
	ButtonCapture
)
