package sink

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

const uinputPath = "/dev/uinput"

// Uinput is a Sink backed by a Linux uinput device node. Creating one
// registers a new virtual gamepad with the kernel; Close destroys it.
type Uinput struct {
	f *os.File
}

// NewUinput creates a virtual gamepad with the full button and axis
// capability set declared up front. vendor and product become the input
// device identity reported to userspace.
func NewUinput(name string, vendor, product uint16) (*Uinput, error) {
	f, err := os.OpenFile(uinputPath, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", uinputPath, err)
	}
	u := &Uinput{f: f}
	if err := u.create(name, vendor, product); err != nil {
		_ = f.Close()
		return nil, err
	}
	return u, nil
}

func (u *Uinput) ioctl(req, arg uintptr) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, u.f.Fd(), req, arg); errno != 0 {
		return errno
	}
	return nil
}

func (u *Uinput) create(name string, vendor, product uint16) error {
	if err := u.ioctl(uiSetEvBit, evKey); err != nil {
		return fmt.Errorf("declare EV_KEY: %w", err)
	}
	for _, b := range Buttons {
		if err := u.ioctl(uiSetKeyBit, uintptr(b)); err != nil {
			return fmt.Errorf("declare button %s: %w", b, err)
		}
	}
	if err := u.ioctl(uiSetEvBit, evAbs); err != nil {
		return fmt.Errorf("declare EV_ABS: %w", err)
	}

	dev := uinputUserDev{
		ID: inputID{Bustype: busUSB, Vendor: vendor, Product: product, Version: 1},
	}
	copy(dev.Name[:uinputMaxNameSize-1], name)
	for _, a := range Axes {
		if err := u.ioctl(uiSetAbsBit, uintptr(a)); err != nil {
			return fmt.Errorf("declare axis %s: %w", a, err)
		}
		dev.Absmin[a] = AxisMin
		dev.Absmax[a] = AxisMax
	}

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &dev); err != nil {
		return err
	}
	if _, err := u.f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("register device: %w", err)
	}
	if err := u.ioctl(uiDevCreate, 0); err != nil {
		return fmt.Errorf("create device: %w", err)
	}
	return nil
}

func (u *Uinput) send(typ, code uint16, value int32) error {
	// The kernel fills in the timestamp.
	ev := inputEvent{Type: typ, Code: code, Value: value}

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &ev); err != nil {
		return err
	}
	if _, err := u.f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("send event (type=0x%x code=0x%x): %w", typ, code, err)
	}
	return nil
}

func (u *Uinput) SetButton(b Button, pressed bool) error {
	value := int32(0)
	if pressed {
		value = 1
	}
	return u.send(evKey, uint16(b), value)
}

func (u *Uinput) SetAxis(a Axis, value int32) error {
	return u.send(evAbs, uint16(a), value)
}

// Sync flushes the queued events to readers of the virtual device.
func (u *Uinput) Sync() error {
	return u.send(evSyn, synReport, 0)
}

// Close destroys the virtual device and releases the uinput node.
func (u *Uinput) Close() error {
	err := u.ioctl(uiDevDestroy, 0)
	if cerr := u.f.Close(); err == nil {
		err = cerr
	}
	return err
}
