// Package usbio opens the controller's bulk-out channel used for the
// initialization handshake.
package usbio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/gousb"

	"github.com/Joshua265/procon2d/internal/log"
	"github.com/Joshua265/procon2d/pkg/procon2"
)

// ErrDeviceNotFound is returned by Open when no controller is attached.
var ErrDeviceNotFound = errors.New("controller not found on the USB bus")

const writeTimeout = 5 * time.Millisecond

// Conn is an open bulk-out pipe to the controller's vendor interface.
type Conn struct {
	ctx  *gousb.Context
	dev  *gousb.Device
	cfg  *gousb.Config
	intf *gousb.Interface
	out  *gousb.OutEndpoint
	raw  log.RawLogger
}

// Open claims the controller's vendor interface and resolves its bulk-out
// endpoint. The kernel driver is detached automatically while the interface
// is held.
func Open(raw log.RawLogger) (*Conn, error) {
	ctx := gousb.NewContext()

	dev, err := ctx.OpenDeviceWithVIDPID(procon2.VendorID, procon2.ProductID)
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("opening device: %w", err)
	}
	if dev == nil {
		ctx.Close()
		return nil, ErrDeviceNotFound
	}

	if err := dev.SetAutoDetach(true); err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("enabling auto detach: %w", err)
	}

	cfg, err := dev.Config(1)
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("selecting configuration: %w", err)
	}

	intf, err := cfg.Interface(procon2.USBInterfaceNumber, 0)
	if err != nil {
		cfg.Close()
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("claiming interface %d: %w", procon2.USBInterfaceNumber, err)
	}

	conn := &Conn{ctx: ctx, dev: dev, cfg: cfg, intf: intf, raw: raw}

	for _, desc := range intf.Setting.Endpoints {
		if desc.Direction == gousb.EndpointDirectionOut && desc.TransferType == gousb.TransferTypeBulk {
			out, err := intf.OutEndpoint(desc.Number)
			if err != nil {
				conn.Close()
				return nil, fmt.Errorf("opening bulk-out endpoint %d: %w", desc.Number, err)
			}
			conn.out = out
			return conn, nil
		}
	}

	conn.Close()
	return nil, fmt.Errorf("interface %d has no bulk-out endpoint", procon2.USBInterfaceNumber)
}

// Write sends one packet over the bulk-out endpoint with a short deadline so
// a wedged transfer cannot stall the handshake.
func (c *Conn) Write(p []byte) (int, error) {
	if c.raw != nil {
		c.raw.Packet("usb-out", p)
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	return c.out.WriteContext(ctx, p)
}

// Close releases the interface and closes the device. Safe to call on a
// partially opened connection.
func (c *Conn) Close() {
	if c.intf != nil {
		c.intf.Close()
	}
	if c.cfg != nil {
		c.cfg.Close()
	}
	if c.dev != nil {
		c.dev.Close()
	}
	if c.ctx != nil {
		c.ctx.Close()
	}
}
