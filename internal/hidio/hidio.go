// Package hidio reads input reports from the controller's HID interface.
package hidio

import (
	"fmt"
	"time"

	"github.com/sstallion/go-hid"

	"github.com/Joshua265/procon2d/internal/log"
	"github.com/Joshua265/procon2d/pkg/procon2"
)

// Reader wraps the controller's HID device handle.
type Reader struct {
	dev *hid.Device
	raw log.RawLogger
}

// Open connects to the first attached controller.
func Open(raw log.RawLogger) (*Reader, error) {
	dev, err := hid.OpenFirst(procon2.VendorID, procon2.ProductID)
	if err != nil {
		return nil, fmt.Errorf("opening HID device: %w", err)
	}
	return &Reader{dev: dev, raw: raw}, nil
}

// ReadWithTimeout fills p with the next input report. A timeout with no data
// returns (0, nil).
func (r *Reader) ReadWithTimeout(p []byte, timeout time.Duration) (int, error) {
	n, err := r.dev.ReadWithTimeout(p, timeout)
	if err != nil {
		return 0, err
	}
	if n > 0 && r.raw != nil {
		r.raw.Packet("hid-in", p[:n])
	}
	return n, nil
}

// Close releases the device handle.
func (r *Reader) Close() error {
	return r.dev.Close()
}
