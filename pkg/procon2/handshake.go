package procon2

import (
	"errors"
	"fmt"
	"time"
)

// BulkWriter is the bulk-out endpoint the handshake is replayed over.
// Implementations own the per-write timeout.
type BulkWriter interface {
	Write(p []byte) (int, error)
}

// ErrHandshakeFailed wraps any write failure during the initialization
// sequence. The whole sequence must be replayed; individual packets are
// never retried.
var ErrHandshakeFailed = errors.New("handshake failed")

// packetDelay spaces out handshake packets; the controller drops commands
// that arrive back to back.
const packetDelay = 3 * time.Millisecond

// handshakeSequence puts the controller into streaming mode. The payloads
// must be reproduced bit for bit; the 0xFF runs are MAC address and LTK
// placeholders the controller accepts when not paired.
var handshakeSequence = [][]byte{
	// 0x03 init
	{0x03, 0x91, 0x00, 0x0d, 0x00, 0x08, 0x00, 0x00, 0x01, 0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
	{0x07, 0x91, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00},
	{0x16, 0x91, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00},
	// 0x15 MAC request
	{0x15, 0x91, 0x00, 0x01, 0x00, 0x0e, 0x00, 0x00, 0x00, 0x02,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
	// 0x15 LTK request
	{0x15, 0x91, 0x00, 0x02, 0x00, 0x11, 0x00, 0x00, 0x00,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
	// 0x15 arg3
	{0x15, 0x91, 0x00, 0x03, 0x00, 0x01, 0x00, 0x00, 0x00},
	{0x09, 0x91, 0x00, 0x07, 0x00, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	// 0x0c IMU enable #1
	{0x0c, 0x91, 0x00, 0x02, 0x00, 0x04, 0x00, 0x00, 0x27, 0x00, 0x00, 0x00},
	{0x11, 0x91, 0x00, 0x03, 0x00, 0x00, 0x00, 0x00},
	// 0x0a long config
	{0x0a, 0x91, 0x00, 0x08, 0x00, 0x14, 0x00, 0x00, 0x01,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0x35, 0x00, 0x46, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	// 0x0c IMU enable #2
	{0x0c, 0x91, 0x00, 0x04, 0x00, 0x04, 0x00, 0x00, 0x27, 0x00, 0x00, 0x00},
	// 0x03 haptics enable
	{0x03, 0x91, 0x00, 0x0a, 0x00, 0x04, 0x00, 0x00, 0x09, 0x00, 0x00, 0x00},
	{0x10, 0x91, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00},
	{0x01, 0x91, 0x00, 0x0c, 0x00, 0x00, 0x00, 0x00},
	{0x03, 0x91, 0x00, 0x01, 0x00, 0x00, 0x00},
	// 0x0a short variant
	{0x0a, 0x91, 0x00, 0x02, 0x00, 0x04, 0x00, 0x00, 0x03, 0x00, 0x00},
	// 0x09 player LED
	{0x09, 0x91, 0x00, 0x07, 0x00, 0x08, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
}

// SendHandshake replays the vendor initialization sequence over w. Any
// write error aborts the handshake; the caller retries the whole sequence
// after a cooldown.
func SendHandshake(w BulkWriter) error {
	for i, pkt := range handshakeSequence {
		if _, err := w.Write(pkt); err != nil {
			return fmt.Errorf("%w: packet %d/%d (0x%02x): %v",
				ErrHandshakeFailed, i+1, len(handshakeSequence), pkt[0], err)
		}
		time.Sleep(packetDelay)
	}
	return nil
}
