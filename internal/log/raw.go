package log

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger dumps wire traffic (handshake packets, HID input frames) for
// protocol debugging. Implementations must be safe for use from the
// session loop and must be cheap when disabled.
type RawLogger interface {
	// Packet records one packet with a short direction tag such as
	// "usb-out" or "hid-in".
	Packet(direction string, data []byte)
}

// NewRaw returns a RawLogger writing hex dumps to w. A nil writer yields
// a no-op logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

type rawLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (r *rawLogger) Packet(direction string, data []byte) {
	if r.w == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "%s %-8s % x\n",
		time.Now().Format("15:04:05.000000"), direction, data)
}
