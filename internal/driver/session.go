package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Joshua265/procon2d/pkg/procon2"
)

// FrameReader is the HID input channel of the controller. A read that
// returns zero bytes without an error is a timeout, not a failure.
type FrameReader interface {
	ReadWithTimeout(p []byte, timeout time.Duration) (int, error)
}

// ErrChannelRead marks a failed (not merely timed-out) read. The session
// is dead and must be rebuilt from a fresh handshake.
var ErrChannelRead = errors.New("read channel failed")

// Input reports never exceed 64 bytes.
const frameBufSize = 64

// Session owns one streaming lifetime: one open read channel and one
// emitter whose previous state starts zeroed.
type Session struct {
	reader      FrameReader
	emitter     *Emitter
	readTimeout time.Duration
	logger      *slog.Logger
}

func NewSession(r FrameReader, e *Emitter, readTimeout time.Duration, logger *slog.Logger) *Session {
	return &Session{reader: r, emitter: e, readTimeout: readTimeout, logger: logger}
}

// Run pumps frames from the read channel into the emitter until the
// channel fails or ctx is canceled. Unrecognized or short frames are
// dropped silently; emit failures are logged and streaming continues.
func (s *Session) Run(ctx context.Context) error {
	buf := make([]byte, frameBufSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := s.reader.ReadWithTimeout(buf, s.readTimeout)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrChannelRead, err)
		}
		if n == 0 {
			// Timeout with no data; poll again.
			continue
		}

		st, ok := procon2.DecodeReport(buf[:n])
		if !ok {
			continue
		}
		if err := s.emitter.Emit(st); err != nil {
			s.logger.Error("emit failed", "error", err)
		}
	}
}
