package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sstallion/go-hid"

	"github.com/Joshua265/procon2d/internal/log"
	"github.com/Joshua265/procon2d/internal/sink"
)

type Monitor struct {
	ReadTimeout time.Duration `help:"HID read poll timeout" default:"20ms" env:"PROCON2D_READ_TIMEOUT"`
}

// Run is called by Kong when the monitor command is executed. It decodes the
// controller like the run command but prints input events instead of feeding
// a virtual device.
func (m *Monitor) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := hid.Init(); err != nil {
		return fmt.Errorf("initializing HID subsystem: %w", err)
	}
	defer hid.Exit()

	err := streamController(ctx, logger, rawLogger, &logSink{logger: logger}, m.ReadTimeout)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// logSink prints decoded input events instead of injecting them.
type logSink struct {
	logger *slog.Logger
}

func (s *logSink) SetButton(b sink.Button, pressed bool) error {
	s.logger.Info("button", "name", b.String(), "pressed", pressed)
	return nil
}

func (s *logSink) SetAxis(a sink.Axis, value int32) error {
	s.logger.Info("axis", "name", a.String(), "value", value)
	return nil
}

func (s *logSink) Sync() error  { return nil }
func (s *logSink) Close() error { return nil }
