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

	"github.com/Joshua265/procon2d/internal/driver"
	"github.com/Joshua265/procon2d/internal/hidio"
	"github.com/Joshua265/procon2d/internal/log"
	"github.com/Joshua265/procon2d/internal/sink"
	"github.com/Joshua265/procon2d/internal/usbio"
	"github.com/Joshua265/procon2d/pkg/procon2"
)

type Run struct {
	DeviceName  string        `help:"Name of the virtual input device" default:"ProCon2 (virt)" env:"PROCON2D_DEVICE_NAME"`
	ReadTimeout time.Duration `help:"HID read poll timeout" default:"20ms" env:"PROCON2D_READ_TIMEOUT"`
	RetryAfter  time.Duration `help:"Delay before retrying a failed connection" default:"5s" env:"PROCON2D_RETRY_AFTER"`
}

// Run is called by Kong when the run command is executed.
func (r *Run) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := hid.Init(); err != nil {
		return fmt.Errorf("initializing HID subsystem: %w", err)
	}
	defer hid.Exit()

	logger.Info("Waiting for controller",
		"vid", fmt.Sprintf("%04x", procon2.VendorID),
		"pid", fmt.Sprintf("%04x", procon2.ProductID))

	for {
		err := r.session(ctx, logger, rawLogger)
		switch {
		case err == nil || errors.Is(err, context.Canceled):
			logger.Info("Shutting down")
			return nil
		case errors.Is(err, driver.ErrChannelRead):
			// The controller was most likely unplugged mid stream;
			// go straight back to waiting for it.
			logger.Warn("Input channel lost, reconnecting", "error", err)
		case errors.Is(err, usbio.ErrDeviceNotFound):
			logger.Debug("Controller not attached, retrying", "after", r.RetryAfter)
			if !sleepCtx(ctx, r.RetryAfter) {
				return nil
			}
		default:
			logger.Warn("Controller session failed, retrying", "after", r.RetryAfter, "error", err)
			if !sleepCtx(ctx, r.RetryAfter) {
				return nil
			}
		}
	}
}

func (r *Run) session(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	out, err := sink.NewUinput(r.DeviceName, procon2.VendorID, procon2.ProductID)
	if err != nil {
		return fmt.Errorf("creating virtual device: %w", err)
	}
	defer out.Close()

	logger.Info("Virtual device created", "name", r.DeviceName)
	return streamController(ctx, logger, rawLogger, out, r.ReadTimeout)
}

// streamController performs the USB initialization handshake and then pumps
// HID input reports into the given sink until the context is canceled or the
// device goes away.
func streamController(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger, out sink.Sink, readTimeout time.Duration) error {
	conn, err := usbio.Open(rawLogger)
	if err != nil {
		return err
	}
	defer conn.Close()

	logger.Info("Controller attached, sending init sequence")
	if err := procon2.SendHandshake(conn); err != nil {
		return err
	}

	reader, err := hidio.Open(rawLogger)
	if err != nil {
		return err
	}
	defer reader.Close()

	logger.Info("Init sequence complete, streaming input")
	sess := driver.NewSession(reader, driver.NewEmitter(out), readTimeout, logger)
	return sess.Run(ctx)
}

// sleepCtx waits for d and reports whether the wait completed before the
// context was canceled.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
