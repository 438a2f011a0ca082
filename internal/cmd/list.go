package cmd

import (
	"fmt"
	"log/slog"

	"github.com/sstallion/go-hid"

	"github.com/Joshua265/procon2d/pkg/procon2"
)

type List struct {
	All bool `help:"List every HID device, not only matching controllers" short:"a"`
}

// Run is called by Kong when the list command is executed.
func (l *List) Run(logger *slog.Logger) error {
	if err := hid.Init(); err != nil {
		return fmt.Errorf("initializing HID subsystem: %w", err)
	}
	defer hid.Exit()

	vid, pid := uint16(procon2.VendorID), uint16(procon2.ProductID)
	if l.All {
		vid, pid = hid.VendorIDAny, hid.ProductIDAny
	}

	found := false
	err := hid.Enumerate(vid, pid, func(info *hid.DeviceInfo) error {
		found = true
		fmt.Printf("%s  %04x:%04x  %s %s (interface %d)\n",
			info.Path, info.VendorID, info.ProductID, info.MfrStr, info.ProductStr, info.InterfaceNbr)
		return nil
	})
	if err != nil {
		return fmt.Errorf("enumerating HID devices: %w", err)
	}
	if !found {
		logger.Info("No matching devices found")
	}
	return nil
}
