// Package config defines the CLI structure and configuration for procon2d.
package config

import (
	"github.com/Joshua265/procon2d/internal/cmd"
)

type Log struct {
	Level   string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"PROCON2D_LOG_LEVEL"`
	File    string `help:"Log file path (default: none; logs only to console)" env:"PROCON2D_LOG_FILE"`
	RawFile string `help:"Raw packet log file path (default: none)" env:"PROCON2D_LOG_RAW_FILE"`
}

// CLI is the root command structure for Kong CLI parsing.
type CLI struct {
	Config string `help:"Path to a config file (JSON, YAML or TOML)" type:"path" env:"PROCON2D_CONFIG"`
	Log    `embed:"" prefix:"log."`

	Run     cmd.Run     `cmd:"" default:"withargs" help:"Translate controller input to a virtual input device"`
	Monitor cmd.Monitor `cmd:"" help:"Print decoded controller input without creating a device"`
	List    cmd.List    `cmd:"" help:"List attached HID devices"`
}
