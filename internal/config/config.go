// Package config holds the daemon's tunable options and their TOML file
// overlay. The two historical daemon builds diverged only in hard-coded
// defaults (monitor path, polarity handling, restore-on-exit policy);
// those knobs all live here instead.
package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/sweeney/ledd/internal/blink"
	"github.com/sweeney/ledd/internal/gpio"
)

// DefaultPath is where the optional config file lives.
const DefaultPath = "/etc/ledd.toml"

// DefaultMonitorFile is the sentinel whose presence drives blinking.
const DefaultMonitorFile = "/var/run/boot"

// Options collects every runtime setting. Durations are strings in
// time.ParseDuration syntax so the TOML file stays readable.
type Options struct {
	MonitorFile  string `toml:"monitor_file"`
	PollInterval string `toml:"poll_interval"`
	RestoreMode  string `toml:"restore_mode"`
	GPIOBackend  string `toml:"gpio_backend"`
	GPIOChip     string `toml:"gpio_chip"`

	// Pin bypasses bootloader-environment resolution when non-negative.
	Pin       int  `toml:"pin"`
	ActiveLow bool `toml:"active_low"`

	Log Log `toml:"log"`
}

// Log holds the logging settings.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in option set.
func Default() Options {
	return Options{
		MonitorFile:  DefaultMonitorFile,
		PollInterval: blink.DefaultPollInterval.String(),
		RestoreMode:  string(blink.RestoreForceOff),
		GPIOBackend:  gpio.BackendSysfs,
		GPIOChip:     gpio.DefaultChip,
		Pin:          -1,
		Log:          Log{Level: "info", Format: "text"},
	}
}

// Load overlays the TOML file at path onto opts. A missing file is only an
// error when explicit is set (the operator named the path themselves).
// Unknown keys are rejected.
func Load(path string, explicit bool, opts *Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(opts); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Poll parses the idle poll interval setting.
func (o *Options) Poll() (time.Duration, error) {
	d, err := time.ParseDuration(o.PollInterval)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid poll_interval %q", o.PollInterval)
	}
	return d, nil
}

// Validate checks the enumerated settings.
func (o *Options) Validate() error {
	switch blink.RestoreMode(o.RestoreMode) {
	case blink.RestoreForceOff, blink.RestoreOriginal:
	default:
		return fmt.Errorf("invalid restore_mode %q (want %s or %s)",
			o.RestoreMode, blink.RestoreForceOff, blink.RestoreOriginal)
	}
	switch o.GPIOBackend {
	case gpio.BackendSysfs, gpio.BackendCdev, gpio.BackendShell:
	default:
		return fmt.Errorf("invalid gpio_backend %q", o.GPIOBackend)
	}
	if o.MonitorFile == "" {
		return fmt.Errorf("monitor_file must not be empty")
	}
	if _, err := o.Poll(); err != nil {
		return err
	}
	return nil
}
