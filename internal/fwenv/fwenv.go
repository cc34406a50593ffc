// Package fwenv resolves the status LED's GPIO line and polarity from the
// bootloader environment.
//
// Router bootloaders publish the LED wiring as fw_printenv entries of the
// form
//
//	gpio_led_0=5o
//
// where the digits are the GPIO number and an optional trailing marker
// selects polarity: 'o' for active-low, 'O' for active-high, no marker for
// active-high. The value must match that grammar exactly; entries with any
// other trailing text are rejected rather than scanned for a marker.
package fwenv

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// KeyPrefix selects the environment entries that describe the status LED.
const KeyPrefix = "gpio_led_"

var (
	// ErrToolUnavailable means the environment query tool could not run.
	ErrToolUnavailable = errors.New("fwenv: cannot run fw_printenv")

	// ErrNoMatch means the environment holds no gpio_led_ entry.
	ErrNoMatch = errors.New("fwenv: no gpio_led_ entry found")

	// ErrParse means a gpio_led_ entry's value is malformed.
	ErrParse = errors.New("fwenv: malformed gpio_led_ value")
)

var valuePattern = regexp.MustCompile(`^([0-9]+)([oO])?$`)

// LedConfig is the resolved LED wiring. Immutable once resolved.
type LedConfig struct {
	Pin       int
	ActiveLow bool
}

// OffValue is the level that turns the LED off.
func (c LedConfig) OffValue() int {
	if c.ActiveLow {
		return 1
	}
	return 0
}

// OnValue is the level that turns the LED on.
func (c LedConfig) OnValue() int {
	return 1 - c.OffValue()
}

// Resolver queries the bootloader environment. The zero value runs
// fw_printenv from PATH.
type Resolver struct {
	// Command overrides the fw_printenv invocation; for tests.
	Command []string
}

// Resolve runs the query tool once and parses its output.
func (r *Resolver) Resolve(ctx context.Context) (LedConfig, error) {
	argv := r.Command
	if len(argv) == 0 {
		argv = []string{"fw_printenv"}
	}
	out, err := exec.CommandContext(ctx, argv[0], argv[1:]...).Output()
	if err != nil {
		return LedConfig{}, fmt.Errorf("%w: %v", ErrToolUnavailable, err)
	}
	return Parse(out)
}

// Parse scans line-oriented key=value text for the first gpio_led_ entry.
// Unrelated entries are ignored.
func Parse(out []byte) (LedConfig, error) {
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if !ok || !strings.HasPrefix(key, KeyPrefix) {
			continue
		}
		m := valuePattern.FindStringSubmatch(value)
		if m == nil {
			return LedConfig{}, fmt.Errorf("%w: %s=%q", ErrParse, key, value)
		}
		pin, err := strconv.Atoi(m[1])
		if err != nil {
			return LedConfig{}, fmt.Errorf("%w: %s=%q: %v", ErrParse, key, value, err)
		}
		return LedConfig{Pin: pin, ActiveLow: m[2] == "o"}, nil
	}
	if err := sc.Err(); err != nil {
		return LedConfig{}, fmt.Errorf("fwenv: scan output: %w", err)
	}
	return LedConfig{}, ErrNoMatch
}
