// Package blink contains the presence monitor: the state machine keeping a
// GPIO status LED in sync with the existence of a sentinel file.
//
// The monitor has two states. While the file is absent the LED holds its
// restore value and the loop wakes once per poll interval. When the file
// appears the monitor reads a fresh half-period from the file's first line
// and oscillates the line until the file disappears or the context is
// cancelled. Existence is re-checked every half-cycle, so removal of the
// file (and shutdown) is noticed within one half-period.
//
// File existence, interval reading and sleeping are injectable so the
// state machine is testable without a filesystem or a real clock.
package blink

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/sweeney/ledd/internal/gpio"
)

// RestoreMode selects what level the LED returns to when blinking stops.
type RestoreMode string

const (
	// RestoreForceOff drives the off level at startup, after each
	// deactivation and at shutdown.
	RestoreForceOff RestoreMode = "force-off"

	// RestoreOriginal samples the line once at startup and restores that
	// level instead, leaving whatever the bootloader set.
	RestoreOriginal RestoreMode = "restore-original"
)

// DefaultPollInterval is the idle wakeup period. Coarse on purpose: no
// visible LED state depends on it, only transition latency when idle.
const DefaultPollInterval = 250 * time.Millisecond

// Monitor drives one GPIO line from the presence of one file.
type Monitor struct {
	Line     gpio.Line
	OffValue int

	// Path is the monitored sentinel file.
	Path string

	// Interval is the blink half-period. Updated on each activation if
	// the monitored file carries a valid value.
	Interval time.Duration

	// PollInterval is how often the idle state re-checks for the file.
	PollInterval time.Duration

	Restore RestoreMode
	Log     *slog.Logger

	// Injection points for tests. Nil selects the real filesystem, the
	// interval file reader and an interruptible clock sleep.
	Exists       func(path string) bool
	ReadInterval func(path string) (time.Duration, error)
	Sleep        func(ctx context.Context, d time.Duration) bool

	restoreValue int
	filePresent  bool
}

func (m *Monitor) onValue() int {
	return 1 - m.OffValue
}

// Run executes the monitor until ctx is cancelled, then leaves the LED at
// its restore value. Failures inside the loop are logged and absorbed;
// nothing here terminates the process.
func (m *Monitor) Run(ctx context.Context) error {
	m.applyDefaults()

	m.restoreValue = m.OffValue
	if m.Restore == RestoreOriginal {
		v, err := m.Line.Read()
		if err != nil {
			m.Log.Warn("cannot sample original LED level, restoring to off instead", "error", err)
		} else {
			m.restoreValue = v
		}
	} else {
		if err := m.Line.Write(m.OffValue); err != nil {
			m.Log.Warn("initial LED off write failed", "error", err)
		}
	}

	for ctx.Err() == nil {
		present := m.Exists(m.Path)
		switch {
		case present && !m.filePresent:
			m.activate(ctx)
		case !present && m.filePresent:
			m.filePresent = false
			m.Log.Info("monitored file disappeared, restoring LED", "path", m.Path)
			m.settle()
		default:
			m.Sleep(ctx, m.PollInterval)
		}
	}

	m.settle()
	return nil
}

// activate handles the absent-to-present transition: refresh the interval,
// then blink until the file disappears or ctx is cancelled. The next loop
// iteration settles the LED.
func (m *Monitor) activate(ctx context.Context) {
	m.filePresent = true
	if d, err := m.ReadInterval(m.Path); err != nil {
		m.Log.Warn("keeping previous blink interval", "interval", m.Interval, "error", err)
	} else {
		m.Interval = d
		m.Log.Info("blink interval updated", "interval", d)
	}
	m.Log.Info("monitored file appeared, blinking", "path", m.Path, "interval", m.Interval)
	m.blink(ctx)
}

// blink oscillates the line, starting with the on level. A failed write is
// logged and skipped; a missed toggle is preferable to a dead daemon.
func (m *Monitor) blink(ctx context.Context) {
	v := m.onValue()
	for ctx.Err() == nil && m.Exists(m.Path) {
		if err := m.Line.Write(v); err != nil {
			m.Log.Warn("LED write failed", "value", v, "error", err)
		} else {
			m.Log.Debug("LED toggled", "value", v)
		}
		if !m.Sleep(ctx, m.Interval) {
			return
		}
		v = 1 - v
	}
}

// settle writes the restore value. Runs after each deactivation and once
// more on the way out; both writes are idempotent.
func (m *Monitor) settle() {
	if err := m.Line.Write(m.restoreValue); err != nil {
		m.Log.Warn("LED restore write failed", "value", m.restoreValue, "error", err)
	}
}

func (m *Monitor) applyDefaults() {
	if m.Interval <= 0 {
		m.Interval = time.Second
	}
	if m.PollInterval <= 0 {
		m.PollInterval = DefaultPollInterval
	}
	if m.Restore == "" {
		m.Restore = RestoreForceOff
	}
	if m.Log == nil {
		m.Log = slog.Default()
	}
	if m.Exists == nil {
		m.Exists = fileExists
	}
	if m.ReadInterval == nil {
		m.ReadInterval = ReadInterval
	}
	if m.Sleep == nil {
		m.Sleep = sleepCtx
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// sleepCtx sleeps for d or until ctx is cancelled, reporting whether the
// full duration elapsed. This is what bounds shutdown latency to at most
// one half-period.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
