package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/sweeney/ledd/internal/config"
)

func TestParseIntervalValid(t *testing.T) {
	tests := []struct {
		arg  string
		want time.Duration
	}{
		{"1", time.Second},
		{"0.5", 500 * time.Millisecond},
		{"2.25", 2250 * time.Millisecond},
		{"0.001", time.Millisecond},
		{"1e1", 10 * time.Second},
	}
	for _, tt := range tests {
		got, err := parseInterval(tt.arg)
		if err != nil {
			t.Errorf("parseInterval(%q): %v", tt.arg, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseInterval(%q): got %v, want %v", tt.arg, got, tt.want)
		}
	}
}

func TestParseIntervalInvalid(t *testing.T) {
	args := []string{
		"", "abc", "0", "-1", "-0.5",
		"1.5s", "0.5 ", "1,5", "NaN", "Inf", "+Inf",
		"1e-10", // positive but truncates to a zero duration
	}
	for _, arg := range args {
		if _, err := parseInterval(arg); err == nil {
			t.Errorf("parseInterval(%q) should fail", arg)
		}
	}
}

func TestRootCmdSilencesUsageOnRuntimeErrors(t *testing.T) {
	cmd := newRootCmd()
	if !cmd.SilenceUsage {
		t.Error("runtime failures must not print the usage block")
	}
}

func TestRootCmdArgArity(t *testing.T) {
	cmd := newRootCmd()

	if err := cmd.Args(cmd, []string{}); err == nil {
		t.Error("no arguments should be rejected")
	}
	if err := cmd.Args(cmd, []string{"1"}); err != nil {
		t.Errorf("one argument rejected: %v", err)
	}
	if err := cmd.Args(cmd, []string{"1", "/tmp/boot"}); err != nil {
		t.Errorf("two arguments rejected: %v", err)
	}
	if err := cmd.Args(cmd, []string{"1", "/tmp/boot", "extra"}); err == nil {
		t.Error("three arguments should be rejected")
	}
}

func TestApplyFlagsPrecedence(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.Flags().Parse([]string{
		"--poll", "1s",
		"--restore-mode", "restore-original",
		"--pin", "7",
		"--active-low",
	}); err != nil {
		t.Fatal(err)
	}

	opts := config.Default()
	opts.GPIOBackend = "shell" // as if set by the config file
	applyFlags(cmd.Flags(), &opts)

	if opts.PollInterval != "1s" {
		t.Errorf("PollInterval: got %q, want flag value", opts.PollInterval)
	}
	if opts.RestoreMode != "restore-original" {
		t.Errorf("RestoreMode: got %q", opts.RestoreMode)
	}
	if opts.Pin != 7 || !opts.ActiveLow {
		t.Errorf("Pin/ActiveLow: got %d/%v", opts.Pin, opts.ActiveLow)
	}
	// Untouched flags must not clobber non-default values.
	if opts.GPIOBackend != "shell" {
		t.Errorf("GPIOBackend: got %q, want file value preserved", opts.GPIOBackend)
	}
	if opts.Log.Level != "info" {
		t.Errorf("Log.Level: got %q, want default preserved", opts.Log.Level)
	}
}

func TestResolveLedPinOverride(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	opts := config.Default()
	opts.Pin = 18
	opts.ActiveLow = true

	led, err := resolveLed(context.Background(), &opts, log)
	if err != nil {
		t.Fatalf("resolveLed: %v", err)
	}
	if led.Pin != 18 || !led.ActiveLow {
		t.Errorf("got %+v, want pin 18 active-low", led)
	}
	if led.OffValue() != 1 {
		t.Errorf("OffValue: got %d, want 1", led.OffValue())
	}
}
