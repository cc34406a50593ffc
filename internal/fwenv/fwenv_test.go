package fwenv

import (
	"context"
	"errors"
	"testing"
)

func TestParsePolarity(t *testing.T) {
	tests := []struct {
		name      string
		out       string
		pin       int
		activeLow bool
	}{
		{"lowercase marker is active-low", "gpio_led_0=5o\n", 5, true},
		{"uppercase marker is active-high", "gpio_led_0=5O\n", 5, false},
		{"no marker defaults to active-high", "gpio_led_0=5\n", 5, false},
		{"multi-digit pin", "gpio_led_boot=412o\n", 412, true},
		{"pin zero", "gpio_led_0=0\n", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.out))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if cfg.Pin != tt.pin {
				t.Errorf("Pin: got %d, want %d", cfg.Pin, tt.pin)
			}
			if cfg.ActiveLow != tt.activeLow {
				t.Errorf("ActiveLow: got %v, want %v", cfg.ActiveLow, tt.activeLow)
			}
		})
	}
}

func TestParseOffOnValues(t *testing.T) {
	low := LedConfig{Pin: 5, ActiveLow: true}
	if low.OffValue() != 1 || low.OnValue() != 0 {
		t.Errorf("active-low: off=%d on=%d, want off=1 on=0", low.OffValue(), low.OnValue())
	}

	high := LedConfig{Pin: 5}
	if high.OffValue() != 0 || high.OnValue() != 1 {
		t.Errorf("active-high: off=%d on=%d, want off=0 on=1", high.OffValue(), high.OnValue())
	}
}

func TestParseIgnoresUnrelatedEntries(t *testing.T) {
	out := "bootargs=console=ttyS0\nethaddr=00:11:22:33:44:55\ngpio_led_0=7o\nbaudrate=115200\n"
	cfg, err := Parse([]byte(out))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Pin != 7 || !cfg.ActiveLow {
		t.Errorf("got %+v, want pin 7 active-low", cfg)
	}
}

func TestParseFirstMatchWins(t *testing.T) {
	out := "gpio_led_0=3\ngpio_led_1=9o\n"
	cfg, err := Parse([]byte(out))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Pin != 3 || cfg.ActiveLow {
		t.Errorf("got %+v, want first entry (pin 3, active-high)", cfg)
	}
}

func TestParseNoMatch(t *testing.T) {
	outs := []string{
		"",
		"bootargs=quiet\n",
		"not a key value line\n",
	}
	for _, out := range outs {
		if _, err := Parse([]byte(out)); !errors.Is(err, ErrNoMatch) {
			t.Errorf("Parse(%q): got %v, want ErrNoMatch", out, err)
		}
	}
}

// The value grammar is strict: digits plus at most one trailing marker.
// Anything else on a matching key is malformed, never substring-scanned.
func TestParseMalformedValue(t *testing.T) {
	outs := []string{
		"gpio_led_0=\n",
		"gpio_led_0=-5\n",
		"gpio_led_0=abc\n",
		"gpio_led_0=5oX\n",
		"gpio_led_0=5oo\n",
		"gpio_led_0=o5\n",
		"gpio_led_0=5 o\n",
		"gpio_led_0=99999999999999999999\n",
	}
	for _, out := range outs {
		if _, err := Parse([]byte(out)); !errors.Is(err, ErrParse) {
			t.Errorf("Parse(%q): got %v, want ErrParse", out, err)
		}
	}
}

func TestResolveToolUnavailable(t *testing.T) {
	r := &Resolver{Command: []string{"/nonexistent/fw_printenv"}}
	_, err := r.Resolve(context.Background())
	if !errors.Is(err, ErrToolUnavailable) {
		t.Errorf("Resolve: got %v, want ErrToolUnavailable", err)
	}
}
