// Command ledd blinks a router's status LED while a sentinel file exists.
//
// Usage:
//
//	ledd <blink-interval-seconds> [monitor-file]
//
// The positional interval is the blink half-period in seconds; the
// monitored file's first line may override it each time the file appears.
// The LED's GPIO line and polarity come from the bootloader environment
// (fw_printenv gpio_led_* entries) unless --pin fixes them. On SIGINT or
// SIGTERM the daemon leaves the LED in its restore state, releases the
// line and exits 0.
package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sweeney/ledd/internal/blink"
	"github.com/sweeney/ledd/internal/config"
	"github.com/sweeney/ledd/internal/fwenv"
	"github.com/sweeney/ledd/internal/gpio"
	"github.com/sweeney/ledd/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledd <blink-interval-seconds> [monitor-file]",
		Short: "Blink a GPIO status LED while a sentinel file exists",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  run,
		// Runtime failures (resolution, export) speak for themselves;
		// don't bury them under the usage block.
		SilenceUsage: true,
	}

	fl := cmd.Flags()
	fl.String("config", config.DefaultPath, "TOML config file")
	fl.Duration("poll", blink.DefaultPollInterval, "idle poll interval")
	fl.String("restore-mode", string(blink.RestoreForceOff),
		"LED level when idle: force-off or restore-original")
	fl.String("gpio-backend", gpio.BackendSysfs, "GPIO backend: sysfs, cdev or shell")
	fl.String("gpio-chip", gpio.DefaultChip, "gpiochip name for the cdev backend")
	fl.Int("pin", -1, "GPIO pin; bypasses the bootloader environment when >= 0")
	fl.Bool("active-low", false, "LED is wired active-low (used with --pin)")
	fl.String("log-level", "info", "log level: debug, info, warn or error")
	fl.String("log-format", "text", "log format: text or json")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	interval, err := parseInterval(args[0])
	if err != nil {
		return err
	}

	fl := cmd.Flags()
	cfgPath, _ := fl.GetString("config")
	opts := config.Default()
	if err := config.Load(cfgPath, fl.Changed("config"), &opts); err != nil {
		return err
	}
	applyFlags(fl, &opts)
	if len(args) == 2 {
		opts.MonitorFile = args[1]
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	poll, _ := opts.Poll()

	log := logging.New(opts.Log.Level, opts.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	led, err := resolveLed(ctx, &opts, log)
	if err != nil {
		return err
	}

	line, err := gpio.New(opts.GPIOBackend, led.Pin, opts.GPIOChip)
	if err != nil {
		return err
	}
	if err := line.Export(); err != nil {
		return fmt.Errorf("export gpio %d: %w", led.Pin, err)
	}
	log.Info("gpio line ready",
		"pin", led.Pin, "active_low", led.ActiveLow, "backend", opts.GPIOBackend)

	if sent, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		log.Warn("sd_notify failed", "error", err)
	} else if sent {
		log.Debug("notified systemd: ready")
	}

	mon := &blink.Monitor{
		Line:         line,
		OffValue:     led.OffValue(),
		Path:         opts.MonitorFile,
		Interval:     interval,
		PollInterval: poll,
		Restore:      blink.RestoreMode(opts.RestoreMode),
		Log:          log,
	}
	log.Info("started",
		"monitor_file", opts.MonitorFile, "interval", interval,
		"poll", poll, "restore_mode", opts.RestoreMode)

	err = mon.Run(ctx)

	daemon.SdNotify(false, daemon.SdNotifyStopping)
	if uerr := line.Unexport(); uerr != nil {
		log.Warn("unexport failed", "error", uerr)
	}
	log.Info("stopped")
	return err
}

// parseInterval validates the positional blink interval: a positive finite
// decimal number of seconds with nothing trailing.
func parseInterval(s string) (time.Duration, error) {
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) || secs <= 0 {
		return 0, fmt.Errorf("invalid blink interval %q", s)
	}
	d := time.Duration(secs * float64(time.Second))
	if d <= 0 {
		// Positive but below clock resolution truncates to zero.
		return 0, fmt.Errorf("invalid blink interval %q", s)
	}
	return d, nil
}

// resolveLed returns the LED wiring, either fixed by --pin or resolved
// from the bootloader environment.
func resolveLed(ctx context.Context, opts *config.Options, log logging.Logger) (fwenv.LedConfig, error) {
	if opts.Pin >= 0 {
		return fwenv.LedConfig{Pin: opts.Pin, ActiveLow: opts.ActiveLow}, nil
	}
	led, err := (&fwenv.Resolver{}).Resolve(ctx)
	if err != nil {
		return fwenv.LedConfig{}, fmt.Errorf("resolve LED pin: %w", err)
	}
	log.Info("resolved LED from bootloader environment",
		"pin", led.Pin, "active_low", led.ActiveLow)
	return led, nil
}

// applyFlags overlays explicitly-set flags onto opts; flags beat the file.
func applyFlags(fl *pflag.FlagSet, opts *config.Options) {
	if fl.Changed("poll") {
		d, _ := fl.GetDuration("poll")
		opts.PollInterval = d.String()
	}
	if fl.Changed("restore-mode") {
		opts.RestoreMode, _ = fl.GetString("restore-mode")
	}
	if fl.Changed("gpio-backend") {
		opts.GPIOBackend, _ = fl.GetString("gpio-backend")
	}
	if fl.Changed("gpio-chip") {
		opts.GPIOChip, _ = fl.GetString("gpio-chip")
	}
	if fl.Changed("pin") {
		opts.Pin, _ = fl.GetInt("pin")
	}
	if fl.Changed("active-low") {
		opts.ActiveLow, _ = fl.GetBool("active-low")
	}
	if fl.Changed("log-level") {
		opts.Log.Level, _ = fl.GetString("log-level")
	}
	if fl.Changed("log-format") {
		opts.Log.Format, _ = fl.GetString("log-format")
	}
}
