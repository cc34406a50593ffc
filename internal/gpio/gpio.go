// Package gpio controls a single GPIO output line.
// The real backends drive Linux sysfs, the GPIO character device, or the
// gpio(8) helper tool found on router firmwares.
// The fake backend allows testing without hardware.
package gpio

import (
	"errors"
	"fmt"
)

// Line is a single GPIO line configured as an output.
type Line interface {
	// Export makes the line available and configures it as an output.
	// Export failure is fatal to startup.
	Export() error

	// Unexport releases the line. Best effort during shutdown.
	Unexport() error

	// Write drives the line to 0 or 1.
	Write(v int) error

	// Read returns the line's current value.
	Read() (int, error)
}

// ErrUnwritable marks a value entry that could not be opened for writing.
// Callers inside the control loop log it and keep going.
var ErrUnwritable = errors.New("gpio: value not writable")

// Backend names selectable via configuration.
const (
	BackendSysfs = "sysfs"
	BackendCdev  = "cdev"
	BackendShell = "shell"
)

// DefaultChip is the gpiochip used by the cdev backend unless configured.
const DefaultChip = "gpiochip0"

// New returns the named backend for the given pin. The chip argument is
// only used by the cdev backend.
func New(backend string, pin int, chip string) (Line, error) {
	if pin < 0 {
		return nil, fmt.Errorf("gpio: invalid pin %d", pin)
	}
	switch backend {
	case BackendSysfs:
		return NewSysfsLine(pin), nil
	case BackendCdev:
		return NewCdevLine(chip, pin), nil
	case BackendShell:
		return NewShellLine(pin), nil
	default:
		return nil, fmt.Errorf("gpio: unknown backend %q", backend)
	}
}

func checkValue(v int) error {
	if v != 0 && v != 1 {
		return fmt.Errorf("gpio: invalid value %d", v)
	}
	return nil
}
