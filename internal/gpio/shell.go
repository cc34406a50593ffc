package gpio

import (
	"fmt"
	"os/exec"
	"strconv"
)

// ShellLine manages a line through the gpio(8) helper shipped on router
// firmwares: the helper handles export, output direction and unexport,
// while value I/O still goes through sysfs, matching how those firmwares
// drive their LEDs.
type ShellLine struct {
	pin   int
	sysfs *SysfsLine

	// run invokes the helper; overridable for tests.
	run func(name string, args ...string) error
}

// NewShellLine returns a gpio(8)-backed line for the given pin.
func NewShellLine(pin int) *ShellLine {
	return &ShellLine{
		pin:   pin,
		sysfs: NewSysfsLine(pin),
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// Export asks the helper to export the line and set it as an output.
func (l *ShellLine) Export() error {
	pin := strconv.Itoa(l.pin)
	if err := l.run("gpio", "export", pin); err != nil {
		return fmt.Errorf("gpio export %d: %w", l.pin, err)
	}
	if err := l.run("gpio", "output", pin); err != nil {
		return fmt.Errorf("gpio output %d: %w", l.pin, err)
	}
	return nil
}

// Unexport asks the helper to release the line.
func (l *ShellLine) Unexport() error {
	if err := l.run("gpio", "unexport", strconv.Itoa(l.pin)); err != nil {
		return fmt.Errorf("gpio unexport %d: %w", l.pin, err)
	}
	return nil
}

// Write drives the line through the sysfs value entry.
func (l *ShellLine) Write(v int) error {
	return l.sysfs.Write(v)
}

// Read returns the line's value from the sysfs value entry.
func (l *ShellLine) Read() (int, error) {
	return l.sysfs.Read()
}
