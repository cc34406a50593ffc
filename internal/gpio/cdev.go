//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// CdevLine drives a line through the GPIO character device. It is the
// backend for kernels built without the sysfs GPIO interface; pin numbers
// are offsets on the configured gpiochip rather than global sysfs numbers.
type CdevLine struct {
	chip string
	pin  int
	line *gpiocdev.Line
}

// NewCdevLine returns a character-device line on the named chip.
func NewCdevLine(chip string, pin int) *CdevLine {
	if chip == "" {
		chip = DefaultChip
	}
	return &CdevLine{chip: chip, pin: pin}
}

// Export requests the line as an output, initially low.
func (l *CdevLine) Export() error {
	line, err := gpiocdev.RequestLine(l.chip, l.pin, gpiocdev.AsOutput(0))
	if err != nil {
		return fmt.Errorf("request %s line %d: %w", l.chip, l.pin, err)
	}
	l.line = line
	return nil
}

// Unexport releases the line request.
func (l *CdevLine) Unexport() error {
	if l.line == nil {
		return nil
	}
	err := l.line.Close()
	l.line = nil
	if err != nil {
		return fmt.Errorf("release %s line %d: %w", l.chip, l.pin, err)
	}
	return nil
}

// Write drives the requested line.
func (l *CdevLine) Write(v int) error {
	if err := checkValue(v); err != nil {
		return err
	}
	if l.line == nil {
		return fmt.Errorf("%w: %s line %d not requested", ErrUnwritable, l.chip, l.pin)
	}
	if err := l.line.SetValue(v); err != nil {
		return fmt.Errorf("set %s line %d: %w", l.chip, l.pin, err)
	}
	return nil
}

// Read returns the requested line's value.
func (l *CdevLine) Read() (int, error) {
	if l.line == nil {
		return 0, fmt.Errorf("%s line %d not requested", l.chip, l.pin)
	}
	v, err := l.line.Value()
	if err != nil {
		return 0, fmt.Errorf("read %s line %d: %w", l.chip, l.pin, err)
	}
	return v, nil
}
