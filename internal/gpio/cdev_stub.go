//go:build !linux

package gpio

import "errors"

// CdevLine is unavailable off Linux. The daemon targets embedded Linux,
// but the rest of the tree still builds on development hosts.
type CdevLine struct{}

// NewCdevLine returns a stub that fails on first use.
func NewCdevLine(chip string, pin int) *CdevLine {
	return &CdevLine{}
}

func (l *CdevLine) Export() error {
	return errors.New("gpio: cdev backend requires linux")
}

func (l *CdevLine) Unexport() error {
	return nil
}

func (l *CdevLine) Write(v int) error {
	return errors.New("gpio: cdev backend requires linux")
}

func (l *CdevLine) Read() (int, error) {
	return 0, errors.New("gpio: cdev backend requires linux")
}
