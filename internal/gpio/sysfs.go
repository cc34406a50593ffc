package gpio

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// sysfsBase is a variable so tests can point the backend at a temp dir.
var sysfsBase = "/sys/class/gpio"

// sysfsSettle is how long Export waits for the kernel to populate the
// per-line directory after writing to the export entry.
var sysfsSettle = 50 * time.Millisecond

// SysfsLine drives a line through the sysfs GPIO convention. The value
// entry is re-opened on every access; nothing is cached between calls.
type SysfsLine struct {
	pin int
}

// NewSysfsLine returns a sysfs-backed line for the given global pin number.
func NewSysfsLine(pin int) *SysfsLine {
	return &SysfsLine{pin: pin}
}

func (l *SysfsLine) dir() string {
	return filepath.Join(sysfsBase, fmt.Sprintf("gpio%d", l.pin))
}

// Export requests the line from the kernel and sets its direction to out.
// A line that is already exported is accepted as-is.
func (l *SysfsLine) Export() error {
	if _, err := os.Stat(l.dir()); os.IsNotExist(err) {
		pin := strconv.Itoa(l.pin)
		if err := os.WriteFile(filepath.Join(sysfsBase, "export"), []byte(pin), 0644); err != nil {
			return fmt.Errorf("export gpio %d: %w", l.pin, err)
		}
		time.Sleep(sysfsSettle)
	}
	if err := os.WriteFile(filepath.Join(l.dir(), "direction"), []byte("out"), 0644); err != nil {
		return fmt.Errorf("set gpio %d direction: %w", l.pin, err)
	}
	return nil
}

// Unexport releases the line back to the kernel.
func (l *SysfsLine) Unexport() error {
	pin := strconv.Itoa(l.pin)
	if err := os.WriteFile(filepath.Join(sysfsBase, "unexport"), []byte(pin), 0644); err != nil {
		return fmt.Errorf("unexport gpio %d: %w", l.pin, err)
	}
	return nil
}

// Write drives the line by rewriting its value entry.
func (l *SysfsLine) Write(v int) error {
	if err := checkValue(v); err != nil {
		return err
	}
	// O_TRUNC is a no-op on a kernel attribute but keeps a regular file
	// (fake sysfs trees in tests) from retaining stale trailing bytes.
	f, err := os.OpenFile(filepath.Join(l.dir(), "value"), os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return fmt.Errorf("%w: gpio %d: %v", ErrUnwritable, l.pin, err)
	}
	defer f.Close()
	if _, err := f.WriteString(strconv.Itoa(v)); err != nil {
		return fmt.Errorf("write gpio %d value: %w", l.pin, err)
	}
	return nil
}

// Read returns the line's current value from its value entry.
func (l *SysfsLine) Read() (int, error) {
	data, err := os.ReadFile(filepath.Join(l.dir(), "value"))
	if err != nil {
		return 0, fmt.Errorf("read gpio %d value: %w", l.pin, err)
	}
	switch s := strings.TrimSpace(string(data)); s {
	case "0":
		return 0, nil
	case "1":
		return 1, nil
	default:
		return 0, fmt.Errorf("gpio %d value: unexpected %q", l.pin, s)
	}
}
