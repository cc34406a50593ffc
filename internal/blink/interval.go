package blink

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrUnreadable means the monitored file could not be opened or read.
	ErrUnreadable = errors.New("blink: interval file unreadable")

	// ErrInvalidInterval means the file's first line is not a positive
	// decimal number of seconds.
	ErrInvalidInterval = errors.New("blink: invalid interval")
)

// intervalReadLimit bounds how much of the monitored file is read.
const intervalReadLimit = 64

// ReadInterval parses the monitored file's first line as a blink
// half-period in seconds. Callers keep their previous interval on any
// error; the file's presence, not its content, is the primary signal.
func ReadInterval(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	buf := make([]byte, intervalReadLimit)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	line := string(buf[:n])
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)

	secs, err := strconv.ParseFloat(line, 64)
	if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) || secs <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInterval, line)
	}
	d := time.Duration(secs * float64(time.Second))
	if d <= 0 {
		// Positive but below clock resolution truncates to zero and
		// would busy-spin the blink loop.
		return 0, fmt.Errorf("%w: %q", ErrInvalidInterval, line)
	}
	return d, nil
}
