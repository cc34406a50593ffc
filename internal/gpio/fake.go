package gpio

// FakeLine is a test double that records writes and serves scripted reads.
type FakeLine struct {
	// Exported and Unexported track whether those calls happened.
	Exported   bool
	Unexported bool

	// Writes records every accepted value in order.
	Writes []int

	// ReadValues are consumed one per Read call; the last value repeats
	// once exhausted. When empty, Read returns the last written value.
	ReadValues []int

	// ExportError, WriteError and ReadError, if set, are returned by the
	// corresponding call.
	ExportError error
	WriteError  error
	ReadError   error

	readIndex int
	last      int
}

// NewFakeLine returns a fake line holding value 0.
func NewFakeLine() *FakeLine {
	return &FakeLine{}
}

// Export marks the line exported, or fails with ExportError.
func (f *FakeLine) Export() error {
	if f.ExportError != nil {
		return f.ExportError
	}
	f.Exported = true
	return nil
}

// Unexport marks the line released.
func (f *FakeLine) Unexport() error {
	f.Unexported = true
	return nil
}

// Write records the value, or fails with WriteError.
func (f *FakeLine) Write(v int) error {
	if err := checkValue(v); err != nil {
		return err
	}
	if f.WriteError != nil {
		return f.WriteError
	}
	f.Writes = append(f.Writes, v)
	f.last = v
	return nil
}

// Read returns the next scripted value, or the last written one.
func (f *FakeLine) Read() (int, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	if len(f.ReadValues) == 0 {
		return f.last, nil
	}
	v := f.ReadValues[f.readIndex]
	if f.readIndex < len(f.ReadValues)-1 {
		f.readIndex++
	}
	return v, nil
}
