package display

// FakeDriver records commands for test assertions.
type FakeDriver struct {
	// Powered is the last power state commanded.
	Powered bool

	// Intensity is the last intensity commanded.
	Intensity int

	// PowerCommands records every SetPower call in order.
	PowerCommands []bool

	// IntensityCommands records every SetIntensity call in order.
	IntensityCommands []int

	// Presented records a copy of every presented frame.
	Presented []Frame

	// Cleared counts Clear calls.
	Cleared int

	// Closed tracks if Close was called.
	Closed bool

	// Err, if set, is returned by every command.
	Err error
}

// NewFakeDriver creates a FakeDriver for testing.
func NewFakeDriver() *FakeDriver {
	return &FakeDriver{}
}

// SetPower records the power command.
func (f *FakeDriver) SetPower(on bool) error {
	if f.Err != nil {
		return f.Err
	}
	f.Powered = on
	f.PowerCommands = append(f.PowerCommands, on)
	return nil
}

// SetIntensity records the intensity command.
func (f *FakeDriver) SetIntensity(level int) error {
	if f.Err != nil {
		return f.Err
	}
	f.Intensity = level
	f.IntensityCommands = append(f.IntensityCommands, level)
	return nil
}

// Present records a copy of the frame.
func (f *FakeDriver) Present(frame *Frame) error {
	if f.Err != nil {
		return f.Err
	}
	f.Presented = append(f.Presented, *frame)
	return nil
}

// Clear counts the call.
func (f *FakeDriver) Clear() error {
	if f.Err != nil {
		return f.Err
	}
	f.Cleared++
	return nil
}

// Close marks the driver as closed.
func (f *FakeDriver) Close() error {
	f.Closed = true
	return nil
}

// LastFrame returns the most recently presented frame, or nil.
func (f *FakeDriver) LastFrame() *Frame {
	if len(f.Presented) == 0 {
		return nil
	}
	return &f.Presented[len(f.Presented)-1]
}
