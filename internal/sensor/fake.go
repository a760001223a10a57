package sensor

import "errors"

// Sample is a single scripted set of sensor readings.
type Sample struct {
	Light  int
	Motion bool
	Env    EnvReading
}

// FakeReader is a test double that returns scripted sensor values.
// ReadLight consumes the next sample (it is the first read of every control
// tick); ReadMotion and ReadEnvironment return values from the sample the
// most recent ReadLight consumed, so callers may read them any number of
// times per tick.
type FakeReader struct {
	// Samples contains scripted readings, one per control tick.
	Samples []Sample

	// index is the next sample ReadLight will consume.
	index int

	// active is the sample position served to motion/environment reads.
	active int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by every read method.
	ReadError error
}

// NewFakeReader creates a FakeReader with the given samples.
func NewFakeReader(samples []Sample) *FakeReader {
	return &FakeReader{Samples: samples}
}

// ReadLight consumes the next sample and returns its light level.
// If samples are exhausted, the last sample repeats.
func (f *FakeReader) ReadLight() (int, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	if len(f.Samples) == 0 {
		return 0, errors.New("no samples configured")
	}
	f.active = f.index
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return f.Samples[f.active].Light, nil
}

// ReadMotion returns the motion state of the active sample.
func (f *FakeReader) ReadMotion() (bool, error) {
	if f.ReadError != nil {
		return false, f.ReadError
	}
	if len(f.Samples) == 0 {
		return false, errors.New("no samples configured")
	}
	return f.Samples[f.active].Motion, nil
}

// ReadEnvironment returns the environment reading of the active sample.
func (f *FakeReader) ReadEnvironment() (EnvReading, error) {
	if f.ReadError != nil {
		return EnvReading{}, f.ReadError
	}
	if len(f.Samples) == 0 {
		return EnvReading{}, errors.New("no samples configured")
	}
	return f.Samples[f.active].Env, nil
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the reader to the beginning of samples.
func (f *FakeReader) Reset() {
	f.index = 0
	f.active = 0
	f.Closed = false
}
