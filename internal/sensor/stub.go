//go:build !linux

package sensor

import "errors"

// RealReader is not available on non-Linux platforms.
type RealReader struct{}

// NewRealReader returns an error on non-Linux platforms.
func NewRealReader(pirPin int, spiDev string, adcChannel int, i2cDev string) (*RealReader, error) {
	return nil, errors.New("sensor: not supported on this platform (requires Linux)")
}

// ReadLight is not implemented on non-Linux platforms.
func (r *RealReader) ReadLight() (int, error) {
	return 0, errors.New("sensor: not supported")
}

// ReadMotion is not implemented on non-Linux platforms.
func (r *RealReader) ReadMotion() (bool, error) {
	return false, errors.New("sensor: not supported")
}

// ReadEnvironment is not implemented on non-Linux platforms.
func (r *RealReader) ReadEnvironment() (EnvReading, error) {
	return EnvReading{}, errors.New("sensor: not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *RealReader) Close() error {
	return nil
}
