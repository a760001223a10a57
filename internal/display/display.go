package display

// Driver drives the physical LED matrix chain.
type Driver interface {
	// SetPower enables or blanks the display via the shutdown register.
	SetPower(on bool) error

	// SetIntensity sets the brightness level, 0..15.
	SetIntensity(level int) error

	// Present writes the frame to the matrix.
	Present(f *Frame) error

	// Clear blanks every pixel without touching power or intensity.
	Clear() error

	// Close releases the bus.
	Close() error
}

// Applier turns controller decisions into hardware commands idempotently:
// power commands only on transitions, intensity commands only while powered
// and only on change.
type Applier struct {
	d           Driver
	powered     bool
	intensity   int
	initialized bool
}

// NewApplier wraps a driver.
func NewApplier(d Driver) *Applier {
	return &Applier{d: d, intensity: -1}
}

// Apply sends the minimum set of commands to reach the requested state.
func (a *Applier) Apply(powered bool, intensity int) error {
	if !a.initialized || powered != a.powered {
		if err := a.d.SetPower(powered); err != nil {
			return err
		}
		a.powered = powered
		// Force an intensity refresh on the next powered apply so a
		// power-on never reuses a stale level.
		a.intensity = -1
	}
	a.initialized = true
	if !powered {
		return nil
	}
	if intensity != a.intensity {
		if err := a.d.SetIntensity(intensity); err != nil {
			return err
		}
		a.intensity = intensity
	}
	return nil
}
