// Package sensor provides ambient light, motion, and environment readings
// with hardware abstraction. The real implementation talks to an MCP3008
// ADC (LDR divider) and a BME280 over periph.io, and a PIR line via the
// Linux GPIO character device. The fake implementation allows testing
// without hardware.
package sensor

// EnvReading is one temperature/humidity/pressure sample.
// Available is the only signal that the sensor is present and the values
// are meaningful; consumers must not infer absence from the numbers.
type EnvReading struct {
	Available    bool
	TemperatureC int
	HumidityPct  int
	PressureHPa  int
}

// Reader reads the clock's input sensors.
type Reader interface {
	// ReadLight returns the raw ambient light level in [0,1023].
	// The LDR divider yields higher values in darker conditions.
	ReadLight() (int, error)

	// ReadMotion returns whether the PIR currently reports motion.
	ReadMotion() (bool, error)

	// ReadEnvironment returns the latest environment sample. A missing or
	// failed sensor is reported as Available=false, not as an error.
	ReadEnvironment() (EnvReading, error)

	// Close releases sensor resources.
	Close() error
}

// Default hardware assignments (BCM numbering for the PIR).
const (
	DefaultPinPIR     = 4
	DefaultADCChannel = 0
)
