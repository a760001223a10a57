//go:build linux

package sensor

import (
	"fmt"
	"log"

	"github.com/warthog618/go-gpiocdev"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/bmxx80"
)

// RealReader reads the clock's sensors from actual hardware: the PIR via
// the Linux GPIO character device, the LDR via an MCP3008 on SPI, and an
// optional BME280 on I2C.
type RealReader struct {
	chip *gpiocdev.Chip
	pir  *gpiocdev.Line

	spiPort    spi.PortCloser
	adc        spi.Conn
	adcChannel int

	i2cBus i2c.BusCloser
	env    *bmxx80.Dev
}

// NewRealReader opens the sensor buses. The environment sensor is optional:
// if the BME280 does not respond, readings are reported unavailable rather
// than failing startup. periph's host must already be initialized.
func NewRealReader(pirPin int, spiDev string, adcChannel int, i2cDev string) (*RealReader, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	pirLine, err := chip.RequestLine(pirPin, gpiocdev.AsInput, gpiocdev.WithPullDown)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request PIR pin %d: %w", pirPin, err)
	}

	spiPort, err := spireg.Open(spiDev)
	if err != nil {
		pirLine.Close()
		chip.Close()
		return nil, fmt.Errorf("open ADC spi port %q: %w", spiDev, err)
	}
	adc, err := spiPort.Connect(1350*physic.KiloHertz, spi.Mode0, 8)
	if err != nil {
		spiPort.Close()
		pirLine.Close()
		chip.Close()
		return nil, fmt.Errorf("connect ADC: %w", err)
	}

	r := &RealReader{
		chip:       chip,
		pir:        pirLine,
		spiPort:    spiPort,
		adc:        adc,
		adcChannel: adcChannel,
	}

	bus, err := i2creg.Open(i2cDev)
	if err != nil {
		log.Printf("sensor: i2c bus %q unavailable, environment readings disabled: %v", i2cDev, err)
		return r, nil
	}
	dev, err := bmxx80.NewI2C(bus, 0x76, &bmxx80.DefaultOpts)
	if err != nil {
		log.Printf("sensor: BME280 not found, environment readings disabled: %v", err)
		bus.Close()
		return r, nil
	}
	r.i2cBus = bus
	r.env = dev
	return r, nil
}

// ReadLight performs a single-ended MCP3008 conversion on the LDR channel.
func (r *RealReader) ReadLight() (int, error) {
	tx := []byte{0x01, byte(0x80 | r.adcChannel<<4), 0x00}
	rx := make([]byte, 3)
	if err := r.adc.Tx(tx, rx); err != nil {
		return 0, fmt.Errorf("adc read: %w", err)
	}
	return int(rx[1]&0x03)<<8 | int(rx[2]), nil
}

// ReadMotion returns the PIR line state. The PIR output is active high.
func (r *RealReader) ReadMotion() (bool, error) {
	v, err := r.pir.Value()
	if err != nil {
		return false, fmt.Errorf("read PIR pin: %w", err)
	}
	return v != 0, nil
}

// ReadEnvironment samples the BME280. A missing sensor or a failed sample
// yields Available=false with a nil error.
func (r *RealReader) ReadEnvironment() (EnvReading, error) {
	if r.env == nil {
		return EnvReading{}, nil
	}
	var e physic.Env
	if err := r.env.Sense(&e); err != nil {
		log.Printf("sensor: environment read failed: %v", err)
		return EnvReading{}, nil
	}
	return EnvReading{
		Available:    true,
		TemperatureC: int(e.Temperature.Celsius()),
		HumidityPct:  int(e.Humidity / physic.PercentRH),
		PressureHPa:  int(e.Pressure / (100 * physic.Pascal)),
	}, nil
}

// Close releases all sensor resources.
func (r *RealReader) Close() error {
	var errs []error
	if r.env != nil {
		if err := r.env.Halt(); err != nil {
			errs = append(errs, fmt.Errorf("halt BME280: %w", err))
		}
	}
	if r.i2cBus != nil {
		if err := r.i2cBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close i2c bus: %w", err))
		}
	}
	if r.spiPort != nil {
		if err := r.spiPort.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close spi port: %w", err))
		}
	}
	if r.pir != nil {
		if err := r.pir.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close PIR pin: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
