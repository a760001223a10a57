package display

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// MAX7219 register addresses.
const (
	regDigit0      = 0x01
	regDecodeMode  = 0x09
	regIntensity   = 0x0A
	regScanLimit   = 0x0B
	regShutdown    = 0x0C
	regDisplayTest = 0x0F
)

// MAX7219 drives a daisy chain of eight 8x8 modules arranged as two rows
// of four (32x16 pixels). Commands are shifted through the whole chain, so
// every register write sends one (register, data) pair per module.
type MAX7219 struct {
	port    spi.PortCloser
	conn    spi.Conn
	modules int
}

// NewMAX7219 opens the SPI port and initializes the chain: display test
// off, no BCD decode, all 8 digits scanned, powered on at a low intensity.
// periph's host must already be initialized.
func NewMAX7219(spiDev string) (*MAX7219, error) {
	port, err := spireg.Open(spiDev)
	if err != nil {
		return nil, fmt.Errorf("open matrix spi port %q: %w", spiDev, err)
	}
	conn, err := port.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("connect matrix: %w", err)
	}

	m := &MAX7219{port: port, conn: conn, modules: NumModules}
	init := []struct{ reg, data byte }{
		{regDisplayTest, 0},
		{regDecodeMode, 0},
		{regScanLimit, 7},
		{regShutdown, 1},
		{regIntensity, 5},
	}
	for _, c := range init {
		if err := m.sendAll(c.reg, c.data); err != nil {
			port.Close()
			return nil, fmt.Errorf("init matrix: %w", err)
		}
	}
	if err := m.Clear(); err != nil {
		port.Close()
		return nil, fmt.Errorf("clear matrix: %w", err)
	}
	return m, nil
}

// sendAll writes the same (register, data) pair to every module in the
// chain with a single transaction.
func (m *MAX7219) sendAll(reg, data byte) error {
	buf := make([]byte, 0, m.modules*2)
	for i := 0; i < m.modules; i++ {
		buf = append(buf, reg, data)
	}
	if err := m.conn.Tx(buf, nil); err != nil {
		return fmt.Errorf("matrix tx: %w", err)
	}
	return nil
}

// SetPower writes the shutdown register: 1 = normal operation, 0 = blank.
func (m *MAX7219) SetPower(on bool) error {
	var v byte
	if on {
		v = 1
	}
	return m.sendAll(regShutdown, v)
}

// SetIntensity writes the intensity register, clamped to the 0..15 range
// the chip accepts.
func (m *MAX7219) SetIntensity(level int) error {
	if level < 0 {
		level = 0
	}
	if level > 15 {
		level = 15
	}
	return m.sendAll(regIntensity, byte(level))
}

// Present writes the frame to the chain, one digit row per transaction.
// Modules 0..3 carry the top 8 pixel rows, modules 4..7 the bottom.
func (m *MAX7219) Present(f *Frame) error {
	for row := 0; row < 8; row++ {
		buf := make([]byte, 0, m.modules*2)
		// The last module in the chain receives the first pair shifted in.
		for module := m.modules - 1; module >= 0; module-- {
			buf = append(buf, regDigit0+byte(row), m.rowByte(f, module, row))
		}
		if err := m.conn.Tx(buf, nil); err != nil {
			return fmt.Errorf("matrix present row %d: %w", row, err)
		}
	}
	return nil
}

// rowByte packs the 8 pixels of one module row, leftmost pixel in the most
// significant bit.
func (m *MAX7219) rowByte(f *Frame, module, row int) byte {
	bank := module / 4
	baseX := (module % 4) * 8
	var b byte
	for i := 0; i < 8; i++ {
		if f.Pixel(baseX+i, bank*8+row) {
			b |= 1 << uint(7-i)
		}
	}
	return b
}

// Clear blanks every digit register on every module.
func (m *MAX7219) Clear() error {
	for row := 0; row < 8; row++ {
		if err := m.sendAll(regDigit0+byte(row), 0); err != nil {
			return err
		}
	}
	return nil
}

// Close blanks the display and releases the SPI port.
func (m *MAX7219) Close() error {
	if err := m.sendAll(regShutdown, 0); err != nil {
		m.port.Close()
		return err
	}
	return m.port.Close()
}
