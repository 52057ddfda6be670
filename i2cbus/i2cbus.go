// Package i2cbus implements the si5351a.RegisterTransport contract on a
// native I²C bus through the periph.io conn stack. Callers must initialize
// the host (periph.io/x/host/v3) before opening a bus by name.
package i2cbus

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"

	si5351a "github.com/hwengjp/si5351a-freq-setter"
)

// Transport is a native I²C bus bound to one SI5351A bus address.
type Transport struct {
	dev i2c.Dev
	bus i2c.BusCloser
}

// Open opens the named I²C bus (an empty name selects the first available
// bus) and binds the target device address.
//
// Returns an error if the bus could not be opened.
func Open(name string, addr byte) (*Transport, error) {

	bus, err := i2creg.Open(name)
	if nil != err {
		return nil, fmt.Errorf("i2creg.Open(%q): %v", name, err)
	}

	return &Transport{
		dev: i2c.Dev{Bus: bus, Addr: uint16(addr)},
		bus: bus,
	}, nil
}

// NewOnBus binds the target device address on an already-open bus. The
// caller retains ownership of the bus; Close on the returned transport is a
// no-op in this configuration.
func NewOnBus(bus i2c.Bus, addr byte) *Transport {
	return &Transport{dev: i2c.Dev{Bus: bus, Addr: uint16(addr)}}
}

// Close releases the underlying bus if this transport opened it.
func (t *Transport) Close() error {

	if nil == t.bus {
		return nil
	}

	return t.bus.Close()
}

// WriteRegister writes one byte to one register.
func (t *Transport) WriteRegister(reg byte, value byte) error {

	if err := t.dev.Tx([]byte{reg, value}, nil); nil != err {
		return fmt.Errorf("Tx([reg=0x%02X]): %v", reg, err)
	}

	return nil
}

// WriteBlock writes values to consecutive registers starting at reg in one
// register-pointer-prefixed bus transaction.
func (t *Transport) WriteBlock(reg byte, values []byte) error {

	if len(values) > si5351a.BlockMax {
		return fmt.Errorf("%w: %d bytes", si5351a.ErrBlockTooLong, len(values))
	}

	buf := make([]byte, 0, len(values)+1)
	buf = append(buf, reg)
	buf = append(buf, values...)

	if err := t.dev.Tx(buf, nil); nil != err {
		return fmt.Errorf("Tx([reg=0x%02X]): %v", reg, err)
	}

	return nil
}

// ReadRegister reads one byte from one register as a write-then-read
// transaction.
func (t *Transport) ReadRegister(reg byte) (byte, error) {

	var buf [1]byte
	if err := t.dev.Tx([]byte{reg}, buf[:]); nil != err {
		return 0, fmt.Errorf("Tx([reg=0x%02X]): %v", reg, err)
	}

	return buf[0], nil
}

// ReadBlock reads n consecutive registers starting at reg as a
// write-then-read transaction.
func (t *Transport) ReadBlock(reg byte, n uint) ([]byte, error) {

	buf := make([]byte, n)
	if err := t.dev.Tx([]byte{reg}, buf); nil != err {
		return nil, fmt.Errorf("Tx([reg=0x%02X]): %v", reg, err)
	}

	return buf, nil
}
