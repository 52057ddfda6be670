package i2cbus

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"

	si5351a "github.com/hwengjp/si5351a-freq-setter"
)

func TestRegisterAccess(t *testing.T) {

	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			// single register write: pointer byte then data byte
			{Addr: 0x60, W: []byte{0x03, 0xFF}, R: nil},
			// block write: pointer byte then consecutive data
			{Addr: 0x60, W: []byte{0x1A, 0x00, 0x01, 0x00, 0x0A}, R: nil},
			// single register read: pointer write, one byte back
			{Addr: 0x60, W: []byte{0x01}, R: []byte{0x88}},
			// block read: pointer write, two bytes back
			{Addr: 0x60, W: []byte{0x18}, R: []byte{0xAA, 0xAA}},
		},
		DontPanic: true,
	}

	tr := NewOnBus(bus, 0x60)

	if err := tr.WriteRegister(0x03, 0xFF); nil != err {
		t.Errorf("[ ] FAIL: WriteRegister(0x03, 0xFF) == %+v", err)
	}

	if err := tr.WriteBlock(0x1A, []byte{0x00, 0x01, 0x00, 0x0A}); nil != err {
		t.Errorf("[ ] FAIL: WriteBlock(0x1A, ...) == %+v", err)
	}

	v, err := tr.ReadRegister(0x01)
	if (nil != err) || (0x88 != v) {
		t.Errorf("[ ] FAIL: ReadRegister(0x01) == (0x%02X, %+v) | want (0x88, nil)", v, err)
	}

	blk, err := tr.ReadBlock(0x18, 2)
	if (nil != err) || (2 != len(blk)) || (0xAA != blk[0]) || (0xAA != blk[1]) {
		t.Errorf("[ ] FAIL: ReadBlock(0x18, 2) == (%#v, %+v) | want ([0xAA 0xAA], nil)", blk, err)
	}

	// a transport bound to a caller-owned bus must not close it
	if err := tr.Close(); nil != err {
		t.Errorf("[ ] FAIL: Close() == %+v | want nil", err)
	}

	if err := bus.Close(); nil != err {
		t.Errorf("[ ] FAIL: Playback.Close() == %+v | unconsumed operations", err)
	}

	if !t.Failed() {
		t.Logf("[ ] PASS: register access transactions")
	}
}

func TestWriteBlockTooLong(t *testing.T) {

	tr := NewOnBus(&i2ctest.Playback{DontPanic: true}, 0x60)

	err := tr.WriteBlock(0x00, make([]byte, si5351a.BlockMax+1))
	if errors.Is(err, si5351a.ErrBlockTooLong) {
		t.Logf("[ ] PASS: WriteBlock over BlockMax == %+v", err)
	} else {
		t.Errorf("[ ] FAIL: WriteBlock over BlockMax == %+v | want ErrBlockTooLong", err)
	}
}
