package cp2112

import (
	"fmt"
	"testing"
)

func TestWriteReport(t *testing.T) {

	type TC struct {
		addr byte
		reg  byte
		val  byte
		want []byte
	}

	tc := []TC{
		// register pointer plus data byte, addressed at 0x60 shifted left
		{addr: 0x60, reg: 0x03, val: 0xFF, want: []byte{0x14, 0xC0, 0x02, 0x03, 0xFF}},
		{addr: 0x61, reg: 0xB1, val: 0xA0, want: []byte{0x14, 0xC2, 0x02, 0xB1, 0xA0}},
		{addr: 0x60, reg: 0x00, val: 0x00, want: []byte{0x14, 0xC0, 0x02, 0x00, 0x00}},
	}

	for _, c := range tc {

		r := writeReport(c.addr, c.reg, c.val)
		d := fmt.Sprintf("writeReport(0x%02X, 0x%02X, 0x%02X) == %#v", c.addr, c.reg, c.val, r)

		ok := len(r) == len(c.want)
		for i := range c.want {
			ok = ok && r[i] == c.want[i]
		}

		if ok {
			t.Logf("[ ] PASS: %s", d)
		} else {
			t.Errorf("[ ] FAIL: %s | want %#v", d, c.want)
		}
	}
}

func TestReadRequestReport(t *testing.T) {

	type TC struct {
		addr byte
		reg  byte
		want []byte
	}

	tc := []TC{
		// one-byte addressed read targeting the register pointer
		{addr: 0x60, reg: 0x01, want: []byte{0x11, 0xC0, 0x00, 0x01, 0x01, 0x01}},
		{addr: 0x61, reg: 0x95, want: []byte{0x11, 0xC2, 0x00, 0x01, 0x01, 0x95}},
	}

	for _, c := range tc {

		r := readRequestReport(c.addr, c.reg)
		d := fmt.Sprintf("readRequestReport(0x%02X, 0x%02X) == %#v", c.addr, c.reg, r)

		ok := len(r) == len(c.want)
		for i := range c.want {
			ok = ok && r[i] == c.want[i]
		}

		if ok {
			t.Logf("[ ] PASS: %s", d)
		} else {
			t.Errorf("[ ] FAIL: %s | want %#v", d, c.want)
		}
	}
}

func TestNilTransport(t *testing.T) {

	var tr *Transport

	if err := tr.WriteRegister(0x03, 0xFF); nil == err {
		t.Errorf("[ ] FAIL: nil Transport WriteRegister() == nil | want error")
	}
	if _, err := tr.ReadRegister(0x01); nil == err {
		t.Errorf("[ ] FAIL: nil Transport ReadRegister() == nil | want error")
	}
	if err := tr.Close(); nil == err {
		t.Errorf("[ ] FAIL: nil Transport Close() == nil | want error")
	}

	if !t.Failed() {
		t.Logf("[ ] PASS: nil transport rejected")
	}
}
