// Package cp2112 implements the si5351a.RegisterTransport contract on the
// Silicon Labs CP2112 USB-to-SMBus bridge. The bridge is a USB HID-class
// device; register traffic is carried entirely by numbered interrupt data
// reports, one bus transaction per report exchange.
//
// Datasheet: https://www.silabs.com/documents/public/data-sheets/cp2112-datasheet.pdf
//
// USB HID support provided by: https://github.com/karalabe/hid
package cp2112

import (
	"fmt"
	"time"

	usb "github.com/karalabe/hid"

	si5351a "github.com/hwengjp/si5351a-freq-setter"
)

// VID and PID are the official vendor and product identifiers assigned by
// the USB-IF.
const (
	VID = 0x10C4 // 16-bit vendor ID for Silicon Labs.
	PID = 0xEA90 // 16-bit product ID for the CP2112.
)

// rspSz is the size (in bytes) of the receive buffer for interrupt input
// reports; no CP2112 report exceeds it.
const rspSz = 64

// Constants for the recognized data report IDs. These are sent as the first
// word of every interrupt report in either direction.
const (
	rptDataWrite      byte = 0x14 // addressed write
	rptDataWriteRead  byte = 0x11 // addressed read request
	rptTransferStatus byte = 0x15 // transfer status request
	rptStatusResponse byte = 0x16 // transfer status response
	rptDataReadForce  byte = 0x12 // force read-response delivery
	rptDataResponse   byte = 0x13 // read response carrying data
)

// statusComplete is the transfer status response code indicating the
// addressed read finished and its data is ready to collect.
const statusComplete byte = 5

// Transport is a CP2112 bridge bound to one SI5351A bus address.
// If multiple bridges are connected to the host PC, the index of the desired
// target can be determined with AttachedDevices() and passed to New().
// Call Close() on the transport when finished to also close the USB
// connection.
type Transport struct {
	Device *usb.Device
	Addr   byte // 7-bit target device address
	Retry  si5351a.RetryPolicy
}

// AttachedDevices returns a slice of all connected USB HID device
// descriptors matching the CP2112 VID and PID.
//
// Returns an empty slice if no devices were found. See the hid package
// documentation for details on inspecting the returned objects.
func AttachedDevices() []usb.DeviceInfo {

	var info []usb.DeviceInfo

	for _, i := range usb.Enumerate(VID, PID) {
		info = append(info, i)
	}

	return info
}

// New returns a new Transport bound to the target bus address addr,
// enumerated at the given index (an index of 0 will use the first bridge
// found), polling with the given retry policy.
//
// Returns an error if index is out of range (according to AttachedDevices())
// or if the USB HID device could not be claimed or opened.
func New(idx byte, addr byte, retry si5351a.RetryPolicy) (*Transport, error) {

	info := AttachedDevices()
	if int(idx) >= len(info) {
		return nil, fmt.Errorf("device index %d out of range [0, %d]", idx, len(info)-1)
	}

	dev, err := info[idx].Open()
	if nil != err {
		return nil, err
	}

	return &Transport{Device: dev, Addr: addr, Retry: retry}, nil
}

// valid verifies the receiver and USB HID device are both not nil.
//
// Returns false with a descriptive error if any required field is nil.
func (t *Transport) valid() (bool, error) {

	if nil == t {
		return false, fmt.Errorf("nil Transport")
	}

	if nil == t.Device {
		return false, fmt.Errorf("nil USB HID device")
	}

	return true, nil
}

// Close will clean up any resources and close the USB HID connection.
func (t *Transport) Close() error {

	if ok, err := t.valid(); !ok {
		return err
	}

	return t.Device.Close()
}

// WriteRegister writes one byte to one register through a single addressed
// write report. The bridge paces itself; a short settle delay follows every
// write.
func (t *Transport) WriteRegister(reg byte, value byte) error {

	if ok, err := t.valid(); !ok {
		return err
	}

	msg := writeReport(t.Addr, reg, value)
	if _, err := t.Device.Write(msg); nil != err {
		return fmt.Errorf("Write([reg=0x%02X]): %v", reg, err)
	}

	time.Sleep(t.Retry.Delay)

	return nil
}

// ReadRegister reads one byte from one register: an addressed read request,
// a bounded status poll until the transfer completes, then a forced read
// response delivery.
//
// Returns an error if the receiver is invalid, the USB HID device could not
// be written to or read from, or the bounded poll is exhausted before the
// bridge reports completion. A poll exhaustion is fatal to the operation and
// is not retried here or by the caller.
func (t *Transport) ReadRegister(reg byte) (byte, error) {

	if ok, err := t.valid(); !ok {
		return 0, err
	}

	if _, err := t.Device.Write(readRequestReport(t.Addr, reg)); nil != err {
		return 0, fmt.Errorf("Write([reg=0x%02X]): %v", reg, err)
	}

	pace := t.Retry.Pacer()
	rsp := make([]byte, rspSz)

	for attempt := 0; attempt < t.Retry.MaxAttempts; attempt++ {

		if _, err := t.Device.Write([]byte{rptTransferStatus, 0x01}); nil != err {
			return 0, fmt.Errorf("Write([status]): %v", err)
		}
		if _, err := t.Device.Read(rsp); nil != err {
			return 0, fmt.Errorf("Read([status]): %v", err)
		}

		if rptStatusResponse == rsp[0] && statusComplete == rsp[2] {

			if _, err := t.Device.Write([]byte{rptDataReadForce, 0x00, 0x01}); nil != err {
				return 0, fmt.Errorf("Write([force]): %v", err)
			}
			if _, err := t.Device.Read(rsp); nil != err {
				return 0, fmt.Errorf("Read([data]): %v", err)
			}
			if rptDataResponse != rsp[0] {
				return 0, fmt.Errorf("Read([data]): unexpected report 0x%02X", rsp[0])
			}

			return rsp[3], nil
		}

		time.Sleep(pace.Duration())
	}

	return 0, fmt.Errorf("read of register 0x%02X timed out after %d polls", reg, t.Retry.MaxAttempts)
}

// WriteBlock writes values to consecutive registers starting at reg. The
// bridge's SMBus engine handles one register per transaction, so the block
// is decomposed into sequential single-register writes.
func (t *Transport) WriteBlock(reg byte, values []byte) error {

	if len(values) > si5351a.BlockMax {
		return fmt.Errorf("%w: %d bytes", si5351a.ErrBlockTooLong, len(values))
	}

	for i, value := range values {
		if err := t.WriteRegister(reg+byte(i), value); nil != err {
			return fmt.Errorf("WriteRegister(0x%02X): %v", reg+byte(i), err)
		}
	}

	return nil
}

// ReadBlock reads n consecutive registers starting at reg as sequential
// single-register reads.
func (t *Transport) ReadBlock(reg byte, n uint) ([]byte, error) {

	values := make([]byte, n)

	for i := range values {
		value, err := t.ReadRegister(reg + byte(i))
		if nil != err {
			return nil, fmt.Errorf("ReadRegister(0x%02X): %v", reg+byte(i), err)
		}
		values[i] = value
	}

	return values, nil
}

// writeReport builds the addressed single-register write report:
// target address (8-bit form), payload length, register, value.
func writeReport(addr byte, reg byte, value byte) []byte {
	return []byte{rptDataWrite, addr << 1, 0x02, reg, value}
}

// readRequestReport builds the addressed read request report: target address
// (8-bit form), 16-bit read length of 1, a 1-byte target register pointer,
// and the register itself.
func readRequestReport(addr byte, reg byte) []byte {
	return []byte{rptDataWriteRead, addr << 1, 0x00, 0x01, 0x01, reg}
}
