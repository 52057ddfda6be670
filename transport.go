package si5351a

import (
	"errors"
	"time"

	"github.com/jpillora/backoff"
)

// BlockMax is the largest number of bytes a single block transfer may carry.
const BlockMax = 60

// ErrBlockTooLong is returned when a block operation exceeds BlockMax bytes.
var ErrBlockTooLong = errors.New("si5351a: block transfer too long")

// RegisterTransport is the bus access contract the device controller
// requires. An implementation is bound to one device address at construction
// time; methods take register addresses only.
//
// Implementations may retry internally within their own bounded policy, but
// an error returned from any method is final: the controller performs no
// retries and no write verification of its own.
type RegisterTransport interface {
	// WriteRegister writes one byte to one register.
	WriteRegister(reg byte, value byte) error

	// WriteBlock writes up to BlockMax bytes starting at reg, one byte per
	// consecutive register address.
	WriteBlock(reg byte, values []byte) error

	// ReadRegister reads one byte from one register.
	ReadRegister(reg byte) (byte, error)

	// ReadBlock reads n consecutive registers starting at reg.
	ReadBlock(reg byte, n uint) ([]byte, error)
}

// RetryPolicy bounds the polling loop of a transport backend: at most
// MaxAttempts polls, Delay apart. Exhausting the policy is fatal to the
// in-progress operation.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryPolicy matches the CP2112 bridge timing: 20 polls, 1 ms apart.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 20, Delay: time.Millisecond}

// Pacer returns a fixed-interval backoff configured from the policy, for
// driving a poll loop.
func (p RetryPolicy) Pacer() *backoff.Backoff {
	return &backoff.Backoff{Min: p.Delay, Max: p.Delay, Factor: 1}
}
