package custody

import "github.com/iov-one/custody/errors"

var (
	// ErrRateLimit is returned when a solo spend would exceed the period
	// limit of the calling party.
	ErrRateLimit = errors.Register(1000, "rate limit exceeded")

	// ErrTransfer is returned when coins could not be moved after the
	// spend was authorized.
	ErrTransfer = errors.Register(1001, "transfer failed")
)
