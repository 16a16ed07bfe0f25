package custodytest

import (
	"crypto/rand"
	"testing"

	"github.com/iov-one/custody"
)

// ParseAddress takes an address in any accepted human readable format and
// returns its binary representation.
func ParseAddress(t testing.TB, encodedAddress string) custody.Address {
	t.Helper()

	addr, err := custody.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// RandomAddr returns an address not controlled by any known key.
func RandomAddr(t testing.TB) custody.Address {
	t.Helper()

	addr := make(custody.Address, custody.AddressLength)
	if _, err := rand.Read(addr); err != nil {
		t.Fatalf("cannot read random bytes: %s", err)
	}
	return addr
}
