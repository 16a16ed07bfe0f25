package custodytest

import (
	"testing"

	"github.com/iov-one/custody/crypto/secp256k1"
)

// NewKey returns a random secp256k1 key.
func NewKey(t testing.TB) *secp256k1.PrivateKey {
	t.Helper()

	key, err := secp256k1.GenerateKey()
	if err != nil {
		t.Fatalf("cannot generate key: %s", err)
	}
	return key
}

// SeedKey returns a key derived from the seed. The same seed always produces
// the same key so that signatures can be compared between test runs.
func SeedKey(t testing.TB, seed string) *secp256k1.PrivateKey {
	t.Helper()

	key, err := secp256k1.PrivateKeyFromBytes(secp256k1.Keccak256([]byte(seed)))
	if err != nil {
		t.Fatalf("cannot derive key from %q: %s", seed, err)
	}
	return key
}

// Sign signs the digest and fails the test on error.
func Sign(t testing.TB, key *secp256k1.PrivateKey, hash []byte) []byte {
	t.Helper()

	sig, err := key.Sign(hash)
	if err != nil {
		t.Fatalf("cannot sign: %s", err)
	}
	return sig
}
