package secp256k1

import (
	"encoding/hex"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/require"
)

func mustHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestKnownAddress(t *testing.T) {
	raw := mustHex(t, "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318")
	key, err := PrivateKeyFromBytes(raw)
	require.NoError(t, err)
	require.Equal(t, "0x2c7536e3605d9c16a7a3d7b1898e529396a65c23", key.Address().String())
	require.Equal(t, raw, key.Bytes())
}

func TestKeccak256(t *testing.T) {
	// Legacy keccak, not the NIST SHA3 padding.
	want := "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
	require.Equal(t, want, hex.EncodeToString(Keccak256()))
	require.Equal(t, Keccak256([]byte("ab")), Keccak256([]byte("a"), []byte("b")))
}

func TestSignRecover(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	hash := Keccak256([]byte("spend"))

	sig, err := key.Sign(hash)
	require.NoError(t, err)
	require.Len(t, sig, SignatureSize)
	require.Contains(t, []byte{27, 28}, sig[64])

	addr, err := Recover(hash, sig)
	require.NoError(t, err)
	require.Equal(t, key.Address(), addr)

	// Raw recovery id is accepted too.
	plain := append([]byte(nil), sig...)
	plain[64] -= 27
	addr, err = Recover(hash, plain)
	require.NoError(t, err)
	require.Equal(t, key.Address(), addr)

	// A different digest recovers to someone else.
	other, err := Recover(Keccak256([]byte("other")), sig)
	if err == nil {
		require.NotEqual(t, key.Address(), other)
	}
}

func TestRecoverRejectsMalformed(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	hash := Keccak256([]byte("spend"))
	sig, err := key.Sign(hash)
	require.NoError(t, err)

	highS := append([]byte(nil), sig...)
	n := btcec.S256().Params().N
	s := new(big.Int).Sub(n, new(big.Int).SetBytes(sig[32:64]))
	copy(highS[32:64], leftPad(s.Bytes(), 32))
	highS[64] ^= 1

	badV := append([]byte(nil), sig...)
	badV[64] = 29

	cases := map[string]struct {
		hash []byte
		sig  []byte
		want *errors.Error
	}{
		"short signature": {hash: hash, sig: sig[:64], want: errors.ErrSignature},
		"bad recovery id": {hash: hash, sig: badV, want: errors.ErrSignature},
		"high s":          {hash: hash, sig: highS, want: errors.ErrSignature},
		"zero signature":  {hash: hash, sig: make([]byte, 65), want: errors.ErrSignature},
		"short hash":      {hash: hash[:31], sig: sig, want: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := Recover(tc.hash, tc.sig)
			assert.IsErr(t, tc.want, err)
		})
	}
}

func leftPad(b []byte, size int) []byte {
	out := make([]byte, size)
	copy(out[size-len(b):], b)
	return out
}

func TestKeyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	key, err := GenerateKey()
	require.NoError(t, err)

	require.NoError(t, SaveKey(path, key))
	assert.IsErr(t, errors.ErrDuplicate, SaveKey(path, key))

	loaded, err := LoadKey(path)
	require.NoError(t, err)
	require.Equal(t, key.Address(), loaded.Address())

	_, err = LoadKey(filepath.Join(t.TempDir(), "missing"))
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestPrivateKeyFromBytes(t *testing.T) {
	_, err := PrivateKeyFromBytes(make([]byte, 31))
	assert.IsErr(t, errors.ErrInput, err)
	_, err = PrivateKeyFromBytes(make([]byte, 32))
	assert.IsErr(t, errors.ErrInput, err)
}
