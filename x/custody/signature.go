package custody

import (
	"bytes"
	"encoding/binary"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/crypto/secp256k1"
	"github.com/iov-one/custody/errors"
)

// signPrefix is the version 0 header of EIP-191 signed data: a 0x19 byte
// followed by the version byte.
var signPrefix = []byte{0x19, 0x00}

// SpendHash returns the digest both parties sign to authorize a joint spend:
//
//	keccak256(0x19 || 0x00 || contract || destination || amount || payload || nonce)
//
// Addresses are 20 bytes. The amount in base units and the nonce are 32 byte
// big endian integers.
func SpendHash(contract, dest custody.Address, amount coin.Coin, payload []byte, nonce uint64) ([]byte, error) {
	if err := contract.Validate(); err != nil {
		return nil, errors.Wrap(err, "contract")
	}
	if err := dest.Validate(); err != nil {
		return nil, errors.Wrap(err, "destination")
	}
	if !amount.IsNonNegative() {
		return nil, errors.Wrapf(errors.ErrAmount, "negative amount %s", amount)
	}

	var buf bytes.Buffer
	buf.Write(signPrefix)
	buf.Write(contract)
	buf.Write(dest)
	buf.Write(uint256(amount.BaseUnits().Bytes()))
	buf.Write(payload)
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], nonce)
	buf.Write(uint256(n[:]))
	return secp256k1.Keccak256(buf.Bytes()), nil
}

// uint256 left pads a big endian integer to 32 bytes.
func uint256(b []byte) []byte {
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

// RecoverAndMatch succeeds only if the two signatures over the hash were
// made by exactly the two expected addresses, in any order.
func RecoverAndMatch(hash, sig1, sig2 []byte, want1, want2 custody.Address) error {
	got1, err := secp256k1.Recover(hash, sig1)
	if err != nil {
		return errors.Wrap(errors.ErrSignature, "first signature: "+err.Error())
	}
	got2, err := secp256k1.Recover(hash, sig2)
	if err != nil {
		return errors.Wrap(errors.ErrSignature, "second signature: "+err.Error())
	}
	if got1.Equals(got2) {
		return errors.Wrapf(errors.ErrSignature, "both signatures made by %s", got1)
	}
	if (got1.Equals(want1) && got2.Equals(want2)) || (got1.Equals(want2) && got2.Equals(want1)) {
		return nil
	}
	return errors.Wrapf(errors.ErrSignature, "unexpected signers %s and %s", got1, got2)
}
