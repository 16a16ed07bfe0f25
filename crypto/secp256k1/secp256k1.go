package secp256k1

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"golang.org/x/crypto/sha3"
)

const (
	// PrivateKeySize is the length of a serialized private key.
	PrivateKeySize = 32
	// SignatureSize is the length of R || S || V.
	SignatureSize = 65
	// HashSize is the length of a digest that can be signed.
	HashSize = 32
)

var halfOrder = new(big.Int).Rsh(btcec.S256().Params().N, 1)

// PrivateKey signs digests on behalf of a single address.
type PrivateKey struct {
	key *btcec.PrivateKey
}

// GenerateKey returns a new random private key.
func GenerateKey() (*PrivateKey, error) {
	k, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrHuman, "cannot generate key: %s", err)
	}
	return &PrivateKey{key: k}, nil
}

// PrivateKeyFromBytes loads a serialized private key.
func PrivateKeyFromBytes(raw []byte) (*PrivateKey, error) {
	if len(raw) != PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "private key length %d", len(raw))
	}
	n := new(big.Int).SetBytes(raw)
	if n.Sign() == 0 || n.Cmp(btcec.S256().Params().N) >= 0 {
		return nil, errors.Wrap(errors.ErrInput, "private key out of range")
	}
	k, _ := btcec.PrivKeyFromBytes(raw)
	return &PrivateKey{key: k}, nil
}

// Bytes returns the serialized form of the key.
func (p *PrivateKey) Bytes() []byte {
	return p.key.Serialize()
}

// PublicKey returns the uncompressed public key.
func (p *PrivateKey) PublicKey() []byte {
	return p.key.PubKey().SerializeUncompressed()
}

// Address returns the address controlled by this key.
func (p *PrivateKey) Address() custody.Address {
	return PubKeyToAddress(p.PublicKey())
}

// Sign returns the R || S || V signature of the digest, with V in {27, 28}.
func (p *PrivateKey) Sign(hash []byte) ([]byte, error) {
	if len(hash) != HashSize {
		return nil, errors.Wrapf(errors.ErrInput, "hash length %d", len(hash))
	}
	// Compact form is V || R || S.
	compact := ecdsa.SignCompact(p.key, hash, false)
	sig := make([]byte, SignatureSize)
	copy(sig, compact[1:])
	sig[64] = compact[0]
	return sig, nil
}

// Recover returns the address that produced the signature over the digest.
func Recover(hash, sig []byte) (custody.Address, error) {
	if len(hash) != HashSize {
		return nil, errors.Wrapf(errors.ErrInput, "hash length %d", len(hash))
	}
	if len(sig) != SignatureSize {
		return nil, errors.Wrapf(errors.ErrSignature, "signature length %d", len(sig))
	}
	v := sig[64]
	if v >= 27 {
		v -= 27
	}
	if v > 1 {
		return nil, errors.Wrapf(errors.ErrSignature, "recovery id %d", sig[64])
	}
	s := new(big.Int).SetBytes(sig[32:64])
	if s.Sign() == 0 || s.Cmp(halfOrder) > 0 {
		return nil, errors.Wrap(errors.ErrSignature, "s value out of range")
	}

	compact := make([]byte, SignatureSize)
	compact[0] = 27 + v
	copy(compact[1:], sig[:64])
	pub, _, err := ecdsa.RecoverCompact(compact, hash)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrSignature, "cannot recover: %s", err)
	}
	return PubKeyToAddress(pub.SerializeUncompressed()), nil
}

// PubKeyToAddress returns the address of an uncompressed public key.
func PubKeyToAddress(pub []byte) custody.Address {
	if len(pub) == 65 {
		pub = pub[1:]
	}
	return custody.Address(Keccak256(pub)[12:])
}

// Keccak256 returns the legacy keccak-256 digest of the concatenated data.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}
