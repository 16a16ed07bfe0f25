package custody

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

var jointKey = []byte("state")

// NonceGuard keeps the counter that makes every joint spend authorization
// single use.
type NonceGuard struct {
	bucket orm.ModelBucket
}

// NewNonceGuard returns a guard using the default bucket.
func NewNonceGuard() *NonceGuard {
	return &NonceGuard{bucket: orm.NewModelBucket("joint", &JointState{})}
}

// Init creates the counter for the engine, starting at zero.
func (g *NonceGuard) Init(db custody.KVStore, contract custody.Address) error {
	if err := g.bucket.Has(db, jointKey); err == nil {
		return errors.Wrap(errors.ErrDuplicate, "nonce already initialized")
	}
	return g.bucket.Put(db, jointKey, &JointState{Contract: contract})
}

// CurrentNonce returns the nonce the next joint spend must be signed with.
func (g *NonceGuard) CurrentNonce(db custody.ReadOnlyKVStore) (uint64, error) {
	s, err := g.load(db)
	if err != nil {
		return 0, err
	}
	return s.Nonce, nil
}

// Advance increments the nonce by one and returns the new value.
func (g *NonceGuard) Advance(db custody.KVStore) (uint64, error) {
	s, err := g.load(db)
	if err != nil {
		return 0, err
	}
	if s.Nonce+1 == 0 {
		return 0, errors.Wrap(errors.ErrOverflow, "nonce")
	}
	s.Nonce++
	if err := g.bucket.Put(db, jointKey, s); err != nil {
		return 0, err
	}
	return s.Nonce, nil
}

func (g *NonceGuard) load(db custody.ReadOnlyKVStore) (*JointState, error) {
	var s JointState
	if err := g.bucket.One(db, jointKey, &s); err != nil {
		return nil, errors.Wrap(err, "joint state")
	}
	return &s, nil
}
