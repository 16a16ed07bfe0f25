package custody

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

// Initializer creates the engine state from the "conf.custody" section of a
// genesis file.
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis stores the configuration and creates an empty ledger for both
// parties and the nonce counter.
func (Initializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	var conf Configuration
	if err := gconf.Load(db, PackageName, &conf); err == nil {
		return errors.Wrap(errors.ErrDuplicate, "engine already initialized")
	}
	if err := gconf.InitConfig(db, opts, PackageName, &conf); err != nil {
		return err
	}
	return initState(db, &conf)
}

func initState(db custody.KVStore, conf *Configuration) error {
	ledgers := NewLedgerBucket()
	for _, p := range Parties {
		if err := ledgers.Has(db, p.key()); err == nil {
			return errors.Wrapf(errors.ErrDuplicate, "%s ledger exists", p)
		}
		l := NewSpendLedger(conf.Limit(p), conf.WindowLength, conf.Depth(p), conf.StartHeight)
		if err := ledgers.Put(db, p.key(), l); err != nil {
			return errors.Wrapf(err, "%s ledger", p)
		}
	}
	return NewNonceGuard().Init(db, conf.Contract)
}
