package custody

import (
	"context"
	"encoding/hex"
	"sync"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x/cash"
)

// Store is the state an engine operates on. Both the in-memory store and the
// iavl commit store implement it.
type Store interface {
	custody.ReadOnlyKVStore
	CacheWrap() custody.KVCacheWrap
}

// Engine authorizes spends from the pool shared by the two parties.
//
// All calls are serialized. Each mutating call runs on a cache wrap of the
// store that is written only if the whole call succeeds.
type Engine struct {
	mu       sync.Mutex
	db       Store
	conf     Configuration
	ledgers  orm.ModelBucket
	nonces   *NonceGuard
	wallets  *cash.Controller
	transfer Transferer
	metrics  *Metrics
}

// NewEngine loads an engine initialized with FromGenesis. A nil transferer
// moves coins with x/cash. A nil metrics records nothing.
func NewEngine(db Store, t Transferer, m *Metrics) (*Engine, error) {
	e := &Engine{
		db:       db,
		ledgers:  NewLedgerBucket(),
		nonces:   NewNonceGuard(),
		wallets:  cash.NewController(),
		transfer: t,
		metrics:  m,
	}
	if e.transfer == nil {
		e.transfer = NewCashTransferer()
	}
	if err := gconf.Load(db, PackageName, &e.conf); err != nil {
		return nil, errors.Wrap(err, "engine not initialized")
	}
	if err := e.conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "stored configuration")
	}
	n, err := e.nonces.CurrentNonce(db)
	if err != nil {
		return nil, err
	}
	e.metrics.setNonce(n)
	return e, nil
}

// Config returns the engine parameters.
func (e *Engine) Config() Configuration {
	return e.conf
}

// SpendSolo moves amount to dest on behalf of the caller, who must be one
// of the parties. The spend counts towards the caller's rate limit at the
// height carried by ctx. A zero amount moves nothing but still advances the
// caller's ledger.
func (e *Engine) SpendSolo(ctx context.Context, caller, dest custody.Address, amount coin.Coin, payload []byte) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer func() { e.metrics.observeSpend("solo", err) }()

	height, ok := custody.GetHeight(ctx)
	if !ok {
		return errors.Wrap(errors.ErrHuman, "missing height")
	}
	party, ok := e.conf.PartyOf(caller)
	if !ok {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not a party", caller)
	}
	log := custody.GetLogger(ctx).With("module", PackageName, "path", "solo", "party", party.String())

	err = e.atomic(func(db custody.KVStore) error {
		l, err := e.ledger(db, party)
		if err != nil {
			return err
		}
		if err := l.CheckAndRecord(height, amount); err != nil {
			return err
		}
		if err := e.ledgers.Put(db, party.key(), l); err != nil {
			return errors.Wrap(err, "save ledger")
		}
		if amount.IsZero() {
			return nil
		}
		return e.send(db, dest, amount, payload)
	})
	if err != nil {
		log.Debug("spend rejected", "height", height, "amount", amount.String(), "err", err)
		return err
	}
	log.Info("spend", "height", height, "to", dest.String(), "amount", amount.String(), "payload", hex.EncodeToString(payload))
	return nil
}

// SpendJoint moves amount to dest when both signatures over SpendHash with
// the current nonce come from the two parties. It is not rate limited. The
// nonce is incremented on success.
func (e *Engine) SpendJoint(ctx context.Context, sig1, sig2 []byte, dest custody.Address, amount coin.Coin, payload []byte) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer func() { e.metrics.observeSpend("joint", err) }()

	log := custody.GetLogger(ctx).With("module", PackageName, "path", "joint")

	var nonce uint64
	err = e.atomic(func(db custody.KVStore) error {
		if err := e.checkAmount(amount); err != nil {
			return err
		}
		current, err := e.nonces.CurrentNonce(db)
		if err != nil {
			return err
		}
		hash, err := SpendHash(e.conf.Contract, dest, amount, payload, current)
		if err != nil {
			return err
		}
		if err := RecoverAndMatch(hash, sig1, sig2, e.conf.Customer, e.conf.Counterparty); err != nil {
			return err
		}
		if nonce, err = e.nonces.Advance(db); err != nil {
			return err
		}
		if amount.IsZero() {
			return nil
		}
		return e.send(db, dest, amount, payload)
	})
	if err != nil {
		log.Debug("spend rejected", "amount", amount.String(), "err", err)
		return err
	}
	e.metrics.setNonce(nonce)
	log.Info("spend", "nonce", nonce, "to", dest.String(), "amount", amount.String(), "payload", hex.EncodeToString(payload))
	return nil
}

// FundsReceived credits a deposit to the engine pool. It does not change
// any ledger.
func (e *Engine) FundsReceived(ctx context.Context, from custody.Address, amount coin.Coin) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkAmount(amount); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "deposit of %s", amount)
	}
	err := e.atomic(func(db custody.KVStore) error {
		return e.wallets.IssueCoins(db, e.conf.Contract, amount)
	})
	if err != nil {
		return err
	}
	custody.GetLogger(ctx).Info("funds received", "module", PackageName, "from", from.String(), "amount", amount.String())
	return nil
}

// send validates and transfers the amount from the pool. Any failure is
// reported as ErrTransfer.
func (e *Engine) send(db custody.KVStore, dest custody.Address, amount coin.Coin, payload []byte) error {
	if err := e.checkAmount(amount); err != nil {
		return err
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if err := e.transfer.Transfer(db, e.conf.Contract, dest, amount, payload); err != nil {
		return errors.Wrap(errors.Append(ErrTransfer, err), "transfer")
	}
	return nil
}

func (e *Engine) checkAmount(amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if amount.Ticker != e.conf.Ticker {
		return errors.Wrapf(errors.ErrCurrency, "want %s, got %s", e.conf.Ticker, amount.Ticker)
	}
	if !amount.IsNonNegative() {
		return errors.Wrapf(errors.ErrAmount, "negative amount %s", amount)
	}
	return nil
}

// atomic runs fn on a cache wrap of the engine store. Changes are written
// only if fn succeeds.
func (e *Engine) atomic(fn func(db custody.KVStore) error) (err error) {
	cache := e.db.CacheWrap()
	defer func() {
		if err != nil {
			cache.Discard()
		}
	}()
	defer errors.Recover(&err)

	if err := fn(cache); err != nil {
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "write: %s", err)
	}
	return nil
}

func (e *Engine) ledger(db custody.ReadOnlyKVStore, p Party) (*SpendLedger, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var l SpendLedger
	if err := e.ledgers.One(db, p.key(), &l); err != nil {
		return nil, errors.Wrapf(err, "%s ledger", p)
	}
	return &l, nil
}

// Ledger returns a copy of the stored ledger of the party.
func (e *Engine) Ledger(p Party) (*SpendLedger, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger(e.db, p)
}

// SpendingBucket returns the amount recorded in bucket i of the party. The
// ledger is not advanced, so a stale bucket is reported as stored.
func (e *Engine) SpendingBucket(p Party, i int64) (coin.Coin, error) {
	l, err := e.Ledger(p)
	if err != nil {
		return coin.Coin{}, err
	}
	return l.Bucket(i)
}

// RemainingAllowance returns the allowance computed when the party last
// entered a new window. It does not account for spends made since and must
// not be used to predict whether a spend will be accepted.
func (e *Engine) RemainingAllowance(p Party) (coin.Coin, error) {
	l, err := e.Ledger(p)
	if err != nil {
		return coin.Coin{}, err
	}
	return l.CachedRemaining, nil
}

// WindowIndex returns the index of the active bucket of the party.
func (e *Engine) WindowIndex(p Party) (int64, error) {
	l, err := e.Ledger(p)
	if err != nil {
		return 0, err
	}
	return l.WindowIndex, nil
}

// CurrentNonce returns the nonce the next joint spend must be signed with.
func (e *Engine) CurrentNonce() (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nonces.CurrentNonce(e.db)
}

// Balance returns the amount held in the engine pool.
func (e *Engine) Balance() (coin.Coin, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	coins, err := e.wallets.Balance(e.db, e.conf.Contract)
	if err != nil {
		return coin.Coin{}, err
	}
	return coins.Balance(e.conf.Ticker), nil
}
