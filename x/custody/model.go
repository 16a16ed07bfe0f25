package custody

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// Party is one of the two fixed roles of an engine.
type Party uint8

const (
	Customer Party = iota + 1
	Counterparty
)

// Parties lists all roles in a stable order.
var Parties = []Party{Customer, Counterparty}

func (p Party) String() string {
	switch p {
	case Customer:
		return "customer"
	case Counterparty:
		return "counterparty"
	}
	return "unknown"
}

// Validate returns an error for an unknown role.
func (p Party) Validate() error {
	if p != Customer && p != Counterparty {
		return errors.Wrapf(errors.ErrInput, "unknown party %d", p)
	}
	return nil
}

// ParseParty returns the role named by s.
func ParseParty(s string) (Party, error) {
	for _, p := range Parties {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, errors.Wrapf(errors.ErrInput, "unknown party %q", s)
}

func (p Party) key() []byte {
	return []byte(p.String())
}

// SpendLedger is the rate limiting state of a single party. Spends are
// accumulated in a circular buffer of buckets, one per window of
// WindowLength blocks. Only the buckets of the last len(Buckets) windows
// count towards the PeriodLimit.
type SpendLedger struct {
	PeriodLimit     coin.Coin   `json:"period_limit"`
	WindowLength    int64       `json:"window_length"`
	Buckets         []coin.Coin `json:"buckets"`
	WindowIndex     int64       `json:"window_index"`
	LastWindowStart int64       `json:"last_window_start"`
	// CachedRemaining is updated only when a new window is entered. It is
	// a report of the state at that moment and is never used to authorize
	// a spend.
	CachedRemaining coin.Coin `json:"cached_remaining"`
}

// NewSpendLedger returns an empty ledger whose first window starts at the
// given height.
func NewSpendLedger(limit coin.Coin, windowLength, depth, start int64) *SpendLedger {
	l := &SpendLedger{
		PeriodLimit:     limit,
		WindowLength:    windowLength,
		Buckets:         make([]coin.Coin, depth),
		LastWindowStart: start,
		CachedRemaining: limit,
	}
	for i := range l.Buckets {
		l.Buckets[i] = l.zero()
	}
	return l
}

func (l *SpendLedger) Marshal() ([]byte, error)   { return orm.Marshal(l) }
func (l *SpendLedger) Unmarshal(raw []byte) error { return orm.Unmarshal(raw, l) }

func (l *SpendLedger) Validate() error {
	var errs error
	if err := l.PeriodLimit.Validate(); err != nil {
		errs = errors.AppendField(errs, "PeriodLimit", err)
	} else if !l.PeriodLimit.IsNonNegative() {
		errs = errors.AppendField(errs, "PeriodLimit", errors.ErrAmount)
	}
	if l.WindowLength <= 0 {
		errs = errors.AppendField(errs, "WindowLength", errors.ErrInput)
	}
	if k := l.Depth(); k == 0 || k > MaxHistoryDepth {
		errs = errors.AppendField(errs, "Buckets", errors.ErrInput)
	} else if l.WindowIndex < 0 || l.WindowIndex >= k {
		errs = errors.AppendField(errs, "WindowIndex", errors.ErrInput)
	}
	for _, b := range l.Buckets {
		if !b.SameType(l.PeriodLimit) || !b.IsNonNegative() {
			errs = errors.Append(errs, errors.Field("Buckets", errors.ErrAmount, "bucket %s", b))
			break
		}
	}
	if !l.CachedRemaining.SameType(l.PeriodLimit) {
		errs = errors.AppendField(errs, "CachedRemaining", errors.ErrCurrency)
	}
	return errs
}

// Depth returns the number of windows that count towards the limit.
func (l *SpendLedger) Depth() int64 {
	return int64(len(l.Buckets))
}

func (l *SpendLedger) zero() coin.Coin {
	return coin.Coin{Ticker: l.PeriodLimit.Ticker}
}

// JointState holds the replay protection counter of co-signed spends.
type JointState struct {
	// Contract is the engine address the nonce belongs to.
	Contract custody.Address `json:"contract"`
	Nonce    uint64          `json:"nonce"`
}

func (s *JointState) Marshal() ([]byte, error)   { return orm.Marshal(s) }
func (s *JointState) Unmarshal(raw []byte) error { return orm.Unmarshal(raw, s) }

func (s *JointState) Validate() error {
	return errors.Field("Contract", s.Contract.Validate(), "engine address")
}

// NewLedgerBucket returns a bucket storing one SpendLedger per party.
func NewLedgerBucket() orm.ModelBucket {
	return orm.NewModelBucket("ledger", &SpendLedger{})
}
