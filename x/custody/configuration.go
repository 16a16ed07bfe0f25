package custody

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
	"github.com/iov-one/custody/orm"
)

const (
	// PackageName is the configuration key of this extension.
	PackageName = "custody"

	// MaxHistoryDepth bounds the number of buckets kept per party.
	MaxHistoryDepth = 1024
)

// Configuration holds the parameters of an engine. It is set once at
// initialization and never changes afterwards.
type Configuration struct {
	// Contract is the engine address. It holds the pool and separates
	// signatures of different engines.
	Contract     custody.Address `json:"contract"`
	Customer     custody.Address `json:"customer"`
	Counterparty custody.Address `json:"counterparty"`
	// Ticker is the only currency the engine moves.
	Ticker            string    `json:"ticker"`
	CustomerLimit     coin.Coin `json:"customer_limit"`
	CounterpartyLimit coin.Coin `json:"counterparty_limit"`
	WindowLength      int64     `json:"window_length"`
	// HistoryDepth is the number of windows that count towards the
	// limit. The per party values override it when set.
	HistoryDepth             int64 `json:"history_depth"`
	CustomerHistoryDepth     int64 `json:"customer_history_depth,omitempty"`
	CounterpartyHistoryDepth int64 `json:"counterparty_history_depth,omitempty"`
	StartHeight              int64 `json:"start_height"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error)   { return orm.Marshal(c) }
func (c *Configuration) Unmarshal(raw []byte) error { return orm.Unmarshal(raw, c) }

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Contract", c.Contract.Validate())
	errs = errors.AppendField(errs, "Customer", c.Customer.Validate())
	errs = errors.AppendField(errs, "Counterparty", c.Counterparty.Validate())
	if len(c.Customer) != 0 && c.Customer.Equals(c.Counterparty) {
		errs = errors.Append(errs, errors.Field("Counterparty", errors.ErrDuplicate, "same as customer"))
	}
	if len(c.Contract) != 0 && (c.Contract.Equals(c.Customer) || c.Contract.Equals(c.Counterparty)) {
		errs = errors.Append(errs, errors.Field("Contract", errors.ErrDuplicate, "engine cannot be a party"))
	}
	if !coin.IsCC(c.Ticker) {
		errs = errors.Append(errs, errors.Field("Ticker", errors.ErrCurrency, "invalid ticker %q", c.Ticker))
	}
	errs = errors.AppendField(errs, "CustomerLimit", c.validLimit(c.CustomerLimit))
	errs = errors.AppendField(errs, "CounterpartyLimit", c.validLimit(c.CounterpartyLimit))
	if c.WindowLength <= 0 {
		errs = errors.Append(errs, errors.Field("WindowLength", errors.ErrInput, "must be positive"))
	}
	if c.HistoryDepth < 0 || c.HistoryDepth > MaxHistoryDepth {
		errs = errors.Append(errs, errors.Field("HistoryDepth", errors.ErrInput, "must not exceed %d", MaxHistoryDepth))
	}
	for _, p := range Parties {
		if d := c.Depth(p); d <= 0 || d > MaxHistoryDepth {
			errs = errors.Append(errs, errors.Field(depthField(p), errors.ErrInput, "must be between 1 and %d", MaxHistoryDepth))
		}
	}
	if c.StartHeight < 0 {
		errs = errors.Append(errs, errors.Field("StartHeight", errors.ErrInput, "must not be negative"))
	}
	return errs
}

func (c *Configuration) validLimit(limit coin.Coin) error {
	if err := limit.Validate(); err != nil {
		return err
	}
	if limit.Ticker != c.Ticker {
		return errors.Wrapf(errors.ErrCurrency, "want %s", c.Ticker)
	}
	if !limit.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative limit")
	}
	return nil
}

func depthField(p Party) string {
	if p == Customer {
		return "CustomerHistoryDepth"
	}
	return "CounterpartyHistoryDepth"
}

// Address returns the address of the party.
func (c *Configuration) Address(p Party) custody.Address {
	if p == Customer {
		return c.Customer
	}
	return c.Counterparty
}

// Limit returns the period limit of the party.
func (c *Configuration) Limit(p Party) coin.Coin {
	if p == Customer {
		return c.CustomerLimit
	}
	return c.CounterpartyLimit
}

// Depth returns the history depth of the party.
func (c *Configuration) Depth(p Party) int64 {
	d := c.CounterpartyHistoryDepth
	if p == Customer {
		d = c.CustomerHistoryDepth
	}
	if d == 0 {
		return c.HistoryDepth
	}
	return d
}

// PartyOf returns the role of the address.
func (c *Configuration) PartyOf(addr custody.Address) (Party, bool) {
	for _, p := range Parties {
		if c.Address(p).Equals(addr) {
			return p, len(addr) != 0
		}
	}
	return 0, false
}
