package cash

import (
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// Wallet holds all coins owned by a single address.
type Wallet struct {
	Coins coin.Coins `json:"coins"`
}

func (w *Wallet) Marshal() ([]byte, error)   { return orm.Marshal(w) }
func (w *Wallet) Unmarshal(raw []byte) error { return orm.Unmarshal(raw, w) }

// Validate requires a normalized, non negative coin set.
func (w *Wallet) Validate() error {
	if err := w.Coins.Validate(); err != nil {
		return errors.Field("Coins", err, "invalid coins")
	}
	for _, c := range w.Coins {
		if !c.IsNonNegative() {
			return errors.Field("Coins", errors.ErrAmount, "negative balance %s", c)
		}
	}
	return nil
}

// NewWalletBucket returns a bucket storing wallets under their owner address.
func NewWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket("cash", &Wallet{})
}
