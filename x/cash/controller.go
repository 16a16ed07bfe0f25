package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// Controller moves coins between wallets.
type Controller struct {
	bucket orm.ModelBucket
}

// NewController returns a controller operating on the default wallet bucket.
func NewController() *Controller {
	return &Controller{bucket: NewWalletBucket()}
}

// Balance returns all coins owned by the address. A missing wallet is empty.
func (c *Controller) Balance(db custody.ReadOnlyKVStore, addr custody.Address) (coin.Coins, error) {
	w, err := c.wallet(db, addr)
	if err != nil {
		return nil, err
	}
	return w.Coins, nil
}

// MoveCoins moves the given amount from src to dest. It fails if src does not
// hold enough coins.
func (c *Controller) MoveCoins(db custody.KVStore, src, dest custody.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", amount)
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.wallet(db, src)
	if err != nil {
		return err
	}
	if !sender.Coins.Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s holds %s", src, sender.Coins.Balance(amount.Ticker))
	}
	if sender.Coins, err = sender.Coins.Subtract(amount); err != nil {
		return err
	}
	if err := c.save(db, src, sender); err != nil {
		return err
	}
	return c.IssueCoins(db, dest, amount)
}

// IssueCoins adds the amount to the destination wallet. A negative amount
// burns coins and fails if the wallet would go below zero.
func (c *Controller) IssueCoins(db custody.KVStore, dest custody.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	w, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if w.Coins, err = w.Coins.Add(amount); err != nil {
		return err
	}
	return c.save(db, dest, w)
}

func (c *Controller) wallet(db custody.ReadOnlyKVStore, addr custody.Address) (*Wallet, error) {
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	var w Wallet
	switch err := c.bucket.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, errors.Wrap(err, "cannot load wallet")
	}
}

func (c *Controller) save(db custody.KVStore, addr custody.Address, w *Wallet) error {
	if len(w.Coins) == 0 {
		if err := c.bucket.Delete(db, addr); err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
		return nil
	}
	return c.bucket.Put(db, addr, w)
}
