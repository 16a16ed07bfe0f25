package custody

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/x/cash"
)

// Transferer moves coins out of the engine pool once a spend is authorized.
// It writes to the given store only, so that its changes are discarded
// together with the rest of a failed call.
type Transferer interface {
	Transfer(db custody.KVStore, src, dest custody.Address, amount coin.Coin, payload []byte) error
}

// CashTransferer moves coins between x/cash wallets. The payload is not
// interpreted.
type CashTransferer struct {
	ctrl *cash.Controller
}

var _ Transferer = (*CashTransferer)(nil)

// NewCashTransferer returns a transferer backed by the default cash
// controller.
func NewCashTransferer() *CashTransferer {
	return &CashTransferer{ctrl: cash.NewController()}
}

func (t *CashTransferer) Transfer(db custody.KVStore, src, dest custody.Address, amount coin.Coin, payload []byte) error {
	return t.ctrl.MoveCoins(db, src, dest, amount)
}
