package cash

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/require"
)

func TestMoveCoins(t *testing.T) {
	src := custodytest.RandomAddr(t)
	dst := custodytest.RandomAddr(t)

	cases := map[string]struct {
		funds   coin.Coin
		amount  coin.Coin
		dest    custody.Address
		wantErr *errors.Error
		wantSrc coin.Coin
		wantDst coin.Coin
	}{
		"partial move": {
			funds:   coin.NewCoin(10, 0, "IOV"),
			amount:  coin.NewCoin(2, 500000000, "IOV"),
			dest:    dst,
			wantSrc: coin.NewCoin(7, 500000000, "IOV"),
			wantDst: coin.NewCoin(2, 500000000, "IOV"),
		},
		"move everything": {
			funds:   coin.NewCoin(10, 0, "IOV"),
			amount:  coin.NewCoin(10, 0, "IOV"),
			dest:    dst,
			wantSrc: coin.Coin{Ticker: "IOV"},
			wantDst: coin.NewCoin(10, 0, "IOV"),
		},
		"insufficient funds": {
			funds:   coin.NewCoin(1, 0, "IOV"),
			amount:  coin.NewCoin(1, 1, "IOV"),
			dest:    dst,
			wantErr: errors.ErrInsufficientAmount,
		},
		"other currency": {
			funds:   coin.NewCoin(10, 0, "IOV"),
			amount:  coin.NewCoin(1, 0, "ETH"),
			dest:    dst,
			wantErr: errors.ErrInsufficientAmount,
		},
		"zero amount": {
			funds:   coin.NewCoin(10, 0, "IOV"),
			amount:  coin.NewCoin(0, 0, "IOV"),
			dest:    dst,
			wantErr: errors.ErrAmount,
		},
		"negative amount": {
			funds:   coin.NewCoin(10, 0, "IOV"),
			amount:  coin.NewCoin(-1, 0, "IOV"),
			dest:    dst,
			wantErr: errors.ErrAmount,
		},
		"invalid destination": {
			funds:   coin.NewCoin(10, 0, "IOV"),
			amount:  coin.NewCoin(1, 0, "IOV"),
			dest:    custody.Address("short"),
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			assert.Nil(t, ctrl.IssueCoins(db, src, tc.funds))

			err := ctrl.MoveCoins(db, src, tc.dest, tc.amount)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)

			srcCoins, err := ctrl.Balance(db, src)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantSrc, srcCoins.Balance("IOV"))
			dstCoins, err := ctrl.Balance(db, tc.dest)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantDst, dstCoins.Balance("IOV"))
		})
	}
}

func TestIssueCoinsBurn(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	addr := custodytest.RandomAddr(t)

	assert.Nil(t, ctrl.IssueCoins(db, addr, coin.NewCoin(3, 0, "IOV")))
	assert.Nil(t, ctrl.IssueCoins(db, addr, coin.NewCoin(-1, 0, "IOV")))
	assert.IsErr(t, errors.ErrAmount, ctrl.IssueCoins(db, addr, coin.NewCoin(-5, 0, "IOV")))

	coins, err := ctrl.Balance(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, coin.Coins{coin.NewCoin(2, 0, "IOV")}, coins)
}

func TestEmptyWalletIsRemoved(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	addr := custodytest.RandomAddr(t)

	require.NoError(t, ctrl.IssueCoins(db, addr, coin.NewCoin(3, 0, "IOV")))
	require.NoError(t, ctrl.MoveCoins(db, addr, custodytest.RandomAddr(t), coin.NewCoin(3, 0, "IOV")))
	assert.IsErr(t, errors.ErrNotFound, NewWalletBucket().Has(db, addr))
}
