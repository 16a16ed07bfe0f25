package coin

import (
	"sort"

	"github.com/iov-one/custody/errors"
)

// Coins is a set of coins of distinct currencies, ordered by ticker. Zero
// amounts are never kept.
type Coins []Coin

// Add returns a copy of the set with c added. A zero value is ignored.
func (cs Coins) Add(c Coin) (Coins, error) {
	res := cs.Clone()
	if c.IsZero() {
		return res, nil
	}
	i := sort.Search(len(res), func(i int) bool { return res[i].Ticker >= c.Ticker })
	if i < len(res) && res[i].Ticker == c.Ticker {
		sum, err := res[i].Add(c)
		if err != nil {
			return nil, err
		}
		if sum.IsZero() {
			return append(res[:i], res[i+1:]...), nil
		}
		res[i] = sum
		return res, nil
	}
	res = append(res, Coin{})
	copy(res[i+1:], res[i:])
	res[i] = c
	return res, nil
}

// Subtract returns a copy of the set decreased by c. The result may hold
// negative amounts.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	return cs.Add(c.Negative())
}

// Balance returns the amount held in the given currency.
func (cs Coins) Balance(ticker string) Coin {
	for _, c := range cs {
		if c.Ticker == ticker {
			return c
		}
	}
	return Coin{Ticker: ticker}
}

// Contains returns true if there is at least that much coin in the set.
func (cs Coins) Contains(c Coin) bool {
	return cs.Balance(c.Ticker).IsGTE(c)
}

// Clone returns a copy that can be safely modified.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	copy(res, cs)
	return res
}

// IsEmpty returns if nothing is in the set.
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// Validate requires that all coins are valid, non zero and in ticker order.
func (cs Coins) Validate() error {
	var err error
	last := ""
	for _, c := range cs {
		err = errors.Append(err, c.Validate())
		if c.IsZero() {
			err = errors.Append(err, errors.Wrap(errors.ErrState, "zero coins"))
		}
		if c.Ticker <= last && last != "" {
			err = errors.Append(err, errors.Wrap(errors.ErrState, "not sorted"))
		}
		last = c.Ticker
	}
	return err
}
