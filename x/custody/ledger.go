package custody

import (
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
)

// Advance moves the ledger to the window containing the given height.
//
// Buckets of windows entered since the last call are cleared. If at least
// Depth windows passed, the whole history is cleared at once and the index
// restarts at the number of elapsed windows modulo Depth. The cached
// remaining allowance is recomputed only when the window changes.
func (l *SpendLedger) Advance(height int64) error {
	if height < l.LastWindowStart {
		return errors.Wrapf(errors.ErrInput, "height %d before window start %d", height, l.LastWindowStart)
	}
	elapsed := (height - l.LastWindowStart) / l.WindowLength
	if elapsed == 0 {
		return nil
	}

	k := l.Depth()
	if elapsed >= k {
		for i := range l.Buckets {
			l.Buckets[i] = l.zero()
		}
		l.WindowIndex = elapsed % k
	} else {
		for i := int64(1); i <= elapsed; i++ {
			l.Buckets[(l.WindowIndex+i)%k] = l.zero()
		}
		l.WindowIndex = (l.WindowIndex + elapsed) % k
	}
	l.LastWindowStart += elapsed * l.WindowLength

	active, err := l.ActiveSum()
	if err != nil {
		return err
	}
	remaining, err := l.PeriodLimit.Subtract(active)
	if err != nil {
		return errors.Wrap(err, "remaining allowance")
	}
	l.CachedRemaining = remaining
	return nil
}

// ActiveSum returns the total spent in all windows that are not stale.
// Stale buckets are always zero after Advance so this is the sum of all
// buckets.
func (l *SpendLedger) ActiveSum() (coin.Coin, error) {
	sum := l.zero()
	for _, b := range l.Buckets {
		var err error
		if sum, err = sum.Add(b); err != nil {
			return sum, errors.Wrap(err, "bucket sum")
		}
	}
	return sum, nil
}

// CheckAndRecord advances the ledger and records the amount in the current
// bucket. The spend is rejected with ErrRateLimit if the active sum
// including the amount would exceed the period limit, in which case no
// bucket is changed. A zero amount is always accepted.
func (l *SpendLedger) CheckAndRecord(height int64, amount coin.Coin) error {
	if err := l.Advance(height); err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}
	if !amount.SameType(l.PeriodLimit) {
		return errors.Wrapf(errors.ErrCurrency, "want %s, got %s", l.PeriodLimit.Ticker, amount.Ticker)
	}
	if !amount.IsNonNegative() {
		return errors.Wrapf(errors.ErrAmount, "negative amount %s", amount)
	}

	active, err := l.ActiveSum()
	if err != nil {
		return err
	}
	total, err := active.Add(amount)
	if err != nil {
		return errors.Wrap(ErrRateLimit, err.Error())
	}
	if total.Compare(l.PeriodLimit) > 0 {
		return errors.Wrapf(ErrRateLimit, "spent %s, limit %s, requested %s", active, l.PeriodLimit, amount)
	}
	current, err := l.Buckets[l.WindowIndex].Add(amount)
	if err != nil {
		return err
	}
	l.Buckets[l.WindowIndex] = current
	return nil
}

// Bucket returns the amount spent in the bucket at index i.
func (l *SpendLedger) Bucket(i int64) (coin.Coin, error) {
	if i < 0 || i >= l.Depth() {
		return coin.Coin{}, errors.Wrapf(errors.ErrInput, "bucket index %d out of range [0, %d)", i, l.Depth())
	}
	return l.Buckets[i], nil
}
