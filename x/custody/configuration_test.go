package custody

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
)

func validConfiguration(t testing.TB) Configuration {
	return Configuration{
		Contract:          custodytest.SeedKey(t, "contract").Address(),
		Customer:          custodytest.SeedKey(t, "customer").Address(),
		Counterparty:      custodytest.SeedKey(t, "counterparty").Address(),
		Ticker:            "IOV",
		CustomerLimit:     iov(10, 0),
		CounterpartyLimit: iov(5, 0),
		WindowLength:      15,
		HistoryDepth:      4,
	}
}

func TestConfigurationValidate(t *testing.T) {
	cases := map[string]struct {
		mutate func(*Configuration)
		want   map[string]*errors.Error
	}{
		"valid": {
			mutate: func(*Configuration) {},
		},
		"per party depth overrides missing shared depth": {
			mutate: func(c *Configuration) {
				c.HistoryDepth = 0
				c.CustomerHistoryDepth = 2
				c.CounterpartyHistoryDepth = 8
			},
		},
		"zero depth": {
			mutate: func(c *Configuration) { c.HistoryDepth = 0 },
			want: map[string]*errors.Error{
				"CustomerHistoryDepth":     errors.ErrInput,
				"CounterpartyHistoryDepth": errors.ErrInput,
			},
		},
		"depth too large": {
			mutate: func(c *Configuration) { c.CustomerHistoryDepth = MaxHistoryDepth + 1 },
			want: map[string]*errors.Error{
				"CustomerHistoryDepth":     errors.ErrInput,
				"CounterpartyHistoryDepth": nil,
			},
		},
		"zero window": {
			mutate: func(c *Configuration) { c.WindowLength = 0 },
			want:   map[string]*errors.Error{"WindowLength": errors.ErrInput},
		},
		"same parties": {
			mutate: func(c *Configuration) { c.Counterparty = c.Customer },
			want:   map[string]*errors.Error{"Counterparty": errors.ErrDuplicate},
		},
		"engine is a party": {
			mutate: func(c *Configuration) { c.Contract = c.Customer },
			want:   map[string]*errors.Error{"Contract": errors.ErrDuplicate},
		},
		"missing customer": {
			mutate: func(c *Configuration) { c.Customer = nil },
			want:   map[string]*errors.Error{"Customer": errors.ErrInput},
		},
		"limit in another currency": {
			mutate: func(c *Configuration) { c.CustomerLimit = coin.NewCoin(1, 0, "ETH") },
			want: map[string]*errors.Error{
				"CustomerLimit":     errors.ErrCurrency,
				"CounterpartyLimit": nil,
			},
		},
		"negative limit": {
			mutate: func(c *Configuration) { c.CounterpartyLimit = iov(-1, 0) },
			want:   map[string]*errors.Error{"CounterpartyLimit": errors.ErrAmount},
		},
		"bad ticker": {
			mutate: func(c *Configuration) { c.Ticker = "iov" },
			want:   map[string]*errors.Error{"Ticker": errors.ErrCurrency},
		},
		"negative start": {
			mutate: func(c *Configuration) { c.StartHeight = -1 },
			want:   map[string]*errors.Error{"StartHeight": errors.ErrInput},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			conf := validConfiguration(t)
			tc.mutate(&conf)
			err := conf.Validate()
			if len(tc.want) == 0 {
				assert.Nil(t, err)
				return
			}
			for field, want := range tc.want {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestConfigurationParties(t *testing.T) {
	conf := validConfiguration(t)
	conf.CounterpartyHistoryDepth = 6

	p, ok := conf.PartyOf(conf.Customer)
	assert.Equal(t, true, ok)
	assert.Equal(t, Customer, p)
	p, ok = conf.PartyOf(conf.Counterparty)
	assert.Equal(t, true, ok)
	assert.Equal(t, Counterparty, p)
	_, ok = conf.PartyOf(conf.Contract)
	assert.Equal(t, false, ok)
	_, ok = conf.PartyOf(custody.Address(nil))
	assert.Equal(t, false, ok)

	assert.Equal(t, int64(4), conf.Depth(Customer))
	assert.Equal(t, int64(6), conf.Depth(Counterparty))
	assert.Equal(t, iov(5, 0), conf.Limit(Counterparty))

	got, err := ParseParty("counterparty")
	assert.Nil(t, err)
	assert.Equal(t, Counterparty, got)
	_, err = ParseParty("exchange")
	assert.IsErr(t, errors.ErrInput, err)
}
