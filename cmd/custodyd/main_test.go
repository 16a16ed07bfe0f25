package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	xcustody "github.com/iov-one/custody/x/custody"
	"github.com/stretchr/testify/require"
)

// run executes a command the way main does and returns its trimmed output.
func run(t testing.TB, input string, cmd string, args ...string) (string, error) {
	t.Helper()
	fn, ok := commands[cmd]
	require.True(t, ok, "unknown command %q", cmd)
	var out bytes.Buffer
	err := fn(strings.NewReader(input), &out, args)
	return strings.TrimSpace(out.String()), err
}

func mustRun(t testing.TB, input string, cmd string, args ...string) string {
	t.Helper()
	out, err := run(t, input, cmd, args...)
	require.NoError(t, err, "%s %v", cmd, args)
	return out
}

func TestEngineLifecycle(t *testing.T) {
	dir := t.TempDir()
	home := filepath.Join(dir, "home")
	customerKey := filepath.Join(dir, "customer.key")
	counterpartyKey := filepath.Join(dir, "counterparty.key")

	mustRun(t, "", "keygen", "-key", customerKey)
	mustRun(t, "", "keygen", "-key", counterpartyKey)
	_, err := run(t, "", "keygen", "-key", customerKey)
	assert.IsErr(t, errors.ErrDuplicate, err)

	customer := mustRun(t, "", "keyaddr", "-key", customerKey)
	counterparty := mustRun(t, "", "keyaddr", "-key", counterpartyKey)
	contract := custodytest.RandomAddr(t)
	dest := custodytest.RandomAddr(t)

	genesis := fmt.Sprintf(`{
		"conf": {"custody": {
			"contract": %q, "customer": %q, "counterparty": %q,
			"ticker": "IOV", "customer_limit": "10 IOV", "counterparty_limit": "5 IOV",
			"window_length": 10, "history_depth": 4, "start_height": 0
		}},
		"cash": [{"address": %q, "coins": ["50 IOV"]}]
	}`, contract, customer, counterparty, contract)
	out := mustRun(t, genesis, "init", "-home", home)
	require.True(t, strings.HasPrefix(out, "initialized version 1 "), out)

	_, err = run(t, genesis, "init", "-home", home)
	assert.IsErr(t, errors.ErrDuplicate, err)

	mustRun(t, "", "fund", "-home", home, "-from", dest.String(), "-amount", "5 IOV")

	mustRun(t, "", "spend-solo", "-home", home, "-height", "3",
		"-caller", customer, "-to", dest.String(), "-amount", "4 IOV", "-payload", "cafe")
	_, err = run(t, "", "spend-solo", "-home", home, "-height", "5",
		"-caller", customer, "-to", dest.String(), "-amount", "7 IOV")
	assert.IsErr(t, xcustody.ErrRateLimit, err)
	_, err = run(t, "", "spend-solo", "-home", home, "-height", "5",
		"-caller", dest.String(), "-to", dest.String(), "-amount", "1 IOV")
	assert.IsErr(t, errors.ErrUnauthorized, err)

	hash := mustRun(t, "", "hash", "-home", home, "-to", dest.String(), "-amount", "2 IOV", "-payload", "beef")
	sig1 := mustRun(t, hash+"\n", "sign", "-key", counterpartyKey)
	sig2 := mustRun(t, "", "sign", "-key", customerKey, "-hash", hash)
	mustRun(t, "", "spend-joint", "-home", home, "-sig1", sig1, "-sig2", sig2,
		"-to", dest.String(), "-amount", "2 IOV", "-payload", "beef")

	// The nonce moved on, so the same signatures are no longer valid.
	_, err = run(t, "", "spend-joint", "-home", home, "-sig1", sig1, "-sig2", sig2,
		"-to", dest.String(), "-amount", "2 IOV", "-payload", "beef")
	assert.IsErr(t, errors.ErrSignature, err)

	raw := mustRun(t, "", "status", "-home", home)
	var st status
	require.NoError(t, json.Unmarshal([]byte(raw), &st))
	assert.Equal(t, custody.Version(), st.Version)
	assert.Equal(t, uint64(1), st.Nonce)
	assert.Equal(t, coin.NewCoin(49, 0, "IOV"), st.Balance)
	require.True(t, st.Config.Contract.Equals(contract))

	ledger := st.Ledgers[xcustody.Customer.String()]
	require.NotNil(t, ledger)
	assert.Equal(t, coin.NewCoin(4, 0, "IOV"), ledger.Buckets[ledger.WindowIndex])
	assert.Equal(t, int64(0), st.Ledgers[xcustody.Counterparty.String()].WindowIndex)
}

func TestInitRejectsInvalidGenesis(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	_, err := run(t, `{"conf": {"custody": {"ticker": "IOV"}}}`, "init", "-home", home)
	require.Error(t, err)

	// Nothing was committed, so the engine cannot be loaded.
	_, err = run(t, "", "status", "-home", home)
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	assert.Equal(t, custody.Version(), mustRun(t, "", "version"))
}
