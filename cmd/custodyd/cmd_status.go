package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	xcustody "github.com/iov-one/custody/x/custody"
)

type status struct {
	Version string                           `json:"version"`
	Config  xcustody.Configuration           `json:"config"`
	Nonce   uint64                           `json:"nonce"`
	Balance coin.Coin                        `json:"balance"`
	Ledgers map[string]*xcustody.SpendLedger `json:"ledgers"`
}

func cmdStatus(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the engine configuration and state as JSON.

Ledgers are printed as stored. Buckets of windows that have passed since the
last spend of a party are cleared only on that party's next spend.
`)
		fl.PrintDefaults()
	}
	homeFl := homeFlag(fl)
	fl.Parse(args)

	return withEngine(*homeFl, false, func(ctx context.Context, e *xcustody.Engine) error {
		st := status{
			Version: custody.Version(),
			Config:  e.Config(),
			Ledgers: make(map[string]*xcustody.SpendLedger),
		}
		var err error
		if st.Nonce, err = e.CurrentNonce(); err != nil {
			return err
		}
		if st.Balance, err = e.Balance(); err != nil {
			return err
		}
		for _, p := range xcustody.Parties {
			l, err := e.Ledger(p)
			if err != nil {
				return err
			}
			st.Ledgers[p.String()] = l
		}
		raw, err := json.MarshalIndent(st, "", "\t")
		if err != nil {
			return fmt.Errorf("cannot serialize status: %s", err)
		}
		_, err = fmt.Fprintln(output, string(raw))
		return err
	})
}
