package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/custody"
	xcustody "github.com/iov-one/custody/x/custody"
)

func cmdFund(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Credit a deposit to the engine pool.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl   = homeFlag(fl)
		fromFl   = flAddress(fl, "from", "", "Address the deposit came from.")
		amountFl = flCoin(fl, "amount", "", `Deposited amount, for example "2.5 IOV".`)
	)
	fl.Parse(args)

	return withEngine(*homeFl, true, func(ctx context.Context, e *xcustody.Engine) error {
		return e.FundsReceived(ctx, *fromFl, *amountFl)
	})
}

func cmdSpendSolo(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Spend from the pool on behalf of a single party. The spend is rate limited
at the given block height. A zero amount only advances the party's ledger.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl    = homeFlag(fl)
		callerFl  = flAddress(fl, "caller", "", "Address of the spending party.")
		toFl      = flAddress(fl, "to", "", "Destination address.")
		amountFl  = flCoin(fl, "amount", "", `Amount to spend, for example "2.5 IOV".`)
		payloadFl = flHex(fl, "payload", "", "Hex encoded payload passed with the transfer.")
		heightFl  = fl.Int64("height", 0, "Current block height.")
	)
	fl.Parse(args)

	if *heightFl < 0 {
		flagDie("height must not be negative")
	}
	return withEngine(*homeFl, true, func(ctx context.Context, e *xcustody.Engine) error {
		ctx = custody.WithHeight(ctx, *heightFl)
		return e.SpendSolo(ctx, *callerFl, *toFl, *amountFl, *payloadFl)
	})
}

func cmdSpendJoint(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Spend from the pool with signatures of both parties. Both must sign the digest
printed by the hash command for the same destination, amount and payload.
Signatures can be given in any order.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl    = homeFlag(fl)
		sig1Fl    = flHex(fl, "sig1", "", "Hex encoded signature of one party.")
		sig2Fl    = flHex(fl, "sig2", "", "Hex encoded signature of the other party.")
		toFl      = flAddress(fl, "to", "", "Destination address.")
		amountFl  = flCoin(fl, "amount", "", `Amount to spend, for example "2.5 IOV".`)
		payloadFl = flHex(fl, "payload", "", "Hex encoded payload passed with the transfer.")
		heightFl  = fl.Int64("height", 0, "Current block height.")
	)
	fl.Parse(args)

	if *heightFl < 0 {
		flagDie("height must not be negative")
	}
	return withEngine(*homeFl, true, func(ctx context.Context, e *xcustody.Engine) error {
		ctx = custody.WithHeight(ctx, *heightFl)
		return e.SpendJoint(ctx, *sig1Fl, *sig2Fl, *toFl, *amountFl, *payloadFl)
	})
}

func cmdHash(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the hex encoded digest both parties must sign to authorize a joint spend.
The current nonce of the engine is used unless -nonce is given.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl    = homeFlag(fl)
		toFl      = flAddress(fl, "to", "", "Destination address.")
		amountFl  = flCoin(fl, "amount", "", `Amount to spend, for example "2.5 IOV".`)
		payloadFl = flHex(fl, "payload", "", "Hex encoded payload passed with the transfer.")
		nonceFl   = fl.Int64("nonce", -1, "Nonce to sign for. Negative means the current nonce.")
	)
	fl.Parse(args)

	return withEngine(*homeFl, false, func(ctx context.Context, e *xcustody.Engine) error {
		nonce := uint64(*nonceFl)
		if *nonceFl < 0 {
			n, err := e.CurrentNonce()
			if err != nil {
				return err
			}
			nonce = n
		}
		hash, err := xcustody.SpendHash(e.Config().Contract, *toFl, *amountFl, *payloadFl, nonce)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(output, hex.EncodeToString(hash))
		return err
	})
}
