package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	xcustody "github.com/iov-one/custody/x/custody"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Initialize the engine from a genesis file.

The genesis file is a JSON document. The engine parameters are read from
"conf.custody" and initial balances from "cash":

  {
    "conf": {"custody": {
      "contract": "0x...", "customer": "0x...", "counterparty": "0x...",
      "ticker": "IOV", "customer_limit": "10 IOV", "counterparty_limit": "5 IOV",
      "window_length": 60, "history_depth": 4, "start_height": 0
    }},
    "cash": [{"address": "0x...", "coins": ["100 IOV"]}]
  }

Use "-" to read the genesis from standard input.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl    = homeFlag(fl)
		genesisFl = fl.String("genesis", "-", "Path to the genesis file.")
	)
	fl.Parse(args)

	var raw []byte
	var err error
	if *genesisFl == "-" {
		raw, err = ioutil.ReadAll(input)
	} else {
		raw, err = ioutil.ReadFile(*genesisFl)
	}
	if err != nil {
		return fmt.Errorf("cannot read genesis: %s", err)
	}
	var opts custody.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return fmt.Errorf("cannot parse genesis: %s", err)
	}

	db, err := openStore(*homeFl)
	if err != nil {
		return err
	}
	defer db.Close()

	cache := db.CacheWrap()
	inits := []custody.Initializer{xcustody.Initializer{}, cash.Initializer{}}
	for _, in := range inits {
		if err := in.FromGenesis(opts, cache); err != nil {
			cache.Discard()
			return errors.Wrap(err, "cannot initialize")
		}
	}
	if err := cache.Write(); err != nil {
		return err
	}
	id, err := db.Commit()
	if err != nil {
		return fmt.Errorf("cannot commit: %s", err)
	}
	_, err = fmt.Fprintf(output, "initialized version %d %X\n", id.Version, id.Hash)
	return err
}
