package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iov-one/custody/crypto/secp256k1"
)

func keyFlag(fl *flag.FlagSet) *string {
	return fl.String("key", env("CUSTODY_PRIV_KEY", filepath.Join(os.Getenv("HOME"), ".custodyd.priv.key")),
		"Path to the private key file. You can use CUSTODY_PRIV_KEY environment variable to set it.")
}

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new secp256k1 private key.

When successful a new file with binary content containing private key is
created. This command fails if the private key file already exists.
`)
		fl.PrintDefaults()
	}
	keyPathFl := keyFlag(fl)
	fl.Parse(args)

	key, err := secp256k1.GenerateKey()
	if err != nil {
		return err
	}
	return secp256k1.SaveKey(*keyPathFl, key)
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the address associated with your private key.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = keyFlag(fl)
		bech32Fl  = fl.String("bech32", "", "Print a bech32 address with given prefix instead of hex.")
	)
	fl.Parse(args)

	key, err := secp256k1.LoadKey(*keyPathFl)
	if err != nil {
		return err
	}
	addr := key.Address()
	if *bech32Fl == "" {
		_, err = fmt.Fprintln(output, addr)
		return err
	}
	b, err := addr.Bech32(*bech32Fl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, b)
	return err
}

func cmdSign(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Sign a joint spend digest and print the hex encoded signature.

The digest is read from the -hash flag or, if not given, from the first line
of standard input so that the output of the hash command can be piped.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = keyFlag(fl)
		hashFl    = flHex(fl, "hash", "", "Hex encoded digest to sign.")
	)
	fl.Parse(args)

	hash := []byte(*hashFl)
	if len(hash) == 0 {
		line, err := bufio.NewReader(input).ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("cannot read digest: %s", err)
		}
		hash, err = hex.DecodeString(strings.TrimSpace(line))
		if err != nil {
			return fmt.Errorf("invalid digest: %s", err)
		}
	}

	key, err := secp256k1.LoadKey(*keyPathFl)
	if err != nil {
		return err
	}
	sig, err := key.Sign(hash)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, hex.EncodeToString(sig))
	return err
}
