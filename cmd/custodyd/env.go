package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/tendermint/tendermint/libs/log"
)

// env returns the value of an environment variable if provided (even if empty)
// or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

func homeFlag(fl *flag.FlagSet) *string {
	return fl.String("home", env("CUSTODY_HOME", filepath.Join(os.Getenv("HOME"), ".custodyd")),
		"Directory of the engine database. You can use CUSTODY_HOME environment variable to set it.")
}

// newLogger writes to stderr, filtered by the CUSTODY_LOG level (debug, info,
// error or none).
func newLogger() (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr))
	opt, err := log.AllowLevel(env("CUSTODY_LOG", "info"))
	if err != nil {
		return nil, err
	}
	return log.NewFilter(logger, opt), nil
}
