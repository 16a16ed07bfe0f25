package main

import (
	"context"
	"fmt"
	"os"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/store/iavl"
	xcustody "github.com/iov-one/custody/x/custody"
)

const dbName = "custody"

// openStore opens the database in the home directory at its latest version.
func openStore(home string) (*iavl.CommitStore, error) {
	if err := os.MkdirAll(home, 0700); err != nil {
		return nil, fmt.Errorf("cannot create home directory: %s", err)
	}
	db, err := iavl.NewCommitStore(home, dbName)
	if err != nil {
		return nil, err
	}
	if err := db.LoadLatestVersion(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// withEngine loads the engine, runs fn and commits a new version if fn
// succeeds and commit is set.
func withEngine(home string, commit bool, fn func(ctx context.Context, e *xcustody.Engine) error) error {
	db, err := openStore(home)
	if err != nil {
		return err
	}
	defer db.Close()

	e, err := xcustody.NewEngine(db, nil, nil)
	if err != nil {
		return fmt.Errorf("cannot load engine: %s", err)
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	ctx := custody.WithLogger(context.Background(), logger)
	if err := fn(ctx, e); err != nil {
		return err
	}
	if !commit {
		return nil
	}
	if _, err := db.Commit(); err != nil {
		return fmt.Errorf("cannot commit: %s", err)
	}
	return nil
}
