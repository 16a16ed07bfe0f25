package secp256k1

import (
	"io/ioutil"
	"os"

	"github.com/iov-one/custody/errors"
)

// SaveKey writes the raw key to a new file. An existing file is never
// overwritten.
func SaveKey(path string, key *PrivateKey) error {
	fd, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		if os.IsExist(err) {
			return errors.Wrapf(errors.ErrDuplicate, "private key file %q already exists", path)
		}
		return errors.Wrapf(errors.ErrHuman, "cannot create private key file: %s", err)
	}
	defer fd.Close()

	if _, err := fd.Write(key.Bytes()); err != nil {
		return errors.Wrapf(errors.ErrHuman, "cannot write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return errors.Wrapf(errors.ErrHuman, "cannot close private key file: %s", err)
	}
	return nil
}

// LoadKey reads a key written by SaveKey.
func LoadKey(path string) (*PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "cannot read private key file: %s", err)
	}
	return PrivateKeyFromBytes(raw)
}
