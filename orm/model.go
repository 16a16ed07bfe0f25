package orm

import (
	"github.com/iov-one/custody"
	amino "github.com/tendermint/go-amino"
)

// Model is impelemented by any entity that can be stored using ModelBucket.
type Model interface {
	custody.Persistent
	Validate() error
}

// codec is shared by all models. No interfaces are serialized, so there is
// nothing to register.
var codec = amino.NewCodec()

// Marshal serializes given model value. Use it to implement the Persistent
// interface:
//
//	func (m *MyModel) Marshal() ([]byte, error) { return orm.Marshal(m) }
func Marshal(m interface{}) ([]byte, error) {
	return codec.MarshalBinaryBare(m)
}

// Unmarshal loads serialized data into given model pointer.
func Unmarshal(raw []byte, dest interface{}) error {
	return codec.UnmarshalBinaryBare(raw, dest)
}
