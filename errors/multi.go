package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If given error implements unpacker interface, it is flattened. All
// returned errors are of the same group.
func Append(errs ...error) error {
	var res multiErr
	for _, err := range errs {
		if isNilErr(err) {
			continue
		}
		if u, ok := err.(unpacker); ok {
			res = append(res, u.Unpack()...)
		} else {
			res = append(res, err)
		}
	}

	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// unpacker is implemented by errors that represent a group of errors.
type unpacker interface {
	Unpack() []error
}

// multiErr represents a group of errors. It always contains at least two
// elements, otherwise Append returns the single error directly.
type multiErr []error

func (errs multiErr) Error() string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(errs), strings.Join(msgs, "\n\t"))
}

// Unpack returns all errors of this group.
func (errs multiErr) Unpack() []error {
	return errs
}

// Code returns the code of the first error of the group, in accordance with
// the fail fast approach.
func (errs multiErr) Code() uint32 {
	return Code(errs[0])
}
