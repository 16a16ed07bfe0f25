package assert

import (
	"fmt"
	"testing"

	"github.com/iov-one/custody/errors"
)

type recorder struct {
	failed bool
}

func (r *recorder) Helper()                       {}
func (r *recorder) Fatal(...interface{})          { r.failed = true }
func (r *recorder) Fatalf(string, ...interface{}) { r.failed = true }

func TestNil(t *testing.T) {
	cases := map[string]struct {
		value    interface{}
		wantFail bool
	}{
		"nil":               {value: nil},
		"nil error pointer": {value: (*errors.Error)(nil)},
		"error":             {value: errors.ErrEmpty, wantFail: true},
		"non pointer value": {value: 4, wantFail: true},
		"nil slice":         {value: []byte(nil)},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var r recorder
			Nil(&r, tc.value)
			if r.failed != tc.wantFail {
				t.Fatalf("want fail %v, got %v", tc.wantFail, r.failed)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	var r recorder
	Equal(&r, []int{1, 2}, []int{1, 2})
	if r.failed {
		t.Fatal("equal slices")
	}
	Equal(&r, "a", fmt.Sprint("b"))
	if !r.failed {
		t.Fatal("different strings")
	}
}

func TestIsErr(t *testing.T) {
	IsErr(t, errors.ErrAmount, errors.Wrap(errors.ErrAmount, "wrapped"))
	IsErr(t, nil, nil)
}
