package store

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCacheWrap(t *testing.T) {
	Convey("Given a memory store with committed data", t, func() {
		base := MemStore()
		So(base.Set([]byte("ledger:1"), []byte("one")), ShouldBeNil)
		So(base.Set([]byte("ledger:2"), []byte("two")), ShouldBeNil)

		Convey("A cache wrap reads through to the parent", func() {
			cache := base.CacheWrap()
			val, err := cache.Get([]byte("ledger:1"))
			So(err, ShouldBeNil)
			So(string(val), ShouldEqual, "one")

			has, err := cache.Has([]byte("ledger:3"))
			So(err, ShouldBeNil)
			So(has, ShouldBeFalse)
		})

		Convey("Discarded writes never reach the parent", func() {
			cache := base.CacheWrap()
			So(cache.Set([]byte("ledger:1"), []byte("changed")), ShouldBeNil)
			So(cache.Delete([]byte("ledger:2")), ShouldBeNil)

			val, err := cache.Get([]byte("ledger:1"))
			So(err, ShouldBeNil)
			So(string(val), ShouldEqual, "changed")
			has, err := cache.Has([]byte("ledger:2"))
			So(err, ShouldBeNil)
			So(has, ShouldBeFalse)

			cache.Discard()

			val, err = base.Get([]byte("ledger:1"))
			So(err, ShouldBeNil)
			So(string(val), ShouldEqual, "one")
			has, err = base.Has([]byte("ledger:2"))
			So(err, ShouldBeNil)
			So(has, ShouldBeTrue)
		})

		Convey("Written changes are visible in the parent", func() {
			cache := base.CacheWrap()
			So(cache.Set([]byte("ledger:1"), []byte("changed")), ShouldBeNil)
			So(cache.Delete([]byte("ledger:2")), ShouldBeNil)
			So(cache.Set([]byte("nonce"), []byte{7}), ShouldBeNil)
			So(cache.Write(), ShouldBeNil)

			val, err := base.Get([]byte("ledger:1"))
			So(err, ShouldBeNil)
			So(string(val), ShouldEqual, "changed")
			val, err = base.Get([]byte("ledger:2"))
			So(err, ShouldBeNil)
			So(val, ShouldBeNil)
			val, err = base.Get([]byte("nonce"))
			So(err, ShouldBeNil)
			So(val, ShouldResemble, []byte{7})
		})

		Convey("Nested cache wraps commit level by level", func() {
			outer := base.CacheWrap()
			inner := outer.CacheWrap()
			So(inner.Set([]byte("ledger:3"), []byte("three")), ShouldBeNil)
			So(inner.Write(), ShouldBeNil)

			has, err := base.Has([]byte("ledger:3"))
			So(err, ShouldBeNil)
			So(has, ShouldBeFalse)

			So(outer.Write(), ShouldBeNil)
			has, err = base.Has([]byte("ledger:3"))
			So(err, ShouldBeNil)
			So(has, ShouldBeTrue)
		})
	})
}

func TestNonAtomicBatch(t *testing.T) {
	Convey("A batch only applies operations on write", t, func() {
		base := MemStore()
		b := NewNonAtomicBatch(base)
		So(b.Set([]byte("a"), []byte("1")), ShouldBeNil)
		So(b.Delete([]byte("b")), ShouldBeNil)
		So(len(b.ShowOps()), ShouldEqual, 2)
		So(b.ShowOps()[0].IsSetOp(), ShouldBeTrue)
		So(b.ShowOps()[1].Key(), ShouldResemble, []byte("b"))

		has, err := base.Has([]byte("a"))
		So(err, ShouldBeNil)
		So(has, ShouldBeFalse)

		So(b.Write(), ShouldBeNil)
		So(len(b.ShowOps()), ShouldEqual, 0)
		has, err = base.Has([]byte("a"))
		So(err, ShouldBeNil)
		So(has, ShouldBeTrue)
	})
}
