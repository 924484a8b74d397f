package client_test

import (
	"path/filepath"
	"testing"

	"github.com/quizbit/server/internal/client"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFileTokenStore(t *testing.T) {
	Convey("Given a file-backed token store", t, func() {
		path := filepath.Join(t.TempDir(), "token")
		store, err := client.NewFileTokenStore(path)
		So(err, ShouldBeNil)
		So(store.Token(), ShouldBeEmpty)

		Convey("A stored token survives reopening", func() {
			store.SetToken("abc123")
			reopened, err := client.NewFileTokenStore(path)
			So(err, ShouldBeNil)
			So(reopened.Token(), ShouldEqual, "abc123")
		})

		Convey("Clear removes the token and the file", func() {
			store.SetToken("abc123")
			store.Clear()
			So(store.Token(), ShouldBeEmpty)
			reopened, err := client.NewFileTokenStore(path)
			So(err, ShouldBeNil)
			So(reopened.Token(), ShouldBeEmpty)
		})

		Convey("Subscribers hear every change, including clears", func() {
			var seen []string
			store.Subscribe(func(token string) { seen = append(seen, token) })
			store.SetToken("first")
			store.SetToken("second")
			store.Clear()
			So(seen, ShouldResemble, []string{"first", "second", ""})
		})
	})
}

func TestMemoryTokenStore(t *testing.T) {
	Convey("Given an in-memory token store", t, func() {
		store := client.NewMemoryTokenStore()

		Convey("Set, read and clear round-trip", func() {
			store.SetToken("tok")
			So(store.Token(), ShouldEqual, "tok")
			store.Clear()
			So(store.Token(), ShouldBeEmpty)
		})

		Convey("Subscribers are notified", func() {
			var last string
			store.Subscribe(func(token string) { last = token })
			store.SetToken("tok")
			So(last, ShouldEqual, "tok")
		})
	})
}
