package cache_test

import (
	"fmt"

	"github.com/jonwraymond/keepalive/cache"
)

func ExampleNewStore() {
	s := cache.NewStore[string](2)
	dispose := func(instance string) { fmt.Println("dispose:", instance) }

	s.Insert("a", cache.Entry[string]{Name: "A", Tag: "t-a", Instance: "A#1"}, dispose, "")
	s.Insert("b", cache.Entry[string]{Name: "B", Tag: "t-b", Instance: "B#1"}, dispose, "")

	// Third insert evicts the least recently used key
	s.Insert("c", cache.Entry[string]{Name: "C", Tag: "t-c", Instance: "C#1"}, dispose, "")
	fmt.Println("keys:", s.Keys())
	// Output:
	// dispose: A#1
	// keys: [b c]
}

func ExampleStore_Promote() {
	s := cache.NewStore[string](2)

	s.Insert("a", cache.Entry[string]{Name: "A", Instance: "A#1"}, nil, "")
	s.Insert("b", cache.Entry[string]{Name: "B", Instance: "B#1"}, nil, "")
	s.Promote("a")

	removed := s.Insert("c", cache.Entry[string]{Name: "C", Instance: "C#1"}, nil, "")
	fmt.Println("evicted:", removed[0].Key)
	fmt.Println("keys:", s.Keys())
	// Output:
	// evicted: b
	// keys: [a c]
}

func ExampleStore_Remove_displayed() {
	s := cache.NewStore[string](0)
	dispose := func(instance string) { fmt.Println("dispose:", instance) }

	s.Insert("a", cache.Entry[string]{Name: "A", Tag: "t-a", Instance: "A#1"}, dispose, "")

	// The entry whose tag matches the displayed subtree is dropped, not disposed
	r, _ := s.Remove("a", dispose, "t-a")
	fmt.Println("disposed:", r.Disposed, "len:", s.Len())
	// Output:
	// disposed: false len: 0
}

func ExampleDeriveKey() {
	fmt.Println(cache.DeriveKey("", "12", ""))
	fmt.Println(cache.DeriveKey("", "12", "inbox"))
	fmt.Println(cache.DeriveKey("user-1", "12", "inbox"))
	// Output:
	// 12
	// 12::inbox
	// user-1
}

func ExampleParseMax() {
	fmt.Println(cache.ParseMax(10))
	fmt.Println(cache.ParseMax("4"))
	fmt.Println(cache.ParseMax("none"))
	// Output:
	// 10 true
	// 4 true
	// 0 false
}
