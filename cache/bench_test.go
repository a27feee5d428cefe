package cache

import (
	"fmt"
	"testing"
)

// BenchmarkStore_Insert_Evicting measures insert cost at capacity.
func BenchmarkStore_Insert_Evicting(b *testing.B) {
	s := NewStore[int](32)
	keys := make([]Key, 64)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Insert(keys[i%len(keys)], Entry[int]{Name: "n", Instance: i}, nil, "")
	}
}

// BenchmarkStore_Promote measures recency refresh on a full store.
func BenchmarkStore_Promote(b *testing.B) {
	s := NewStore[int](32)
	for i := 0; i < 32; i++ {
		s.Insert(fmt.Sprintf("key-%d", i), Entry[int]{Instance: i}, nil, "")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Promote(fmt.Sprintf("key-%d", i%32))
	}
}

// BenchmarkDeriveKey measures key derivation.
func BenchmarkDeriveKey(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = DeriveKey("", "42", "settings-tab")
	}
}
