package cache

import "testing"

func TestDeriveKey(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		ctorID   string
		tag      string
		want     Key
	}{
		{"ctor only", "", "7", "", "7"},
		{"ctor and tag", "", "7", "home-tab", "7::home-tab"},
		{"explicit wins", "user-42", "7", "home-tab", "user-42"},
		{"explicit without tag", "user-42", "7", "", "user-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveKey(tt.explicit, tt.ctorID, tt.tag); got != tt.want {
				t.Errorf("DeriveKey(%q, %q, %q) = %q, want %q", tt.explicit, tt.ctorID, tt.tag, got, tt.want)
			}
		})
	}
}

// TestDefaultKeyer_SharedConstructor verifies two local registrations of one
// constructor do not collide.
func TestDefaultKeyer_SharedConstructor(t *testing.T) {
	keyer := NewDefaultKeyer()

	a := keyer.Key("", "7", "inbox")
	b := keyer.Key("", "7", "archive")
	if a == b {
		t.Fatalf("keys collide: %q", a)
	}

	// Deterministic
	if again := keyer.Key("", "7", "inbox"); again != a {
		t.Errorf("Key not deterministic: %q != %q", again, a)
	}
}
