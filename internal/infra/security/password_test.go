//go:build !integration

package security

import "testing"

func TestBcryptHasher(t *testing.T) {
	// MinCost keeps the test fast; the scheme is identical.
	h := NewBcryptHasher(4)

	hash, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !h.Compare(hash, "correct horse battery staple") {
		t.Error("expected the original password to match")
	}
	if h.Compare(hash, "wrong password") {
		t.Error("expected a wrong password to be rejected")
	}
	if h.Compare("not-a-bcrypt-hash", "anything") {
		t.Error("expected garbage hashes to be rejected")
	}
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	// Out-of-range costs fall back to the default instead of failing later.
	for _, cost := range []int{-1, 0, 99} {
		h := NewBcryptHasher(cost)
		if h.cost != 10 {
			t.Errorf("cost %d: expected fallback to 10, got %d", cost, h.cost)
		}
	}
}
