package txpool

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestSenderNonceIndex_InsertGetRemove(t *testing.T) {
	idx := NewSenderNonceIndex(zeroNonceQuery)
	info := newTransactionInfo(NewLegacyTx(hash(1), addr(1), 3, u64(100)), 1, false, fixedTime(), 3)

	idx.Insert(info)
	got, ok := idx.Get(addr(1), 3)
	if !ok || got != info {
		t.Fatalf("Get = %v, %v, want %v, true", got, ok, info)
	}

	idx.Remove(info)
	if _, ok := idx.Get(addr(1), 3); ok {
		t.Fatalf("expected no entry after Remove")
	}
}

func TestSenderNonceIndex_RemoveIgnoresStaleOccupant(t *testing.T) {
	idx := NewSenderNonceIndex(zeroNonceQuery)
	a := newTransactionInfo(NewLegacyTx(hash(1), addr(1), 0, u64(100)), 1, false, fixedTime(), 0)
	b := newTransactionInfo(NewLegacyTx(hash(2), addr(1), 0, u64(200)), 2, false, fixedTime(), 0)

	idx.Insert(a)
	idx.Insert(b) // b replaces a at the same (sender, nonce) slot

	// Removing the stale info must not evict the current occupant.
	idx.Remove(a)
	got, ok := idx.Get(addr(1), 0)
	if !ok || got != b {
		t.Fatalf("Get = %v, %v, want %v, true", got, ok, b)
	}
}

func TestSenderNonceIndex_DistanceFromNextNonce(t *testing.T) {
	query := func(common.Address) uint64 { return 5 }
	idx := NewSenderNonceIndex(query)

	if d := idx.DistanceFromNextNonce(addr(1), 8); d != 3 {
		t.Fatalf("distance = %d, want 3", d)
	}
	if d := idx.DistanceFromNextNonce(addr(1), 5); d != 0 {
		t.Fatalf("distance = %d, want 0", d)
	}
	if d := idx.DistanceFromNextNonce(addr(1), 2); d != 0 {
		t.Fatalf("distance = %d, want 0 (clamped, nonce behind expected)", d)
	}
}


