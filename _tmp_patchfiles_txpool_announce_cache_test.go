package txpool

import "testing"

func TestAnnounceCache_EvictsOldestBeyondCapacity(t *testing.T) {
	c := NewAnnounceCache(2)
	c.Add(hash(1))
	c.Add(hash(2))
	c.Add(hash(3))

	if c.Contains(hash(1)) {
		t.Fatalf("expected hash(1) evicted once capacity exceeded")
	}
	if !c.Contains(hash(2)) || !c.Contains(hash(3)) {
		t.Fatalf("expected the two most recent hashes to remain")
	}
}

func TestAnnounceCache_AddIsIdempotent(t *testing.T) {
	c := NewAnnounceCache(2)
	c.Add(hash(1))
	c.Add(hash(1))
	c.Add(hash(2))

	if !c.Contains(hash(1)) {
		t.Fatalf("expected hash(1) to remain after duplicate Add")
	}
}


