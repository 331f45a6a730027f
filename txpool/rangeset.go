package txpool

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/btree"
	"github.com/holiman/uint256"
)

// btreeDegree controls node fan-out for the underlying B-trees. 32 is the
// value google/btree's own benchmarks settle on for pointer-sized items.
const btreeDegree = 32

// rangeEntry is the unit stored in a range set's tree. orderingFee is the
// fee field the owning set's comparator ranks on — max priority fee for
// StaticRangeSet, max fee (or legacy gas price) for DynamicRangeSet. It is
// computed once at insertion, consistent with freezing comparator inputs
// at admission time.
type rangeEntry struct {
	info        *TransactionInfo
	orderingFee *uint256.Int
}

// compareEntries orders two entries by the composite comparator shared by
// both range sets: local origin first, then orderingFee, then distance
// from next nonce (smaller is better), then sequence (earlier is better).
// It returns a negative number if a ranks worse than b, zero if equal
// (which cannot happen for two distinct entries, since sequence is
// globally unique), and positive if a ranks better.
func compareEntries(a, b *rangeEntry) int {
	if a.info.local != b.info.local {
		if a.info.local {
			return 1
		}
		return -1
	}
	if c := a.orderingFee.Cmp(b.orderingFee); c != 0 {
		return c
	}
	if a.info.distanceFromNextNonce != b.info.distanceFromNextNonce {
		if a.info.distanceFromNextNonce < b.info.distanceFromNextNonce {
			return 1
		}
		return -1
	}
	if a.info.sequence != b.info.sequence {
		if a.info.sequence < b.info.sequence {
			return 1
		}
		return -1
	}
	return 0
}

// entryLess reports whether a ranks worse than b. The tree is therefore
// ascending from worst to best: Min is the tail (worst candidate), Max is
// the head (best candidate).
func entryLess(a, b *rangeEntry) bool {
	return compareEntries(a, b) < 0
}

// rangeSet is the shared implementation behind StaticRangeSet and
// DynamicRangeSet: an ordered set keyed by the composite comparator above,
// with a hash-keyed side index so Remove does not need to search the tree
// by value — deleting the exact entry pointer already on hand is O(log n)
// and allocation-free on the hot path.
type rangeSet struct {
	tree   *btree.BTreeG[*rangeEntry]
	byHash map[common.Hash]*rangeEntry
	feeOf  func(*TransactionInfo) *uint256.Int
}

func newRangeSet(feeOf func(*TransactionInfo) *uint256.Int) *rangeSet {
	return &rangeSet{
		tree:   btree.NewG(btreeDegree, entryLess),
		byHash: make(map[common.Hash]*rangeEntry),
		feeOf:  feeOf,
	}
}

// Insert adds info to the set. info must not already be a member.
func (s *rangeSet) Insert(info *TransactionInfo) {
	entry := &rangeEntry{info: info, orderingFee: s.feeOf(info)}
	s.tree.ReplaceOrInsert(entry)
	s.byHash[info.Hash()] = entry
}

// Remove deletes the transaction with the given hash, if present. It
// reports whether an entry was removed.
func (s *rangeSet) Remove(hash common.Hash) (*TransactionInfo, bool) {
	entry, ok := s.byHash[hash]
	if !ok {
		return nil, false
	}
	s.tree.Delete(entry)
	delete(s.byHash, hash)
	return entry.info, true
}

// Contains reports whether hash is a member of the set.
func (s *rangeSet) Contains(hash common.Hash) bool {
	_, ok := s.byHash[hash]
	return ok
}

// Len returns the number of members.
func (s *rangeSet) Len() int { return s.tree.Len() }

// Head returns the best-ranked member, or nil if the set is empty.
func (s *rangeSet) Head() *TransactionInfo {
	entry, ok := s.tree.Max()
	if !ok {
		return nil
	}
	return entry.info
}

// Tail returns the worst-ranked member, or nil if the set is empty.
func (s *rangeSet) Tail() *TransactionInfo {
	entry, ok := s.tree.Min()
	if !ok {
		return nil
	}
	return entry.info
}

// Iterate walks members from best to worst, stopping early if fn returns
// false.
func (s *rangeSet) Iterate(fn func(*TransactionInfo) bool) {
	s.tree.Descend(func(entry *rangeEntry) bool {
		return fn(entry.info)
	})
}

// StaticRangeSet holds transactions whose declared tip does not bind the
// fee cap at the current base fee; see TransactionInfo.IsInStaticRange.
// Its ordering key is the declared max priority fee, which is guaranteed
// present for every member.
type StaticRangeSet struct{ *rangeSet }

// NewStaticRangeSet creates an empty static range set.
func NewStaticRangeSet() *StaticRangeSet {
	return &StaticRangeSet{newRangeSet(func(info *TransactionInfo) *uint256.Int {
		return info.Transaction().MaxPriorityFeePerGas()
	})}
}

// DynamicRangeSet holds transactions whose fee cap binds, so effective
// priority fee depends on the live base fee. Its ordering key is the
// declared cap itself (max fee per gas, or legacy gas price), never the
// base-fee-dependent effective fee — that keeps the set's internal order
// stable while the base fee moves; base-fee awareness is introduced only
// by the merged iterator.
type DynamicRangeSet struct{ *rangeSet }

// NewDynamicRangeSet creates an empty dynamic range set.
func NewDynamicRangeSet() *DynamicRangeSet {
	return &DynamicRangeSet{newRangeSet(func(info *TransactionInfo) *uint256.Int {
		if fee := info.Transaction().MaxFeePerGas(); fee != nil {
			return fee
		}
		if gp := info.Transaction().GasPrice(); gp != nil {
			return gp
		}
		return uint256.NewInt(0)
	})}
}
