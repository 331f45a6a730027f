//go:build mempooldebug

package txpool

import "fmt"

// guardInvariants is a no-op in debug builds: an invariant failure panics
// and is left to abort the process, per the error handling design's
// fatal-conditions policy.
func (m *PriorityMempool) guardInvariants() {}

// checkDeepInvariants walks every entry in the hash index, checking that it
// sits in exactly one range set, that the range set it sits in matches its
// static-range predicate at the current base fee, and that it still
// occupies its sender-nonce slot. This is the O(n) pass checkInvariants
// skips in release builds; a mempooldebug build pays the cost on every
// mutation to catch index drift at the point it happens instead of however
// many mutations later it would otherwise surface.
func (m *PriorityMempool) checkDeepInvariants() {
	for hash, info := range m.hashIndex {
		inStatic := m.static.Contains(hash)
		inDynamic := m.dynamic.Contains(hash)
		if inStatic == inDynamic {
			panic(fmt.Sprintf("txpool: tx %x is in %s range set", hash, membershipLabel(inStatic, inDynamic)))
		}
		if inStatic != info.IsInStaticRange(m.baseFee) {
			panic(fmt.Sprintf("txpool: tx %x range-set membership does not match its static-range predicate at the current base fee", hash))
		}

		occupant, ok := m.senderNonce.Get(info.Sender(), info.Nonce())
		if !ok || occupant != info {
			panic(fmt.Sprintf("txpool: tx %x missing from its sender-nonce slot", hash))
		}
	}
}

// rebuildFromHashIndex reconstructs the static range set, dynamic range
// set, and sender-nonce index from the hash index, as the release build's
// version does. guardInvariants does not call it in this build. Assumes the
// write lock is held.
func (m *PriorityMempool) rebuildFromHashIndex() {
	m.static = NewStaticRangeSet()
	m.dynamic = NewDynamicRangeSet()
	m.senderNonce = NewSenderNonceIndex(m.senderNonce.nextNonce)
	for _, info := range m.hashIndex {
		if info.IsInStaticRange(m.baseFee) {
			m.static.Insert(info)
		} else {
			m.dynamic.Insert(info)
		}
		m.senderNonce.Insert(info)
	}
}
