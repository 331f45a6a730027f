//go:build !mempooldebug

package txpool

// guardInvariants recovers from a panicking invariant check inside a
// mutator, logs it, and rebuilds every index from the hash index before
// letting the caller see a clean return. In a debug build (tag
// mempooldebug) the panic is allowed to propagate instead; see
// invariants_debug.go.
func (m *PriorityMempool) guardInvariants() {
	if r := recover(); r != nil {
		m.logger.Warn("invariant check failed, rebuilding indexes from hash index", "panic", r)
		m.rebuildFromHashIndex()
	}
}

// checkDeepInvariants is a no-op in release builds. The O(n) per-transaction
// scan it gates (see invariants_debug.go) is too expensive to run on every
// Add, Remove, and UpdateBaseFee call under sustained load; checkInvariants
// still runs its O(1) checks unconditionally. Build with the mempooldebug
// tag to get the full scan, e.g. while chasing down a corruption bug.
func (m *PriorityMempool) checkDeepInvariants() {}

// rebuildFromHashIndex reconstructs the static range set, dynamic range
// set, and sender-nonce index from the hash index, re-establishing
// consistency across every derived index after a detected inconsistency.
// The hash index itself is never touched: it is the source of truth the
// other three are rebuilt from. Assumes the write lock is held.
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
