//go:build !mempooldebug

package txpool

// guardInvariants recovers from a panicking invariant check inside a
// mutator, logs it, and rebuilds both range sets from the hash index
// before letting the caller see a clean return. In a debug build (tag
// mempooldebug) the panic is allowed to propagate instead; see
// invariants_debug.go.
func (m *PriorityMempool) guardInvariants() {
	if r := recover(); r != nil {
		m.logger.Warn("invariant check failed, rebuilding range sets", "panic", r)
		m.rebuildRangeSets()
	}
}

// rebuildRangeSets reconstructs the static and dynamic range sets from the
// hash index, re-establishing consistent range-set membership after a
// detected inconsistency. Assumes the write lock is held.
func (m *PriorityMempool) rebuildRangeSets() {
	m.static = NewStaticRangeSet()
	m.dynamic = NewDynamicRangeSet()
	for _, info := range m.hashIndex {
		if info.IsInStaticRange(m.baseFee) {
			m.static.Insert(info)
		} else {
			m.dynamic.Insert(info)
		}
	}
}


