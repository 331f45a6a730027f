package txpool

import "fmt"

// checkInvariants verifies the pool's cross-index consistency and panics
// with a descriptive message on the first violation it finds. Assumes the
// write lock is held. Every mutator calls this once, right before it would
// otherwise return, under a deferred guardInvariants so a violation is
// handled per the build's invariant-failure policy instead of surfacing as
// an unlabeled panic.
//
// Only the checks that cost O(1) against the pool's already-maintained
// counters run here, so every mutator can afford to call this
// unconditionally. The O(n) per-transaction cross-checks live in
// checkDeepInvariants, which is compiled in only under the mempooldebug
// build tag; see invariants_debug.go.
func (m *PriorityMempool) checkInvariants() {
	total := m.static.Len() + m.dynamic.Len()
	if total != len(m.hashIndex) {
		panic(fmt.Sprintf("txpool: hash index holds %d entries but the range sets hold %d", len(m.hashIndex), total))
	}

	if len(m.hashIndex) > m.cfg.MaxPendingTransactions {
		panic(fmt.Sprintf("txpool: pool holds %d transactions, over the configured cap of %d", len(m.hashIndex), m.cfg.MaxPendingTransactions))
	}

	m.checkDeepInvariants()
}

func membershipLabel(inStatic, inDynamic bool) string {
	if inStatic && inDynamic {
		return "both the static and dynamic"
	}
	return "neither the static nor dynamic"
}
