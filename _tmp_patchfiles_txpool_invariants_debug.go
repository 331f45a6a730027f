//go:build mempooldebug

package txpool

// guardInvariants is a no-op in debug builds: an invariant failure panics
// and is left to abort the process, per the error handling design's
// fatal-conditions policy.
func (m *PriorityMempool) guardInvariants() {}

func (m *PriorityMempool) rebuildRangeSets() {
	panic("txpool: rebuildRangeSets called in a mempooldebug build")
}


