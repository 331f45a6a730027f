package txpool

import (
	"github.com/google/btree"
	"github.com/holiman/uint256"
)

// cursor walks a range set's tree from best to worst, holding at most one
// look-ahead element. It is the building block for the merged iterator's
// two-cursor protocol; resuming from the last entry it yielded costs a
// single DescendLessOrEqual probe, so advancing never re-walks the tree
// from the top.
type cursor struct {
	tree   *btree.BTreeG[*rangeEntry]
	last   *rangeEntry
	peeked *rangeEntry
	done   bool
}

func newCursor(tree *btree.BTreeG[*rangeEntry]) *cursor {
	return &cursor{tree: tree}
}

// peek returns the next element without consuming it.
func (c *cursor) peek() *rangeEntry {
	if c.peeked != nil || c.done {
		return c.peeked
	}
	var found *rangeEntry
	if c.last == nil {
		c.tree.Descend(func(entry *rangeEntry) bool {
			found = entry
			return false
		})
	} else {
		skippedSelf := false
		c.tree.DescendLessOrEqual(c.last, func(entry *rangeEntry) bool {
			if !skippedSelf {
				skippedSelf = true
				return true // entry == c.last; keep descending past it
			}
			found = entry
			return false
		})
	}
	if found == nil {
		c.done = true
		return nil
	}
	c.peeked = found
	return found
}

// advance consumes and returns the next element, or nil if the cursor is
// exhausted.
func (c *cursor) advance() *rangeEntry {
	entry := c.peek()
	if entry != nil {
		c.last = entry
		c.peeked = nil
	}
	return entry
}

// mergedIterate drives the merged, base-fee-aware ranking across a static
// and a dynamic range set. At each step it compares the two cursors' next
// candidates by effective priority fee at baseFee and yields the larger,
// breaking ties in favor of the static candidate — equivalent to a strict
// greater-than test deciding when the dynamic candidate wins. fn is called
// once per yielded element; returning false stops iteration early.
func mergedIterate(staticSet *StaticRangeSet, dynamicSet *DynamicRangeSet, baseFee *uint256.Int, fn func(*TransactionInfo) bool) {
	sc := newCursor(staticSet.tree)
	dc := newCursor(dynamicSet.tree)

	for {
		s := sc.peek()
		d := dc.peek()

		switch {
		case s == nil && d == nil:
			return
		case s == nil:
			if !fn(dc.advance().info) {
				return
			}
		case d == nil:
			if !fn(sc.advance().info) {
				return
			}
		default:
			sVal, sOK := s.info.EffectivePriorityFeePerGas(baseFee)
			dVal, dOK := d.info.EffectivePriorityFeePerGas(baseFee)
			if !sOK {
				sVal = uint256.NewInt(0)
			}
			if !dOK {
				dVal = uint256.NewInt(0)
			}
			if dVal.Cmp(sVal) > 0 {
				if !fn(dc.advance().info) {
					return
				}
			} else {
				if !fn(sc.advance().info) {
					return
				}
			}
		}
	}
}
