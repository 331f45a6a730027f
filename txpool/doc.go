// Package txpool implements a priority-ordered pending-transaction pool
// for an EIP-1559 fee market. It holds the set of transactions received
// but not yet included in a block and exposes them in the order a block
// producer should consider them, maximizing priority-fee revenue under the
// current base fee.
//
// The pool keeps two ordered sets of transactions: a static range for
// transactions whose declared tip does not bind the fee cap at the current
// base fee, and a dynamic range for transactions whose cap binds. Moving
// the base fee migrates members between the two sets; a merged iterator
// produces a single base-fee-aware ranking across both without
// materializing their union.
//
// Transaction validation, signature recovery, network gossip, and
// persistence are out of scope; they belong to the surrounding node.
package txpool
