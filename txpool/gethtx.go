package txpool

import (
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
)

// GethTransaction adapts a go-ethereum core/types.Transaction to this
// package's Transaction interface. This is the only file in the package
// that imports go-ethereum's transaction types directly; every other file
// works against the narrow Transaction interface so the pool core stays
// usable without pulling in a specific chain client's type system.
//
// Sender recovery is out of scope for this package (see package doc);
// callers resolve it via a signer before wrapping a transaction.
type GethTransaction struct {
	inner  *gethtypes.Transaction
	sender common.Address
}

// FromGethTransaction wraps tx with an already-resolved sender.
func FromGethTransaction(tx *gethtypes.Transaction, sender common.Address) *GethTransaction {
	return &GethTransaction{inner: tx, sender: sender}
}

func (g *GethTransaction) Hash() common.Hash      { return g.inner.Hash() }
func (g *GethTransaction) Sender() common.Address { return g.sender }
func (g *GethTransaction) Nonce() uint64          { return g.inner.Nonce() }

func (g *GethTransaction) GasPrice() *uint256.Int {
	if isDynamicFeeTxType(g.inner.Type()) {
		return nil
	}
	v, overflow := uint256.FromBig(g.inner.GasPrice())
	if overflow {
		return nil
	}
	return v
}

func (g *GethTransaction) MaxPriorityFeePerGas() *uint256.Int {
	if !isDynamicFeeTxType(g.inner.Type()) {
		return nil
	}
	v, overflow := uint256.FromBig(g.inner.GasTipCap())
	if overflow {
		return nil
	}
	return v
}

func (g *GethTransaction) MaxFeePerGas() *uint256.Int {
	if !isDynamicFeeTxType(g.inner.Type()) {
		return nil
	}
	v, overflow := uint256.FromBig(g.inner.GasFeeCap())
	if overflow {
		return nil
	}
	return v
}

// isDynamicFeeTxType reports whether txType carries an EIP-1559 fee pair.
// Blob transactions (EIP-4844) carry a tip/fee-cap pair as well, but they
// also carry a blob fee market this pool's fee model has no field for, so
// they are deliberately not recognized as a dynamic-fee type here.
func isDynamicFeeTxType(txType uint8) bool {
	return txType == gethtypes.DynamicFeeTxType
}
