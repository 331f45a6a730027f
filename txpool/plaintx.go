package txpool

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// PlainTx is a minimal concrete Transaction used by callers that have
// already resolved a sender and fee fields themselves, and by this
// package's own tests. It carries no payload beyond what the pool needs.
type PlainTx struct {
	hash     common.Hash
	sender   common.Address
	nonce    uint64
	gasPrice *uint256.Int
	tipCap   *uint256.Int
	feeCap   *uint256.Int
}

// NewLegacyTx builds a legacy (pre-1559) PlainTx.
func NewLegacyTx(hash common.Hash, sender common.Address, nonce uint64, gasPrice *uint256.Int) *PlainTx {
	return &PlainTx{hash: hash, sender: sender, nonce: nonce, gasPrice: gasPrice}
}

// NewDynamicFeeTx builds an EIP-1559 PlainTx.
func NewDynamicFeeTx(hash common.Hash, sender common.Address, nonce uint64, tipCap, feeCap *uint256.Int) *PlainTx {
	return &PlainTx{hash: hash, sender: sender, nonce: nonce, tipCap: tipCap, feeCap: feeCap}
}

func (t *PlainTx) Hash() common.Hash                    { return t.hash }
func (t *PlainTx) Sender() common.Address                { return t.sender }
func (t *PlainTx) Nonce() uint64                         { return t.nonce }
func (t *PlainTx) GasPrice() *uint256.Int                { return t.gasPrice }
func (t *PlainTx) MaxPriorityFeePerGas() *uint256.Int    { return t.tipCap }
func (t *PlainTx) MaxFeePerGas() *uint256.Int            { return t.feeCap }
