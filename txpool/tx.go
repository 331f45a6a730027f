package txpool

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Transaction is the minimal view of a pending transaction the pool core
// needs. Signature recovery, payload decoding, and validation happen
// upstream; by the time a Transaction reaches this package its sender is
// already known.
type Transaction interface {
	Hash() common.Hash
	Sender() common.Address
	Nonce() uint64
	// GasPrice is the legacy per-gas price. It is nil for an EIP-1559
	// transaction.
	GasPrice() *uint256.Int
	// MaxPriorityFeePerGas is the declared tip cap. It is nil for a
	// legacy transaction.
	MaxPriorityFeePerGas() *uint256.Int
	// MaxFeePerGas is the declared total fee cap. It is nil for a legacy
	// transaction.
	MaxFeePerGas() *uint256.Int
}

// isDynamicFee reports whether tx carries the EIP-1559 fee pair.
func isDynamicFee(tx Transaction) bool {
	return tx.MaxPriorityFeePerGas() != nil && tx.MaxFeePerGas() != nil
}

// TransactionInfo is the immutable record the pool indexes. Comparator
// inputs that could otherwise drift while the transaction sits in a range
// set — namely distance from the sender's next executable nonce — are
// frozen here at admission time rather than recomputed live, so an
// element's sort key never silently shifts out from under the ordered set
// that holds it.
type TransactionInfo struct {
	tx                    Transaction
	sequence              uint64
	local                 bool
	arrivalTime           time.Time
	distanceFromNextNonce int64
}

func newTransactionInfo(tx Transaction, sequence uint64, local bool, arrivalTime time.Time, distance int64) *TransactionInfo {
	return &TransactionInfo{
		tx:                    tx,
		sequence:              sequence,
		local:                 local,
		arrivalTime:           arrivalTime,
		distanceFromNextNonce: distance,
	}
}

// Transaction returns the underlying transaction payload.
func (ti *TransactionInfo) Transaction() Transaction { return ti.tx }

// Hash returns the transaction hash.
func (ti *TransactionInfo) Hash() common.Hash { return ti.tx.Hash() }

// Sender returns the transaction's sender.
func (ti *TransactionInfo) Sender() common.Address { return ti.tx.Sender() }

// Nonce returns the transaction's nonce.
func (ti *TransactionInfo) Nonce() uint64 { return ti.tx.Nonce() }

// Sequence returns the monotonic arrival counter assigned at admission.
func (ti *TransactionInfo) Sequence() uint64 { return ti.sequence }

// Local reports whether the transaction arrived from a local source.
func (ti *TransactionInfo) Local() bool { return ti.local }

// ArrivalTime returns the time the transaction was admitted.
func (ti *TransactionInfo) ArrivalTime() time.Time { return ti.arrivalTime }

// DistanceFromNextNonce returns the frozen distance-from-next-executable-
// nonce value recorded at admission.
func (ti *TransactionInfo) DistanceFromNextNonce() int64 { return ti.distanceFromNextNonce }

// EffectivePriorityFeePerGas computes the transaction's effective priority
// fee per gas at the given base fee. The second return value is false for
// an EIP-1559 transaction whose max fee is below the base fee — the
// transaction is not executable at that base fee, and the value returned
// is the zero sentinel used for ordering purposes, not a real fee. It is
// also false, with the same zero sentinel, for a transaction that declares
// neither the EIP-1559 fee pair nor a gas price.
func (ti *TransactionInfo) EffectivePriorityFeePerGas(baseFee *uint256.Int) (*uint256.Int, bool) {
	tip := ti.tx.MaxPriorityFeePerGas()
	fee := ti.tx.MaxFeePerGas()
	if tip != nil && fee != nil {
		if baseFee == nil {
			return new(uint256.Int).Set(tip), true
		}
		if baseFee.Cmp(fee) > 0 {
			return uint256.NewInt(0), false
		}
		headroom := new(uint256.Int).Sub(fee, baseFee)
		if headroom.Cmp(tip) < 0 {
			return headroom, true
		}
		return new(uint256.Int).Set(tip), true
	}

	gasPrice := ti.tx.GasPrice()
	if gasPrice == nil {
		return uint256.NewInt(0), false
	}
	if baseFee == nil {
		return new(uint256.Int).Set(gasPrice), true
	}
	if baseFee.Cmp(gasPrice) >= 0 {
		return uint256.NewInt(0), true
	}
	return new(uint256.Int).Sub(gasPrice, baseFee), true
}

// IsInStaticRange reports whether the transaction belongs in the static
// range at the given base fee: it must declare a max priority fee, and its
// effective priority fee at this base fee must be at least that declared
// tip (meaning the fee cap does not bind). Legacy transactions never
// qualify.
func (ti *TransactionInfo) IsInStaticRange(baseFee *uint256.Int) bool {
	if baseFee == nil {
		// Pre-1559 chain head: every transaction lands in the dynamic
		// set by construction.
		return false
	}
	tip := ti.tx.MaxPriorityFeePerGas()
	if tip == nil {
		return false
	}
	eff, ok := ti.EffectivePriorityFeePerGas(baseFee)
	if !ok {
		return false
	}
	return eff.Cmp(tip) >= 0
}
