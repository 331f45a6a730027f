package txpool

import "github.com/holiman/uint256"

// bindingFee returns the fee field the replacement bump threshold is
// computed on: the fee cap for an EIP-1559 transaction, the legacy gas
// price otherwise.
func bindingFee(tx Transaction) *uint256.Int {
	if fee := tx.MaxFeePerGas(); fee != nil {
		return fee
	}
	return tx.GasPrice()
}

// bumpedThreshold returns incumbent scaled by (100+bump)/100, rounded
// down, matching the percentage-bump math used across the pack's
// replacement policies.
func bumpedThreshold(incumbent *uint256.Int, bumpPercent uint64) *uint256.Int {
	scaled := new(uint256.Int).Mul(incumbent, uint256.NewInt(100+bumpPercent))
	return scaled.Div(scaled, uint256.NewInt(100))
}

// CanReplace reports whether candidate may replace incumbent at the same
// (sender, nonce), requiring its binding fee to meet or exceed the
// incumbent's bumped threshold. When both transactions are EIP-1559, the
// declared tip must independently clear the same bump — a fee-cap-only
// bump can leave the tip, and therefore the producer's actual incentive to
// include the replacement, unchanged.
func CanReplace(incumbent, candidate Transaction, bumpPercent uint64) bool {
	incumbentFee := bindingFee(incumbent)
	candidateFee := bindingFee(candidate)
	if incumbentFee == nil || candidateFee == nil {
		return false
	}
	if candidateFee.Cmp(bumpedThreshold(incumbentFee, bumpPercent)) < 0 {
		return false
	}

	if isDynamicFee(incumbent) && isDynamicFee(candidate) {
		incumbentTip := incumbent.MaxPriorityFeePerGas()
		candidateTip := candidate.MaxPriorityFeePerGas()
		if candidateTip.Cmp(bumpedThreshold(incumbentTip, bumpPercent)) < 0 {
			return false
		}
	}
	return true
}


