package txpool

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// fixedTime returns a deterministic timestamp for tests that don't care
// about wall-clock values but need a stable TransactionInfo.
func fixedTime() time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

// zeroNonceQuery treats every sender's next expected nonce as 0, so a
// transaction's nonce is its raw distance from "next executable".
func zeroNonceQuery(common.Address) uint64 { return 0 }

// fixedClock reports a constant time, for deterministic arrival timestamps.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }


