package txpool

// Config holds the closed set of tunables the pool core accepts. Time-based
// expiry and announce-cache sizing are enforced by the enclosing pool, not
// by the core itself, but the core owns the announce cache instance so it
// needs the capacity up front.
type Config struct {
	// MaxTransactionRetentionHours bounds how long a pending transaction
	// may sit in the pool before the enclosing pool drops it. The core
	// does not act on this value directly.
	MaxTransactionRetentionHours uint64
	// MaxPendingTransactions is the hard cap on HashIndex size; crossing
	// it after an Add triggers overflow eviction.
	MaxPendingTransactions int
	// MaxPooledTransactionHashes bounds the announce-hash cache.
	MaxPooledTransactionHashes int
	// PriceBump is the percent a replacement transaction's price must
	// exceed the incumbent's by, in the range [0, 100].
	PriceBump uint64
	// MaxFutureNonceDistance bounds how far ahead of a sender's next
	// executable nonce a transaction may sit before Add rejects it with
	// StatusNonceTooFarInFuture.
	MaxFutureNonceDistance uint64
	// LogLevel selects the verbosity of the pool's own logger ("debug",
	// "info", "warn", "error"). Empty or unrecognized values fall back to
	// info via log.ParseLevel.
	LogLevel string
}

// DefaultConfig returns reasonable defaults for a standalone pool core.
func DefaultConfig() Config {
	return Config{
		MaxTransactionRetentionHours: 3,
		MaxPendingTransactions:       4096,
		MaxPooledTransactionHashes:   4096 * 4,
		PriceBump:                    10,
		MaxFutureNonceDistance:       64,
		LogLevel:                     "info",
	}
}
