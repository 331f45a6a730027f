package metrics

// Pre-defined metrics for the mempool core. The gauges and the histogram
// live in DefaultRegistry so they are globally accessible without passing a
// registry around; TxArrivalRate is a package-level Meter, which no
// Registry holds.

var (
	// ---- Pool size gauges ----

	// StaticRangeSize tracks the current number of transactions held in the
	// static fee range.
	StaticRangeSize = DefaultRegistry.Gauge("txpool.static.count")
	// DynamicRangeSize tracks the current number of transactions held in the
	// dynamic fee range.
	DynamicRangeSize = DefaultRegistry.Gauge("txpool.dynamic.count")

	// ---- Distributions ----

	// ResidencyMillis tracks, in milliseconds, how long a transaction sat in
	// the pool between admission and removal, for any removal reason.
	ResidencyMillis = DefaultRegistry.Histogram("txpool.residency_ms")

	// ---- Rates ----

	// Mutation counters keyed by (local, reason) are created on demand in
	// DefaultRegistry under "txpool.added.<local|remote>" and
	// "txpool.dropped.<reason>.<local|remote>" — see txpool's
	// registryMetrics, grounded on this Registry's get-or-create
	// semantics.

	// TxArrivalRate tracks the rate of transactions admitted to the pool.
	TxArrivalRate = NewMeter()
)
