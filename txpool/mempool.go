package txpool

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/thinkAfCod/feemempool/log"
	"github.com/thinkAfCod/feemempool/metrics"
)

// BlockHeader is the minimal view of a chain head header this package
// needs: whether the fee-market rule is active and, if so, its base fee.
type BlockHeader interface {
	// BaseFee returns the block's base fee, or nil if the fee-market rule
	// has not activated at this header.
	BaseFee() *uint256.Int
}

// ChainHeadHeaderSupplier returns the current chain head header. It is
// queried once at construction to seed the pool's base fee.
type ChainHeadHeaderSupplier interface {
	CurrentHeader() BlockHeader
}

// Clock supplies the current time for arrival-time stamping.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// MetricsSystem is the sink the pool core reports mutation counters and
// distributions to.
type MetricsSystem interface {
	IncAdded(local bool)
	IncDropped(local bool, reason DropReason)
	ObserveResidency(d time.Duration)
	SetRangeSizes(static, dynamic int64)
}

// registryMetrics implements MetricsSystem on top of the ambient metrics
// registry, creating counters on demand.
type registryMetrics struct{ registry *metrics.Registry }

// NewRegistryMetrics builds a MetricsSystem backed by registry. A nil
// registry falls back to metrics.DefaultRegistry.
func NewRegistryMetrics(registry *metrics.Registry) MetricsSystem {
	if registry == nil {
		registry = metrics.DefaultRegistry
	}
	return &registryMetrics{registry: registry}
}

func (r *registryMetrics) IncAdded(local bool) {
	r.registry.Counter("txpool.added." + originLabel(local)).Inc()
}

func (r *registryMetrics) IncDropped(local bool, reason DropReason) {
	r.registry.Counter("txpool.dropped." + reason.String() + "." + originLabel(local)).Inc()
}

func (r *registryMetrics) ObserveResidency(d time.Duration) {
	r.registry.Histogram("txpool.residency_ms").Observe(float64(d.Milliseconds()))
}

func (r *registryMetrics) SetRangeSizes(static, dynamic int64) {
	r.registry.Gauge("txpool.static.count").Set(static)
	r.registry.Gauge("txpool.dynamic.count").Set(dynamic)
}

func originLabel(local bool) string {
	if local {
		return "local"
	}
	return "remote"
}

// PriorityMempool is the coordinator described by this package's doc
// comment: it owns the hash index, the two range sets, the sender-nonce
// index, and the current base fee, and serializes every mutation under a
// single mutex.
type PriorityMempool struct {
	mu sync.RWMutex

	cfg      Config
	clock    Clock
	logger   *log.Logger
	metrics  MetricsSystem
	announce AnnounceCache
	feeds    observerFeeds

	hashIndex   map[common.Hash]*TransactionInfo
	static      *StaticRangeSet
	dynamic     *DynamicRangeSet
	senderNonce *SenderNonceIndex

	baseFee  *uint256.Int
	sequence uint64
}

// New builds an empty PriorityMempool. headers may be nil, in which case
// the pool starts with no base fee (pre-1559 chain head). clock may be nil
// to use the real wall clock.
func New(cfg Config, nonceQuery NonceQuery, headers ChainHeadHeaderSupplier, clock Clock) *PriorityMempool {
	if clock == nil {
		clock = realClock{}
	}
	m := &PriorityMempool{
		cfg:         cfg,
		clock:       clock,
		logger:      log.New(log.ParseLevel(cfg.LogLevel)).Module("mempool"),
		metrics:     NewRegistryMetrics(nil),
		announce:    NewAnnounceCache(cfg.MaxPooledTransactionHashes),
		hashIndex:   make(map[common.Hash]*TransactionInfo),
		static:      NewStaticRangeSet(),
		dynamic:     NewDynamicRangeSet(),
		senderNonce: NewSenderNonceIndex(nonceQuery),
	}
	if headers != nil {
		if h := headers.CurrentHeader(); h != nil {
			m.baseFee = h.BaseFee()
		}
	}
	return m
}

// Add admits tx to the pool. local marks whether it arrived from a
// same-node source (e.g. the node's own RPC) rather than the network.
func (m *PriorityMempool) Add(tx Transaction, local bool) (AddedStatus, error) {
	if tx == nil {
		return StatusRejectedUnderpriced, ErrNilTransaction
	}
	hash := tx.Hash()
	if hash == (common.Hash{}) {
		return StatusRejectedUnderpriced, ErrZeroHash
	}

	notify := &pendingNotifications{}
	status, err := m.doAdd(tx, local, hash, notify)
	if status != StatusAdded {
		return status, err
	}

	m.metrics.IncAdded(local)
	metrics.TxArrivalRate.Mark(1)
	notify.flush(&m.feeds)
	return StatusAdded, nil
}

// doAdd runs the locked portion of Add under a deferred unlock, so a panic
// anywhere in the critical section — not just from guardedCheckInvariants —
// still releases the lock instead of leaving the pool permanently blocked.
// notify is populated but not flushed here; Add flushes it only after this
// call has returned and the lock is released.
func (m *PriorityMempool) doAdd(tx Transaction, local bool, hash common.Hash, notify *pendingNotifications) (AddedStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, known := m.hashIndex[hash]; known {
		return StatusAlreadyKnown, nil
	}

	sender := tx.Sender()
	nonce := tx.Nonce()

	// Checked before any mutation so a rejection never leaves the pool
	// mid-replacement: state must never be left partial on error (see
	// the error handling design's recovery policy).
	distance := m.senderNonce.DistanceFromNextNonce(sender, nonce)
	if uint64(distance) > m.cfg.MaxFutureNonceDistance {
		return StatusNonceTooFarInFuture, nil
	}

	if incumbent, occupied := m.senderNonce.Get(sender, nonce); occupied {
		if !CanReplace(incumbent.Transaction(), tx, m.cfg.PriceBump) {
			return StatusLowerThanReplacementGasPrice, nil
		}
		m.doRemove(incumbent, false, ReasonReplaced, notify)
	}

	m.sequence++
	info := newTransactionInfo(tx, m.sequence, local, m.clock.Now(), distance)

	if info.IsInStaticRange(m.baseFee) {
		m.static.Insert(info)
	} else {
		m.dynamic.Insert(info)
	}
	m.hashIndex[hash] = info
	m.senderNonce.Insert(info)
	m.announce.Add(hash)

	if len(m.hashIndex) > m.cfg.MaxPendingTransactions {
		m.evictOverflow(notify)
	}

	notify.added = append(notify.added, AddedEvent{Info: info})
	m.metrics.SetRangeSizes(int64(m.static.Len()), int64(m.dynamic.Len()))
	m.guardedCheckInvariants()

	return StatusAdded, nil
}

// evictOverflow removes exactly one transaction — the globally worst by
// effective priority fee at the current base fee among the two sets'
// tails — so that len(m.hashIndex) no longer exceeds the configured cap.
// Assumes the write lock is held.
func (m *PriorityMempool) evictOverflow(notify *pendingNotifications) {
	staticTail := m.static.Tail()
	dynamicTail := m.dynamic.Tail()
	if staticTail == nil && dynamicTail == nil {
		return
	}

	var worst *TransactionInfo
	switch {
	case staticTail == nil:
		worst = dynamicTail
	case dynamicTail == nil:
		worst = staticTail
	default:
		sVal, sOK := staticTail.EffectivePriorityFeePerGas(m.baseFee)
		dVal, dOK := dynamicTail.EffectivePriorityFeePerGas(m.baseFee)
		if !sOK {
			sVal = uint256.NewInt(0)
		}
		if !dOK {
			dVal = uint256.NewInt(0)
		}
		if dVal.Cmp(sVal) < 0 {
			worst = dynamicTail
		} else {
			worst = staticTail
		}
	}

	m.logger.Debug("evicting over capacity", "hash", worst.Hash(), "cap", m.cfg.MaxPendingTransactions)
	m.doRemove(worst, false, ReasonEvictedOverflow, notify)
}

// doRemove unconditionally removes info from every index. Assumes the
// write lock is held. Dynamic is tried before static, mirroring the
// observed hot-path distribution; this is a pure optimization, never a
// correctness requirement, since a member is only ever in one set.
func (m *PriorityMempool) doRemove(info *TransactionInfo, addedToBlock bool, reason DropReason, notify *pendingNotifications) {
	hash := info.Hash()
	delete(m.hashIndex, hash)
	if _, ok := m.dynamic.Remove(hash); !ok {
		m.static.Remove(hash)
	}
	m.senderNonce.Remove(info)

	m.metrics.IncDropped(info.Local(), reason)
	m.metrics.ObserveResidency(m.clock.Now().Sub(info.ArrivalTime()))
	notify.dropped = append(notify.dropped, DroppedEvent{Info: info, Reason: reason, AddedToBlock: addedToBlock})
}

// Remove deletes the transaction with the given hash, if present.
// addedToBlock distinguishes block-inclusion removal from invalidation for
// metrics purposes.
func (m *PriorityMempool) Remove(hash common.Hash, addedToBlock bool) {
	notify := &pendingNotifications{}
	if !m.doRemoveLocked(hash, addedToBlock, notify) {
		return
	}
	notify.flush(&m.feeds)
}

// doRemoveLocked runs the locked portion of Remove under a deferred
// unlock, for the same reason doAdd does: a panic in the critical section
// must still release the lock. Reports whether hash was present to remove.
func (m *PriorityMempool) doRemoveLocked(hash common.Hash, addedToBlock bool, notify *pendingNotifications) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	info, ok := m.hashIndex[hash]
	if !ok {
		return false
	}
	reason := ReasonInvalidated
	if addedToBlock {
		reason = ReasonAddedToBlock
	}
	m.doRemove(info, addedToBlock, reason, notify)
	m.metrics.SetRangeSizes(int64(m.static.Len()), int64(m.dynamic.Len()))
	m.guardedCheckInvariants()
	return true
}

// guardedCheckInvariants runs checkInvariants under the build's
// invariant-failure policy: a violation panics inside checkInvariants, and
// the deferred guardInvariants call here — not at the calling mutator's
// scope — decides whether that panic aborts the process (debug builds) or
// is swallowed after repairing the range sets (release builds). Keeping
// the recover scoped this tightly means it can only ever observe a panic
// raised by checkInvariants itself, never an unrelated one further up the
// mutator.
func (m *PriorityMempool) guardedCheckInvariants() {
	defer m.guardInvariants()
	m.checkInvariants()
}

// ManageBlockAdded reacts to a newly imported block: it extracts the
// header's base fee, if any, and migrates range-set membership. Removing
// the transactions included in the block is the enclosing pool's
// responsibility via Remove(hash, true) for each one.
func (m *PriorityMempool) ManageBlockAdded(header BlockHeader) {
	if header == nil {
		return
	}
	if baseFee := header.BaseFee(); baseFee != nil {
		m.UpdateBaseFee(baseFee)
	}
}

// migrateMatching moves every member of from for which match reports true
// into to. Candidates are collected before either set is mutated, since
// mutating a btree while its own iteration is in flight is not supported.
func migrateMatching(from, to *rangeSet, match func(*TransactionInfo) bool) {
	var migrants []*TransactionInfo
	from.Iterate(func(info *TransactionInfo) bool {
		if match(info) {
			migrants = append(migrants, info)
		}
		return true
	})
	for _, info := range migrants {
		from.Remove(info.Hash())
		to.Insert(info)
	}
}

// UpdateBaseFee migrates transactions between the static and dynamic range
// sets so that membership matches IsInStaticRange at the new base fee.
func (m *PriorityMempool) UpdateBaseFee(newBaseFee *uint256.Int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if baseFeeEqual(m.baseFee, newBaseFee) {
		return
	}

	increased := baseFeeLess(m.baseFee, newBaseFee)
	// IsInStaticRange is false for every transaction while the base fee is
	// absent, so a transition to or from absent can move members in either
	// direction; both sets are scanned then.
	viaAbsent := m.baseFee == nil || newBaseFee == nil

	if increased || viaAbsent {
		migrateMatching(m.static.rangeSet, m.dynamic.rangeSet, func(info *TransactionInfo) bool {
			return !info.IsInStaticRange(newBaseFee)
		})
	}
	if !increased || viaAbsent {
		migrateMatching(m.dynamic.rangeSet, m.static.rangeSet, func(info *TransactionInfo) bool {
			return info.IsInStaticRange(newBaseFee)
		})
	}

	m.baseFee = newBaseFee
	m.logger.Info("base fee updated", "new_base_fee", newBaseFee, "static", m.static.Len(), "dynamic", m.dynamic.Len())
	m.metrics.SetRangeSizes(int64(m.static.Len()), int64(m.dynamic.Len()))
	m.guardedCheckInvariants()
}

// baseFeeEqual treats a nil base fee as absent, not as zero; two absent
// base fees are equal, an absent and a present one are not, regardless of
// the present value.
func baseFeeEqual(a, b *uint256.Int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Eq(b)
}

// baseFeeLess reports whether b represents an increase over a, with
// absent treated as the chain's starting point (lower than any present
// value) rather than implicitly as zero.
func baseFeeLess(a, b *uint256.Int) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	return a.Cmp(b) < 0
}

// Prioritize drains the merged, base-fee-aware ranking under the pool's
// read lock, calling fn once per transaction from highest to lowest
// effective priority fee. fn must not call back into the pool, and must
// not perform unbounded work per step, since the lock is held for the
// duration of the call.
func (m *PriorityMempool) Prioritize(fn func(*TransactionInfo) bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mergedIterate(m.static, m.dynamic, m.baseFee, fn)
}

// Size returns the number of transactions currently pooled.
func (m *PriorityMempool) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.hashIndex)
}

// Contains reports whether hash is currently pooled.
func (m *PriorityMempool) Contains(hash common.Hash) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.hashIndex[hash]
	return ok
}

// ArrivalRate reports the pool-wide transaction admission rate, in
// transactions per second, over the 1-, 5-, and 15-minute windows plus the
// mean rate since process start. The underlying meter is marked once per
// successful Add, independent of any single pool instance.
func ArrivalRate() (rate1, rate5, rate15, mean float64) {
	return metrics.TxArrivalRate.Rate1(), metrics.TxArrivalRate.Rate5(), metrics.TxArrivalRate.Rate15(), metrics.TxArrivalRate.RateMean()
}

// MetricsSnapshot returns a point-in-time view of every metric this pool's
// metrics system has recorded, keyed by metric name. It returns nil when
// the pool was built with a MetricsSystem other than the registry-backed
// default.
func (m *PriorityMempool) MetricsSnapshot() map[string]interface{} {
	rm, ok := m.metrics.(*registryMetrics)
	if !ok {
		return nil
	}
	return rm.registry.Snapshot()
}

// Get returns the TransactionInfo for hash, if pooled.
func (m *PriorityMempool) Get(hash common.Hash) (*TransactionInfo, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	info, ok := m.hashIndex[hash]
	return info, ok
}
