package metrics

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// ewma is an exponentially weighted moving average, decayed on each Tick by
// its alpha factor. It exists only to back Meter's three rate windows, so
// unlike a general-purpose metrics library it is not exported: nothing in
// this codebase needs an arbitrary-alpha average on its own.
type ewma struct {
	alpha     float64
	uncounted atomic.Int64
	mu        sync.Mutex
	rate      float64
	init      bool
	interval  float64 // tick interval in seconds
}

// newEWMA builds an ewma with a 5-second tick interval, matching the
// interval Meter.tickIfNeeded ticks on.
func newEWMA(alpha float64) *ewma {
	return &ewma{alpha: alpha, interval: 5.0}
}

func newEWMA1() *ewma  { return newEWMA(1 - math.Exp(-5.0/60.0)) }
func newEWMA5() *ewma  { return newEWMA(1 - math.Exp(-5.0/300.0)) }
func newEWMA15() *ewma { return newEWMA(1 - math.Exp(-5.0/900.0)) }

// update adds n samples to the uncounted total.
func (e *ewma) update(n int64) {
	e.uncounted.Add(n)
}

// tick decays the rate and incorporates uncounted samples.
func (e *ewma) tick() {
	count := e.uncounted.Swap(0)
	instantRate := float64(count) / e.interval

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.init {
		e.rate += e.alpha * (instantRate - e.rate)
	} else {
		e.rate = instantRate
		e.init = true
	}
}

// rateValue returns the current rate per second.
func (e *ewma) rateValue() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rate
}

// Meter tracks the rate of admitted transactions using 1-, 5-, and
// 15-minute exponentially weighted moving averages, similar to Unix load
// averages. It is used for TxArrivalRate: how fast transactions are being
// submitted to the pool, independent of how many are currently held.
type Meter struct {
	count     atomic.Int64
	rate1     *ewma
	rate5     *ewma
	rate15    *ewma
	startTime time.Time

	mu       sync.Mutex
	lastTick time.Time
}

// NewMeter creates a new Meter and initializes its start time.
func NewMeter() *Meter {
	now := time.Now()
	return &Meter{
		rate1:     newEWMA1(),
		rate5:     newEWMA5(),
		rate15:    newEWMA15(),
		startTime: now,
		lastTick:  now,
	}
}

// Mark records n events, typically n==1 per admitted transaction.
func (m *Meter) Mark(n int64) {
	m.count.Add(n)
	m.rate1.update(n)
	m.rate5.update(n)
	m.rate15.update(n)
	m.tickIfNeeded()
}

// tickIfNeeded ticks the EWMAs if 5 seconds have elapsed since the last
// tick. The meter ticks lazily on Mark/Rate* calls rather than off a
// background goroutine, so an idle pool costs nothing between arrivals.
func (m *Meter) tickIfNeeded() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(m.lastTick)
	for elapsed >= 5*time.Second {
		m.rate1.tick()
		m.rate5.tick()
		m.rate15.tick()
		m.lastTick = m.lastTick.Add(5 * time.Second)
		elapsed = now.Sub(m.lastTick)
	}
}

// Count returns the total number of events recorded.
func (m *Meter) Count() int64 {
	return m.count.Load()
}

// Rate1 returns the 1-minute EWMA rate per second.
func (m *Meter) Rate1() float64 {
	m.tickIfNeeded()
	return m.rate1.rateValue()
}

// Rate5 returns the 5-minute EWMA rate per second.
func (m *Meter) Rate5() float64 {
	m.tickIfNeeded()
	return m.rate5.rateValue()
}

// Rate15 returns the 15-minute EWMA rate per second.
func (m *Meter) Rate15() float64 {
	m.tickIfNeeded()
	return m.rate15.rateValue()
}

// RateMean returns the mean rate since the meter was created.
func (m *Meter) RateMean() float64 {
	elapsed := time.Since(m.startTime).Seconds()
	if elapsed == 0 {
		return 0
	}
	return float64(m.count.Load()) / elapsed
}
