package txpool

import "github.com/ethereum/go-ethereum/event"

// AddedEvent is delivered to subscribers after a transaction is admitted.
type AddedEvent struct {
	Info *TransactionInfo
}

// DroppedEvent is delivered to subscribers after a transaction leaves the
// pool, for any reason.
type DroppedEvent struct {
	Info         *TransactionInfo
	Reason       DropReason
	AddedToBlock bool
}

// observerFeeds holds the pool's pub/sub endpoints. Notifications are
// queued into a local slice while the mempool's write lock is held, then
// sent after the lock is released — event.Feed.Send blocks until every
// subscriber's channel accepts the value, which would deadlock a
// subscriber that itself calls back into the pool while the lock is still
// held.
type observerFeeds struct {
	added   event.Feed
	dropped event.Feed
	scope   event.SubscriptionScope
}

// SubscribeTransactionAdded registers ch to receive AddedEvents.
func (m *PriorityMempool) SubscribeTransactionAdded(ch chan<- AddedEvent) event.Subscription {
	return m.feeds.scope.Track(m.feeds.added.Subscribe(ch))
}

// SubscribeTransactionDropped registers ch to receive DroppedEvents.
func (m *PriorityMempool) SubscribeTransactionDropped(ch chan<- DroppedEvent) event.Subscription {
	return m.feeds.scope.Track(m.feeds.dropped.Subscribe(ch))
}

// Close releases all subscriptions. It should be called once the pool is
// no longer in use.
func (m *PriorityMempool) Close() {
	m.feeds.scope.Close()
}

// pendingNotifications accumulates events raised during a single mutation
// while the write lock is held, for delivery once it is released.
type pendingNotifications struct {
	added   []AddedEvent
	dropped []DroppedEvent
}

func (p *pendingNotifications) flush(feeds *observerFeeds) {
	for _, e := range p.added {
		feeds.added.Send(e)
	}
	for _, e := range p.dropped {
		feeds.dropped.Send(e)
	}
}
