package txpool

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// AnnounceCache tracks which transaction hashes have already been
// broadcast, so the enclosing pool's gossip layer can suppress
// re-announcing them. The pool core only ever notifies it after a
// successful Add; announce policy itself is external.
type AnnounceCache interface {
	// Add records hash as announced, evicting the oldest entry if the
	// cache is at capacity.
	Add(hash common.Hash)
	// Contains reports whether hash has been recorded.
	Contains(hash common.Hash) bool
}

// fifoAnnounceCache is a fixed-capacity, FIFO-evicting set of hashes.
type fifoAnnounceCache struct {
	mu       sync.Mutex
	capacity int
	order    []common.Hash
	seen     map[common.Hash]struct{}
}

// NewAnnounceCache creates an AnnounceCache holding at most capacity
// hashes.
func NewAnnounceCache(capacity int) AnnounceCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &fifoAnnounceCache{
		capacity: capacity,
		seen:     make(map[common.Hash]struct{}, capacity),
	}
}

func (c *fifoAnnounceCache) Add(hash common.Hash) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.seen[hash]; ok {
		return
	}
	c.order = append(c.order, hash)
	c.seen[hash] = struct{}{}
	for len(c.order) > c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.seen, oldest)
	}
}

func (c *fifoAnnounceCache) Contains(hash common.Hash) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.seen[hash]
	return ok
}


