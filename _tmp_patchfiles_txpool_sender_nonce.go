package txpool

import "github.com/ethereum/go-ethereum/common"

// NonceQuery returns the next nonce the chain state expects from sender.
// Per-sender account-state lookup is an external collaborator; the pool
// core only ever calls this function, never maintains account state
// itself.
type NonceQuery func(sender common.Address) uint64

// SenderNonceIndex maps each sender to its pending transactions keyed by
// nonce. It supports the two queries the core needs for admission:
// locating an existing occupant of a (sender, nonce) pair for
// replace-by-fee, and computing how far a nonce sits from the sender's
// next executable nonce.
//
// SenderNonceIndex performs no locking of its own; it is only ever touched
// while the owning PriorityMempool holds its write lock.
type SenderNonceIndex struct {
	bySender  map[common.Address]map[uint64]*TransactionInfo
	nextNonce NonceQuery
}

// NewSenderNonceIndex builds an empty index that consults query for each
// sender's next executable nonce.
func NewSenderNonceIndex(query NonceQuery) *SenderNonceIndex {
	return &SenderNonceIndex{
		bySender:  make(map[common.Address]map[uint64]*TransactionInfo),
		nextNonce: query,
	}
}

// Get returns the transaction occupying (sender, nonce), if any.
func (s *SenderNonceIndex) Get(sender common.Address, nonce uint64) (*TransactionInfo, bool) {
	byNonce, ok := s.bySender[sender]
	if !ok {
		return nil, false
	}
	info, ok := byNonce[nonce]
	return info, ok
}

// Insert records info under its sender and nonce. The caller must have
// already removed any existing occupant of the same (sender, nonce).
func (s *SenderNonceIndex) Insert(info *TransactionInfo) {
	sender := info.Sender()
	byNonce, ok := s.bySender[sender]
	if !ok {
		byNonce = make(map[uint64]*TransactionInfo)
		s.bySender[sender] = byNonce
	}
	byNonce[info.Nonce()] = info
}

// Remove deletes the (sender, nonce) entry if it currently holds info.
func (s *SenderNonceIndex) Remove(info *TransactionInfo) {
	sender := info.Sender()
	byNonce, ok := s.bySender[sender]
	if !ok {
		return
	}
	if existing, ok := byNonce[info.Nonce()]; !ok || existing != info {
		return
	}
	delete(byNonce, info.Nonce())
	if len(byNonce) == 0 {
		delete(s.bySender, sender)
	}
}

// DistanceFromNextNonce returns nonce minus the sender's expected next
// nonce, clamped at zero. A negative raw distance can only arise
// transiently during a reorg, per the contract this index implements; the
// clamp keeps it out of the comparator's key space rather than letting a
// reorg transiently invert ordering.
func (s *SenderNonceIndex) DistanceFromNextNonce(sender common.Address, nonce uint64) int64 {
	expected := s.nextNonce(sender)
	distance := int64(nonce) - int64(expected)
	if distance < 0 {
		return 0
	}
	return distance
}


