package service

import "sync"

// cardLocks hands out one mutex per card ID so concurrent scans of the same
// card serialize while scans of different cards proceed in parallel. Entries
// are never evicted; the population of cards is small and stable.
type cardLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newCardLocks() *cardLocks {
	return &cardLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for cardID and returns its unlock func.
func (c *cardLocks) lock(cardID string) func() {
	c.mu.Lock()
	m, ok := c.locks[cardID]
	if !ok {
		m = &sync.Mutex{}
		c.locks[cardID] = m
	}
	c.mu.Unlock()

	m.Lock()
	return m.Unlock
}
