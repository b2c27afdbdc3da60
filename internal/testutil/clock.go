package testutil

import (
	"sync"
	"time"
)

// Epoch is the base instant for DeterministicClock: 2024-01-02T03:04:05Z.
var Epoch = time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)

// DeterministicClock hands out timestamps one second apart starting at
// Epoch, so DateTime fixtures render identically on every run.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type DeterministicClock struct {
	mu   sync.Mutex
	base time.Time
	seq  int64
}

// NewDeterministicClock creates a clock whose first Next() is Epoch.
func NewDeterministicClock() *DeterministicClock {
	return &DeterministicClock{base: Epoch}
}

// Next returns the current instant and advances by one second.
func (c *DeterministicClock) Next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.base.Add(time.Duration(c.seq) * time.Second)
	c.seq++
	return t
}

// Reset rewinds the clock so the next call to Next() returns Epoch again.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = 0
}
