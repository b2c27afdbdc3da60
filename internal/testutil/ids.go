package testutil

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// SequentialIDs generates predictable UUIDs: the first is
// 00000000-0000-0000-0000-000000000001, then ...002 and so on.
//
// Thread-safety: safe for concurrent use.
type SequentialIDs struct {
	mu  sync.Mutex
	seq uint64
}

// Next returns the next UUID in sequence.
func (g *SequentialIDs) Next() uuid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012x", g.seq))
}
