package ledger

import (
	"sync"
	"time"
)

// summaryCache is a single-entry read-through cache for the month screen.
// The summary is re-displayed after almost every action, so a short TTL
// saves a round trip without risking staleness: every mutating command
// calls Invalidate before reporting success.
type summaryCache struct {
	mu        sync.Mutex
	value     MonthSummary
	fetchedAt time.Time
	ttl       time.Duration

	now func() time.Time // stubbed in tests
}

func newSummaryCache(ttl time.Duration) *summaryCache {
	return &summaryCache{ttl: ttl, now: time.Now}
}

func (c *summaryCache) Get() (MonthSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fetchedAt.IsZero() || c.now().Sub(c.fetchedAt) > c.ttl {
		return MonthSummary{}, false
	}
	return c.value, true
}

func (c *summaryCache) Put(s MonthSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = s
	c.fetchedAt = c.now()
}

func (c *summaryCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchedAt = time.Time{}
}
