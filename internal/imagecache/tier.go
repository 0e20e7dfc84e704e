package imagecache

import (
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

type entry struct {
	data []byte
	cost int64
}

// tier is one bounded cache level: an LRU capped by entry count, plus a byte
// cost ledger enforced by evicting from the cold end until back under budget.
type tier struct {
	mu         sync.Mutex
	lru        *lru.Cache[string, entry]
	costBudget int64
	cost       int64
}

func newTier(entries int, costBudget int64) (*tier, error) {
	t := &tier{costBudget: costBudget}

	// The eviction callback keeps the ledger in sync for every removal
	// path: count-cap eviction inside Add, RemoveOldest, Remove, Purge.
	cache, err := lru.NewWithEvict(entries, func(_ string, e entry) {
		t.cost -= e.cost
	})
	if err != nil {
		return nil, err
	}

	t.lru = cache
	return t, nil
}

func (t *tier) get(key string) ([]byte, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.lru.Get(key)
	if !ok {
		return nil, false
	}
	return e.data, true
}

func (t *tier) add(key string, data []byte, cost int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Add does not fire the eviction callback when replacing an existing
	// key, so the old cost is settled by hand.
	if old, ok := t.lru.Peek(key); ok {
		t.cost -= old.cost
	}

	t.lru.Add(key, entry{data: data, cost: cost})
	t.cost += cost

	for t.cost > t.costBudget && t.lru.Len() > 1 {
		if _, _, ok := t.lru.RemoveOldest(); !ok {
			break
		}
	}
}

func (t *tier) remove(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lru.Remove(key)
}

func (t *tier) removePrefix(prefix string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, key := range t.lru.Keys() {
		if strings.HasPrefix(key, prefix) {
			t.lru.Remove(key)
		}
	}
}

func (t *tier) purge() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lru.Purge()
}

func (t *tier) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lru.Len()
}

func (t *tier) currentCost() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cost
}
