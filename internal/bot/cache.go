package bot

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/dgraph-io/ristretto"

	"guandan/internal/bot/brain"
	"guandan/internal/domain"
)

// CacheStats reports the evaluation cache occupancy and effectiveness.
type CacheStats struct {
	Size    int     `json:"size"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hitRate"`
}

// evalCache memoizes scores by key with a fixed entry cap. Each entry costs 1.
type evalCache struct {
	cache  *ristretto.Cache
	size   atomic.Int64
	hits   int64
	misses int64
}

func newEvalCache(capacity int64) (*evalCache, error) {
	c := &evalCache{}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        capacity * 10,
		MaxCost:            capacity,
		BufferItems:        64,
		IgnoreInternalCost: true,
		OnEvict: func(*ristretto.Item) {
			c.size.Add(-1)
		},
		OnReject: func(*ristretto.Item) {
			c.size.Add(-1)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create evaluation cache: %w", err)
	}
	c.cache = cache
	return c, nil
}

func (c *evalCache) get(key string) (float64, bool) {
	v, ok := c.cache.Get(key)
	if !ok {
		c.misses++
		return 0, false
	}
	c.hits++
	return v.(float64), true
}

// set stores a fresh key and waits until it is visible to get.
func (c *evalCache) set(key string, score float64) {
	if c.cache.Set(key, score, 1) {
		c.size.Add(1)
	}
	c.cache.Wait()
}

func (c *evalCache) stats() CacheStats {
	st := CacheStats{Size: int(c.size.Load()), Hits: c.hits, Misses: c.misses}
	if total := c.hits + c.misses; total > 0 {
		st.HitRate = float64(c.hits) / float64(total)
	}
	return st
}

func (c *evalCache) clear() {
	c.cache.Clear()
	c.size.Store(0)
	c.hits, c.misses = 0, 0
}

func (c *evalCache) close() {
	c.cache.Close()
}

// evalKey identifies an evaluation by the pattern, the visible table state,
// the memory size and the adaptive scalars that feed the score.
func evalKey(p *domain.Pattern, session domain.Session, memory *brain.GameMemory, tendency, risk float64) string {
	var b strings.Builder
	b.WriteString(p.Signature())
	if session != nil {
		fmt.Fprintf(&b, "|%s|%d|%s", session.Phase(), session.CurrentRound().Number, currentPattern(session).Signature())
		counts := domain.HandCounts(session)
		ids := make([]string, 0, len(counts))
		for id := range counts {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Fprintf(&b, "|%s=%d", id, counts[id])
		}
	}
	if memory != nil {
		fmt.Fprintf(&b, "|m%d", memory.Size())
	}
	fmt.Fprintf(&b, "|t%.4f|r%.4f", tendency, risk)
	return b.String()
}
