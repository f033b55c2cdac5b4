package dedup

import (
	"sync"
	"time"
)

// Guard is a TTL set of recently seen keys. The webhook handler uses it to
// drop duplicate deliveries: Meta resends a notification until it gets a 2xx,
// so the same message id can arrive more than once.
type Guard struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
}

func New(ttl time.Duration) *Guard {
	g := &Guard{
		seen: make(map[string]time.Time),
		ttl:  ttl,
	}
	// janitor keeps the map from growing with dead entries
	go g.janitor(time.Minute)
	return g
}

// Seen marks key and reports whether it was already marked within the TTL.
func (g *Guard) Seen(key string) bool {
	now := time.Now()
	g.mu.Lock()
	defer g.mu.Unlock()
	if exp, ok := g.seen[key]; ok && now.Before(exp) {
		return true
	}
	g.seen[key] = now.Add(g.ttl)
	return false
}

func (g *Guard) janitor(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		g.mu.Lock()
		for k, exp := range g.seen {
			if now.After(exp) {
				delete(g.seen, k)
			}
		}
		g.mu.Unlock()
	}
}
