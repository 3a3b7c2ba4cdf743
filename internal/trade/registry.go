package trade

import "sync"

// Registry maps league IDs to their settlement controllers. Each league's
// backend is constructed once at boot and injected; handlers look leagues up
// here instead of reaching for ambient singletons.
type Registry struct {
	mu       sync.RWMutex
	byLeague map[string]*Controller
}

func NewRegistry() *Registry {
	return &Registry{byLeague: make(map[string]*Controller)}
}

func (r *Registry) Register(c *Controller) {
	r.mu.Lock()
	r.byLeague[c.LeagueID()] = c
	r.mu.Unlock()
}

func (r *Registry) Lookup(leagueID string) (*Controller, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byLeague[leagueID]
	return c, ok
}
