package progress

import "sync"

// RequestCache memoizes query results for the duration of one request. It is
// created when request handling starts and discarded with the request, so
// entries can never outlive the data they were derived from across requests.
// Mutations flush it so readers in the same request observe committed state.
type RequestCache struct {
	mu      sync.Mutex
	entries map[string]interface{}
}

// NewRequestCache creates an empty per-request cache.
func NewRequestCache() *RequestCache {
	return &RequestCache{entries: make(map[string]interface{})}
}

// Get returns a memoized value for the key, if present. Safe on a nil cache.
func (rc *RequestCache) Get(key string) (interface{}, bool) {
	if rc == nil {
		return nil, false
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	v, ok := rc.entries[key]
	return v, ok
}

// Set stores a value under the key. Safe on a nil cache.
func (rc *RequestCache) Set(key string, value interface{}) {
	if rc == nil {
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.entries[key] = value
}

// Flush drops every memoized view. Called after a successful mutation so the
// dashboard, lesson, shop, quests and leaderboard reads are recomputed.
func (rc *RequestCache) Flush() {
	if rc == nil {
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.entries = make(map[string]interface{})
}

// Len reports the number of memoized entries.
func (rc *RequestCache) Len() int {
	if rc == nil {
		return 0
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.entries)
}
