package usecase

import (
	"sync"
	"time"
)

// NewLocalLocker returns an in-process replacement for the distributed
// lock, used when Valkey is disabled. Keys auto-expire after their TTL.
func NewLocalLocker() func(key string, ttl time.Duration) bool {
	var mu sync.Mutex
	held := make(map[string]time.Time)

	return func(key string, ttl time.Duration) bool {
		mu.Lock()
		defer mu.Unlock()

		now := time.Now()
		if expiry, ok := held[key]; ok && expiry.After(now) {
			return false
		}
		held[key] = now.Add(ttl)
		return true
	}
}
