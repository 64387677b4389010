// Package security guards the listener against a single remote address
// opening connections faster than slimrelay can usefully service them.
package security

import (
	"sync"
	"time"
)

// sourceEntry tracks connection rate for a single remote address.
type sourceEntry struct {
	windowStart    time.Time // start of the current 1-second sliding window
	cooldownExpiry time.Time // when the cooldown ends (zero if not in cooldown)
	lastSeen       time.Time // last connection accepted (for LRU eviction)
	count          int       // connections seen in the current window
}

// RateLimiter enforces a per-source connection budget with a bounded
// memory footprint, admitting a burst up to threshold connections per
// second before imposing a cooldown.
type RateLimiter struct {
	threshold  int                     // max connections/second per source
	cooldown   time.Duration           // how long a source is shut out after exceeding threshold
	maxEntries int                     // max number of distinct sources tracked
	mu         sync.Mutex
	sources    map[string]*sourceEntry
	evictions  uint64
}

// NewRateLimiter builds a limiter with the given threshold, cooldown and
// tracked-source cap. A threshold <= 0 disables limiting entirely.
func NewRateLimiter(threshold int, cooldown time.Duration, maxEntries int) *RateLimiter {
	return &RateLimiter{
		threshold:  threshold,
		cooldown:   cooldown,
		maxEntries: maxEntries,
		sources:    make(map[string]*sourceEntry),
	}
}

// Allow reports whether a new connection from source should be accepted.
// A disabled limiter (threshold <= 0) always allows.
func (rl *RateLimiter) Allow(source string) bool {
	if rl.threshold <= 0 {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	entry, exists := rl.sources[source]
	if !exists {
		rl.sources[source] = &sourceEntry{count: 1, windowStart: now, lastSeen: now}
		if len(rl.sources) > rl.maxEntries {
			rl.evict()
		}
		return true
	}

	if !entry.cooldownExpiry.IsZero() {
		if now.Before(entry.cooldownExpiry) {
			entry.lastSeen = now
			return false
		}
		entry.cooldownExpiry = time.Time{}
		entry.count = 1
		entry.windowStart = now
		entry.lastSeen = now
		return true
	}

	if now.Sub(entry.windowStart) > time.Second {
		entry.count = 1
		entry.windowStart = now
	} else {
		entry.count++
	}
	entry.lastSeen = now

	if entry.count > rl.threshold {
		entry.cooldownExpiry = now.Add(rl.cooldown)
		return false
	}
	return true
}

// evict drops the oldest tenth of tracked sources. Callers must hold rl.mu.
func (rl *RateLimiter) evict() {
	evictCount := rl.maxEntries / 10
	if evictCount == 0 {
		evictCount = 1
	}

	type aged struct {
		source   string
		lastSeen time.Time
	}
	entries := make([]aged, 0, len(rl.sources))
	for src, e := range rl.sources {
		entries = append(entries, aged{source: src, lastSeen: e.lastSeen})
	}

	for i := 0; i < evictCount && i < len(entries); i++ {
		oldest := i
		for j := i + 1; j < len(entries); j++ {
			if entries[j].lastSeen.Before(entries[oldest].lastSeen) {
				oldest = j
			}
		}
		entries[i], entries[oldest] = entries[oldest], entries[i]
	}

	for i := 0; i < evictCount && i < len(entries); i++ {
		delete(rl.sources, entries[i].source)
		rl.evictions++
	}
}

// Cleanup removes sources that have been quiet for over a minute. It runs
// only when called; the server's accept loop does not call it, so there
// the map is bounded by maxEntries eviction alone.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for src, e := range rl.sources {
		if now.Sub(e.lastSeen) > time.Minute {
			delete(rl.sources, src)
		}
	}
}

// Evictions returns the number of LRU evictions performed so far, useful
// for surfacing via telemetry.
func (rl *RateLimiter) Evictions() uint64 {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.evictions
}
