// Package idempotency provides a TTL'd first-writer-wins claim ledger for
// deduplication keys.
//
// A Ledger is an explicitly constructed instance with a caller-controlled
// lifecycle; there is no package-level singleton. Claims expire after
// their TTL and expired keys must be swept periodically; the engine runs a
// sweeper for the ledger it is handed. Contrast with the webhook
// reconciler's dedup set, whose membership is permanent.
package idempotency

import (
	"sync"
	"time"
)

// DefaultTTL is the claim lifetime used by Claim.
const DefaultTTL = time.Hour

// Ledger records deduplication keys with an expiry. The zero value is not
// usable; construct with New.
type Ledger struct {
	mu   sync.Mutex
	keys map[string]time.Time
	ttl  time.Duration
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithTTL overrides the default claim lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(l *Ledger) {
		l.ttl = ttl
	}
}

// New creates an empty ledger.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		keys: make(map[string]time.Time),
		ttl:  DefaultTTL,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Claim registers key with the ledger's TTL. It returns true if this call
// was the first to claim the key within its lifetime, false if the key is
// already held. The test-and-set is atomic: under concurrent delivery of
// the same key, exactly one caller wins.
func (l *Ledger) Claim(key string) bool {
	return l.ClaimFor(key, l.ttl)
}

// ClaimFor is Claim with an explicit TTL for this key.
func (l *Ledger) ClaimFor(key string, ttl time.Duration) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if expiry, held := l.keys[key]; held && expiry.After(now) {
		return false
	}
	l.keys[key] = now.Add(ttl)
	return true
}

// Sweep removes expired keys and returns how many were removed.
func (l *Ledger) Sweep() int {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, expiry := range l.keys {
		if !expiry.After(now) {
			delete(l.keys, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of keys currently held, including expired keys
// not yet swept.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.keys)
}
