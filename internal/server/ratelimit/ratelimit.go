// Package ratelimit throttles API clients with per-endpoint token buckets.
// Endpoints that fan out to the vision backend get far stricter budgets than
// purely local computation; see DefaultEndpointConfigs.
package ratelimit

import (
	"sync"
	"time"
)

// bucketIdleTTL is how long a client/endpoint bucket may sit unused before
// the sweeper reclaims it.
const bucketIdleTTL = time.Hour

// bucket holds the token state for one client and endpoint pair. Tokens
// refill continuously at perSec; a request spends one whole token.
type bucket struct {
	mu       sync.Mutex
	capacity float64
	perSec   float64
	tokens   float64
	updated  time.Time
	lastSeen time.Time
}

func newBucket(burst int, perSec float64) *bucket {
	now := time.Now()
	return &bucket{
		capacity: float64(burst),
		perSec:   perSec,
		tokens:   float64(burst),
		updated:  now,
		lastSeen: now,
	}
}

// take refills from the elapsed wall time and tries to spend one token. It
// reports whether the spend succeeded, the whole tokens still available, and
// when the bucket will be full again.
func (b *bucket) take() (ok bool, remaining int, reset time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.updated).Seconds() * b.perSec
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.updated = now
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		ok = true
	}
	remaining = int(b.tokens)

	reset = now
	if b.tokens < b.capacity {
		missing := b.capacity - b.tokens
		reset = now.Add(time.Duration(missing / b.perSec * float64(time.Second)))
	}
	return ok, remaining, reset
}

func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastSeen.Before(cutoff)
}

// Info describes the outcome of a rate limit check. It carries what the
// server needs for X-RateLimit-* and Retry-After headers.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// Limiter tracks one token bucket per client/endpoint/method triple.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	config  *Config
	ticker  *time.Ticker
	done    chan struct{}
}

// NewLimiter creates a limiter for the given configuration. A nil config
// enables limiting with the global defaults and no endpoint tiers.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			Whitelist:       make(map[string]bool),
			Blacklist:       make(map[string]bool),
		}
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.ticker = time.NewTicker(config.CleanupInterval)
		l.done = make(chan struct{})
		go l.sweepLoop()
	}

	return l
}

// Allow checks whether a request from clientID to the given path and method
// fits the client's budget. Whitelisted clients always pass, blacklisted
// clients never do, and endpoints with a non-positive limit are unmetered.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	ec := MatchEndpoint(path, method, l.config.EndpointConfigs)
	if ec == nil {
		ec = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
		}
	}
	if ec.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + path + ":" + method
	allowed, remaining, reset := l.bucketFor(key, ec).take()

	var retryAfter time.Duration
	if !allowed {
		if retryAfter = time.Until(reset); retryAfter < 0 {
			retryAfter = 0
		}
	}

	return allowed, Info{
		Allowed:    allowed,
		Limit:      ec.Limit,
		Remaining:  remaining,
		ResetTime:  reset,
		RetryAfter: retryAfter,
	}
}

func (l *Limiter) bucketFor(key string, ec *EndpointConfig) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		return b
	}
	burst := ec.Burst
	if burst <= 0 {
		burst = ec.Limit
	}
	b := newBucket(burst, float64(ec.Limit)/ec.Window.Seconds())
	l.buckets[key] = b
	return b
}

func (l *Limiter) sweepLoop() {
	for {
		select {
		case <-l.ticker.C:
			l.sweep()
		case <-l.done:
			return
		}
	}
}

// sweep drops buckets that have been idle longer than bucketIdleTTL. A
// revisiting client simply gets a fresh full bucket.
func (l *Limiter) sweep() {
	cutoff := time.Now().Add(-bucketIdleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.idleSince(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop terminates the background sweeper.
func (l *Limiter) Stop() {
	if l.ticker != nil {
		l.ticker.Stop()
	}
	if l.done != nil {
		close(l.done)
	}
}
