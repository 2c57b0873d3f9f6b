// Package ratelimit provides per-client request throttling using token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket refilled at a steady rate.
type bucket struct {
	mu         sync.Mutex
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
}

func newBucket(capacity int, refillRate float64) *bucket {
	return &bucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// take refills the bucket for elapsed time and consumes one token if available.
func (b *bucket) take() (ok bool, remaining int, resetAt time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.lastRefill).Seconds() * b.refillRate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		ok = true
	}

	remaining = int(b.tokens)
	if b.tokens < b.capacity {
		deficit := b.capacity - b.tokens
		resetAt = now.Add(time.Duration(deficit / b.refillRate * float64(time.Second)))
	} else {
		resetAt = now
	}
	return ok, remaining, resetAt
}

// Info describes the outcome of a rate limit check.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter throttles clients per endpoint rule. Buckets are keyed by
// client+rule so an expensive endpoint cannot starve the cheap ones.
type Limiter struct {
	mu         sync.RWMutex
	buckets    map[string]*bucket
	lastAccess map[string]time.Time
	config     *Config

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
}

// NewLimiter creates a limiter from the given configuration.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = LoadConfig()
	}

	l := &Limiter{
		buckets:    make(map[string]*bucket),
		lastAccess: make(map[string]time.Time),
		config:     config,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanupLoop()
	}

	return l
}

// Allow reports whether a request from clientID to the given route may proceed.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}

	rule := l.config.match(path, method)
	if rule == nil {
		rule = &Rule{Limit: l.config.DefaultLimit, Window: l.config.DefaultWindow}
	}
	if rule.Limit <= 0 {
		// Unlimited route
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + rule.Path + ":" + rule.Method
	b := l.getBucket(key, rule)

	l.mu.Lock()
	l.lastAccess[key] = time.Now()
	l.mu.Unlock()

	ok, remaining, resetAt := b.take()

	var retryAfter time.Duration
	if !ok {
		if retryAfter = time.Until(resetAt); retryAfter < 0 {
			retryAfter = 0
		}
	}

	return ok, Info{
		Allowed:    ok,
		Limit:      rule.Limit,
		Remaining:  remaining,
		ResetTime:  resetAt,
		RetryAfter: retryAfter,
	}
}

func (l *Limiter) getBucket(key string, rule *Rule) *bucket {
	l.mu.RLock()
	b, exists := l.buckets[key]
	l.mu.RUnlock()
	if exists {
		return b
	}

	burst := rule.Burst
	if burst <= 0 {
		burst = rule.Limit
	}
	b = newBucket(burst, float64(rule.Limit)/rule.Window.Seconds())

	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, exists := l.buckets[key]; exists {
		return existing
	}
	l.buckets[key] = b
	return b
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.evictStale()
		case <-l.cleanupStop:
			return
		}
	}
}

// evictStale drops buckets idle for more than two cleanup intervals.
func (l *Limiter) evictStale() {
	cutoff := time.Now().Add(-2 * l.config.CleanupInterval)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, last := range l.lastAccess {
		if last.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.lastAccess, key)
		}
	}
}

// Stop terminates the background cleanup goroutine.
func (l *Limiter) Stop() {
	if l.cleanupTicker != nil {
		l.cleanupTicker.Stop()
		close(l.cleanupStop)
	}
}
