package middlewares

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

type windowEntry struct {
	count       int
	windowStart time.Time
}

// RateGovernor admits or rejects requests per source identity using a
// fixed-window counter: at most Max requests per Window, with the counter
// reset once the window has fully elapsed. A burst of up to 2*Max across an
// exact window boundary is accepted behavior of this algorithm, not a bug.
//
// The governor owns the only process-global mutable map in the service and
// is safe for concurrent use. No lock is ever held across I/O.
type RateGovernor struct {
	mu      sync.Mutex
	entries map[string]*windowEntry

	max    int
	window time.Duration

	// now is the time source; overridable in tests.
	now func() time.Time

	cleanup *time.Timer
}

// NewRateGovernor builds a governor admitting max requests per window.
func NewRateGovernor(max int, window time.Duration) *RateGovernor {
	rg := &RateGovernor{
		entries: make(map[string]*windowEntry),
		max:     max,
		window:  window,
		now:     time.Now,
	}
	rg.startCleanup()
	return rg
}

// NewRateGovernorWithClock is NewRateGovernor with an injected time source.
// The background sweep is disabled so tests control time fully.
func NewRateGovernorWithClock(max int, window time.Duration, now func() time.Time) *RateGovernor {
	return &RateGovernor{
		entries: make(map[string]*windowEntry),
		max:     max,
		window:  window,
		now:     now,
	}
}

// Admit records one request from identity and reports whether it is allowed
// under the current window. It never blocks beyond the map mutation.
func (rg *RateGovernor) Admit(identity string) bool {
	now := rg.now()

	rg.mu.Lock()
	defer rg.mu.Unlock()

	entry, ok := rg.entries[identity]
	if !ok {
		rg.entries[identity] = &windowEntry{count: 1, windowStart: now}
		return true
	}

	if now.Sub(entry.windowStart) < rg.window {
		if entry.count < rg.max {
			entry.count++
			return true
		}
		return false
	}

	// Window elapsed: reset exactly once, admitting this request.
	entry.count = 1
	entry.windowStart = now
	return true
}

// Middleware keys admission by client IP and answers 429 on reject.
func (rg *RateGovernor) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rg.Admit(c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "too many requests, try again later",
			})
		}
		return c.Next()
	}
}

// startCleanup periodically drops identities whose window has long expired
// so the map does not grow without bound.
func (rg *RateGovernor) startCleanup() {
	rg.cleanup = time.AfterFunc(5*time.Minute, func() {
		now := rg.now()
		rg.mu.Lock()
		for identity, entry := range rg.entries {
			if now.Sub(entry.windowStart) >= 2*rg.window {
				delete(rg.entries, identity)
			}
		}
		rg.mu.Unlock()
		rg.startCleanup()
	})
}

func (rg *RateGovernor) Close() {
	if rg.cleanup != nil {
		rg.cleanup.Stop()
	}
}
