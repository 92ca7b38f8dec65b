package middlewares

import (
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestRateGovernor_WindowScenario(t *testing.T) {
	// window=60s, max=2: t=0 allow, t=10 allow, t=20 reject, t=61 allow.
	clock := newFakeClock(time.Unix(1000, 0))
	rg := NewRateGovernorWithClock(2, time.Minute, clock.Now)

	assert.True(t, rg.Admit("A"), "t=0 should be admitted")

	clock.Advance(10 * time.Second)
	assert.True(t, rg.Admit("A"), "t=10 should be admitted")

	clock.Advance(10 * time.Second)
	assert.False(t, rg.Admit("A"), "t=20 should be rejected")

	clock.Advance(41 * time.Second)
	assert.True(t, rg.Admit("A"), "t=61 should be admitted after window reset")
}

func TestRateGovernor_PerIdentityIsolation(t *testing.T) {
	clock := newFakeClock(time.Unix(1000, 0))
	rg := NewRateGovernorWithClock(1, time.Minute, clock.Now)

	assert.True(t, rg.Admit("A"))
	assert.False(t, rg.Admit("A"))
	assert.True(t, rg.Admit("B"), "identity B has its own window")
}

func TestRateGovernor_BoundaryBurst(t *testing.T) {
	// Fixed-window counters admit up to 2N across an exact window edge:
	// N at the end of one window, N right after the reset.
	clock := newFakeClock(time.Unix(1000, 0))
	rg := NewRateGovernorWithClock(3, time.Minute, clock.Now)

	admitted := 0
	for i := 0; i < 5; i++ {
		if rg.Admit("A") {
			admitted++
		}
	}
	assert.Equal(t, 3, admitted, "first window admits exactly N")

	clock.Advance(time.Minute)
	for i := 0; i < 5; i++ {
		if rg.Admit("A") {
			admitted++
		}
	}
	assert.Equal(t, 6, admitted, "boundary burst is bounded by 2N")
}

func TestRateGovernor_ResetCountsThisRequest(t *testing.T) {
	clock := newFakeClock(time.Unix(1000, 0))
	rg := NewRateGovernorWithClock(2, time.Minute, clock.Now)

	require.True(t, rg.Admit("A"))
	clock.Advance(2 * time.Minute)

	// The admit that resets the window is itself counted.
	require.True(t, rg.Admit("A"))
	require.True(t, rg.Admit("A"))
	assert.False(t, rg.Admit("A"))
}

func TestRateGovernor_ConcurrentAdmits(t *testing.T) {
	// 50 goroutines racing on one identity must admit exactly max requests.
	clock := newFakeClock(time.Unix(1000, 0))
	rg := NewRateGovernorWithClock(10, time.Minute, clock.Now)

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rg.Admit("concurrent") {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, admitted)
}

func TestRateGovernor_Middleware(t *testing.T) {
	clock := newFakeClock(time.Unix(1000, 0))
	rg := NewRateGovernorWithClock(1, time.Minute, clock.Now)

	app := fiber.New()
	app.Post("/report", rg.Middleware(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "ok"})
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/report", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodPost, "/report", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
