package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitBriefly waits with a deadline too short for a new token to arrive.
func waitBriefly(limiter *Limiter) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	return limiter.Wait(ctx)
}

func TestNew_BurstEqualsRate(t *testing.T) {
	limiter := New("wikipedia", 3)

	for i := 0; i < 3; i++ {
		require.NoError(t, waitBriefly(limiter), "call %d should fit in the burst", i)
	}
	assert.Error(t, waitBriefly(limiter))
}

func TestNew_NonPositiveRateIsUnlimited(t *testing.T) {
	limiter := New("unlimited", 0)

	for i := 0; i < 100; i++ {
		require.NoError(t, waitBriefly(limiter))
	}
}

func TestWait_CancelledContext(t *testing.T) {
	limiter := NewWithBurst("wikipedia", 1, 1)
	require.NoError(t, waitBriefly(limiter))

	err := waitBriefly(limiter)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait for wikipedia")
}

func TestWait_Paces(t *testing.T) {
	limiter := NewWithBurst("fast", 50, 1)

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Wait(context.Background()))
	}
	// Two waits at 50/s take at least ~40ms.
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}
