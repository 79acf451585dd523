package genai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBackoff(t *testing.T) {
	t.Parallel()

	initial := 500 * time.Millisecond
	max := 3 * time.Second

	assert.Equal(t, time.Duration(0), CalculateBackoff(0, initial, max))

	// Full jitter: random in [0, min(max, initial*2^(attempt-1)))
	for attempt := 1; attempt <= 5; attempt++ {
		cap := time.Duration(float64(initial) * float64(int(1)<<(attempt-1)))
		if cap > max {
			cap = max
		}
		for i := 0; i < 20; i++ {
			d := CalculateBackoff(attempt, initial, max)
			assert.GreaterOrEqual(t, d, time.Duration(0))
			assert.Less(t, d, cap+time.Millisecond)
		}
	}
}

func TestHasSufficientBudget(t *testing.T) {
	t.Parallel()

	assert.True(t, HasSufficientBudget(context.Background(), time.Hour),
		"no deadline means unlimited budget")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	assert.True(t, HasSufficientBudget(ctx, time.Second))
	assert.False(t, HasSufficientBudget(ctx, 30*time.Second))
}
