package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequestScopedValues(t *testing.T) {
	t.Run("missing request id is empty", func(t *testing.T) {
		assert.Empty(t, RequestID(context.Background()))
	})

	t.Run("request id round-trips", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-42")
		assert.Equal(t, "req-42", RequestID(ctx))
	})

	t.Run("injected time wins over the wall clock", func(t *testing.T) {
		fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		ctx := WithTime(context.Background(), fixed)
		assert.Equal(t, fixed, Now(ctx))
	})

	t.Run("falls back to wall clock", func(t *testing.T) {
		before := time.Now()
		got := Now(context.Background())
		assert.False(t, got.Before(before))
	})
}
