package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseCache(t *testing.T) {
	t.Run("empty cache misses", func(t *testing.T) {
		c := NewResponseCache(time.Minute)
		_, _, ok := c.Get()
		assert.False(t, ok)
	})

	t.Run("stores and returns the payload verbatim", func(t *testing.T) {
		c := NewResponseCache(time.Minute)
		c.Set([]byte(`{"posts":[]}`), "application/json")

		body, ct, ok := c.Get()
		require.True(t, ok)
		assert.Equal(t, []byte(`{"posts":[]}`), body)
		assert.Equal(t, "application/json", ct)
	})

	t.Run("expires after the window", func(t *testing.T) {
		c := NewResponseCache(20 * time.Millisecond)
		c.Set([]byte("old"), "text/plain")

		_, _, ok := c.Get()
		require.True(t, ok)

		time.Sleep(30 * time.Millisecond)
		_, _, ok = c.Get()
		assert.False(t, ok, "entry must be gone after expiry")
	})

	t.Run("newer payload replaces older within the window", func(t *testing.T) {
		c := NewResponseCache(time.Minute)
		c.Set([]byte("first"), "text/plain")
		c.Set([]byte("second"), "text/plain")

		body, _, ok := c.Get()
		require.True(t, ok)
		assert.Equal(t, []byte("second"), body)
	})

	t.Run("concurrent population is benign", func(t *testing.T) {
		c := NewResponseCache(time.Minute)
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.Set([]byte("same"), "text/plain")
				c.Get()
			}()
		}
		wg.Wait()

		body, _, ok := c.Get()
		require.True(t, ok)
		assert.Equal(t, []byte("same"), body)
	})
}
