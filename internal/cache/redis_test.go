package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs only when FPLTICKER_TEST_REDIS_URL points at a disposable server.
func TestRedis_GetSet(t *testing.T) {
	url := os.Getenv("FPLTICKER_TEST_REDIS_URL")
	if url == "" {
		t.Skip("FPLTICKER_TEST_REDIS_URL not set")
	}
	ctx := context.Background()

	r, err := NewRedis(ctx, url, "fplticker:test:")
	require.NoError(t, err)
	defer r.Close()

	_, ok, err := r.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Set(ctx, "k", []byte("v"), time.Minute))
	b, ok, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(b))
}

func TestNewRedis_BadURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "not-a-url", "")
	assert.Error(t, err)
}
