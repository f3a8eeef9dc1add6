package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBracketKey(t *testing.T) {
	assert.Equal(t, "bracket:abc", BracketKey("abc"))
}

func TestNopNeverHits(t *testing.T) {
	var c Cache = Nop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v")))
	val, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, val)
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestNewRedisRejectsBadURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "not a url", time.Minute)
	assert.ErrorContains(t, err, "REDIS_URL")
}
