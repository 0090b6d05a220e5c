package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

func TestMemoryCache_RoundTripAndDelete(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, DiscountCodeKey("SAVE10"), item{Code: "SAVE10", Count: 3}, time.Minute))

	var got item
	found, err := c.Get(ctx, "discount:code:SAVE10", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, item{Code: "SAVE10", Count: 3}, got)

	require.NoError(t, c.Delete(ctx, DiscountCodeKey("SAVE10")))
	found, err = c.Get(ctx, DiscountCodeKey("SAVE10"), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	clock := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	require.NoError(t, c.Set(ctx, "k", item{Code: "A"}, time.Minute))

	var got item
	found, _ := c.Get(ctx, "k", &got)
	assert.True(t, found)

	clock = clock.Add(time.Minute)
	found, _ = c.Get(ctx, "k", &got)
	assert.False(t, found)
}
