//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomen/internal/person/cache"
	"pomen/internal/person/models"
	id "pomen/pkg/domain"
	"pomen/pkg/testutil/containers"
)

func TestRecentCacheRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	rc := containers.NewRedisContainer(t)
	c := cache.New(rc.Client, time.Minute, nil)

	_, ok := c.Get(ctx)
	assert.False(t, ok, "empty cache must miss")

	dod := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	p, err := models.NewDeceasedPerson(id.NewPersonID(), "Milica", "Petrović", dod, time.Now().UTC())
	require.NoError(t, err)
	p.TributeCount = 3

	c.Set(ctx, []*models.DeceasedPerson{p})

	listed, ok := c.Get(ctx)
	require.True(t, ok, "cache must hit after Set")
	require.Len(t, listed, 1)
	assert.Equal(t, p.ID, listed[0].ID)
	assert.Equal(t, 3, listed[0].TributeCount)

	c.Invalidate(ctx)
	_, ok = c.Get(ctx)
	assert.False(t, ok, "cache must miss after invalidation")
}

func TestRecentCacheNilSafety(t *testing.T) {
	ctx := context.Background()
	var c *cache.RecentCache

	c.Set(ctx, nil)
	c.Invalidate(ctx)
	_, ok := c.Get(ctx)
	assert.False(t, ok)
}
