package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/practice-backend/internal/platform/logger"
)

type memCache struct {
	data    map[string][]byte
	getErr  error
	setHits int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string, dst any) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m *memCache) Set(_ context.Context, key string, val any, _ time.Duration) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	m.setHits++
	m.data[key] = raw
	return nil
}

func (m *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

type payload struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

func TestGetOrLoadCachesResult(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	calls := 0
	load := func(context.Context) (payload, error) {
		calls++
		return payload{Title: "algebra", Count: 3}, nil
	}

	first, err := GetOrLoad(ctx, c, logger.Nop(), "k", time.Minute, load)
	require.NoError(t, err)
	second, err := GetOrLoad(ctx, c, logger.Nop(), "k", time.Minute, load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, c.setHits)
}

func TestGetOrLoadFallsThroughOnCacheError(t *testing.T) {
	c := newMemCache()
	c.getErr = errors.New("connection refused")
	calls := 0
	out, err := GetOrLoad(context.Background(), c, logger.Nop(), "k", time.Minute, func(context.Context) (payload, error) {
		calls++
		return payload{Count: 1}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Count)
	assert.Equal(t, 1, calls)
}

func TestGetOrLoadDoesNotCacheErrors(t *testing.T) {
	c := newMemCache()
	_, err := GetOrLoad(context.Background(), c, logger.Nop(), "k", time.Minute, func(context.Context) (payload, error) {
		return payload{}, errors.New("db down")
	})
	require.Error(t, err)
	assert.Empty(t, c.data)
}

func TestNoopAlwaysMisses(t *testing.T) {
	c := Noop()
	require.NoError(t, c.Set(context.Background(), "k", payload{Count: 1}, time.Minute))
	var dst payload
	hit, err := c.Get(context.Background(), "k", &dst)
	require.NoError(t, err)
	assert.False(t, hit)
}
