package scheduler

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchRegistryTakeConsumes(t *testing.T) {
	registry := NewBatchRegistry(time.Hour)
	handle := uuid.New()

	registry.Put(handle, []int64{1, 2, 3})

	ids, ok := registry.Take(handle)
	require.True(t, ok)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	// a second take must be a clean no-op: revoking twice never errors
	ids, ok = registry.Take(handle)
	assert.False(t, ok)
	assert.Nil(t, ids)
}

func TestBatchRegistryUnknownHandle(t *testing.T) {
	registry := NewBatchRegistry(time.Hour)

	_, ok := registry.Take(uuid.New())
	assert.False(t, ok)
}

func TestBatchRegistryExpiry(t *testing.T) {
	registry := NewBatchRegistry(-time.Second) // everything is born expired
	handle := uuid.New()

	registry.Put(handle, []int64{1})

	_, ok := registry.Take(handle)
	assert.False(t, ok)
}

func TestBatchRegistrySeparateHandles(t *testing.T) {
	registry := NewBatchRegistry(time.Hour)
	first := uuid.New()
	second := uuid.New()

	registry.Put(first, []int64{1})
	registry.Put(second, []int64{2})

	ids, ok := registry.Take(first)
	require.True(t, ok)
	assert.Equal(t, []int64{1}, ids)

	// consuming one batch must not touch another run's batch
	ids, ok = registry.Take(second)
	require.True(t, ok)
	assert.Equal(t, []int64{2}, ids)
}
