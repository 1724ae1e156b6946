package server

import (
	"fmt"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutGet(t *testing.T) {
	clock := quartz.NewMock(t)
	store := NewMatchStore(clock, time.Hour, 10)

	store.Put(&StoredMatch{ID: "m1", Strategy: "basic", CreatedAt: clock.Now()})

	m, ok := store.Get("m1")
	require.True(t, ok)
	assert.Equal(t, "basic", m.Strategy)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestStoreExpiresAfterTTL(t *testing.T) {
	clock := quartz.NewMock(t)
	store := NewMatchStore(clock, time.Hour, 10)

	store.Put(&StoredMatch{ID: "m1", CreatedAt: clock.Now()})

	clock.Advance(30 * time.Minute)
	_, ok := store.Get("m1")
	assert.True(t, ok, "entry within TTL must survive")

	clock.Advance(31 * time.Minute)
	_, ok = store.Get("m1")
	assert.False(t, ok, "entry past TTL must be gone")
	assert.Equal(t, 0, store.Len())
}

func TestStoreEvictsExpiredOnPut(t *testing.T) {
	clock := quartz.NewMock(t)
	store := NewMatchStore(clock, time.Minute, 10)

	store.Put(&StoredMatch{ID: "old", CreatedAt: clock.Now()})
	clock.Advance(2 * time.Minute)
	store.Put(&StoredMatch{ID: "new", CreatedAt: clock.Now()})

	assert.Equal(t, 1, store.Len(), "expired entries are swept on Put")
	_, ok := store.Get("new")
	assert.True(t, ok)
}

func TestStoreCapsEntriesOldestFirst(t *testing.T) {
	clock := quartz.NewMock(t)
	store := NewMatchStore(clock, time.Hour, 3)

	for i := 0; i < 5; i++ {
		store.Put(&StoredMatch{ID: fmt.Sprintf("m%d", i), CreatedAt: clock.Now()})
		clock.Advance(time.Second)
	}

	assert.Equal(t, 3, store.Len())
	for _, id := range []string{"m0", "m1"} {
		_, ok := store.Get(id)
		assert.False(t, ok, "%s should have been evicted", id)
	}
	for _, id := range []string{"m2", "m3", "m4"} {
		_, ok := store.Get(id)
		assert.True(t, ok, "%s should have survived", id)
	}
}
