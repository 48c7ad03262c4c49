package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateReturnsSameSession(t *testing.T) {
	store := NewStore(10, nil)

	s1 := store.GetOrCreate("u1")
	s2 := store.GetOrCreate("u1")
	assert.Same(t, s1, s2)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "u1", s1.UserID)
	assert.Equal(t, ActionIdle, s1.LastAction)
}

func TestNoEvictionUnderCapacity(t *testing.T) {
	store := NewStore(3, nil)

	store.GetOrCreate("u1")
	store.GetOrCreate("u2")
	assert.Equal(t, 2, store.Len())

	_, ok := store.Get("u1")
	assert.True(t, ok)
}

func TestEvictionAtCapacity(t *testing.T) {
	store := NewStore(3, nil)

	for i := 0; i < 3; i++ {
		store.GetOrCreate(fmt.Sprintf("u%d", i))
	}
	require.Equal(t, 3, store.Len())

	// Make u0 the least recently active
	u0, ok := store.Get("u0")
	require.True(t, ok)
	u0.LastActivity = time.Now().Add(-2 * time.Hour)

	store.GetOrCreate("new_user")

	assert.Equal(t, 3, store.Len(), "size stays at capacity")
	_, ok = store.Get("u0")
	assert.False(t, ok, "least recently active session is evicted")
	_, ok = store.Get("new_user")
	assert.True(t, ok)
}

func TestExistingSessionDoesNotEvict(t *testing.T) {
	store := NewStore(2, nil)

	store.GetOrCreate("u1")
	store.GetOrCreate("u2")

	// Looking up a present key at capacity must not evict anything
	store.GetOrCreate("u1")
	assert.Equal(t, 2, store.Len())
	_, ok := store.Get("u2")
	assert.True(t, ok)
}

func TestClearIsSpeculative(t *testing.T) {
	store := NewStore(10, nil)

	// Unknown user is not an error
	store.Clear("ghost")

	sess := store.GetOrCreate("u1")
	sess.StartNewContact("Jane Doe", nil)
	store.Clear("u1")

	got, ok := store.Get("u1")
	require.True(t, ok, "clear resets the session, it does not remove it")
	assert.Nil(t, got.Draft)
	assert.Equal(t, ActionCleared, got.LastAction)
}

func TestUsersSorted(t *testing.T) {
	store := NewStore(10, nil)
	store.GetOrCreate("charlie")
	store.GetOrCreate("alice")
	store.GetOrCreate("bob")

	assert.Equal(t, []string{"alice", "bob", "charlie"}, store.Users())
}

func TestConcurrentGetOrCreate(t *testing.T) {
	store := NewStore(100, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.GetOrCreate("shared")
			store.GetOrCreate(fmt.Sprintf("u%d", n%10))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 11, store.Len())
}

func TestConcurrentCreateAtCapacity(t *testing.T) {
	store := NewStore(5, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.GetOrCreate(fmt.Sprintf("u%d", n))
		}(i)
	}
	wg.Wait()

	// Racing creates must never push the store past its bound
	assert.Equal(t, 5, store.Len())
}

func TestZeroCapacityFallsBackToDefault(t *testing.T) {
	store := NewStore(0, nil)
	store.GetOrCreate("u1")
	assert.Equal(t, 1, store.Len())
}
