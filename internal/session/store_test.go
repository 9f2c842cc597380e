package session

import (
	"testing"
	"time"

	"github.com/demyanov-realty/review-bot/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutGet(t *testing.T) {
	store := NewStore(time.Minute)

	assert.Nil(t, store.Get(1))

	sess := &entity.Session{State: entity.StateGender}
	store.Put(1, sess)

	got := store.Get(1)
	require.NotNil(t, got)
	assert.Same(t, sess, got)

	assert.Nil(t, store.Get(2), "sessions are per user")
}

func TestStoreDelete(t *testing.T) {
	store := NewStore(time.Minute)

	store.Put(1, &entity.Session{State: entity.StateLikes})
	store.Delete(1)
	assert.Nil(t, store.Get(1))

	// Deleting an absent session is a no-op.
	store.Delete(1)
}

func TestStoreExpiry(t *testing.T) {
	store := NewStore(10 * time.Millisecond)

	store.Put(1, &entity.Session{State: entity.StateGender})
	time.Sleep(30 * time.Millisecond)

	assert.Nil(t, store.Get(1), "abandoned session expires")
}

func TestStorePutRefreshesTTL(t *testing.T) {
	store := NewStore(40 * time.Millisecond)

	sess := &entity.Session{State: entity.StateGender}
	store.Put(1, sess)

	for i := 0; i < 3; i++ {
		time.Sleep(20 * time.Millisecond)
		store.Put(1, sess)
	}

	require.NotNil(t, store.Get(1))
}
