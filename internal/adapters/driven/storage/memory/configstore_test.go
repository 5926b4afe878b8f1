package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("store.driver", "sqlite"))

	val, ok := store.Get("store.driver")
	assert.True(t, ok)
	assert.Equal(t, "sqlite", val)
	assert.Equal(t, "sqlite", store.GetString("store.driver"))
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store := NewConfigStore()

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_GetString_WrongType(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("ingest.min_score", 2))
	assert.Equal(t, "", store.GetString("ingest.min_score"))
}

func TestConfigStore_GetInt64(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("a", 5))
	require.NoError(t, store.Set("b", int64(7)))
	require.NoError(t, store.Set("c", "nine"))

	v, ok := store.GetInt64("a")
	assert.True(t, ok)
	assert.Equal(t, int64(5), v)

	v, ok = store.GetInt64("b")
	assert.True(t, ok)
	assert.Equal(t, int64(7), v)

	_, ok = store.GetInt64("c")
	assert.False(t, ok)

	_, ok = store.GetInt64("missing")
	assert.False(t, ok)
}

func TestConfigStore_SaveLoadPath(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("ingest.batch_size", n)
			store.GetInt64("ingest.batch_size")
		}(i)
	}
	wg.Wait()

	_, ok := store.GetInt64("ingest.batch_size")
	assert.True(t, ok)
}
