package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/INASIC/Chatbot/internal/core/domain"
)

func TestRunStore_SaveGet(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()

	run := domain.IngestRun{
		ID:        "run-1",
		Sources:   []string{"RC_2015-01"},
		StartedAt: time.Now(),
		Status:    domain.RunStatusRunning,
	}
	require.NoError(t, store.Save(ctx, run))

	got, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusRunning, got.Status)
	assert.Equal(t, []string{"RC_2015-01"}, got.Sources)

	run.Status = domain.RunStatusCompleted
	run.Counters.Read = 10
	require.NoError(t, store.Save(ctx, run))

	got, err = store.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusCompleted, got.Status)
	assert.Equal(t, int64(10), got.Counters.Read)
}

func TestRunStore_Get_NotFound(t *testing.T) {
	store := NewRunStore()
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunStore_List_NewestFirst(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()
	base := time.Now()

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Save(ctx, domain.IngestRun{
			ID:        id,
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	runs, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
