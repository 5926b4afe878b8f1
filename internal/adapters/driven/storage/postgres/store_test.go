package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/INASIC/Chatbot/internal/core/domain"
)

// setupTestStore connects to the database named by CHATBOT_TEST_POSTGRES_DSN
// and empties its tables. Tests are skipped when the variable is unset.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("CHATBOT_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("CHATBOT_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	store, err := NewStore(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.pool.Exec(ctx, `TRUNCATE pairs, ingest_runs`)
	require.NoError(t, err)
	return store
}

func TestNewStore_RequiresDSN(t *testing.T) {
	_, err := NewStore(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewStore_BadDSN(t *testing.T) {
	_, err := NewStore(context.Background(), "postgres://%zz")
	assert.Error(t, err)
}

func TestPairStore_ApplySkipsFailingStatements(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	pairs := store.PairStore()

	res, err := pairs.Apply(ctx, []domain.PairWrite{
		{Kind: domain.WriteInsertWithoutParent, Pair: domain.Pair{ParentID: "t1_a", ReplyID: "t1_b", ReplyBody: "first", Score: 5}},
		{Kind: domain.WriteInsertWithoutParent, Pair: domain.Pair{ParentID: "t1_a", ReplyID: "t1_x", ReplyBody: "dup", Score: 9}},
		{Kind: domain.WriteInsertWithParent, Pair: domain.Pair{ParentID: "t1_b", ReplyID: "t1_c", ParentBody: "first", HasParent: true, ReplyBody: "second", Score: 3}},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, res.Applied)
	assert.Equal(t, 1, res.Failed)

	got, err := pairs.Get(ctx, "t1_b")
	require.NoError(t, err)
	assert.True(t, got.HasParent)
	assert.Equal(t, "first", got.ParentBody)
}

func TestPairStore_ReplaceAndLookups(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	pairs := store.PairStore()

	_, err := pairs.Apply(ctx, []domain.PairWrite{
		{Kind: domain.WriteInsertWithParent, Pair: domain.Pair{ParentID: "t1_a", ReplyID: "t1_c", ParentBody: "q", HasParent: true, ReplyBody: "hi", Score: 3}},
		{Kind: domain.WriteReplace, Pair: domain.Pair{ParentID: "t1_a", ReplyID: "t1_b", ReplyBody: "hello", Score: 5}, PreviousReplyID: "t1_c"},
	})
	require.NoError(t, err)

	existing := pairs.ExistingReply(ctx, "t1_a")
	assert.Equal(t, domain.LookupFound, existing.Status)
	assert.Equal(t, "t1_b", existing.ReplyID)
	assert.Equal(t, int64(5), existing.Score)

	assert.Equal(t, domain.LookupNotFound, pairs.ReplyBody(ctx, "t1_c").Status)
	assert.Equal(t, "hello", pairs.ReplyBody(ctx, "t1_b").Body)

	got, err := pairs.Get(ctx, "t1_a")
	require.NoError(t, err)
	assert.Equal(t, "q", got.ParentBody)
}

func TestPairStore_ExportPageAndStats(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	pairs := store.PairStore()

	var writes []domain.PairWrite
	for i := range 5 {
		writes = append(writes, domain.PairWrite{
			Kind: domain.WriteInsertWithParent,
			Pair: domain.Pair{
				ParentID: fmt.Sprintf("t1_p%d", i), ReplyID: fmt.Sprintf("t1_r%d", i),
				ParentBody: "q", HasParent: true, ReplyBody: "a",
				CreatedUTC: int64(10 + i/3), Score: 2,
			},
		})
	}
	writes = append(writes, domain.PairWrite{
		Kind: domain.WriteInsertWithoutParent,
		Pair: domain.Pair{ParentID: "t3_root", ReplyID: "t1_p0x", ReplyBody: "top", Score: 9},
	})
	_, err := pairs.Apply(ctx, writes)
	require.NoError(t, err)

	var cursor domain.ExportCursor
	var seen []string
	for {
		page, err := pairs.ExportPage(ctx, cursor, 2)
		require.NoError(t, err)
		for _, p := range page {
			seen = append(seen, p.ParentID)
		}
		if len(page) < 2 {
			break
		}
		cursor = cursor.After(page[len(page)-1])
	}
	assert.Equal(t, []string{"t1_p0", "t1_p1", "t1_p2", "t1_p3", "t1_p4"}, seen)

	stats, err := pairs.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PairStats{Total: 6, Paired: 5, Exportable: 5}, stats)

	n, err := pairs.PruneUnpaired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRunStore_SaveGetList(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	runs := store.RunStore()

	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	run := domain.IngestRun{
		ID:        "run-1",
		Sources:   []string{"RC_2015-01.bz2"},
		StartedAt: started,
		Status:    domain.RunStatusRunning,
	}
	require.NoError(t, runs.Save(ctx, run))

	run.FinishedAt = started.Add(time.Minute)
	run.Status = domain.RunStatusCompleted
	run.Counters = domain.IngestCounters{Read: 4, Paired: 1}
	require.NoError(t, runs.Save(ctx, run))

	got, err := runs.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusCompleted, got.Status)
	assert.Equal(t, run.Counters, got.Counters)
	assert.True(t, run.FinishedAt.Equal(got.FinishedAt))

	_, err = runs.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := runs.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"RC_2015-01.bz2"}, list[0].Sources)
}
