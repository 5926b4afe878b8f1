package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/INASIC/Chatbot/internal/core/domain"
)

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest <dump>...", ingestCmd.Use)
}

func TestIngestCmd_Long(t *testing.T) {
	assert.Contains(t, ingestCmd.Long, "--skip")
	assert.Contains(t, ingestCmd.Long, "standard input")
}

func TestIngestCmd_RequiresPath(t *testing.T) {
	setupCLITest(t)
	ingester = &mockIngester{run: testRun(domain.RunStatusCompleted)}

	err := execute("ingest")

	assert.Error(t, err)
}

func TestIngestCmd_NotConfigured(t *testing.T) {
	setupCLITest(t)

	err := execute("ingest", "RC_2015-01.zst")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingest service not configured")
}

func TestIngestCmd_Success(t *testing.T) {
	buf := setupCLITest(t)
	mock := &mockIngester{run: testRun(domain.RunStatusCompleted)}
	ingester = mock

	err := execute("ingest", "RC_2015-01.zst", "RC_2015-02.zst")

	require.NoError(t, err)
	assert.Equal(t, []string{"RC_2015-01.zst", "RC_2015-02.zst"}, mock.paths)
	assert.Equal(t, int64(0), mock.opts.Skip)

	out := buf.String()
	assert.Contains(t, out, "Ingesting 2 dump(s)...")
	assert.Contains(t, out, "2015-01-02 03:04:05 read 200000 records, paired 1200, stored 5300 (RC_2015-01.zst)")
	assert.Contains(t, out, "completed in 1m30s")
	assert.Contains(t, out, "Replaced:        300")
	assert.NotContains(t, out, "Failed writes")
}

func TestIngestCmd_Skip(t *testing.T) {
	setupCLITest(t)
	mock := &mockIngester{run: testRun(domain.RunStatusCompleted)}
	ingester = mock

	err := execute("ingest", "--skip", "1500000", "-")

	require.NoError(t, err)
	assert.Equal(t, int64(1500000), mock.opts.Skip)
	assert.Equal(t, []string{"-"}, mock.paths)
}

func TestIngestCmd_NegativeSkip(t *testing.T) {
	setupCLITest(t)
	ingester = &mockIngester{run: testRun(domain.RunStatusCompleted)}

	err := execute("ingest", "--skip", "-1", "RC_2015-01.zst")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngestCmd_ReportsFailures(t *testing.T) {
	buf := setupCLITest(t)
	run := testRun(domain.RunStatusCompleted)
	run.Counters.FailedWrites = 4
	run.Counters.LookupFailures = 2
	ingester = &mockIngester{run: run}

	err := execute("ingest", "RC_2015-01.zst")

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Failed writes:   4")
	assert.Contains(t, buf.String(), "Lookup failures: 2")
}

func TestIngestCmd_Error(t *testing.T) {
	buf := setupCLITest(t)
	run := testRun(domain.RunStatusFailed)
	ingester = &mockIngester{run: run, err: domain.ErrNotFound}

	err := execute("ingest", "missing.zst")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "ingest failed")
	assert.Contains(t, buf.String(), "failed in")
}

func TestIngestCmd_Cancelled(t *testing.T) {
	setupCLITest(t)
	ingester = &mockIngester{
		run: testRun(domain.RunStatusCancelled),
		err: context.Canceled,
	}

	err := execute("ingest", "RC_2015-01.zst")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pending writes were flushed")
}

func TestIngestCmd_NoRunOnError(t *testing.T) {
	setupCLITest(t)
	ingester = &mockIngester{err: errors.New("boom")}

	err := execute("ingest", "RC_2015-01.zst")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
