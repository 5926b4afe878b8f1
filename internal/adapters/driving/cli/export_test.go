package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/INASIC/Chatbot/internal/core/domain"
	"github.com/INASIC/Chatbot/internal/core/ports/driven"
)

func setupExportTest(t *testing.T) (*mockExporter, *[]string, *mockCorpusWriter) {
	t.Helper()
	mock := &mockExporter{report: &domain.ExportReport{Pages: 3, TestRows: 2, TrainRows: 3}}
	exporter = mock

	dirs := []string{}
	w := &mockCorpusWriter{}
	newCorpusWriter = func(dir string) (driven.CorpusWriter, error) {
		dirs = append(dirs, dir)
		w.dir = dir
		if dir == "" {
			w.dir = "/home/user/.chatbot/corpus"
		}
		return w, nil
	}
	return mock, &dirs, w
}

func TestExportCmd_Use(t *testing.T) {
	assert.Equal(t, "export", exportCmd.Use)
}

func TestExportCmd_NotConfigured(t *testing.T) {
	setupCLITest(t)

	err := execute("export")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "export service not configured")
}

func TestExportCmd_DefaultDir(t *testing.T) {
	buf := setupCLITest(t)
	mock, dirs, w := setupExportTest(t)

	err := execute("export")

	require.NoError(t, err)
	assert.Equal(t, []string{""}, *dirs)
	assert.Equal(t, 0, mock.opts.PageSize)
	assert.True(t, w.closed)

	out := buf.String()
	assert.Contains(t, out, "Exporting to /home/user/.chatbot/corpus...")
	assert.Contains(t, out, "2015-01-02 03:04:05 exported 3 pages (2 test, 3 train)")
	assert.Contains(t, out, "Exported 5 pairs in 3 pages: 2 test, 3 train.")
}

func TestExportCmd_ConfiguredDir(t *testing.T) {
	setupCLITest(t)
	_, dirs, _ := setupExportTest(t)
	require.NoError(t, settingsService.Set("export.dir", "/srv/corpus"))

	err := execute("export")

	require.NoError(t, err)
	assert.Equal(t, []string{"/srv/corpus"}, *dirs)
}

func TestExportCmd_OutOverridesConfig(t *testing.T) {
	setupCLITest(t)
	mock, dirs, _ := setupExportTest(t)
	require.NoError(t, settingsService.Set("export.dir", "/srv/corpus"))

	err := execute("export", "--out", "./corpus", "--page-size", "2")

	require.NoError(t, err)
	assert.Equal(t, []string{"./corpus"}, *dirs)
	assert.Equal(t, 2, mock.opts.PageSize)
}

func TestExportCmd_NegativePageSize(t *testing.T) {
	setupCLITest(t)
	setupExportTest(t)

	err := execute("export", "--page-size", "-5")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExportCmd_WriterError(t *testing.T) {
	setupCLITest(t)
	setupExportTest(t)
	newCorpusWriter = func(string) (driven.CorpusWriter, error) {
		return nil, errors.New("permission denied")
	}

	err := execute("export")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening corpus")
}

func TestExportCmd_ExportError(t *testing.T) {
	setupCLITest(t)
	mock, _, w := setupExportTest(t)
	mock.err = errors.New("disk full")
	mock.report = nil

	err := execute("export")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "export failed: disk full")
	assert.True(t, w.closed)
}
