package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/gantt/internal/domain"
	"github.com/runoshun/gantt/internal/infra/httpapi"
	"github.com/runoshun/gantt/internal/infra/jsonstore"
	"github.com/runoshun/gantt/internal/testutil"
)

func TestNewDataSource(t *testing.T) {
	dir := t.TempDir()

	t.Run("http", func(t *testing.T) {
		src, err := NewDataSource(domain.NewDefaultConfig(), dir)
		require.NoError(t, err)
		assert.IsType(t, &httpapi.Client{}, src)
	})

	t.Run("file resolves against the work dir", func(t *testing.T) {
		cfg := domain.NewDefaultConfig()
		cfg.Source.Kind = domain.SourceFile
		src, err := NewDataSource(cfg, dir)
		require.NoError(t, err)
		require.IsType(t, &jsonstore.Store{}, src)

		store := jsonstore.New(filepath.Join(dir, domain.DefaultRecordsFile))
		require.NoError(t, store.Initialize())
		rows, err := src.List(context.Background(), domain.ModeTasks)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("sheets without credentials", func(t *testing.T) {
		cfg := domain.NewDefaultConfig()
		cfg.Source.Kind = domain.SourceSheets
		_, err := NewDataSource(cfg, dir)
		assert.ErrorIs(t, err, domain.ErrSourceNotReady)
	})

	t.Run("sheets with unreadable credentials", func(t *testing.T) {
		cfg := domain.NewDefaultConfig()
		cfg.Source.Kind = domain.SourceSheets
		cfg.Source.SpreadsheetID = "sheet-id"
		cfg.Source.CredentialsFile = "missing.json"
		_, err := NewDataSource(cfg, dir)
		assert.ErrorIs(t, err, domain.ErrSourceNotReady)
	})

	t.Run("unknown kind", func(t *testing.T) {
		cfg := domain.NewDefaultConfig()
		cfg.Source.Kind = "ftp"
		_, err := NewDataSource(cfg, dir)
		assert.ErrorIs(t, err, domain.ErrUnknownSourceKind)
	})
}

func TestLazySource(t *testing.T) {
	builds := 0
	mock := testutil.NewMockDataSource()
	lazy := newLazySource(func() (domain.DataSource, error) {
		builds++
		return mock, nil
	})
	assert.Equal(t, 0, builds)

	_, err := lazy.List(context.Background(), domain.ModeTasks)
	require.NoError(t, err)
	require.NoError(t, lazy.Update(context.Background(), "T1", domain.ModeTasks, "a", "b"))

	assert.Equal(t, 1, builds)
	assert.Equal(t, 1, mock.ListCallCount())
	assert.Len(t, mock.Updates, 1)
}

func TestLazySource_BuildError(t *testing.T) {
	lazy := newLazySource(func() (domain.DataSource, error) {
		return nil, domain.ErrSourceNotReady
	})

	_, err := lazy.List(context.Background(), domain.ModeProjects)
	assert.ErrorIs(t, err, domain.ErrSourceNotReady)
	assert.ErrorIs(t, lazy.Update(context.Background(), "P1", domain.ModeProjects, "a", "b"), domain.ErrSourceNotReady)
}
