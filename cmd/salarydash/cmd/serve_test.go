package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salarydash/internal/api"
	"salarydash/internal/config"
	"salarydash/internal/engine"
	"salarydash/internal/logger"
)

func TestServeCommandStructure(t *testing.T) {
	assert.Equal(t, "serve", serveCmd.Use)
	assert.NotEmpty(t, serveCmd.Short)
	assert.NotEmpty(t, serveCmd.Long)
	assert.NotNil(t, serveCmd.RunE)

	f := serveCmd.Flags().Lookup("port")
	require.NotNil(t, f)
	assert.Equal(t, "p", f.Shorthand)
	assert.Equal(t, "0", f.DefValue)
}

func TestLoadDatasetPublishesStore(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Data.Source = "testdata/salaries.csv"
	h := api.NewHandler(cfg.Dashboard, logger.NewNop())

	require.False(t, h.Ready())
	require.NoError(t, loadDataset(context.Background(), cfg, logger.NewNop(), h))
	assert.True(t, h.Ready())
}

func TestLoadDatasetFailure(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Data.Source = "testdata/missing.csv"
	h := api.NewHandler(cfg.Dashboard, logger.NewNop())

	err := loadDataset(context.Background(), cfg, logger.NewNop(), h)
	var re *engine.RetrievalError
	require.True(t, errors.As(err, &re), "Expected RetrievalError, got %v", err)
	assert.False(t, h.Ready())
}

func TestRetrieveCountsSkippedRows(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Data.Source = "testdata/salaries.csv"
	cfg.Data.Timeout = 0

	cs, err := retrieve(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 4, cs.Len())
	assert.Equal(t, 1, cs.Skipped)
}
