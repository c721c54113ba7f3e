package repository

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sylo/internal/config"
)

func TestOpen(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		s, err := Open(ctx, &config.Config{StoreDriver: config.StoreDriverMemory}, logger)
		require.NoError(t, err)
		defer s.Close()
		assert.NotNil(t, s.Projects)
		assert.NotNil(t, s.Prompts)
		assert.NotNil(t, s.Tx)
		assert.Nil(t, s.Pool)
	})

	t.Run("postgres without url", func(t *testing.T) {
		_, err := Open(ctx, &config.Config{StoreDriver: config.StoreDriverPostgres}, logger)
		assert.ErrorContains(t, err, "SUPABASE_DB_URL")
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := Open(ctx, &config.Config{StoreDriver: "mongo"}, logger)
		assert.Error(t, err)
	})
}
