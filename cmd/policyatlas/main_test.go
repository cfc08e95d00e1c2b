package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newLogLevelContext(t *testing.T, level string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("log-level", "info", "")
	require.NoError(t, set.Set("log-level", level))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestSetupLogger(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "Info"} {
			err := setupLogger(newLogLevelContext(t, level))
			assert.NoError(t, err, "level %q should be accepted", level)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		err := setupLogger(newLogLevelContext(t, "verbose"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestLoadFileConfig(t *testing.T) {
	t.Run("empty path gives empty config", func(t *testing.T) {
		config, err := loadFileConfig("")
		require.NoError(t, err)
		assert.Empty(t, config.DB)
	})

	t.Run("missing explicit file fails", func(t *testing.T) {
		_, err := loadFileConfig(filepath.Join(t.TempDir(), "missing.toml"))
		assert.Error(t, err)
	})

	t.Run("toml values parsed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `db = "/var/lib/policyatlas"

[ai]
embedding_host = "http://embed.internal:11434"
embedding_model = "nomic-embed-text:latest"
generation_model = "mistral:7b-instruct-q4_K_M"
embed_requests_per_second = 4.0
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		config, err := loadFileConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "/var/lib/policyatlas", config.DB)
		assert.Equal(t, "http://embed.internal:11434", config.AI.EmbeddingHost)

		aiConfig, err := config.aiConfig()
		require.NoError(t, err)
		assert.Equal(t, "http://embed.internal:11434", aiConfig.EmbeddingHost)
		assert.Equal(t, "nomic-embed-text:latest", aiConfig.EmbeddingModel)
		assert.InDelta(t, 4.0, aiConfig.EmbedRequestsPerSecond, 1e-9)
	})

	t.Run("defaults survive partial config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(`db = "/tmp/atlas"`), 0644))

		config, err := loadFileConfig(path)
		require.NoError(t, err)

		aiConfig, err := config.aiConfig()
		require.NoError(t, err)
		assert.NotEmpty(t, aiConfig.EmbeddingModel)
		assert.NotEmpty(t, aiConfig.GenerationHost)
	})
}
