package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/serroba/shortlink/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Cosmos(t *testing.T) {
	t.Run("reads every variable", func(t *testing.T) {
		t.Setenv("COSMOS_URI", "https://acct.documents.azure.com:443/")
		t.Setenv("COSMOS_KEY", "c2VjcmV0")
		t.Setenv("COSMOS_DATABASE", "shortlink")
		t.Setenv("COSMOS_CONTAINER", "links")

		cfg, err := config.Load[config.Cosmos]()

		require.NoError(t, err)
		assert.Equal(t, "https://acct.documents.azure.com:443/", cfg.URI)
		assert.Equal(t, "c2VjcmV0", cfg.Key)
		assert.Equal(t, "shortlink", cfg.Database)
		assert.Equal(t, "links", cfg.Container)
	})

	t.Run("names missing variables", func(t *testing.T) {
		t.Setenv("COSMOS_URI", "https://acct.documents.azure.com:443/")
		t.Setenv("COSMOS_KEY", "c2VjcmV0")
		t.Setenv("COSMOS_DATABASE", "")
		t.Setenv("COSMOS_CONTAINER", "")
		require.NoError(t, os.Unsetenv("COSMOS_DATABASE"))
		require.NoError(t, os.Unsetenv("COSMOS_CONTAINER"))

		_, err := config.Load[config.Cosmos]()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "COSMOS_DATABASE")
		assert.Contains(t, err.Error(), "COSMOS_CONTAINER")
	})
}

func TestLoad_Postgres(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	require.NoError(t, os.Unsetenv("DATABASE_URL"))

	_, err := config.Load[config.Postgres]()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_ConsumerDefaults(t *testing.T) {
	t.Setenv("CONSUMER_GROUP", "reporting")

	cfg, err := config.Load[config.Consumer]()

	require.NoError(t, err)
	assert.Equal(t, "reporting", cfg.Group)
	assert.NotEmpty(t, cfg.RedisAddr)
	assert.NotEmpty(t, cfg.LogFormat)
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("loads variables without overriding", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("SHORTLINK_TEST_A=from-file\nSHORTLINK_TEST_B=from-file\n"), 0o600))

		t.Setenv("SHORTLINK_TEST_A", "from-env")
		t.Setenv("SHORTLINK_TEST_B", "")
		require.NoError(t, os.Unsetenv("SHORTLINK_TEST_B"))

		require.NoError(t, config.LoadDotEnv(path))

		assert.Equal(t, "from-env", os.Getenv("SHORTLINK_TEST_A"))
		assert.Equal(t, "from-file", os.Getenv("SHORTLINK_TEST_B"))
	})

	t.Run("ignores missing files", func(t *testing.T) {
		err := config.LoadDotEnv(filepath.Join(t.TempDir(), "absent.env"))

		assert.NoError(t, err)
	})
}
