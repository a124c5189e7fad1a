package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.json")
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestParse_Defaults(t *testing.T) {
	opts, err := Parse([]string{"-c", noConfig(t)})
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", opts.Address)
	assert.Equal(t, StoreFile, opts.Store)
	assert.Equal(t, "data", opts.StorageURL)
	assert.Equal(t, "accounts", opts.Key)
	assert.Equal(t, "info", opts.LogLevel)
	assert.Equal(t, 0, opts.RedisDB)
}

func TestParse_Flags(t *testing.T) {
	opts, err := Parse([]string{
		"-c", noConfig(t),
		"-a", ":9090",
		"--store", "redis",
		"--redis-db", "3",
		"-k", "team",
	})
	require.NoError(t, err)

	assert.Equal(t, ":9090", opts.Address)
	assert.Equal(t, StoreRedis, opts.Store)
	assert.Equal(t, 3, opts.RedisDB)
	assert.Equal(t, "team", opts.Key)
}

func TestParse_UnknownStoreFlag(t *testing.T) {
	_, err := Parse([]string{"-c", noConfig(t), "--store", "floppy"})
	assert.Error(t, err)
}

func TestParse_Precedence(t *testing.T) {
	path := writeConfig(t, `{"address":"file:1","store":"postgres","database_dsn":"from-file","key":"file-key","log_level":"debug"}`)
	t.Setenv("SERVER_ADDRESS", "env:2")
	t.Setenv("ACCOUNTS_KEY", "env-key")

	opts, err := Parse([]string{"-c", path, "-k", "flag-key"})
	require.NoError(t, err)

	assert.Equal(t, "env:2", opts.Address, "env beats file")
	assert.Equal(t, "flag-key", opts.Key, "flag beats env")
	assert.Equal(t, StorePostgres, opts.Store, "file beats default")
	assert.Equal(t, "from-file", opts.DatabaseDSN)
	assert.Equal(t, "debug", opts.LogLevel)
}

func TestParse_ConfigFromEnv(t *testing.T) {
	path := writeConfig(t, `{"store":"memory"}`)
	t.Setenv("CONFIG", path)

	opts, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, opts.Store)
}

func TestParse_BadConfigFile(t *testing.T) {
	_, err := Parse([]string{"-c", writeConfig(t, `{broken`)})
	assert.ErrorContains(t, err, "parsing config file")
}

func TestParse_UnknownStoreInFile(t *testing.T) {
	_, err := Parse([]string{"-c", writeConfig(t, `{"store":"floppy"}`)})
	assert.ErrorContains(t, err, "unknown store")
}

func TestParse_FlagBeatsFileWithoutEnv(t *testing.T) {
	path := writeConfig(t, `{"store":"memory","storage_url":"s3://bucket","redis_db":5}`)

	opts, err := Parse([]string{"-c", path, "--store", "redis", "--redis-db", "2"})
	require.NoError(t, err)

	assert.Equal(t, StoreRedis, opts.Store)
	assert.Equal(t, 2, opts.RedisDB)
	assert.Equal(t, "s3://bucket", opts.StorageURL)
}
