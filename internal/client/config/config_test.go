package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/roster/internal/envx"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"testbin"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, BackendLocal, c.Backend)
	assert.Equal(t, "roster.db", c.DatabasePath)
	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 10*time.Second, c.CallTimeout)
	assert.False(t, c.S3.Enabled())
	require.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsWithoutSources(t *testing.T) {
	withArgs(t)
	t.Chdir(t.TempDir())

	cfg := LoadConfig()
	require.NotNil(t, cfg)
	if diff := cmp.Diff(defaults(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyEnv(t *testing.T) {
	src := envx.FromMap(map[string]string{
		"ROSTER_BACKEND":               "remote",
		"ROSTER_SERVER_ADDR":           "roster.internal:7000",
		"ROSTER_ONLINE_CHECK_INTERVAL": "5s",
		"ROSTER_S3_BUCKET":             "rosters",
		"ROSTER_TIMEZONE":              "UTC",
	})

	c := defaults()
	require.NoError(t, applyEnv(c, src))

	assert.Equal(t, BackendRemote, c.Backend)
	assert.Equal(t, "roster.internal:7000", c.ServerEndpointAddr)
	assert.Equal(t, 5*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, "rosters", c.S3.Bucket)
	assert.Equal(t, "us-east-1", c.S3.Region, "untouched fields keep defaults")
	assert.Equal(t, "UTC", c.Timezone)
}

func TestApplyEnv_BadDuration(t *testing.T) {
	c := defaults()
	err := applyEnv(c, envx.FromMap(map[string]string{"ROSTER_CALL_TIMEOUT": "forever"}))
	require.ErrorContains(t, err, "ROSTER_CALL_TIMEOUT")
}

func TestParseEnv_DotenvFileFromFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.env")
	require.NoError(t, os.WriteFile(path, []byte("ROSTER_DB_PATH=/data/roster.db\n"), 0o600))
	withArgs(t, "-env", path)

	c := defaults()
	parseEnv(c)
	assert.Equal(t, "/data/roster.db", c.DatabasePath)
}

func TestParseEnv_MissingNamedFilePanics(t *testing.T) {
	withArgs(t, "-env", filepath.Join(t.TempDir(), "missing.env"))
	assert.Panics(t, func() { parseEnv(defaults()) })
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestParseJson(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"backend":               "remote",
		"server_endpoint_addr":  "www.example:9000",
		"online_check_interval": "10s",
		"s3":                    map[string]any{"bucket": "b", "endpoint": "http://minio:9000"},
	})

	t.Run("loads from -config", func(t *testing.T) {
		withArgs(t, "-config", path)
		c := defaults()
		parseJson(c)

		assert.Equal(t, BackendRemote, c.Backend)
		assert.Equal(t, "www.example:9000", c.ServerEndpointAddr)
		assert.Equal(t, 10*time.Second, c.OnlineCheckInterval)
		assert.Equal(t, "http://minio:9000", c.S3.Endpoint)
		assert.Equal(t, "roster.db", c.DatabasePath, "absent keys keep earlier values")
	})

	t.Run("no flag, no changes", func(t *testing.T) {
		withArgs(t)
		c := defaults()
		parseJson(c)
		assert.Equal(t, defaults(), c)
	})

	t.Run("broken file panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
		withArgs(t, "-c", bad)
		assert.Panics(t, func() { parseJson(defaults()) })
	})
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectPanic bool
		check       func(t *testing.T, c *Config)
	}{
		{
			name: "all flags",
			args: []string{"-a", "127.0.0.1:9090", "-i", "10", "-b", "remote", "-d", "x.db", "-l", "debug", "-o", "/tmp/out"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "127.0.0.1:9090", c.ServerEndpointAddr)
				assert.Equal(t, 10*time.Second, c.OnlineCheckInterval)
				assert.Equal(t, BackendRemote, c.Backend)
				assert.Equal(t, "x.db", c.DatabasePath)
				assert.Equal(t, "debug", c.LogLevel)
				assert.Equal(t, "/tmp/out", c.ExportDir)
			},
		},
		{
			name: "unknown flags are ignored",
			args: []string{"-config", "whatever.json", "-zzz", "-b", "remote"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, BackendRemote, c.Backend)
			},
		},
		{name: "incorrect check interval", args: []string{"-i", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)
			c := defaults()
			if tt.expectPanic {
				assert.Panics(t, func() { parseFlags(c) })
				return
			}
			require.NotPanics(t, func() { parseFlags(c) })
			tt.check(t, c)
		})
	}
}

func TestValidate(t *testing.T) {
	c := defaults()
	c.Backend = "cloud"
	require.Error(t, c.Validate())

	c = defaults()
	c.Timezone = "Mars/Olympus"
	require.Error(t, c.Validate())

	c = defaults()
	c.Timezone = "UTC"
	loc, err := c.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}
