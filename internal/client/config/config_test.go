package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.ServerEndpointAddr)
	assert.Equal(t, "edustream.db", c.LocalDBPath)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}
	chdir(t, t.TempDir())

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerEndpointAddr)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}

func TestParseEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}
	chdir(t, t.TempDir())

	t.Setenv(envServerURL, "http://api.example:9000")
	t.Setenv(envLocalDB, "/tmp/x.db")
	t.Setenv(envRequestTimeout, "2s")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "http://api.example:9000", cfg.ServerEndpointAddr)
	assert.Equal(t, "/tmp/x.db", cfg.LocalDBPath)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
}

func TestParseEnv_BadTimeoutPanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}
	chdir(t, t.TempDir())
	t.Setenv(envRequestTimeout, "soon")

	require.Panics(t, func() { parseEnv(&Config{}) })
}

func TestParseEnv_DotenvFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	path := dir + "/client.env"
	require.NoError(t, os.WriteFile(path, []byte("EDU_LOCAL_DB=from-dotenv.db\n"), 0o600))
	os.Args = []string{"testbin", "-env", path}
	t.Cleanup(func() { _ = os.Unsetenv(envLocalDB) })

	cfg := &Config{}
	parseEnv(cfg)
	assert.Equal(t, "from-dotenv.db", cfg.LocalDBPath)
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
