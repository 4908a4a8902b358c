package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/deckops/deck/pkg/config"
	"github.com/stretchr/testify/require"
)

func testEnv(t *testing.T, env map[string]string) {
	for _, k := range []string{"DECK_ACCOUNT", "DECK_DRAFTS", "DECK_ENDPOINT", "DECK_PASSWORD", "DECK_POLL_INTERVAL", "DECK_TASK_TIMEOUT"} {
		t.Setenv(k, env[k])
	}
}

func TestLoadDefaults(t *testing.T) {
	testEnv(t, nil)

	c, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	require.Equal(t, config.DefaultAccount, c.Account)
	require.Equal(t, config.DefaultEndpoint, c.Endpoint)
	require.Equal(t, config.DefaultPollInterval, c.PollInterval)
	require.Equal(t, config.DefaultTaskTimeout, c.TaskTimeout)
	require.Equal(t, "drafts.db", filepath.Base(c.Drafts))
}

func TestLoadFile(t *testing.T) {
	testEnv(t, nil)

	path := filepath.Join(t.TempDir(), "config.yml")

	err := os.WriteFile(path, []byte("account: acct1\nendpoint: https://gate.example.org\npoll_interval: 5s\ntask_timeout: 1m\n"), 0600)
	require.NoError(t, err)

	c, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "acct1", c.Account)
	require.Equal(t, "https://gate.example.org", c.Endpoint)
	require.Equal(t, 5*time.Second, c.PollInterval)
	require.Equal(t, time.Minute, c.TaskTimeout)
}

func TestLoadEnvironment(t *testing.T) {
	testEnv(t, map[string]string{
		"DECK_ACCOUNT":       "acct2",
		"DECK_ENDPOINT":      "https://env.example.org",
		"DECK_PASSWORD":      "secret",
		"DECK_POLL_INTERVAL": "10ms",
	})

	path := filepath.Join(t.TempDir(), "config.yml")

	err := os.WriteFile(path, []byte("account: acct1\n"), 0600)
	require.NoError(t, err)

	c, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "acct2", c.Account)
	require.Equal(t, "https://env.example.org", c.Endpoint)
	require.Equal(t, "secret", c.Password)
	require.Equal(t, 10*time.Millisecond, c.PollInterval)
}

func TestLoadInvalid(t *testing.T) {
	testEnv(t, map[string]string{"DECK_TASK_TIMEOUT": "forever"})

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.EqualError(t, err, `invalid task timeout: time: invalid duration "forever"`)
}

func TestSave(t *testing.T) {
	testEnv(t, nil)

	path := filepath.Join(t.TempDir(), "nested", "config.yml")

	c := &config.Config{Account: "acct3", Endpoint: "https://saved.example.org", Drafts: "/tmp/drafts.db", PollInterval: time.Second, TaskTimeout: time.Hour}
	require.NoError(t, c.Save(path))

	got, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, c.Account, got.Account)
	require.Equal(t, c.Endpoint, got.Endpoint)
	require.Equal(t, c.Drafts, got.Drafts)
	require.Equal(t, c.PollInterval, got.PollInterval)
	require.Equal(t, c.TaskTimeout, got.TaskTimeout)
}
