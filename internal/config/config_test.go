package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/simpcity-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnv = []string{
	"INSTA_USERNAME", "INSTA_PASSWORD", "GROUP_THREAD_ID", "ADMIN_USERNAME",
	"SIMPCITY_ACCOUNT_USERNAME", "SIMPCITY_ACCOUNT_PASSWORD", "SIMPCITY_THREAD_ID", "SIMPCITY_ADMIN_HANDLE",
	"SIMPCITY_POLL_INTERVAL", "SIMPCITY_MENTION_BATCH_SIZE", "SIMPCITY_SESSION_PATH", "SIMPCITY_LOG_FORMAT",
	"SIMPCITY_ACCOUNT_PASSWORD_REF", "SIMPCITY_SECRETS_DIR",
}

// isolateEnv clears every variable the loader reads and restores them after the test.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnv {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func loadFrom(t *testing.T, home string) *Config {
	t.Helper()

	cfg, err := Load(Options{HomeDir: home, EnvFile: filepath.Join(home, "missing.env")})
	require.NoError(t, err)

	return cfg
}

func TestLoadDefaults(t *testing.T) {
	isolateEnv(t)
	home := t.TempDir()

	cfg := loadFrom(t, home)

	assert.Equal(t, "https://i.instagram.com/api/v1/", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Poll.Interval)
	assert.Zero(t, cfg.Poll.MaxBackoff)
	assert.Equal(t, "mention all", cfg.Mention.Trigger)
	assert.Equal(t, 5, cfg.Mention.BatchSize)
	assert.Equal(t, 2*time.Second, cfg.Mention.Pause)
	assert.Equal(t, "0.0.0.0:5000", cfg.Webhook.Listen)
	assert.Equal(t, "/home/ubuntu/simpcity", cfg.Webhook.Dir)
	assert.Equal(t, "git pull origin main && pm2 restart simpcitybot", cfg.Webhook.Command)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, filepath.Join(home, ".simpcity", "session.toml"), cfg.Session.Path)
	assert.Equal(t, cfg.Session.Path, cfg.Viper().GetString("session.path"))
}

func TestLoadLegacyEnvironmentNames(t *testing.T) {
	isolateEnv(t)
	t.Setenv("INSTA_USERNAME", "simpcity.bot")
	t.Setenv("INSTA_PASSWORD", "hunter2")
	t.Setenv("GROUP_THREAD_ID", "340282366841710300949128")
	t.Setenv("ADMIN_USERNAME", "@boss")

	cfg := loadFrom(t, t.TempDir())

	assert.Equal(t, domain.Credentials{Username: "simpcity.bot", Password: "hunter2"}, cfg.Credentials())
	assert.Equal(t, "340282366841710300949128", cfg.Thread.ID)
	assert.Equal(t, "boss", cfg.Admin.Handle)
}

func TestLoadPrefixedEnvironmentWins(t *testing.T) {
	isolateEnv(t)
	t.Setenv("INSTA_USERNAME", "legacy")
	t.Setenv("SIMPCITY_ACCOUNT_USERNAME", "prefixed")
	t.Setenv("SIMPCITY_POLL_INTERVAL", "3s")
	t.Setenv("SIMPCITY_MENTION_BATCH_SIZE", "7")

	cfg := loadFrom(t, t.TempDir())

	assert.Equal(t, "prefixed", cfg.Account.Username)
	assert.Equal(t, 3*time.Second, cfg.Poll.Interval)
	assert.Equal(t, 7, cfg.Mention.BatchSize)
}

func TestLoadConfigFileAndHomeExpansion(t *testing.T) {
	isolateEnv(t)
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".simpcity"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".simpcity", "config.toml"), []byte(`
[thread]
id = "from-file"

[session]
path = "~/state/session.toml"

[mention]
trigger = "everyone"
pause = "500ms"
`), 0o600))
	t.Setenv("GROUP_THREAD_ID", "from-env")

	cfg := loadFrom(t, home)

	assert.Equal(t, "from-env", cfg.Thread.ID)
	assert.Equal(t, "everyone", cfg.Mention.Trigger)
	assert.Equal(t, 500*time.Millisecond, cfg.Mention.Pause)
	assert.Equal(t, filepath.Join(home, "state", "session.toml"), cfg.Session.Path)
}

func TestLoadRejectsMalformedConfigFile(t *testing.T) {
	isolateEnv(t)
	home := t.TempDir()
	configPath := filepath.Join(home, "broken.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("[thread\nid ="), 0o600))

	_, err := Load(Options{HomeDir: home, ConfigFile: configPath, EnvFile: filepath.Join(home, "missing.env")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoadEnvFile(t *testing.T) {
	isolateEnv(t)
	home := t.TempDir()
	envPath := filepath.Join(home, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("INSTA_USERNAME=dotenv.bot\nGROUP_THREAD_ID=42\n"), 0o600))
	t.Setenv("GROUP_THREAD_ID", "exported")

	cfg, err := Load(Options{HomeDir: home, EnvFile: envPath})
	require.NoError(t, err)

	assert.Equal(t, "dotenv.bot", cfg.Account.Username)
	assert.Equal(t, "exported", cfg.Thread.ID)
}

func TestRequireWatchListsMissingKeys(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	err := cfg.RequireWatch()
	require.ErrorIs(t, err, domain.ErrMissingConfig)
	assert.Contains(t, err.Error(), "account.username, thread.id")

	cfg.Account.Username = "simpcity.bot"
	cfg.Thread.ID = "1"
	require.NoError(t, cfg.RequireWatch())

	err = cfg.RequireLogin()
	require.ErrorIs(t, err, domain.ErrMissingConfig)
	assert.Contains(t, err.Error(), "account.password")
}

func TestRequireLoginAcceptsPasswordRef(t *testing.T) {
	t.Parallel()

	cfg := &Config{Account: AccountConfig{Username: "simpcity.bot", PasswordRef: "simpcity/instagram"}}
	require.NoError(t, cfg.RequireLogin())
}

func TestLoadSecretsDirDefaultsUnderHome(t *testing.T) {
	isolateEnv(t)
	home := t.TempDir()

	cfg := loadFrom(t, home)
	assert.Equal(t, filepath.Join(home, ".simpcity", "secrets"), cfg.Secrets.Dir)
}
