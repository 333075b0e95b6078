package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bnema/simpcity-bot/internal/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "SIMPCITY"

	configDir  = ".simpcity"
	configFile = "config.toml"
)

// legacyEnv maps config keys to the variable names older deployments export.
var legacyEnv = map[string]string{
	"account.username": "INSTA_USERNAME",
	"account.password": "INSTA_PASSWORD",
	"thread.id":        "GROUP_THREAD_ID",
	"admin.handle":     "ADMIN_USERNAME",
}

var defaults = map[string]any{
	"api.base_url":         "https://i.instagram.com/api/v1/",
	"api.timeout":          "30s",
	"poll.interval":        "10s",
	"poll.max_backoff":     "0s",
	"mention.trigger":      domain.DefaultMentionTrigger,
	"mention.batch_size":   domain.DefaultMentionBatchSize,
	"mention.pause":        "2s",
	"webhook.listen":       "0.0.0.0:5000",
	"webhook.dir":          "/home/ubuntu/simpcity",
	"webhook.command":      "git pull origin main && pm2 restart simpcitybot",
	"log.level":            "info",
	"log.format":           "console",
	"log.file":             "",
	"session.path":         "",
	"account.password_ref": "",
	"secrets.dir":          "",
}

type Config struct {
	Account AccountConfig `mapstructure:"account"`
	Thread  ThreadConfig  `mapstructure:"thread"`
	Admin   AdminConfig   `mapstructure:"admin"`
	API     APIConfig     `mapstructure:"api"`
	Session SessionConfig `mapstructure:"session"`
	Secrets SecretsConfig `mapstructure:"secrets"`
	Poll    PollConfig    `mapstructure:"poll"`
	Mention MentionConfig `mapstructure:"mention"`
	Webhook WebhookConfig `mapstructure:"webhook"`
	Log     LogConfig     `mapstructure:"log"`

	v *viper.Viper
}

type AccountConfig struct {
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	// PasswordRef names a pass entry (or a file below secrets.dir) holding the password.
	PasswordRef string `mapstructure:"password_ref"`
}

type ThreadConfig struct {
	ID string `mapstructure:"id"`
}

type AdminConfig struct {
	Handle string `mapstructure:"handle"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type SessionConfig struct {
	Path string `mapstructure:"path"`
}

type SecretsConfig struct {
	Dir string `mapstructure:"dir"`
}

type PollConfig struct {
	Interval   time.Duration `mapstructure:"interval"`
	MaxBackoff time.Duration `mapstructure:"max_backoff"`
}

type MentionConfig struct {
	Trigger   string        `mapstructure:"trigger"`
	BatchSize int           `mapstructure:"batch_size"`
	Pause     time.Duration `mapstructure:"pause"`
}

type WebhookConfig struct {
	Listen  string `mapstructure:"listen"`
	Dir     string `mapstructure:"dir"`
	Command string `mapstructure:"command"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type Options struct {
	// HomeDir overrides the user home directory used for ~ expansion and the config file.
	HomeDir string
	// ConfigFile defaults to ~/.simpcity/config.toml. A missing file is not an error.
	ConfigFile string
	// EnvFile defaults to .env in the working directory. A missing file is not an error.
	EnvFile string
}

func Load(opts Options) (*Config, error) {
	homeDir := opts.HomeDir
	if homeDir == "" {
		resolved, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		homeDir = resolved
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	configPath := opts.ConfigFile
	if configPath == "" {
		configPath = filepath.Join(homeDir, configDir, configFile)
	}
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config file %s: %w", configPath, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.Account.Username = strings.TrimSpace(cfg.Account.Username)
	cfg.Thread.ID = strings.TrimSpace(cfg.Thread.ID)
	cfg.Admin.Handle = strings.TrimPrefix(strings.TrimSpace(cfg.Admin.Handle), "@")
	cfg.Session.Path = expandHome(cfg.Session.Path, homeDir)
	if cfg.Session.Path == "" {
		cfg.Session.Path = filepath.Join(homeDir, configDir, "session.toml")
	}
	v.Set("session.path", cfg.Session.Path)
	cfg.Secrets.Dir = expandHome(cfg.Secrets.Dir, homeDir)
	if cfg.Secrets.Dir == "" {
		cfg.Secrets.Dir = filepath.Join(homeDir, configDir, "secrets")
	}

	cfg.v = v

	return &cfg, nil
}

// Viper exposes the merged settings for adapters that read their own keys.
func (c *Config) Viper() *viper.Viper {
	if c.v == nil {
		c.v = viper.New()
		c.v.Set("session.path", c.Session.Path)
	}
	return c.v
}

func (c *Config) RequireWatch() error {
	return requireKeys(map[string]string{
		"account.username": c.Account.Username,
		"thread.id":        c.Thread.ID,
	})
}

func (c *Config) RequireLogin() error {
	password := c.Account.Password
	if password == "" {
		password = c.Account.PasswordRef
	}

	return requireKeys(map[string]string{
		"account.username": c.Account.Username,
		"account.password": password,
	})
}

func (c *Config) Credentials() domain.Credentials {
	return domain.Credentials{Username: c.Account.Username, Password: c.Account.Password}
}

func requireKeys(values map[string]string) error {
	var missing []string
	for key, value := range values {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	slices.Sort(missing)
	return fmt.Errorf("%w: %s", domain.ErrMissingConfig, strings.Join(missing, ", "))
}

func expandHome(path string, homeDir string) string {
	path = strings.TrimSpace(path)
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
