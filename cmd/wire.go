package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/bnema/simpcity-bot/internal/adapters/instagram"
	statusadapter "github.com/bnema/simpcity-bot/internal/adapters/render/status"
	tomlrepo "github.com/bnema/simpcity-bot/internal/adapters/repo/toml"
	"github.com/bnema/simpcity-bot/internal/adapters/secrets"
	"github.com/bnema/simpcity-bot/internal/adapters/webhook"
	"github.com/bnema/simpcity-bot/internal/application"
	"github.com/bnema/simpcity-bot/internal/config"
	"github.com/bnema/simpcity-bot/internal/domain"
	"github.com/bnema/simpcity-bot/internal/logging"
	"github.com/bnema/simpcity-bot/internal/ports"
)

type app struct {
	cfg             *config.Config
	logger          *logging.Logger
	sessions        *application.SessionService
	sessionPath     string
	rosterRenderer  func(statusadapter.Roster, statusadapter.RenderOptions) (string, error)
	sessionRenderer func(statusadapter.SessionReport, statusadapter.RenderOptions) (string, error)
	now             func() time.Time
}

func wireApp() (*app, error) {
	cfg, err := config.Load(config.Options{})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	}, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	repo, err := tomlrepo.NewSessionRepository(cfg.Viper())
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}

	gateway := instagram.Gateway{
		BaseURL:        cfg.API.BaseURL,
		HTTPClient:     http.DefaultClient,
		RequestTimeout: cfg.API.Timeout,
	}

	sessions := application.NewSessionService(repo, gateway, cfg.Credentials(), ports.SystemClock{}, logger.Logger).
		WithPasswordSource(secrets.NewPassFirstWithFileFallback(cfg.Secrets.Dir), cfg.Account.PasswordRef)

	return &app{
		cfg:             cfg,
		logger:          logger,
		sessions:        sessions,
		sessionPath:     repo.Path(),
		rosterRenderer:  statusadapter.RenderRoster,
		sessionRenderer: statusadapter.RenderSession,
		now:             time.Now,
	}, nil
}

func (a *app) watchConfig() application.WatchConfig {
	return application.WatchConfig{
		ThreadID:     a.cfg.Thread.ID,
		AdminHandle:  domain.Handle(a.cfg.Admin.Handle),
		Trigger:      a.cfg.Mention.Trigger,
		Interval:     a.cfg.Poll.Interval,
		MaxBackoff:   a.cfg.Poll.MaxBackoff,
		BatchSize:    a.cfg.Mention.BatchSize,
		MentionPause: a.cfg.Mention.Pause,
	}
}

func (a *app) webhookConfig() webhook.Config {
	return webhook.Config{
		Listen:  a.cfg.Webhook.Listen,
		Dir:     a.cfg.Webhook.Dir,
		Command: a.cfg.Webhook.Command,
		Debug:   a.cfg.Log.Level == "debug",
	}
}
