package webhook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	DefaultListen  = "0.0.0.0:5000"
	DefaultDir     = "/home/ubuntu/simpcity"
	DefaultCommand = "git pull origin main && pm2 restart simpcitybot"

	SuccessBody = "Updated & Restarted!"

	shutdownTimeout = 5 * time.Second
)

type runFunc func(ctx context.Context, dir string, command string) (output string, err error)

type Config struct {
	Listen  string
	Dir     string
	Command string
	Debug   bool
}

// Handler answers redeploy hooks by running the configured shell command.
type Handler struct {
	cfg Config
	run runFunc
	log zerolog.Logger

	mu sync.Mutex
}

func NewHandler(cfg Config, logger zerolog.Logger) *Handler {
	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}
	if cfg.Dir == "" {
		cfg.Dir = DefaultDir
	}
	if cfg.Command == "" {
		cfg.Command = DefaultCommand
	}

	return &Handler{
		cfg: cfg,
		run: runShellCommand,
		log: logger.With().Str("module", "adapters.webhook").Logger(),
	}
}

func (h *Handler) Router() *gin.Engine {
	if !h.cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if h.cfg.Debug {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	r.POST("/webhook", h.redeploy)
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}

func (h *Handler) redeploy(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	started := time.Now()
	h.log.Info().Str("dir", h.cfg.Dir).Str("remote", c.ClientIP()).Msg("redeploy requested")

	output, err := h.run(c.Request.Context(), h.cfg.Dir, h.cfg.Command)
	if err != nil {
		h.log.Error().Err(err).Str("output", output).Dur("elapsed", time.Since(started)).Msg("redeploy command failed")
		c.String(http.StatusInternalServerError, "Redeploy failed")
		return
	}

	h.log.Info().Dur("elapsed", time.Since(started)).Msg("redeploy finished")
	c.String(http.StatusOK, SuccessBody)
}

// Serve blocks until ctx is cancelled or the listener fails.
func (h *Handler) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              h.cfg.Listen,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.log.Info().Str("addr", h.cfg.Listen).Msg("webhook listener started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("serve webhook: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	h.log.Info().Msg("shutting down webhook listener")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown webhook: %w", err)
	}

	return nil
}

func runShellCommand(ctx context.Context, dir string, command string) (string, error) {
	path, err := exec.LookPath("sh")
	if err != nil {
		return "", fmt.Errorf("locate shell: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, "-c", command)
	cmd.Dir = dir

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err = cmd.Run()
	return strings.TrimSpace(output.String()), err
}
