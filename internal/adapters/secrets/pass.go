package secrets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/simpcity-bot/internal/ports"
)

var ErrPassUnavailable = errors.New("pass command unavailable")

type runFunc func(ctx context.Context, args ...string) (stdout string, stderr string, err error)

// PassReader reads the first line of a pass(1) entry.
type PassReader struct {
	run runFunc
}

var _ ports.SecretReader = (*PassReader)(nil)

func NewPassReader() *PassReader {
	return &PassReader{run: runPassCommand}
}

func (p *PassReader) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := p.run(ctx, "show", key)
	if err != nil {
		if stderr == "" {
			return "", fmt.Errorf("pass show %q: %w", key, err)
		}
		return "", fmt.Errorf("pass show %q: %w: %s", key, err, stderr)
	}

	line, _, _ := strings.Cut(stdout, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func runPassCommand(ctx context.Context, args ...string) (string, string, error) {
	path, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrPassUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}
