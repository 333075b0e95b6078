package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/simpcity-bot/internal/ports"
)

// Chain asks the primary reader first and falls back to the second one.
type Chain struct {
	primary  ports.SecretReader
	fallback ports.SecretReader
}

var _ ports.SecretReader = (*Chain)(nil)

func NewChain(primary ports.SecretReader, fallback ports.SecretReader) (*Chain, error) {
	if primary == nil {
		return nil, errors.New("primary secret reader is nil")
	}
	if fallback == nil {
		return nil, errors.New("fallback secret reader is nil")
	}

	return &Chain{primary: primary, fallback: fallback}, nil
}

// NewPassFirstWithFileFallback reads from pass and falls back to files under fileRoot.
func NewPassFirstWithFileFallback(fileRoot string) *Chain {
	return &Chain{primary: NewPassReader(), fallback: NewFileReader(fileRoot)}
}

func (c *Chain) Get(ctx context.Context, key string) (string, error) {
	value, err := c.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "", err
	}

	fallbackValue, fallbackErr := c.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}

	return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}
