package ports

import "context"

// SecretReader resolves a secret by reference, e.g. a pass entry name.
type SecretReader interface {
	Get(ctx context.Context, key string) (string, error)
}
