package ports

import (
	"context"

	"github.com/bnema/simpcity-bot/internal/domain"
)

type Authenticator interface {
	Login(ctx context.Context, creds domain.Credentials) (domain.Session, error)
	Verify(ctx context.Context, session domain.Session) error
	Open(session domain.Session) ThreadAPI
}
