package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/simpcity-bot/internal/domain"
	"github.com/bnema/simpcity-bot/internal/ports"
	"github.com/rs/zerolog"
)

type SessionService struct {
	repo  ports.SessionRepository
	auth  ports.Authenticator
	creds domain.Credentials
	clock ports.Clock
	log   zerolog.Logger

	secrets     ports.SecretReader
	passwordRef string
}

func NewSessionService(repo ports.SessionRepository, auth ports.Authenticator, creds domain.Credentials, clock ports.Clock, logger zerolog.Logger) *SessionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &SessionService{
		repo:  repo,
		auth:  auth,
		creds: creds,
		clock: clock,
		log:   logger.With().Str("module", "app.session").Logger(),
	}
}

// WithPasswordSource lets login read the password from a secret store when none is configured inline.
func (s *SessionService) WithPasswordSource(reader ports.SecretReader, ref string) *SessionService {
	s.secrets = reader
	s.passwordRef = strings.TrimSpace(ref)
	return s
}

// Acquire returns an authenticated thread client, preferring the saved session.
// It fails only when the saved session is unusable and the password login fails too.
func (s *SessionService) Acquire(ctx context.Context) (ports.ThreadAPI, error) {
	session, err := s.restore(ctx)
	if err == nil {
		s.log.Info().Str("username", session.Username).Msg("reusing saved session")
		return s.auth.Open(session), nil
	}
	if shouldSkipFallback(err) {
		return nil, err
	}

	if errors.Is(err, domain.ErrSessionNotFound) {
		s.log.Info().Msg("no saved session, logging in")
	} else {
		s.log.Warn().Err(err).Msg("saved session unusable, logging in")
	}

	session, err = s.login(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, session); err != nil {
		s.log.Error().Err(err).Msg("persist session")
	} else {
		s.log.Info().Str("username", session.Username).Msg("logged in and saved session")
	}

	return s.auth.Open(session), nil
}

// Login forces a password login and persists the resulting session.
func (s *SessionService) Login(ctx context.Context) (domain.Session, error) {
	session, err := s.login(ctx)
	if err != nil {
		return domain.Session{}, err
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}

	return session, nil
}

func (s *SessionService) Status(ctx context.Context) (domain.Session, error) {
	return s.repo.Load(ctx)
}

func (s *SessionService) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionService) restore(ctx context.Context) (domain.Session, error) {
	session, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) || shouldSkipFallback(err) {
			return domain.Session{}, err
		}
		s.discard(ctx)
		return domain.Session{}, fmt.Errorf("load saved session: %w", err)
	}

	if !session.Valid() {
		s.discard(ctx)
		return domain.Session{}, fmt.Errorf("%w: incomplete saved session", domain.ErrSessionInvalid)
	}

	wanted := strings.TrimSpace(s.creds.Username)
	if wanted != "" && !strings.EqualFold(wanted, session.Username) {
		s.discard(ctx)
		return domain.Session{}, fmt.Errorf("%w: saved session belongs to %q", domain.ErrSessionInvalid, session.Username)
	}

	if err := s.auth.Verify(ctx, session); err != nil {
		if shouldSkipFallback(err) {
			return domain.Session{}, err
		}
		s.discard(ctx)
		return domain.Session{}, fmt.Errorf("verify saved session: %w", err)
	}

	return session, nil
}

func (s *SessionService) login(ctx context.Context) (domain.Session, error) {
	creds, err := s.credentials(ctx)
	if err != nil {
		return domain.Session{}, err
	}

	session, err := s.auth.Login(ctx, creds)
	if err != nil {
		return domain.Session{}, fmt.Errorf("login as %s: %w", s.creds.Username, err)
	}
	session.SavedAt = s.clock.Now()

	return session, nil
}

func (s *SessionService) credentials(ctx context.Context) (domain.Credentials, error) {
	creds := s.creds
	if creds.Password == "" && s.passwordRef != "" && s.secrets != nil {
		password, err := s.secrets.Get(ctx, s.passwordRef)
		if err != nil {
			return domain.Credentials{}, fmt.Errorf("resolve password %s: %w", s.passwordRef, err)
		}
		creds.Password = password
	}

	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return domain.Credentials{}, fmt.Errorf("%w: account username and password", domain.ErrMissingConfig)
	}

	return creds, nil
}

func (s *SessionService) discard(ctx context.Context) {
	if err := s.repo.Delete(ctx); err != nil {
		s.log.Warn().Err(err).Msg("discard saved session")
	}
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
