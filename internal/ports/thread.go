package ports

import (
	"context"

	"github.com/bnema/simpcity-bot/internal/domain"
)

// ThreadAPI is an authenticated view of the platform's direct-thread endpoints.
type ThreadAPI interface {
	Members(ctx context.Context, threadID string) ([]domain.Member, error)
	// RecentMessages returns up to limit items, newest first.
	RecentMessages(ctx context.Context, threadID string, limit int) ([]domain.Message, error)
	UserProfile(ctx context.Context, id domain.MemberID) (domain.Member, error)
	SendText(ctx context.Context, threadID string, text string, mentions []domain.MemberID) error
}
