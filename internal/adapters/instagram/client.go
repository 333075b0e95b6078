package instagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/simpcity-bot/internal/domain"
	"github.com/bnema/simpcity-bot/internal/ports"
)

const (
	threadPathFormat   = "direct_v2/threads/%s/"
	userInfoPathFormat = "users/%s/info/"
	broadcastTextPath  = "direct_v2/threads/broadcast/text/"

	defaultMessageLimit = 20
)

// Client is a thread API bound to one logged-in session.
type Client struct {
	transport transport
	session   domain.Session
	newID     func() string
}

var _ ports.ThreadAPI = (*Client)(nil)

type threadResponse struct {
	Thread struct {
		ThreadID string       `json:"thread_id"`
		Users    []apiUser    `json:"users"`
		Items    []threadItem `json:"items"`
	} `json:"thread"`
}

type threadItem struct {
	ItemID    flexibleID `json:"item_id"`
	UserID    flexibleID `json:"user_id"`
	ItemType  string     `json:"item_type"`
	Text      string     `json:"text"`
	Timestamp flexibleID `json:"timestamp"`
}

type userInfoResponse struct {
	User apiUser `json:"user"`
}

func (c *Client) Members(ctx context.Context, threadID string) ([]domain.Member, error) {
	thread, err := c.thread(ctx, threadID, 1)
	if err != nil {
		return nil, fmt.Errorf("fetch thread members: %w", err)
	}

	members := make([]domain.Member, 0, len(thread.Thread.Users))
	for _, user := range thread.Thread.Users {
		if user.PK == "" {
			continue
		}
		members = append(members, user.member())
	}

	return members, nil
}

func (c *Client) RecentMessages(ctx context.Context, threadID string, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = defaultMessageLimit
	}

	thread, err := c.thread(ctx, threadID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch thread messages: %w", err)
	}

	messages := make([]domain.Message, 0, len(thread.Thread.Items))
	for _, item := range thread.Thread.Items {
		if len(messages) == limit {
			break
		}
		messages = append(messages, domain.Message{
			ID:       string(item.ItemID),
			SenderID: domain.MemberID(item.UserID),
			Text:     item.Text,
			SentAt:   parseMicros(string(item.Timestamp)),
		})
	}

	return messages, nil
}

func (c *Client) UserProfile(ctx context.Context, id domain.MemberID) (domain.Member, error) {
	if strings.TrimSpace(string(id)) == "" {
		return domain.Member{}, errors.New("user id is required")
	}

	var payload userInfoResponse
	path := fmt.Sprintf(userInfoPathFormat, url.PathEscape(string(id)))
	if _, err := c.transport.do(ctx, http.MethodGet, path, nil, nil, sessionHeaders(c.session), &payload); err != nil {
		return domain.Member{}, fmt.Errorf("fetch user %s: %w", id, err)
	}
	if payload.User.Username == "" {
		return domain.Member{}, fmt.Errorf("fetch user %s: response missing username", id)
	}

	member := payload.User.member()
	if member.ID == "" {
		member.ID = id
	}

	return member, nil
}

func (c *Client) SendText(ctx context.Context, threadID string, text string, mentions []domain.MemberID) error {
	if strings.TrimSpace(threadID) == "" {
		return errors.New("thread id is required")
	}

	threadIDs, err := json.Marshal([]string{threadID})
	if err != nil {
		return fmt.Errorf("encode thread ids: %w", err)
	}

	form := url.Values{}
	form.Set("action", "send_item")
	form.Set("thread_ids", string(threadIDs))
	form.Set("text", text)
	form.Set("client_context", c.id())
	form.Set("_uuid", c.session.UUID)
	if len(mentions) > 0 {
		ids := make([]string, 0, len(mentions))
		for _, mention := range mentions {
			ids = append(ids, string(mention))
		}
		encoded, err := json.Marshal(ids)
		if err != nil {
			return fmt.Errorf("encode mentions: %w", err)
		}
		form.Set("mentioned_user_ids", string(encoded))
	}

	if _, err := c.transport.do(ctx, http.MethodPost, broadcastTextPath, nil, form, sessionHeaders(c.session), nil); err != nil {
		return fmt.Errorf("send text: %w", err)
	}

	return nil
}

func (c *Client) thread(ctx context.Context, threadID string, limit int) (threadResponse, error) {
	if strings.TrimSpace(threadID) == "" {
		return threadResponse{}, errors.New("thread id is required")
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	path := fmt.Sprintf(threadPathFormat, url.PathEscape(threadID))

	var payload threadResponse
	if _, err := c.transport.do(ctx, http.MethodGet, path, query, nil, sessionHeaders(c.session), &payload); err != nil {
		return threadResponse{}, err
	}

	return payload, nil
}

func (c *Client) id() string {
	if c.newID != nil {
		return c.newID()
	}
	return Gateway{}.id()
}

func parseMicros(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	micros, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}
	}

	return time.UnixMicro(micros).UTC()
}
