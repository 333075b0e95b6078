package instagram

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/bnema/simpcity-bot/internal/domain"
	"github.com/bnema/simpcity-bot/internal/ports"
	"github.com/google/uuid"
)

const (
	loginPath       = "accounts/login/"
	currentUserPath = "accounts/current_user/"

	authorizationHeader    = "Authorization"
	setAuthorizationHeader = "ig-set-authorization"
	userIDHeader           = "ig-set-ds-user-id"
)

// Gateway logs in against the private API and opens authenticated thread clients.
type Gateway struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration

	newID func() string
}

var _ ports.Authenticator = Gateway{}

type loginResponse struct {
	LoggedInUser apiUser `json:"logged_in_user"`
}

type currentUserResponse struct {
	User apiUser `json:"user"`
}

func (g Gateway) Login(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return domain.Session{}, errors.New("username and password are required")
	}

	deviceUUID := g.id()
	deviceID := "android-" + shortID(g.id())

	form := url.Values{}
	form.Set("username", creds.Username)
	form.Set("enc_password", "#PWD_INSTAGRAM:0:"+fmt.Sprint(time.Now().Unix())+":"+creds.Password)
	form.Set("guid", deviceUUID)
	form.Set("device_id", deviceID)
	form.Set("phone_id", g.id())
	form.Set("login_attempt_count", "0")

	var payload loginResponse
	resp, err := g.transport().do(ctx, http.MethodPost, loginPath, nil, form, nil, &payload)
	if err != nil {
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}

	authorization := strings.TrimSpace(resp.Header.Get(setAuthorizationHeader))
	if authorization == "" {
		return domain.Session{}, errors.New("login: response missing authorization header")
	}

	userID := domain.MemberID(payload.LoggedInUser.PK)
	if userID == "" {
		userID = domain.MemberID(resp.Header.Get(userIDHeader))
	}
	if userID == "" {
		return domain.Session{}, errors.New("login: response missing user id")
	}

	username := payload.LoggedInUser.Username
	if username == "" {
		username = creds.Username
	}

	var cookies map[string]string
	for _, cookie := range resp.Cookies() {
		if cookies == nil {
			cookies = make(map[string]string)
		}
		cookies[cookie.Name] = cookie.Value
	}

	return domain.Session{
		Username:      username,
		UserID:        userID,
		Authorization: authorization,
		DeviceID:      deviceID,
		UUID:          deviceUUID,
		Cookies:       cookies,
	}, nil
}

func (g Gateway) Verify(ctx context.Context, session domain.Session) error {
	if !session.Valid() {
		return domain.ErrSessionInvalid
	}

	var payload currentUserResponse
	query := url.Values{"edit": []string{"true"}}
	if _, err := g.transport().do(ctx, http.MethodGet, currentUserPath, query, nil, sessionHeaders(session), &payload); err != nil {
		return fmt.Errorf("verify session: %w", err)
	}

	if payload.User.PK != "" && domain.MemberID(payload.User.PK) != session.UserID {
		return fmt.Errorf("verify session: %w: session belongs to user %s", ErrUnauthorized, payload.User.PK)
	}

	return nil
}

func (g Gateway) Open(session domain.Session) ports.ThreadAPI {
	return &Client{
		transport: g.transport(),
		session:   session,
		newID:     g.id,
	}
}

func (g Gateway) transport() transport {
	baseURL := g.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return transport{baseURL: baseURL, client: g.HTTPClient, timeout: g.RequestTimeout}
}

func (g Gateway) id() string {
	if g.newID != nil {
		return g.newID()
	}
	return uuid.NewString()
}

func sessionHeaders(session domain.Session) http.Header {
	headers := http.Header{}
	headers.Set(authorizationHeader, session.Authorization)
	headers.Set("IG-U-DS-User-ID", string(session.UserID))
	if session.DeviceID != "" {
		headers.Set("X-IG-Device-ID", session.UUID)
		headers.Set("X-IG-Android-ID", session.DeviceID)
	}

	if len(session.Cookies) > 0 {
		parts := make([]string, 0, len(session.Cookies))
		for _, name := range slices.Sorted(maps.Keys(session.Cookies)) {
			parts = append(parts, (&http.Cookie{Name: name, Value: session.Cookies[name]}).String())
		}
		headers.Set("Cookie", strings.Join(parts, "; "))
	}

	return headers
}

func shortID(raw string) string {
	compact := strings.ReplaceAll(raw, "-", "")
	if len(compact) > 16 {
		return compact[:16]
	}
	return compact
}
