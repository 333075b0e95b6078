package instagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/simpcity-bot/internal/domain"
)

const (
	DefaultBaseURL = "https://i.instagram.com/api/v1/"

	defaultRequestTimeout = 30 * time.Second
	maxAPIResponseBytes   = 1 << 20

	appID     = "567067343352427"
	userAgent = "Instagram 269.0.0.18.75 Android (26/8.0.0; 480dpi; 1080x1920; OnePlus; 6T Dev; devitron; qcom; en_US; 314665256)"
)

var ErrUnauthorized = errors.New("instagram: unauthorized")

// transport carries what every request needs: where to send it and how long to wait.
type transport struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

type apiStatus struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	ErrorType string `json:"error_type"`
}

type apiUser struct {
	PK       flexibleID `json:"pk"`
	Username string     `json:"username"`
}

func (u apiUser) member() domain.Member {
	return domain.Member{ID: domain.MemberID(u.PK), Handle: domain.Handle(u.Username)}
}

// flexibleID accepts ids encoded either as JSON numbers or strings.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*f = ""
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*f = flexibleID(value)
		return nil
	}

	if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
		return fmt.Errorf("decode id %q: %w", raw, err)
	}
	*f = flexibleID(raw)

	return nil
}

func (t transport) do(ctx context.Context, method string, path string, query url.Values, form url.Values, headers http.Header, out any) (*http.Response, error) {
	endpoint, err := buildAPIURL(t.baseURL, path)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	requestCtx, cancel := t.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-IG-App-ID", appID)
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	}

	resp, err := t.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAPIResponseBytes))
	if err != nil {
		return resp, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return resp, fmt.Errorf("%w: %s", ErrUnauthorized, describeFailure(resp.StatusCode, data))
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp, errors.New(describeFailure(resp.StatusCode, data))
	}

	var status apiStatus
	if err := json.Unmarshal(data, &status); err == nil && status.Status == "fail" {
		if status.ErrorType == "login_required" {
			return resp, fmt.Errorf("%w: %s", ErrUnauthorized, formatStatus(resp.StatusCode, status))
		}
		return resp, errors.New(formatStatus(resp.StatusCode, status))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return resp, fmt.Errorf("decode response: %w", err)
		}
	}

	return resp, nil
}

func (t transport) httpClient() *http.Client {
	if t.client != nil {
		return t.client
	}
	return http.DefaultClient
}

func (t transport) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := t.timeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func describeFailure(statusCode int, data []byte) string {
	var status apiStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return fmt.Sprintf("status %d", statusCode)
	}
	return formatStatus(statusCode, status)
}

func formatStatus(statusCode int, status apiStatus) string {
	switch {
	case status.ErrorType != "" && status.Message != "":
		return status.ErrorType + ": " + status.Message
	case status.Message != "":
		return status.Message
	case status.ErrorType != "":
		return status.ErrorType
	default:
		return fmt.Sprintf("status %d", statusCode)
	}
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("api base url is required")
	}
	if path == "" {
		return "", errors.New("api path is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}

	endpoint, err := parsed.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	return endpoint.String(), nil
}
