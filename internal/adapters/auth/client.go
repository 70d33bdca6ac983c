package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/chargectl/internal/domain"
	"github.com/bnema/chargectl/internal/ports"
	"github.com/google/uuid"
)

const (
	maxResponseBytes      = 1 << 20
	defaultRequestTimeout = 30 * time.Second
	requestIDHeader       = "X-Request-ID"
)

var ErrMissingAccessToken = errors.New("token response missing access token")

type API struct {
	BaseURL     string
	LoginPath   string
	ProfilePath string
}

// Client talks to the platform's login and profile endpoints.
type Client struct {
	API            API
	ClientID       string
	ClientSecret   string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.AuthAPI = Client{}

// StatusError is returned for any non-2xx answer from the backend.
type StatusError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Detail)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type errorResponse struct {
	Error            string          `json:"error"`
	ErrorDescription string          `json:"error_description"`
	Detail           json.RawMessage `json:"detail"`
}

func (c Client) PasswordGrant(ctx context.Context, credentials domain.Credentials) (domain.TokenGrant, error) {
	endpoint, err := buildAPIURL(c.API.BaseURL, c.API.LoginPath)
	if err != nil {
		return domain.TokenGrant{}, err
	}

	values := url.Values{}
	values.Set("grant_type", domain.PasswordGrantType)
	values.Set("username", credentials.Username)
	values.Set("password", credentials.Password)
	values.Set("scope", "")
	values.Set("client_id", c.ClientID)
	values.Set("client_secret", c.ClientSecret)

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return domain.TokenGrant{}, fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return domain.TokenGrant{}, fmt.Errorf("login request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return domain.TokenGrant{}, decodeStatusError("login request", resp)
	}

	var payload tokenResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return domain.TokenGrant{}, fmt.Errorf("decode login response: %w", err)
	}
	if strings.TrimSpace(payload.AccessToken) == "" {
		return domain.TokenGrant{}, ErrMissingAccessToken
	}

	return domain.TokenGrant{
		AccessToken: payload.AccessToken,
		TokenType:   payload.TokenType,
		ExpiresIn:   payload.ExpiresIn,
	}, nil
}

func (c Client) FetchProfile(ctx context.Context, token string) (domain.UserProfile, error) {
	if token == "" {
		return nil, errors.New("access token is required")
	}

	endpoint, err := buildAPIURL(c.API.BaseURL, c.API.ProfilePath)
	if err != nil {
		return nil, err
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, decodeStatusError("profile request", resp)
	}

	var profile domain.UserProfile
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode profile response: %w", err)
	}
	if profile == nil {
		return nil, errors.New("profile response is empty")
	}

	return profile, nil
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func decodeStatusError(op string, resp *http.Response) error {
	statusErr := &StatusError{Op: op, StatusCode: resp.StatusCode}

	var body errorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return statusErr
	}
	statusErr.Detail = formatErrorDetail(body)
	return statusErr
}

// formatErrorDetail understands OAuth error bodies and the FastAPI
// {"detail": ...} shape the platform backend uses.
func formatErrorDetail(body errorResponse) string {
	if body.Error != "" {
		if body.ErrorDescription != "" {
			return body.Error + ": " + body.ErrorDescription
		}
		return body.Error
	}
	if len(body.Detail) == 0 {
		return ""
	}

	var detail string
	if err := json.Unmarshal(body.Detail, &detail); err == nil {
		return detail
	}
	return string(body.Detail)
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

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	return endpoint.String(), nil
}
