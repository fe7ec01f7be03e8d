package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/lifemgmt/internal/client/models"
	"github.com/dmitrijs2005/lifemgmt/internal/common"
)

// HTTPClient talks to the Credential Store REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPClient builds a client rooted at baseURL (e.g. http://localhost:3000/api).
// A zero timeout leaves requests bounded by their context only.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, credentials models.Credentials) (*models.AuthResponse, error) {
	resp := &models.AuthResponse{}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", credentials, resp); err != nil {
		return nil, err
	}
	if err := checkAuthResponse(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, data models.RegistrationData) (*models.AuthResponse, error) {
	resp := &models.AuthResponse{}
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", data, resp); err != nil {
		return nil, err
	}
	if err := checkAuthResponse(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", c.Token(), nil, nil)
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, data models.ForgotPasswordData) (string, error) {
	var resp models.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/auth/forgot-password", "", data, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *HTTPClient) ResetPassword(ctx context.Context, data models.ResetPasswordData) (string, error) {
	var resp models.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/auth/reset-password", "", data, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	user := &models.User{}
	if err := c.do(ctx, http.MethodGet, "/auth/me", c.Token(), nil, user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, fmt.Errorf("decode response: %w: missing user id", ErrIncompleteResponse)
	}
	return user, nil
}

// VerifyToken checks token (not necessarily the held one) against the
// verification endpoint. A nil error means the token is valid.
func (c *HTTPClient) VerifyToken(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodGet, "/auth/verify", token, nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeRemoteError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func checkAuthResponse(resp *models.AuthResponse) error {
	switch {
	case resp.Token == "":
		return fmt.Errorf("decode response: %w: missing token", ErrIncompleteResponse)
	case resp.User.ID == "":
		return fmt.Errorf("decode response: %w: missing user id", ErrIncompleteResponse)
	}
	return nil
}

func decodeRemoteError(status int, raw []byte) *RemoteError {
	re := &RemoteError{StatusCode: status}
	var m models.MessageResponse
	if json.Unmarshal(raw, &m) == nil {
		re.Message = m.Message
	}
	return re
}
