// Package tcaclient talks to the TCA HTTP API and implements backend.Auth and
// backend.Profiles on top of it.
package tcaclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/xw1nchester/tca-backend/internal/apperror"
	"github.com/xw1nchester/tca-backend/internal/backend"
	"github.com/xw1nchester/tca-backend/internal/business"
	"go.uber.org/zap"
)

const (
	APIKeyHeader = "X-API-Key"

	defaultTimeout         = 10 * time.Second
	defaultRefreshInterval = 30 * time.Second
	defaultRefreshMargin   = time.Minute
)

type Config struct {
	URL         string
	APIKey      string
	SessionFile string

	HTTPClient *http.Client
	Logger     *zap.Logger
	// RefreshInterval is how often the background refresher checks the session.
	RefreshInterval time.Duration
	// RefreshMargin refreshes the access token this long before it expires.
	RefreshMargin time.Duration
}

type Client struct {
	baseURL  string
	apiKey   string
	http     *http.Client
	store    fileStore
	logger   *zap.Logger
	notifier *backend.Notifier
	margin   time.Duration
	now      func() time.Time

	mu        sync.Mutex
	session   *backend.Session
	loaded    bool
	refreshMu sync.Mutex

	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

var (
	_ backend.Auth     = (*Client)(nil)
	_ backend.Profiles = (*Client)(nil)
)

// New builds a client. Without a URL or API key every call fails with
// backend.ErrNotConfigured and nothing touches the network.
func New(cfg Config) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(cfg.URL, "/"),
		apiKey:   cfg.APIKey,
		http:     cfg.HTTPClient,
		store:    fileStore{path: cfg.SessionFile},
		logger:   cfg.Logger,
		notifier: backend.NewNotifier(),
		margin:   cfg.RefreshMargin,
		now:      time.Now,
		done:     make(chan struct{}),
	}

	if c.http == nil {
		c.http = &http.Client{Timeout: defaultTimeout}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.margin <= 0 {
		c.margin = defaultRefreshMargin
	}

	if !c.configured() {
		close(c.done)
		return c
	}

	interval := cfg.RefreshInterval
	if interval <= 0 {
		interval = defaultRefreshInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	go c.refreshLoop(ctx, interval)

	return c
}

func (c *Client) configured() bool {
	return c.baseURL != "" && c.apiKey != ""
}

// Close stops the background refresher and waits for it to exit.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		if c.cancel != nil {
			c.cancel()
		}
	})
	<-c.done
}

func (c *Client) OnSessionChange(fn func(backend.Event)) backend.Subscription {
	return c.notifier.Subscribe(fn)
}

func (c *Client) GetSession(ctx context.Context) (*backend.Session, error) {
	if !c.configured() {
		return nil, backend.ErrNotConfigured
	}

	s, err := c.current()
	if err != nil || s == nil {
		return nil, err
	}

	if s.Expired(c.now()) {
		s, err = c.refresh(ctx, s.RefreshToken)
		if err != nil {
			if backend.KindOf(err) == backend.KindUnauthorized {
				return nil, nil
			}
			return nil, err
		}
	}

	return s, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*backend.Session, error) {
	var s backend.Session
	if err := c.do(ctx, http.MethodPost, "/auth/sign-in", "", map[string]string{
		"email":    email,
		"password": password,
	}, &s); err != nil {
		return nil, err
	}

	c.install(&s, backend.EventSignedIn)

	return copySession(&s), nil
}

func (c *Client) SignUp(ctx context.Context, email, password string, attrs backend.SignUpAttributes) (*backend.Session, error) {
	var s backend.Session
	if err := c.do(ctx, http.MethodPost, "/auth/sign-up", "", map[string]string{
		"email":       email,
		"password":    password,
		"companyName": attrs.CompanyName,
		"companyUrl":  attrs.CompanyURL,
	}, &s); err != nil {
		return nil, err
	}

	c.install(&s, backend.EventSignedIn)

	return copySession(&s), nil
}

// SignOut forgets the local session even when the server cannot be told.
func (c *Client) SignOut(ctx context.Context) error {
	if !c.configured() {
		return backend.ErrNotConfigured
	}

	s, _ := c.current()

	var err error
	if s != nil {
		err = c.do(ctx, http.MethodPost, "/auth/sign-out", "", map[string]string{
			"refreshToken": s.RefreshToken,
		}, nil)
	}

	c.install(nil, backend.EventSignedOut)

	return err
}

func (c *Client) ResetPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/reset-password", "", map[string]string{"email": email}, nil)
}

func (c *Client) GetUser(ctx context.Context) (*backend.Identity, error) {
	var identity backend.Identity
	if err := c.doAuthed(ctx, http.MethodGet, "/auth/user", nil, &identity); err != nil {
		return nil, err
	}

	return &identity, nil
}

func (c *Client) UpdateUser(ctx context.Context, attrs backend.UserAttributes) (*backend.Identity, error) {
	var identity backend.Identity
	if err := c.doAuthed(ctx, http.MethodPatch, "/auth/user", attrs, &identity); err != nil {
		return nil, err
	}

	c.mu.Lock()
	var updated *backend.Session
	if c.session != nil {
		c.session.User = identity
		updated = copySession(c.session)
	}
	c.mu.Unlock()

	if updated != nil {
		c.persist(updated)
		c.notifier.Publish(backend.Event{Type: backend.EventUserUpdated, Session: updated})
	}

	return &identity, nil
}

// GetByOwner reads the signed-in member's profile. The server derives the
// owner from the access token, so ownerID must match the session.
func (c *Client) GetByOwner(ctx context.Context, ownerID string) (*business.Profile, error) {
	if err := c.checkOwner(ownerID); err != nil {
		return nil, err
	}

	var p business.Profile
	if err := c.doAuthed(ctx, http.MethodGet, "/me/business", nil, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

func (c *Client) Upsert(ctx context.Context, profile business.Profile) (*business.Profile, error) {
	if err := c.checkOwner(profile.UserID); err != nil {
		return nil, err
	}

	var saved business.Profile
	if err := c.doAuthed(ctx, http.MethodPut, "/me/business", profile, &saved); err != nil {
		return nil, err
	}

	return &saved, nil
}

func (c *Client) DeleteByOwner(ctx context.Context, ownerID string) error {
	if err := c.checkOwner(ownerID); err != nil {
		return err
	}

	return c.doAuthed(ctx, http.MethodDelete, "/me/business", nil, nil)
}

// Search reads one page of the public directory. It needs no session.
func (c *Client) Search(ctx context.Context, term string, page int) ([]business.Profile, error) {
	query := url.Values{}
	if term != "" {
		query.Set("search", term)
	}
	if page > 1 {
		query.Set("page", strconv.Itoa(page))
	}

	path := "/businesses"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var directory struct {
		Businesses []business.Profile `json:"businesses"`
	}
	if err := c.do(ctx, http.MethodGet, path, "", nil, &directory); err != nil {
		return nil, err
	}

	return directory.Businesses, nil
}

func (c *Client) checkOwner(ownerID string) error {
	if !c.configured() {
		return backend.ErrNotConfigured
	}

	s, err := c.current()
	if err != nil {
		return err
	}

	if s == nil || s.User.ID != ownerID {
		return backend.ErrUnauthorized
	}

	return nil
}

// current returns the in-memory session, loading it from the store once.
func (c *Client) current() (*backend.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		s, err := c.store.load()
		if err != nil {
			c.logger.Warn("ignoring unreadable session file", zap.Error(err))
		}
		c.session = s
		c.loaded = true
	}

	return copySession(c.session), nil
}

func (c *Client) install(s *backend.Session, eventType backend.EventType) {
	c.setSession(s)
	c.publish(s, eventType)
}

func (c *Client) setSession(s *backend.Session) {
	c.mu.Lock()
	c.session = copySession(s)
	c.loaded = true
	c.mu.Unlock()

	c.persist(s)
}

func (c *Client) publish(s *backend.Session, eventType backend.EventType) {
	c.notifier.Publish(backend.Event{Type: eventType, Session: copySession(s)})
}

func (c *Client) persist(s *backend.Session) {
	if err := c.store.save(s); err != nil {
		c.logger.Warn("could not persist session", zap.Error(err))
	}
}

// refresh exchanges token for a new session. Concurrent callers holding the
// same stale token share one exchange. Subscribers are notified after the
// exchange lock is released so they may call back into the client.
func (c *Client) refresh(ctx context.Context, token string) (*backend.Session, error) {
	s, eventType, err := c.exchange(ctx, token)
	if eventType != "" {
		c.publish(s, eventType)
	}
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (c *Client) exchange(ctx context.Context, token string) (*backend.Session, backend.EventType, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if s, _ := c.current(); s != nil && s.RefreshToken != token && !s.Expired(c.now()) {
		return s, "", nil
	}

	var s backend.Session
	err := c.do(ctx, http.MethodPost, "/auth/refresh", "", map[string]string{"refreshToken": token}, &s)
	if err != nil {
		if backend.KindOf(err) == backend.KindUnauthorized {
			c.logger.Info("refresh token rejected, signing out")
			c.setSession(nil)
			return nil, backend.EventSignedOut, err
		}
		return nil, "", err
	}

	c.setSession(&s)

	return copySession(&s), backend.EventTokenRefreshed, nil
}

func (c *Client) refreshLoop(ctx context.Context, interval time.Duration) {
	defer close(c.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.refreshIfDue(ctx)
		}
	}
}

func (c *Client) refreshIfDue(ctx context.Context) {
	s, _ := c.current()
	if s == nil || s.ExpiresAt.Sub(c.now()) > c.margin {
		return
	}

	if _, err := c.refresh(ctx, s.RefreshToken); err != nil && ctx.Err() == nil {
		c.logger.Warn("background token refresh failed", zap.Error(err))
	}
}

// doAuthed sends an authenticated request, refreshing once on 401.
func (c *Client) doAuthed(ctx context.Context, method, path string, in, out any) error {
	if !c.configured() {
		return backend.ErrNotConfigured
	}

	s, err := c.current()
	if err != nil {
		return err
	}
	if s == nil {
		return backend.ErrUnauthorized
	}

	err = c.do(ctx, method, path, s.AccessToken, in, out)
	if backend.KindOf(err) != backend.KindUnauthorized {
		return err
	}

	s, err = c.refresh(ctx, s.RefreshToken)
	if err != nil {
		return err
	}

	return c.do(ctx, method, path, s.AccessToken, in, out)
}

func (c *Client) do(ctx context.Context, method, path, accessToken string, in, out any) error {
	if !c.configured() {
		return backend.ErrNotConfigured
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(APIKeyHeader, c.apiKey)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return backend.Unreachable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}

	return nil
}

// decodeError maps an error response onto a backend kind. The body's code
// wins; the status code is the fallback.
func decodeError(resp *http.Response) error {
	var appErr apperror.AppError
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&appErr)

	kind := appErr.Kind()
	if appErr.Code == "" {
		kind = kindFromStatus(resp.StatusCode)
	}

	message := appErr.Message
	if message == "" {
		message = fmt.Sprintf("unexpected status %d", resp.StatusCode)
	}

	return backend.New(kind, message)
}

func kindFromStatus(status int) backend.Kind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return backend.KindUnauthorized
	case http.StatusNotFound:
		return backend.KindNoRow
	case http.StatusConflict:
		return backend.KindConflict
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return backend.KindUnreachable
	default:
		return backend.KindUnknown
	}
}

func copySession(s *backend.Session) *backend.Session {
	if s == nil {
		return nil
	}
	c := *s
	if s.User.MembershipExpires != nil {
		expires := *s.User.MembershipExpires
		c.User.MembershipExpires = &expires
	}
	return &c
}
