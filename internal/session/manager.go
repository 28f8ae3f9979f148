package session

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/xw1nchester/tca-backend/internal/apperror"
	"github.com/xw1nchester/tca-backend/internal/auth"
	"github.com/xw1nchester/tca-backend/internal/backend"
	"github.com/xw1nchester/tca-backend/internal/profile"
	"go.uber.org/zap"
)

// Manager owns the signed-in identity of one member. It follows the backend's
// session change notifications from Start until Close.
type Manager struct {
	auth      backend.Auth
	logger    *zap.Logger
	validate  *validator.Validate
	listeners *backend.Notifier

	mu         sync.Mutex
	ctx        context.Context
	identity   *backend.Identity
	loading    bool
	token      uint64
	sub        backend.Subscription
	pending    []backend.Event
	delivering bool
}

// ProfileLoader is the profile view kept in step with the signed-in identity.
type ProfileLoader interface {
	Load(ctx context.Context, identity *backend.Identity) bool
}

func New(authBackend backend.Auth, logger *zap.Logger) *Manager {
	return &Manager{
		auth:      authBackend,
		logger:    logger,
		validate:  validator.New(),
		listeners: backend.NewNotifier(),
		ctx:       context.Background(),
		loading:   true,
	}
}

// Start subscribes to session changes and resolves the current session, if any.
// Identity stays absent when the backend cannot be reached or is not configured.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	m.ctx = context.WithoutCancel(ctx)
	if m.sub == nil {
		m.sub = m.auth.OnSessionChange(m.handleEvent)
	}
	token := m.nextToken()
	m.mu.Unlock()

	s, err := m.auth.GetSession(ctx)
	if err != nil {
		if backend.KindOf(err) == backend.KindNotConfigured {
			m.logger.Warn("backend is not configured, continuing signed out")
		} else {
			m.logger.Error("unexpected error when getting current session", zap.Error(err))
		}
		m.apply(token, nil, backend.EventSignedOut)
		return err
	}

	if s == nil {
		m.apply(token, nil, backend.EventSignedOut)
		return nil
	}

	m.apply(token, m.resolve(ctx, s), backend.EventSignedIn)

	return nil
}

func (m *Manager) Close() {
	m.mu.Lock()
	sub := m.sub
	m.sub = nil
	m.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
}

// Identity returns a copy of the signed-in identity, or nil.
func (m *Manager) Identity() *backend.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()

	return copyIdentity(m.identity)
}

// Loading is true until the first resolution completes.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.loading
}

// Subscribe registers fn to be called with the new identity, or nil, whenever it changes.
func (m *Manager) Subscribe(fn func(*backend.Identity)) backend.Subscription {
	return m.listeners.Subscribe(func(e backend.Event) {
		if e.Session == nil {
			fn(nil)
			return
		}
		fn(copyIdentity(&e.Session.User))
	})
}

// Follow resolves the profile in loader on every identity change for as long as
// the returned subscription is held. Sign-out hands it a nil identity.
func (m *Manager) Follow(ctx context.Context, loader ProfileLoader) backend.Subscription {
	return m.Subscribe(func(identity *backend.Identity) {
		loader.Load(ctx, identity)
	})
}

func (m *Manager) SignIn(ctx context.Context, email, password string) (*backend.Identity, error) {
	if err := m.check(auth.SignInRequest{Email: email, Password: password}); err != nil {
		return nil, err
	}

	s, err := m.auth.SignIn(ctx, email, password)
	if err != nil {
		m.logFailure("signing in", err)
		return nil, err
	}

	identity := s.User
	if profile.IsPlaceholder(identity.CompanyName) {
		identity = m.normalizeCompanyName(ctx, identity)
	}

	m.apply(m.issueToken(), &identity, backend.EventSignedIn)

	return copyIdentity(&identity), nil
}

func (m *Manager) normalizeCompanyName(ctx context.Context, identity backend.Identity) backend.Identity {
	derived := profile.DeriveName(identity.Email)
	if derived == "" {
		return identity
	}

	updated, err := m.auth.UpdateUser(ctx, backend.UserAttributes{CompanyName: &derived})
	if err != nil {
		m.logger.Warn("could not update placeholder company name", zap.String("user", identity.ID), zap.Error(err))
		identity.CompanyName = derived
		return identity
	}

	return *updated
}

func (m *Manager) SignUp(ctx context.Context, req auth.SignUpRequest) (*backend.Identity, error) {
	if err := m.check(req); err != nil {
		return nil, err
	}

	s, err := m.auth.SignUp(ctx, req.Email, req.Password, backend.SignUpAttributes{
		CompanyName: req.CompanyName,
		CompanyURL:  req.CompanyURL,
	})
	if err != nil {
		m.logFailure("signing up", err)
		return nil, err
	}

	identity := s.User
	m.apply(m.issueToken(), &identity, backend.EventSignedIn)

	return copyIdentity(&identity), nil
}

// SignOut clears the local identity even when the backend call fails.
func (m *Manager) SignOut(ctx context.Context) error {
	err := m.auth.SignOut(ctx)
	if err != nil {
		m.logger.Warn("sign out was not acknowledged by the backend", zap.Error(err))
	}

	m.apply(m.issueToken(), nil, backend.EventSignedOut)

	return err
}

func (m *Manager) ResetPassword(ctx context.Context, email string) error {
	if err := m.check(auth.ResetPasswordRequest{Email: email}); err != nil {
		return err
	}

	if err := m.auth.ResetPassword(ctx, email); err != nil {
		m.logFailure("requesting password reset", err)
		return err
	}

	return nil
}

func (m *Manager) handleEvent(e backend.Event) {
	token := m.issueToken()

	if e.Type == backend.EventSignedOut || e.Session == nil {
		m.apply(token, nil, backend.EventSignedOut)
		return
	}

	m.mu.Lock()
	ctx := m.ctx
	m.mu.Unlock()

	m.apply(token, m.resolve(ctx, e.Session), e.Type)
}

// resolve fetches the freshest identity for s. The session's own copy is used
// when the backend cannot answer; a rejected session resolves to nil.
func (m *Manager) resolve(ctx context.Context, s *backend.Session) *backend.Identity {
	identity, err := m.auth.GetUser(ctx)
	if err != nil {
		if backend.KindOf(err) == backend.KindUnauthorized {
			m.logger.Info("session is no longer valid", zap.String("user", s.User.ID))
			return nil
		}

		m.logger.Warn("could not refresh identity, using session copy", zap.String("user", s.User.ID), zap.Error(err))
		user := s.User
		return &user
	}

	return identity
}

// apply installs identity unless a newer request was issued after token.
//
// Listeners see changes in the order they were installed. Whoever finds the
// queue idle delivers it, so an apply made from inside a listener or from
// another goroutine is queued behind the change being delivered.
func (m *Manager) apply(token uint64, identity *backend.Identity, cause backend.EventType) {
	event := backend.Event{Type: cause}
	if identity != nil {
		event.Session = &backend.Session{User: *copyIdentity(identity)}
	}

	m.mu.Lock()
	if token != m.token {
		m.mu.Unlock()
		m.logger.Debug("discarding stale identity resolution", zap.Uint64("token", token))
		return
	}
	m.identity = copyIdentity(identity)
	m.loading = false
	m.pending = append(m.pending, event)
	if m.delivering {
		m.mu.Unlock()
		return
	}
	m.delivering = true
	m.mu.Unlock()

	m.deliver()
}

func (m *Manager) deliver() {
	for {
		m.mu.Lock()
		if len(m.pending) == 0 {
			m.delivering = false
			m.mu.Unlock()
			return
		}
		event := m.pending[0]
		m.pending = m.pending[1:]
		m.mu.Unlock()

		m.listeners.Publish(event)
	}
}

func (m *Manager) issueToken() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.nextToken()
}

func (m *Manager) nextToken() uint64 {
	m.token++
	return m.token
}

func (m *Manager) check(req any) error {
	if err := m.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return backend.Wrap(backend.KindValidation, apperror.NewValidationErr(validationErrs))
		}
		return backend.Wrap(backend.KindValidation, err)
	}

	return nil
}

func (m *Manager) logFailure(action string, err error) {
	switch backend.KindOf(err) {
	case backend.KindUnknown:
		m.logger.Error("unexpected error when "+action, zap.Error(err))
	default:
		m.logger.Info(action+" failed", zap.Error(err))
	}
}

func copyIdentity(identity *backend.Identity) *backend.Identity {
	if identity == nil {
		return nil
	}
	c := *identity
	if identity.MembershipExpires != nil {
		expires := *identity.MembershipExpires
		c.MembershipExpires = &expires
	}
	return &c
}
