package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xw1nchester/tca-backend/internal/apperror"
	"github.com/xw1nchester/tca-backend/internal/auth"
	"github.com/xw1nchester/tca-backend/internal/backend"
	"github.com/xw1nchester/tca-backend/internal/backend/backendtest"
	mockbackend "github.com/xw1nchester/tca-backend/internal/backend/mocks"
	"github.com/xw1nchester/tca-backend/internal/business"
	"github.com/xw1nchester/tca-backend/internal/profile"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var ErrUnexpected = errors.New("unexpected error")

func newTestManager(t *testing.T, b *backendtest.Backend) *Manager {
	t.Helper()

	m := New(b, zap.NewNop())
	t.Cleanup(m.Close)

	return m
}

func TestManager_Start(t *testing.T) {
	tests := []struct {
		name             string
		setup            func(b *backendtest.Backend)
		expectedEmail    string
		expectedErr      error
		expectedGetUsers int
	}{
		{
			name:             "no session",
			setup:            func(b *backendtest.Backend) {},
			expectedGetUsers: 0,
		},
		{
			name: "restored session",
			setup: func(b *backendtest.Backend) {
				b.AddUser(backend.Identity{ID: "u1", Email: "jane@acme.com", CompanyName: "Acme Cleaning"}, "secret1")
				b.StartSession("jane@acme.com")
			},
			expectedEmail:    "jane@acme.com",
			expectedGetUsers: 1,
		},
		{
			name: "rejected session",
			setup: func(b *backendtest.Backend) {
				b.AddUser(backend.Identity{ID: "u1", Email: "jane@acme.com"}, "secret1")
				b.StartSession("jane@acme.com")
				b.FailOn("GetUser", backend.ErrUnauthorized)
			},
			expectedGetUsers: 1,
		},
		{
			name: "identity lookup fails",
			setup: func(b *backendtest.Backend) {
				b.AddUser(backend.Identity{ID: "u1", Email: "jane@acme.com"}, "secret1")
				b.StartSession("jane@acme.com")
				b.FailOn("GetUser", ErrUnexpected)
			},
			expectedEmail:    "jane@acme.com",
			expectedGetUsers: 1,
		},
		{
			name: "backend not configured",
			setup: func(b *backendtest.Backend) {
				b.FailOn("GetSession", backend.ErrNotConfigured)
			},
			expectedErr:      backend.ErrNotConfigured,
			expectedGetUsers: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := backendtest.New()
			tt.setup(b)

			m := newTestManager(t, b)
			require.True(t, m.Loading())

			err := m.Start(context.Background())
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}

			assert.False(t, m.Loading())
			assert.Equal(t, 1, b.Subscribers())
			assert.Equal(t, tt.expectedGetUsers, b.Calls("GetUser"))

			identity := m.Identity()
			if tt.expectedEmail == "" {
				assert.Nil(t, identity)
			} else {
				require.NotNil(t, identity)
				assert.Equal(t, tt.expectedEmail, identity.Email)
			}
		})
	}
}

func TestManager_CloseUnsubscribes(t *testing.T) {
	b := backendtest.New()
	m := New(b, zap.NewNop())

	require.NoError(t, m.Start(context.Background()))
	require.Equal(t, 1, b.Subscribers())

	m.Close()
	m.Close()

	assert.Equal(t, 0, b.Subscribers())
}

func TestManager_SignUp(t *testing.T) {
	valid := auth.SignUpRequest{
		Email:       "jane@acme.com",
		Password:    "secret1",
		CompanyName: "Acme Cleaning",
		CompanyURL:  "https://acme.example.com",
	}

	tests := []struct {
		name          string
		req           func() auth.SignUpRequest
		setup         func(b *backendtest.Backend)
		expectedKind  backend.Kind
		expectedCalls int
	}{
		{
			name:          "ok",
			req:           func() auth.SignUpRequest { return valid },
			setup:         func(b *backendtest.Backend) {},
			expectedCalls: 1,
		},
		{
			name: "password too short",
			req: func() auth.SignUpRequest {
				r := valid
				r.Password = "12345"
				return r
			},
			setup:         func(b *backendtest.Backend) {},
			expectedKind:  backend.KindValidation,
			expectedCalls: 0,
		},
		{
			name: "invalid email",
			req: func() auth.SignUpRequest {
				r := valid
				r.Email = "jane"
				return r
			},
			setup:         func(b *backendtest.Backend) {},
			expectedKind:  backend.KindValidation,
			expectedCalls: 0,
		},
		{
			name: "missing company name",
			req: func() auth.SignUpRequest {
				r := valid
				r.CompanyName = ""
				return r
			},
			setup:         func(b *backendtest.Backend) {},
			expectedKind:  backend.KindValidation,
			expectedCalls: 0,
		},
		{
			name: "invalid company url",
			req: func() auth.SignUpRequest {
				r := valid
				r.CompanyURL = "acme"
				return r
			},
			setup:         func(b *backendtest.Backend) {},
			expectedKind:  backend.KindValidation,
			expectedCalls: 0,
		},
		{
			name: "duplicate account",
			req:  func() auth.SignUpRequest { return valid },
			setup: func(b *backendtest.Backend) {
				b.AddUser(backend.Identity{ID: "u1", Email: "jane@acme.com"}, "secret1")
			},
			expectedKind:  backend.KindConflict,
			expectedCalls: 1,
		},
		{
			name: "backend unreachable",
			req:  func() auth.SignUpRequest { return valid },
			setup: func(b *backendtest.Backend) {
				b.FailOn("SignUp", backend.Unreachable(errors.New("connection refused")))
			},
			expectedKind:  backend.KindUnreachable,
			expectedCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := backendtest.New()
			tt.setup(b)
			m := newTestManager(t, b)

			identity, err := m.SignUp(context.Background(), tt.req())

			assert.Equal(t, tt.expectedCalls, b.TotalCalls())

			if tt.expectedKind != backend.KindUnknown {
				require.Error(t, err)
				assert.Equal(t, tt.expectedKind, backend.KindOf(err))
				assert.Nil(t, identity)
				assert.Nil(t, m.Identity())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Acme Cleaning", identity.CompanyName)
			assert.Equal(t, "https://acme.example.com", identity.BusinessLink)
			assert.Equal(t, identity, m.Identity())
		})
	}
}

func TestManager_SignUpValidationMessage(t *testing.T) {
	m := newTestManager(t, backendtest.New())

	_, err := m.SignUp(context.Background(), auth.SignUpRequest{Email: "jane@acme.com", Password: "123", CompanyName: "Acme"})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "the minimum length of the Password field is 6 characters", err.Error())
}

func TestManager_SignUpDuplicateMessage(t *testing.T) {
	b := backendtest.New()
	b.AddUser(backend.Identity{ID: "u1", Email: "jane@acme.com"}, "secret1")
	m := newTestManager(t, b)

	_, err := m.SignUp(context.Background(), auth.SignUpRequest{Email: "jane@acme.com", Password: "secret1", CompanyName: "Acme"})

	require.ErrorIs(t, err, backend.ErrConflict)
	assert.Equal(t, "An account with this email already exists. Please sign in instead.", err.Error())
}

func TestManager_SignInNormalizesPlaceholderCompany(t *testing.T) {
	b := backendtest.New()
	b.AddUser(backend.Identity{ID: "u1", Email: "jane@acme.com", CompanyName: "New Company"}, "secret1")
	m := newTestManager(t, b)
	require.NoError(t, m.Start(context.Background()))

	identity, err := m.SignIn(context.Background(), "jane@acme.com", "secret1")
	require.NoError(t, err)

	assert.Equal(t, "Jane Acme", identity.CompanyName)
	assert.Equal(t, "Jane Acme", m.Identity().CompanyName)
	assert.Equal(t, "Jane Acme", b.Identity("jane@acme.com").CompanyName)
	assert.Equal(t, 1, b.Calls("UpdateUser"))
}

func TestManager_SignInKeepsRealCompany(t *testing.T) {
	b := backendtest.New()
	b.AddUser(backend.Identity{ID: "u1", Email: "jane@acme.com", CompanyName: "Acme Cleaning"}, "secret1")
	m := newTestManager(t, b)

	identity, err := m.SignIn(context.Background(), "jane@acme.com", "secret1")
	require.NoError(t, err)

	assert.Equal(t, "Acme Cleaning", identity.CompanyName)
	assert.Equal(t, 0, b.Calls("UpdateUser"))
}

func TestManager_SignInNormalizationSurvivesFailedUpdate(t *testing.T) {
	b := backendtest.New()
	b.AddUser(backend.Identity{ID: "u1", Email: "jane@acme.com", CompanyName: "your company"}, "secret1")
	b.FailOn("UpdateUser", ErrUnexpected)
	m := newTestManager(t, b)

	identity, err := m.SignIn(context.Background(), "jane@acme.com", "secret1")
	require.NoError(t, err)

	assert.Equal(t, "Jane Acme", identity.CompanyName)
	assert.Equal(t, "your company", b.Identity("jane@acme.com").CompanyName)
}

func TestManager_SignInFailureKeepsState(t *testing.T) {
	tests := []struct {
		name         string
		setup        func(b *backendtest.Backend)
		password     string
		expectedKind backend.Kind
	}{
		{
			name:         "wrong password",
			setup:        func(b *backendtest.Backend) {},
			password:     "wrong-password",
			expectedKind: backend.KindInvalidCredentials,
		},
		{
			name: "backend unreachable",
			setup: func(b *backendtest.Backend) {
				b.FailOn("SignIn", backend.Unreachable(errors.New("connection refused")))
			},
			password:     "secret1",
			expectedKind: backend.KindUnreachable,
		},
		{
			name: "backend not configured",
			setup: func(b *backendtest.Backend) {
				b.FailOn("SignIn", backend.ErrNotConfigured)
			},
			password:     "secret1",
			expectedKind: backend.KindNotConfigured,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := backendtest.New()
			b.AddUser(backend.Identity{ID: "u1", Email: "jane@acme.com", CompanyName: "Acme Cleaning"}, "secret1")
			b.AddUser(backend.Identity{ID: "u2", Email: "bob@bolt.com", CompanyName: "Bolt"}, "secret2")
			m := newTestManager(t, b)

			_, err := m.SignIn(context.Background(), "bob@bolt.com", "secret2")
			require.NoError(t, err)

			tt.setup(b)

			identity, err := m.SignIn(context.Background(), "jane@acme.com", tt.password)

			assert.Nil(t, identity)
			assert.Equal(t, tt.expectedKind, backend.KindOf(err))
			assert.Equal(t, "bob@bolt.com", m.Identity().Email)
		})
	}
}

func TestManager_SignInValidation(t *testing.T) {
	b := backendtest.New()
	m := newTestManager(t, b)

	_, err := m.SignIn(context.Background(), "not-an-email", "secret1")

	assert.Equal(t, backend.KindValidation, backend.KindOf(err))
	assert.Equal(t, 0, b.TotalCalls())
}

func TestManager_SignOutClearsIdentity(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(b *backendtest.Backend)
		expectedErr error
	}{
		{
			name:  "ok",
			setup: func(b *backendtest.Backend) {},
		},
		{
			name: "backend error",
			setup: func(b *backendtest.Backend) {
				b.FailOn("SignOut", backend.Unreachable(errors.New("timeout")))
			},
			expectedErr: backend.ErrUnreachable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := backendtest.New()
			b.AddUser(backend.Identity{ID: "u1", Email: "jane@acme.com", CompanyName: "Acme"}, "secret1")
			m := newTestManager(t, b)

			_, err := m.SignIn(context.Background(), "jane@acme.com", "secret1")
			require.NoError(t, err)

			tt.setup(b)

			err = m.SignOut(context.Background())
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}

			assert.Nil(t, m.Identity())
		})
	}
}

func TestManager_ResetPassword(t *testing.T) {
	b := backendtest.New()
	m := newTestManager(t, b)

	err := m.ResetPassword(context.Background(), "jane")
	assert.Equal(t, backend.KindValidation, backend.KindOf(err))
	assert.Equal(t, 0, b.TotalCalls())

	require.NoError(t, m.ResetPassword(context.Background(), "jane@acme.com"))
	assert.Equal(t, []string{"jane@acme.com"}, b.Resets())
}

type recorder struct {
	mu     sync.Mutex
	emails []string
}

func (r *recorder) record(identity *backend.Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if identity == nil {
		r.emails = append(r.emails, "")
		return
	}
	r.emails = append(r.emails, identity.Email)
}

func (r *recorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.emails[len(r.emails)-1]
}

func TestManager_FollowsBackendEvents(t *testing.T) {
	b := backendtest.New()
	b.AddUser(backend.Identity{ID: "u1", Email: "jane@acme.com", CompanyName: "Acme"}, "secret1")
	session := b.StartSession("jane@acme.com")

	m := newTestManager(t, b)
	rec := &recorder{}
	sub := m.Subscribe(rec.record)
	defer sub.Unsubscribe()

	require.NoError(t, m.Start(context.Background()))
	assert.Equal(t, "jane@acme.com", rec.last())

	b.Emit(backend.Event{Type: backend.EventTokenRefreshed, Session: session})
	assert.Equal(t, 2, b.Calls("GetUser"))
	assert.Equal(t, "jane@acme.com", m.Identity().Email)

	b.Emit(backend.Event{Type: backend.EventSignedOut})
	assert.Nil(t, m.Identity())
	assert.Equal(t, "", rec.last())
}

func TestManager_UnsubscribedListenerNotCalled(t *testing.T) {
	b := backendtest.New()
	m := newTestManager(t, b)

	calls := 0
	sub := m.Subscribe(func(*backend.Identity) { calls++ })
	sub.Unsubscribe()

	require.NoError(t, m.Start(context.Background()))

	assert.Equal(t, 0, calls)
}

type countingSubscription struct{ calls int }

func (s *countingSubscription) Unsubscribe() { s.calls++ }

func TestManager_Start_SubscribesBeforeReadingSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := mockbackend.NewMockAuth(ctrl)
	sub := &countingSubscription{}

	identity := &backend.Identity{ID: "u1", Email: "jane@acme.com", CompanyName: "Acme"}

	gomock.InOrder(
		b.EXPECT().OnSessionChange(gomock.Any()).Return(sub),
		b.EXPECT().GetSession(gomock.Any()).Return(&backend.Session{User: *identity}, nil),
		b.EXPECT().GetUser(gomock.Any()).Return(identity, nil),
	)

	m := New(b, zap.NewNop())
	require.NoError(t, m.Start(context.Background()))

	assert.Equal(t, identity, m.Identity())
	assert.False(t, m.Loading())

	m.Close()
	m.Close()
	assert.Equal(t, 1, sub.calls)
}

// gatedUser holds the first GetUser call until release is closed and then
// answers with the identity it was built with, whatever the backend state.
type gatedUser struct {
	*backendtest.Backend
	identity backend.Identity
	entered  chan struct{}
	release  chan struct{}
	once     sync.Once
}

func (g *gatedUser) GetUser(ctx context.Context) (*backend.Identity, error) {
	first := false
	g.once.Do(func() { first = true })
	if !first {
		return g.Backend.GetUser(ctx)
	}

	close(g.entered)
	<-g.release

	identity := g.identity
	return &identity, nil
}

func TestManager_StaleStartResolutionDiscarded(t *testing.T) {
	b := backendtest.New()
	b.AddUser(backend.Identity{ID: "u1", Email: "jane@acme.com", CompanyName: "Acme"}, "secret1")
	b.StartSession("jane@acme.com")

	auth := &gatedUser{
		Backend:  b,
		identity: b.Identity("jane@acme.com"),
		entered:  make(chan struct{}),
		release:  make(chan struct{}),
	}

	m := New(auth, zap.NewNop())
	defer m.Close()

	rec := &recorder{}
	sub := m.Subscribe(rec.record)
	defer sub.Unsubscribe()

	started := make(chan error, 1)
	go func() { started <- m.Start(context.Background()) }()

	<-auth.entered
	require.NoError(t, m.SignOut(context.Background()))
	close(auth.release)
	require.NoError(t, <-started)

	assert.Nil(t, m.Identity())
	assert.False(t, m.Loading())

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.NotContains(t, rec.emails, "jane@acme.com")
}

func TestManager_ListenersSeeChangesInOrder(t *testing.T) {
	b := backendtest.New()
	b.AddUser(backend.Identity{ID: "u1", Email: "jane@acme.com", CompanyName: "Acme"}, "secret1")
	b.StartSession("jane@acme.com")
	m := newTestManager(t, b)
	ctx := context.Background()

	signedOut := false
	first := m.Subscribe(func(identity *backend.Identity) {
		if identity != nil && !signedOut {
			signedOut = true
			require.NoError(t, m.SignOut(ctx))
		}
	})
	defer first.Unsubscribe()

	rec := &recorder{}
	second := m.Subscribe(rec.record)
	defer second.Unsubscribe()

	require.NoError(t, m.Start(ctx))

	assert.Nil(t, m.Identity())

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.NotEmpty(t, rec.emails)
	assert.Equal(t, "jane@acme.com", rec.emails[0])
	assert.Equal(t, "", rec.emails[len(rec.emails)-1])
}

func TestManager_FollowKeepsProfileInStep(t *testing.T) {
	b := backendtest.New()
	b.AddUser(backend.Identity{ID: "u1", Email: "jane@acme.com", CompanyName: "Acme"}, "secret1")
	b.SetProfile(business.Profile{UserID: "u1", Name: "Acme Cleaning"})
	ctx := context.Background()

	m := newTestManager(t, b)
	log := zap.NewNop()
	dashboard := profile.NewDashboard(profile.NewResolver(b, log), profile.NewGateway(b, log), log)

	sub := m.Follow(ctx, dashboard)
	defer sub.Unsubscribe()

	require.NoError(t, m.Start(ctx))
	assert.Equal(t, profile.KindUnresolved, dashboard.Snapshot().Kind)

	_, err := m.SignIn(ctx, "jane@acme.com", "secret1")
	require.NoError(t, err)

	state := dashboard.Snapshot()
	assert.Equal(t, profile.KindPersisted, state.Kind)
	assert.Equal(t, "Acme Cleaning", state.Profile.Name)

	b.SetProfile(business.Profile{ID: state.Profile.ID, UserID: "u1", Name: "Acme Cleaning Co"})
	reads := b.Calls("GetByOwner")

	session, err := b.GetSession(ctx)
	require.NoError(t, err)
	b.Emit(backend.Event{Type: backend.EventTokenRefreshed, Session: session})

	assert.Greater(t, b.Calls("GetByOwner"), reads)
	assert.Equal(t, "Acme Cleaning Co", dashboard.Snapshot().Profile.Name)

	b.Emit(backend.Event{Type: backend.EventSignedOut})

	assert.Equal(t, profile.KindUnresolved, dashboard.Snapshot().Kind)
	assert.Nil(t, m.Identity())
}
