package tcaclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xw1nchester/tca-backend/internal/backend"
	"github.com/xw1nchester/tca-backend/internal/business"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testKey = "test-key"

type fakeServer struct {
	*httptest.Server

	mu        sync.Mutex
	access    string
	refreshes int32
	profile   *business.Profile
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()

	fs := &fakeServer{access: "access-1"}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/sign-in", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret1" {
			writeError(w, http.StatusBadRequest, "invalid_credentials", "invalid credentials")
			return
		}
		writeJSON(w, fs.session(time.Hour))
	})
	mux.HandleFunc("POST /api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["refreshToken"] != "refresh-1" {
			writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}
		atomic.AddInt32(&fs.refreshes, 1)
		fs.mu.Lock()
		fs.access = "access-2"
		fs.mu.Unlock()
		writeJSON(w, fs.session(time.Hour))
	})
	mux.HandleFunc("POST /api/auth/sign-out", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /api/auth/user", func(w http.ResponseWriter, r *http.Request) {
		if !fs.authorized(r) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}
		writeJSON(w, testIdentity())
	})
	mux.HandleFunc("GET /api/me/business", func(w http.ResponseWriter, r *http.Request) {
		if !fs.authorized(r) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}
		fs.mu.Lock()
		defer fs.mu.Unlock()
		if fs.profile == nil {
			writeError(w, http.StatusNotFound, "no_row", "Company profile not found")
			return
		}
		writeJSON(w, fs.profile)
	})
	mux.HandleFunc("GET /api/businesses", func(w http.ResponseWriter, r *http.Request) {
		businesses := []business.Profile{}
		if r.URL.Query().Get("search") == "acme" && r.URL.Query().Get("page") == "2" {
			businesses = append(businesses, business.Profile{ID: "b1", Name: "Acme"})
		}
		writeJSON(w, map[string]any{"businesses": businesses})
	})
	mux.HandleFunc("PUT /api/me/business", func(w http.ResponseWriter, r *http.Request) {
		if !fs.authorized(r) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}
		var p business.Profile
		_ = json.NewDecoder(r.Body).Decode(&p)
		p.ID = "b0000000-0000-0000-0000-000000000001"
		fs.mu.Lock()
		fs.profile = &p
		fs.mu.Unlock()
		writeJSON(w, p)
	})

	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(APIKeyHeader) != testKey {
			writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(fs.Close)

	return fs
}

func (fs *fakeServer) session(ttl time.Duration) backend.Session {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	return backend.Session{
		AccessToken:  fs.access,
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().Add(ttl).UTC().Truncate(time.Second),
		User:         testIdentity(),
	}
}

func (fs *fakeServer) authorized(r *http.Request) bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	return r.Header.Get("Authorization") == "Bearer "+fs.access
}

func testIdentity() backend.Identity {
	return backend.Identity{
		ID:             "u0000000-0000-0000-0000-000000000001",
		Email:          "owner@acme.com",
		CompanyName:    "Acme",
		MembershipTier: backend.FreeTier,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message, "code": code})
}

func newTestClient(t *testing.T, fs *fakeServer, sessionFile string) *Client {
	t.Helper()

	c := New(Config{
		URL:         fs.URL,
		APIKey:      testKey,
		SessionFile: sessionFile,
		HTTPClient:  fs.Client(),
	})
	t.Cleanup(c.Close)

	return c
}

func TestClient_NotConfigured(t *testing.T) {
	c := New(Config{URL: "http://127.0.0.1:1"})
	defer c.Close()

	ctx := context.Background()

	_, err := c.GetSession(ctx)
	assert.ErrorIs(t, err, backend.ErrNotConfigured)

	_, err = c.SignIn(ctx, "owner@acme.com", "secret1")
	assert.ErrorIs(t, err, backend.ErrNotConfigured)

	_, err = c.GetByOwner(ctx, "u1")
	assert.ErrorIs(t, err, backend.ErrNotConfigured)

	assert.ErrorIs(t, c.SignOut(ctx), backend.ErrNotConfigured)
}

func TestClient_SignIn_PersistsAndNotifies(t *testing.T) {
	fs := newFakeServer(t)
	sessionFile := filepath.Join(t.TempDir(), "session.json")
	c := newTestClient(t, fs, sessionFile)

	var events []backend.EventType
	sub := c.OnSessionChange(func(e backend.Event) { events = append(events, e.Type) })
	defer sub.Unsubscribe()

	s, err := c.SignIn(context.Background(), "owner@acme.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "access-1", s.AccessToken)
	assert.Equal(t, []backend.EventType{backend.EventSignedIn}, events)

	restored := newTestClient(t, fs, sessionFile)
	got, err := restored.GetSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, testIdentity().ID, got.User.ID)
}

func TestClient_SignIn_InvalidCredentials(t *testing.T) {
	fs := newFakeServer(t)
	c := newTestClient(t, fs, "")

	_, err := c.SignIn(context.Background(), "owner@acme.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, backend.KindInvalidCredentials, backend.KindOf(err))
	assert.Equal(t, "invalid credentials", err.Error())

	s, err := c.GetSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestClient_SignOut_ClearsSessionFile(t *testing.T) {
	fs := newFakeServer(t)
	sessionFile := filepath.Join(t.TempDir(), "session.json")
	c := newTestClient(t, fs, sessionFile)

	_, err := c.SignIn(context.Background(), "owner@acme.com", "secret1")
	require.NoError(t, err)

	var last backend.Event
	c.OnSessionChange(func(e backend.Event) { last = e })

	require.NoError(t, c.SignOut(context.Background()))
	assert.Equal(t, backend.EventSignedOut, last.Type)
	assert.Nil(t, last.Session)
	assert.NoFileExists(t, sessionFile)
}

func TestClient_GetUser_RefreshesOnUnauthorized(t *testing.T) {
	fs := newFakeServer(t)
	c := newTestClient(t, fs, "")

	_, err := c.SignIn(context.Background(), "owner@acme.com", "secret1")
	require.NoError(t, err)

	// the server rotates the access token behind the client's back
	fs.mu.Lock()
	fs.access = "access-rotated"
	fs.mu.Unlock()

	var refreshed bool
	c.OnSessionChange(func(e backend.Event) {
		if e.Type == backend.EventTokenRefreshed {
			refreshed = true
		}
	})

	identity, err := c.GetUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testIdentity().Email, identity.Email)
	assert.True(t, refreshed)
	assert.EqualValues(t, 1, atomic.LoadInt32(&fs.refreshes))
}

func TestClient_GetSession_ExpiredRefreshes(t *testing.T) {
	fs := newFakeServer(t)
	c := newTestClient(t, fs, "")

	_, err := c.SignIn(context.Background(), "owner@acme.com", "secret1")
	require.NoError(t, err)

	c.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	s, err := c.GetSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "access-2", s.AccessToken)
}

func TestClient_Profiles(t *testing.T) {
	fs := newFakeServer(t)
	c := newTestClient(t, fs, "")
	ctx := context.Background()

	_, err := c.GetByOwner(ctx, testIdentity().ID)
	assert.ErrorIs(t, err, backend.ErrUnauthorized)

	_, err = c.SignIn(ctx, "owner@acme.com", "secret1")
	require.NoError(t, err)

	_, err = c.GetByOwner(ctx, testIdentity().ID)
	assert.Equal(t, backend.KindNoRow, backend.KindOf(err))

	_, err = c.GetByOwner(ctx, "someone-else")
	assert.ErrorIs(t, err, backend.ErrUnauthorized)

	saved, err := c.Upsert(ctx, business.Profile{UserID: testIdentity().ID, Name: "Acme"})
	require.NoError(t, err)
	assert.True(t, saved.HasPermanentID())

	got, err := c.GetByOwner(ctx, testIdentity().ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
}

func TestClient_Search(t *testing.T) {
	fs := newFakeServer(t)
	c := newTestClient(t, fs, "")

	got, err := c.Search(context.Background(), "acme", 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Acme", got[0].Name)

	got, err = c.Search(context.Background(), "", 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_Unreachable(t *testing.T) {
	fs := newFakeServer(t)
	c := newTestClient(t, fs, "")
	fs.Close()

	_, err := c.SignIn(context.Background(), "owner@acme.com", "secret1")
	require.Error(t, err)
	assert.Equal(t, backend.KindUnreachable, backend.KindOf(err))
}

func TestClient_BackgroundRefresh(t *testing.T) {
	fs := newFakeServer(t)

	c := New(Config{
		URL:             fs.URL,
		APIKey:          testKey,
		HTTPClient:      fs.Client(),
		RefreshInterval: 10 * time.Millisecond,
		RefreshMargin:   2 * time.Hour,
	})
	defer c.Close()

	_, err := c.SignIn(context.Background(), "owner@acme.com", "secret1")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&fs.refreshes) > 0
	}, time.Second, 10*time.Millisecond)
}

func TestDecodeError(t *testing.T) {
	testTable := []struct {
		name         string
		status       int
		body         string
		expectedKind backend.Kind
	}{
		{
			name:         "code wins over status",
			status:       http.StatusServiceUnavailable,
			body:         `{"message":"setting up","code":"table_missing"}`,
			expectedKind: backend.KindTableMissing,
		},
		{
			name:         "conflict code",
			status:       http.StatusConflict,
			body:         `{"message":"exists","code":"conflict"}`,
			expectedKind: backend.KindConflict,
		},
		{
			name:         "status fallback 404",
			status:       http.StatusNotFound,
			body:         `not json`,
			expectedKind: backend.KindNoRow,
		},
		{
			name:         "status fallback 502",
			status:       http.StatusBadGateway,
			expectedKind: backend.KindUnreachable,
		},
		{
			name:         "status fallback 500",
			status:       http.StatusInternalServerError,
			body:         `{"message":"internal error"}`,
			expectedKind: backend.KindUnknown,
		},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			recorder.WriteHeader(testCase.status)
			recorder.WriteString(testCase.body)

			err := decodeError(recorder.Result())

			assert.Equal(t, testCase.expectedKind, backend.KindOf(err))
		})
	}
}
