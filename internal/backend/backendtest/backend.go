// Package backendtest provides an in-memory backend for lifecycle tests.
package backendtest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/xw1nchester/tca-backend/internal/backend"
	"github.com/xw1nchester/tca-backend/internal/business"
)

type user struct {
	identity backend.Identity
	password string
}

// Backend implements backend.Auth and backend.Profiles in memory and records
// every call so tests can assert on backend traffic.
type Backend struct {
	mu       sync.Mutex
	notifier *backend.Notifier
	users    map[string]*user
	session  *backend.Session
	profiles map[string]business.Profile
	failures map[string]error
	calls    map[string]int
	upserts  []business.Profile
	resets   []string
	seq      int

	// TableMissing makes every profile call fail as if the table was never provisioned.
	TableMissing bool
	Now          func() time.Time
}

var (
	_ backend.Auth     = (*Backend)(nil)
	_ backend.Profiles = (*Backend)(nil)
)

func New() *Backend {
	return &Backend{
		notifier: backend.NewNotifier(),
		users:    make(map[string]*user),
		profiles: make(map[string]business.Profile),
		failures: make(map[string]error),
		calls:    make(map[string]int),
		Now:      time.Now,
	}
}

func (b *Backend) AddUser(identity backend.Identity, password string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.users[identity.Email] = &user{identity: identity, password: password}
}

// StartSession installs a session for the user with the given email as if it had
// been restored from storage.
func (b *Backend) StartSession(email string) *backend.Session {
	b.mu.Lock()
	defer b.mu.Unlock()

	u := b.users[email]
	b.session = b.newSessionLocked(u.identity)

	s := *b.session
	return &s
}

func (b *Backend) SetProfile(profile business.Profile) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if profile.ID == "" {
		b.seq++
		profile.ID = fmt.Sprintf("biz-%d", b.seq)
	}
	b.profiles[profile.UserID] = profile.Clone()
}

func (b *Backend) Profile(ownerID string) (business.Profile, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.profiles[ownerID]
	return p.Clone(), ok
}

func (b *Backend) ProfileCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.profiles)
}

func (b *Backend) Identity(email string) backend.Identity {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.users[email].identity
}

// FailOn makes the named method return err until cleared with a nil error.
func (b *Backend) FailOn(method string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		delete(b.failures, method)
		return
	}
	b.failures[method] = err
}

func (b *Backend) Calls(method string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.calls[method]
}

func (b *Backend) TotalCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	total := 0
	for _, n := range b.calls {
		total += n
	}
	return total
}

// Upserts returns the payloads received by Upsert, in order.
func (b *Backend) Upserts() []business.Profile {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]business.Profile(nil), b.upserts...)
}

func (b *Backend) Resets() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]string(nil), b.resets...)
}

func (b *Backend) Subscribers() int {
	return b.notifier.Len()
}

// Emit publishes an event as the backend would on token refresh or remote sign-out.
func (b *Backend) Emit(event backend.Event) {
	b.notifier.Publish(event)
}

func (b *Backend) enter(method string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls[method]++
	return b.failures[method]
}

func (b *Backend) newSessionLocked(identity backend.Identity) *backend.Session {
	b.seq++
	return &backend.Session{
		AccessToken:  fmt.Sprintf("access-%d", b.seq),
		RefreshToken: fmt.Sprintf("refresh-%d", b.seq),
		ExpiresAt:    b.Now().Add(time.Hour),
		User:         identity,
	}
}

func (b *Backend) GetSession(ctx context.Context) (*backend.Session, error) {
	if err := b.enter("GetSession"); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return nil, nil
	}
	s := *b.session
	return &s, nil
}

func (b *Backend) OnSessionChange(fn func(backend.Event)) backend.Subscription {
	return b.notifier.Subscribe(fn)
}

func (b *Backend) SignIn(ctx context.Context, email, password string) (*backend.Session, error) {
	if err := b.enter("SignIn"); err != nil {
		return nil, err
	}

	b.mu.Lock()
	u, ok := b.users[email]
	if !ok || u.password != password {
		b.mu.Unlock()
		return nil, backend.ErrInvalidCredentials
	}
	b.session = b.newSessionLocked(u.identity)
	s := *b.session
	b.mu.Unlock()

	b.notifier.Publish(backend.Event{Type: backend.EventSignedIn, Session: &s})

	return &s, nil
}

func (b *Backend) SignUp(ctx context.Context, email, password string, attrs backend.SignUpAttributes) (*backend.Session, error) {
	if err := b.enter("SignUp"); err != nil {
		return nil, err
	}

	b.mu.Lock()
	if _, ok := b.users[email]; ok {
		b.mu.Unlock()
		return nil, backend.ErrConflict
	}

	b.seq++
	now := b.Now()
	identity := backend.Identity{
		ID:           fmt.Sprintf("u%d", b.seq),
		Email:        email,
		CompanyName:  attrs.CompanyName,
		BusinessLink: attrs.CompanyURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	b.users[email] = &user{identity: identity, password: password}
	b.session = b.newSessionLocked(identity)
	s := *b.session
	b.mu.Unlock()

	b.notifier.Publish(backend.Event{Type: backend.EventSignedIn, Session: &s})

	return &s, nil
}

func (b *Backend) SignOut(ctx context.Context) error {
	if err := b.enter("SignOut"); err != nil {
		return err
	}

	b.mu.Lock()
	b.session = nil
	b.mu.Unlock()

	b.notifier.Publish(backend.Event{Type: backend.EventSignedOut})

	return nil
}

func (b *Backend) ResetPassword(ctx context.Context, email string) error {
	if err := b.enter("ResetPassword"); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.resets = append(b.resets, email)
	return nil
}

func (b *Backend) GetUser(ctx context.Context) (*backend.Identity, error) {
	if err := b.enter("GetUser"); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return nil, backend.ErrUnauthorized
	}
	u, ok := b.users[b.session.User.Email]
	if !ok {
		return nil, backend.ErrNoRow
	}
	identity := u.identity
	return &identity, nil
}

func (b *Backend) UpdateUser(ctx context.Context, attrs backend.UserAttributes) (*backend.Identity, error) {
	if err := b.enter("UpdateUser"); err != nil {
		return nil, err
	}

	b.mu.Lock()
	if b.session == nil {
		b.mu.Unlock()
		return nil, backend.ErrUnauthorized
	}
	u := b.users[b.session.User.Email]
	if attrs.CompanyName != nil {
		u.identity.CompanyName = *attrs.CompanyName
	}
	if attrs.BusinessLink != nil {
		u.identity.BusinessLink = *attrs.BusinessLink
	}
	if attrs.Phone != nil {
		u.identity.Phone = *attrs.Phone
	}
	u.identity.UpdatedAt = b.Now()
	identity := u.identity
	b.session.User = identity
	s := *b.session
	b.mu.Unlock()

	b.notifier.Publish(backend.Event{Type: backend.EventUserUpdated, Session: &s})

	return &identity, nil
}

func (b *Backend) GetByOwner(ctx context.Context, ownerID string) (*business.Profile, error) {
	if err := b.enter("GetByOwner"); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.TableMissing {
		return nil, backend.ErrTableMissing
	}
	p, ok := b.profiles[ownerID]
	if !ok {
		return nil, backend.ErrNoRow
	}
	c := p.Clone()
	return &c, nil
}

func (b *Backend) Upsert(ctx context.Context, profile business.Profile) (*business.Profile, error) {
	if err := b.enter("Upsert"); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.upserts = append(b.upserts, profile.Clone())

	if b.TableMissing {
		return nil, backend.ErrTableMissing
	}

	saved := profile.Clone()
	if existing, ok := b.profiles[profile.UserID]; ok {
		saved.ID = existing.ID
		saved.CreatedAt = existing.CreatedAt
	} else {
		b.seq++
		saved.ID = fmt.Sprintf("biz-%d", b.seq)
		saved.CreatedAt = b.Now()
	}
	b.profiles[profile.UserID] = saved

	c := saved.Clone()
	return &c, nil
}

func (b *Backend) DeleteByOwner(ctx context.Context, ownerID string) error {
	if err := b.enter("DeleteByOwner"); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.TableMissing {
		return backend.ErrTableMissing
	}
	delete(b.profiles, ownerID)
	return nil
}
