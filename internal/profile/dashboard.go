package profile

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/xw1nchester/tca-backend/internal/backend"
	"github.com/xw1nchester/tca-backend/internal/business"
	"github.com/xw1nchester/tca-backend/internal/upload"
	"go.uber.org/zap"
)

const (
	MsgSetupPending  = "Business profile system is being set up. Please try again once the businesses table has been created."
	MsgSetupRequired = "Business profile system is not set up yet. Please try again once the businesses table has been created."
	MsgSaved         = "Profile saved successfully!"
	MsgSaveFailed    = "Error saving profile. Please try again."
	MsgDeleted       = "Profile deleted successfully! A new default profile has been created."
	MsgDeleteFailed  = "Error deleting profile. Please try again."
	MsgLogoUploaded  = `Logo uploaded successfully! Click "Save Profile" to save it permanently.`
	MsgLogoFailed    = "Error uploading logo. Please try again."
	MsgNotConfigured = "The member area is not configured yet."
)

var (
	ErrNotSignedIn = errors.New("not signed in")
	ErrNotLoaded   = errors.New("business profile is not loaded")
	ErrNotEditing  = errors.New("business profile is not in edit mode")
)

type Snapshot struct {
	Entry
	Editing bool   `json:"editing"`
	Message string `json:"message,omitempty"`
}

// Dashboard holds one member's business profile while it is viewed and edited.
//
// Every load and every mutation takes a new request token; a resolution that
// finishes after a newer request was issued is discarded.
type Dashboard struct {
	resolver *Resolver
	gateway  *Gateway
	logger   *zap.Logger

	mu       sync.Mutex
	identity *backend.Identity
	current  Entry
	previous Entry
	editing  bool
	message  string
	token    uint64
}

func NewDashboard(resolver *Resolver, gateway *Gateway, logger *zap.Logger) *Dashboard {
	return &Dashboard{
		resolver: resolver,
		gateway:  gateway,
		logger:   logger,
	}
}

func (d *Dashboard) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.snapshotLocked()
}

func (d *Dashboard) snapshotLocked() Snapshot {
	entry := d.current
	entry.Profile = entry.Profile.Clone()
	return Snapshot{Entry: entry, Editing: d.editing, Message: d.message}
}

func (d *Dashboard) nextToken() uint64 {
	d.token++
	return d.token
}

// Load resolves the profile for identity. A nil identity resets the dashboard.
// It reports false when the result was discarded in favour of a newer request.
func (d *Dashboard) Load(ctx context.Context, identity *backend.Identity) bool {
	d.mu.Lock()
	token := d.nextToken()
	if identity == nil {
		d.identity = nil
		d.current = Entry{}
		d.previous = Entry{}
		d.editing = false
		d.message = ""
		d.mu.Unlock()
		return true
	}
	owner := *identity
	d.identity = &owner
	d.mu.Unlock()

	entry := d.resolver.Resolve(ctx, owner)

	d.mu.Lock()
	defer d.mu.Unlock()

	if token != d.token {
		d.logger.Debug("discarding stale business profile", zap.String("owner", owner.ID), zap.Uint64("token", token))
		return false
	}

	d.current = entry
	d.previous = entry
	d.editing = entry.Kind == KindProvisional
	d.message = ""
	if entry.Kind == KindSetupRequired {
		d.message = MsgSetupPending
	}

	return true
}

func (d *Dashboard) Edit() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.current.Loaded() {
		return ErrNotLoaded
	}

	if !d.editing {
		d.previous = Entry{Kind: d.current.Kind, Profile: d.current.Profile.Clone()}
		d.editing = true
	}

	return nil
}

// Cancel drops unsaved edits and returns to the last loaded or saved profile.
func (d *Dashboard) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.editing {
		return
	}

	d.current = Entry{Kind: d.previous.Kind, Profile: d.previous.Profile.Clone()}
	d.editing = false
	d.message = ""
}

func (d *Dashboard) Update(fn func(p *business.Profile)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.current.Loaded() {
		return ErrNotLoaded
	}

	if !d.editing {
		return ErrNotEditing
	}

	fn(&d.current.Profile)

	return nil
}

// SetLogo encodes the image inline into the edited profile. It is saved with the profile.
// Nothing is read from r unless a profile is open for editing.
func (d *Dashboard) SetLogo(r io.Reader) error {
	if err := d.editable(); err != nil {
		d.setMessage(MsgLogoFailed)
		return err
	}

	logo, err := upload.DataURL(r)
	if err != nil {
		d.setMessage(MsgLogoFailed)
		d.logger.Warn("logo upload rejected", zap.Error(err))
		return err
	}

	if err := d.Update(func(p *business.Profile) { p.LogoURL = logo }); err != nil {
		return err
	}

	d.setMessage(MsgLogoUploaded)

	return nil
}

func (d *Dashboard) editable() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case !d.current.Loaded():
		return ErrNotLoaded
	case !d.editing:
		return ErrNotEditing
	}

	return nil
}

func (d *Dashboard) setMessage(message string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.message = message
}

// Save persists the edited profile. On failure the edits stay in place.
func (d *Dashboard) Save(ctx context.Context) (Snapshot, error) {
	d.mu.Lock()
	if d.identity == nil {
		d.mu.Unlock()
		return Snapshot{}, ErrNotSignedIn
	}
	if !d.current.Loaded() {
		snapshot := d.snapshotLocked()
		d.mu.Unlock()
		return snapshot, ErrNotLoaded
	}
	token := d.nextToken()
	ownerID := d.identity.ID
	entry := Entry{Kind: d.current.Kind, Profile: d.current.Profile.Clone()}
	d.mu.Unlock()

	saved, err := d.gateway.Save(ctx, ownerID, entry)

	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil {
		switch {
		case backend.KindOf(err) == backend.KindTableMissing:
			d.message = MsgSetupRequired
		case backend.KindOf(err) == backend.KindNotConfigured:
			d.message = MsgNotConfigured
		default:
			d.message = MsgSaveFailed
		}
		return d.snapshotLocked(), err
	}

	if token == d.token {
		d.current = saved
		d.previous = saved
		d.editing = false
		d.message = MsgSaved
	}

	return d.snapshotLocked(), nil
}

// Delete removes the stored profile, if any, and replaces it with a fresh
// provisional default in edit mode.
func (d *Dashboard) Delete(ctx context.Context) (Snapshot, error) {
	d.mu.Lock()
	if d.identity == nil {
		d.mu.Unlock()
		return Snapshot{}, ErrNotSignedIn
	}
	if !d.current.Loaded() {
		snapshot := d.snapshotLocked()
		d.mu.Unlock()
		return snapshot, ErrNotLoaded
	}
	d.nextToken()
	owner := *d.identity
	entry := Entry{Kind: d.current.Kind, Profile: d.current.Profile.Clone()}
	d.mu.Unlock()

	_, err := d.gateway.Delete(ctx, owner.ID, entry)

	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil {
		d.message = MsgDeleteFailed
		return d.snapshotLocked(), err
	}

	d.current = d.resolver.Synthesize(owner)
	d.previous = d.current
	d.editing = true
	d.message = MsgDeleted

	return d.snapshotLocked(), nil
}
