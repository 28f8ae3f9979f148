package app_test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/xw1nchester/tca-backend/internal/auth"
	"github.com/xw1nchester/tca-backend/internal/backend"
	"github.com/xw1nchester/tca-backend/internal/business"
	"github.com/xw1nchester/tca-backend/internal/profile"
	"github.com/xw1nchester/tca-backend/internal/session"
	tcaclient "github.com/xw1nchester/tca-backend/pkg/client/tca"
)

type member struct {
	client    *tcaclient.Client
	sessions  *session.Manager
	dashboard *profile.Dashboard
	follow    backend.Subscription
}

func (m member) close() {
	m.follow.Unsubscribe()
	m.sessions.Close()
	m.client.Close()
}

func (s *APITestSuite) newMember() member {
	client := tcaclient.New(tcaclient.Config{
		URL:    s.baseURL,
		APIKey: suiteAPIKey,
		Logger: s.logger,
	})

	sessions := session.New(client, s.logger)
	dashboard := profile.NewDashboard(
		profile.NewResolver(client, s.logger),
		profile.NewGateway(client, s.logger),
		s.logger,
	)
	follow := sessions.Follow(context.Background(), dashboard)
	s.Require().NoError(sessions.Start(context.Background()))

	return member{
		client:    client,
		sessions:  sessions,
		dashboard: dashboard,
		follow:    follow,
	}
}

func (s *APITestSuite) TestMemberLifecycle() {
	ctx := context.Background()

	m := s.newMember()
	defer m.close()

	s.Nil(m.sessions.Identity())

	identity, err := m.sessions.SignUp(ctx, auth.SignUpRequest{
		Email:       "owner@acme-cleaning.com",
		Password:    "secret1",
		CompanyName: "Acme Cleaning",
	})
	s.Require().NoError(err)
	s.Equal("Acme Cleaning", identity.CompanyName)

	snapshot := m.dashboard.Snapshot()
	s.Equal(profile.KindProvisional, snapshot.Kind)
	s.True(snapshot.Editing)

	s.Require().NoError(m.dashboard.Update(func(p *business.Profile) {
		p.City = "Springfield"
		p.Services = []string{"plumbing", "Gutter cleaning", "Plumbing"}
	}))

	snapshot, err = m.dashboard.Save(ctx)
	s.Require().NoError(err)
	s.Equal(profile.KindPersisted, snapshot.Kind)
	s.Equal(profile.MsgSaved, snapshot.Message)
	s.True(snapshot.Profile.HasPermanentID())
	s.Equal([]string{"Plumbing", "Gutter cleaning"}, snapshot.Profile.Services)

	savedID := snapshot.Profile.ID

	reloaded := s.newMember()
	defer reloaded.close()

	_, err = reloaded.sessions.SignIn(ctx, "owner@acme-cleaning.com", "secret1")
	s.Require().NoError(err)

	s.Equal(profile.KindPersisted, reloaded.dashboard.Snapshot().Kind)
	s.Equal(savedID, reloaded.dashboard.Snapshot().Profile.ID)

	directory := s.searchDirectory("springfield")
	s.Require().Len(directory, 1)
	s.Equal(savedID, directory[0].ID)

	snapshot, err = m.dashboard.Delete(ctx)
	s.Require().NoError(err)
	s.Equal(profile.KindProvisional, snapshot.Kind)
	s.Equal(profile.MsgDeleted, snapshot.Message)

	_, err = m.client.GetByOwner(ctx, identity.ID)
	s.Equal(backend.KindNoRow, backend.KindOf(err))

	s.Require().NoError(m.sessions.SignOut(ctx))
	s.Nil(m.sessions.Identity())
	s.Equal(profile.KindUnresolved, m.dashboard.Snapshot().Kind)
}

func (s *APITestSuite) TestSignUpDuplicate() {
	ctx := context.Background()

	m := s.newMember()
	defer m.close()

	req := auth.SignUpRequest{
		Email:       "dup@example.com",
		Password:    "secret1",
		CompanyName: "Dup Co",
	}

	_, err := m.sessions.SignUp(ctx, req)
	s.Require().NoError(err)

	_, err = m.sessions.SignUp(ctx, req)
	s.Equal(backend.KindConflict, backend.KindOf(err))
}

func (s *APITestSuite) TestSignInPlaceholderCompanyName() {
	ctx := context.Background()

	m := s.newMember()
	defer m.close()

	_, err := m.sessions.SignUp(ctx, auth.SignUpRequest{
		Email:       "info@bright-windows.com",
		Password:    "secret1",
		CompanyName: "New Company",
	})
	s.Require().NoError(err)
	s.Require().NoError(m.sessions.SignOut(ctx))

	identity, err := m.sessions.SignIn(ctx, "info@bright-windows.com", "secret1")
	s.Require().NoError(err)
	s.Equal(profile.DeriveName("info@bright-windows.com"), identity.CompanyName)

	user, err := m.client.GetUser(ctx)
	s.Require().NoError(err)
	s.Equal(identity.CompanyName, user.CompanyName)
}

func (s *APITestSuite) TestProfileTableMissing() {
	ctx := context.Background()

	m := s.newMember()
	defer m.close()

	identity, err := m.sessions.SignUp(ctx, auth.SignUpRequest{
		Email:       "early@example.com",
		Password:    "secret1",
		CompanyName: "Early Bird",
	})
	s.Require().NoError(err)

	_, err = s.dbClient.Exec(ctx, "DROP TABLE businesses")
	s.Require().NoError(err)

	m.dashboard.Load(ctx, identity)

	snapshot := m.dashboard.Snapshot()
	s.Equal(profile.KindSetupRequired, snapshot.Kind)
	s.Equal(profile.MsgSetupPending, snapshot.Message)
	s.ErrorIs(m.dashboard.Edit(), profile.ErrNotLoaded)
}

func (s *APITestSuite) searchDirectory(term string) []business.Profile {
	req, err := http.NewRequest(http.MethodGet, s.baseURL+"/api/businesses?search="+term, nil)
	s.Require().NoError(err)
	req.Header.Set(tcaclient.APIKeyHeader, suiteAPIKey)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var body struct {
		Businesses []business.Profile `json:"businesses"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))

	return body.Businesses
}
