package authservice

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xw1nchester/tca-backend/internal/apperror"
	"github.com/xw1nchester/tca-backend/internal/auth"
	authdb "github.com/xw1nchester/tca-backend/internal/auth/db"
	jwtauth "github.com/xw1nchester/tca-backend/internal/auth/jwt"
	mockmail "github.com/xw1nchester/tca-backend/internal/auth/service/mocks/mail"
	mockpassword "github.com/xw1nchester/tca-backend/internal/auth/service/mocks/password"
	mockauthrepo "github.com/xw1nchester/tca-backend/internal/auth/service/mocks/repo"
	mocktoken "github.com/xw1nchester/tca-backend/internal/auth/service/mocks/token"
	"github.com/xw1nchester/tca-backend/internal/backend"
	"github.com/xw1nchester/tca-backend/internal/mail"
	mocktransactor "github.com/xw1nchester/tca-backend/pkg/transactor/mocks"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	UserID          = "5f0c7f5e-8d0a-4a57-9a51-6c1b1a1f0b42"
	Email           = "jane@acme.com"
	Password        = "secret1"
	UserAgent       = "Go-http-client/1.1"
	AccessToken     = "some.access.token"
	RefreshToken    = "some-refresh-token"
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 720 * time.Hour
	SiteURL         = "https://tca.example.com"
)

var (
	PasswordHash = []byte("$2a$10$hash")
	ExistingUser = &auth.User{ID: UserID, Email: Email, PasswordHash: PasswordHash, CompanyName: "Acme Cleaning"}

	ErrUnexpected = errors.New("unexpected error")
)

type mocks struct {
	repo     *mockauthrepo.MockRepository
	token    *mocktoken.MockTokenManager
	password *mockpassword.MockPasswordManager
	mail     *mockmail.MockMailSender
	tx       *mocktransactor.MockManager
}

func newTestService(t *testing.T) (*service, mocks) {
	ctrl := gomock.NewController(t)

	m := mocks{
		repo:     mockauthrepo.NewMockRepository(ctrl),
		token:    mocktoken.NewMockTokenManager(ctrl),
		password: mockpassword.NewMockPasswordManager(ctrl),
		mail:     mockmail.NewMockMailSender(ctrl),
		tx:       mocktransactor.NewMockManager(ctrl),
	}

	return New(m.repo, m.token, m.password, m.mail, m.tx, SiteURL, zap.NewNop()), m
}

func runInTx(m mocks) {
	m.tx.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
}

func expectSession(m mocks, ctx any) {
	m.token.EXPECT().GenerateToken(jwtauth.UserClaims{UserID: UserID, Email: Email}).Return(AccessToken, nil)
	m.token.EXPECT().GetRefreshTokenTTL().Return(RefreshTokenTTL)
	m.token.EXPECT().GetAccessTokenTTL().Return(AccessTokenTTL)
	m.repo.EXPECT().CreateSession(ctx, gomock.Any(), UserAgent, UserID, gomock.Any()).Return(nil)
}

func TestGenerateSession(t *testing.T) {
	type mockBehavior func(ctx context.Context, m mocks)

	tests := []struct {
		name          string
		mockBehavior  mockBehavior
		expectedError error
	}{
		{
			name: "success",
			mockBehavior: func(ctx context.Context, m mocks) {
				expectSession(m, ctx)
			},
		},
		{
			name: "access token generation error",
			mockBehavior: func(ctx context.Context, m mocks) {
				m.token.EXPECT().GenerateToken(gomock.Any()).Return("", ErrUnexpected)
			},
			expectedError: ErrUnexpected,
		},
		{
			name: "creating session error",
			mockBehavior: func(ctx context.Context, m mocks) {
				m.token.EXPECT().GenerateToken(gomock.Any()).Return(AccessToken, nil)
				m.token.EXPECT().GetRefreshTokenTTL().Return(RefreshTokenTTL)
				m.repo.EXPECT().CreateSession(ctx, gomock.Any(), UserAgent, UserID, gomock.Any()).Return(ErrUnexpected)
			},
			expectedError: ErrUnexpected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newTestService(t)
			ctx := context.Background()
			tt.mockBehavior(ctx, m)

			before := time.Now()
			session, err := s.generateSession(ctx, UserAgent, *ExistingUser)

			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
				require.Nil(t, session)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, AccessToken, session.AccessToken)
			assert.NotEmpty(t, session.RefreshToken)
			assert.WithinDuration(t, before.Add(AccessTokenTTL), session.ExpiresAt, time.Second)
			assert.Equal(t, ExistingUser.Identity(), session.User)
		})
	}
}

func TestSignUp(t *testing.T) {
	type mockBehavior func(ctx context.Context, m mocks, dto auth.SignUpRequest)

	dto := auth.SignUpRequest{Email: Email, Password: Password, CompanyName: "Acme Cleaning", CompanyURL: "https://acme.example.com"}

	tests := []struct {
		name          string
		mockBehavior  mockBehavior
		expectedError error
	}{
		{
			name: "success",
			mockBehavior: func(ctx context.Context, m mocks, dto auth.SignUpRequest) {
				m.repo.EXPECT().GetUserByEmail(ctx, dto.Email).Return(nil, authdb.ErrUserNotFound)
				m.password.EXPECT().GenerateHashFromPassword([]byte(dto.Password)).Return(PasswordHash, nil)
				runInTx(m)
				m.repo.EXPECT().CreateUser(ctx, auth.User{
					Email:        dto.Email,
					PasswordHash: PasswordHash,
					CompanyName:  dto.CompanyName,
					BusinessLink: dto.CompanyURL,
				}).Return(ExistingUser, nil)
				expectSession(m, ctx)
			},
		},
		{
			name: "email already exists",
			mockBehavior: func(ctx context.Context, m mocks, dto auth.SignUpRequest) {
				m.repo.EXPECT().GetUserByEmail(ctx, dto.Email).Return(ExistingUser, nil)
			},
			expectedError: ErrEmailAlreadyExists,
		},
		{
			name: "email taken concurrently",
			mockBehavior: func(ctx context.Context, m mocks, dto auth.SignUpRequest) {
				m.repo.EXPECT().GetUserByEmail(ctx, dto.Email).Return(nil, authdb.ErrUserNotFound)
				m.password.EXPECT().GenerateHashFromPassword(gomock.Any()).Return(PasswordHash, nil)
				runInTx(m)
				m.repo.EXPECT().CreateUser(ctx, gomock.Any()).Return(nil, authdb.ErrUserExists)
			},
			expectedError: ErrEmailAlreadyExists,
		},
		{
			name: "unexpected error when fetching existing user",
			mockBehavior: func(ctx context.Context, m mocks, dto auth.SignUpRequest) {
				m.repo.EXPECT().GetUserByEmail(ctx, dto.Email).Return(nil, ErrUnexpected)
			},
			expectedError: ErrUnexpected,
		},
		{
			name: "session creation fails",
			mockBehavior: func(ctx context.Context, m mocks, dto auth.SignUpRequest) {
				m.repo.EXPECT().GetUserByEmail(ctx, dto.Email).Return(nil, authdb.ErrUserNotFound)
				m.password.EXPECT().GenerateHashFromPassword(gomock.Any()).Return(PasswordHash, nil)
				runInTx(m)
				m.repo.EXPECT().CreateUser(ctx, gomock.Any()).Return(ExistingUser, nil)
				m.token.EXPECT().GenerateToken(gomock.Any()).Return("", ErrUnexpected)
			},
			expectedError: ErrUnexpected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newTestService(t)
			ctx := context.Background()
			tt.mockBehavior(ctx, m, dto)

			session, err := s.SignUp(ctx, dto, UserAgent)

			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
				require.Nil(t, session)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, UserID, session.User.ID)
		})
	}
}

func TestSignUp_ConflictCarriesCode(t *testing.T) {
	var appErr *apperror.AppError
	require.ErrorAs(t, ErrEmailAlreadyExists, &appErr)

	assert.Equal(t, backend.KindConflict, appErr.Kind())
	assert.Equal(t, "An account with this email already exists. Please sign in instead.", appErr.Message)
}

func TestSignIn(t *testing.T) {
	type mockBehavior func(ctx context.Context, m mocks, dto auth.SignInRequest)

	dto := auth.SignInRequest{Email: Email, Password: Password}

	tests := []struct {
		name          string
		mockBehavior  mockBehavior
		expectedError error
	}{
		{
			name: "success",
			mockBehavior: func(ctx context.Context, m mocks, dto auth.SignInRequest) {
				m.repo.EXPECT().GetUserByEmail(ctx, dto.Email).Return(ExistingUser, nil)
				m.password.EXPECT().CompareHashAndPassword(PasswordHash, []byte(dto.Password)).Return(nil)
				expectSession(m, ctx)
			},
		},
		{
			name: "unknown email",
			mockBehavior: func(ctx context.Context, m mocks, dto auth.SignInRequest) {
				m.repo.EXPECT().GetUserByEmail(ctx, dto.Email).Return(nil, authdb.ErrUserNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			mockBehavior: func(ctx context.Context, m mocks, dto auth.SignInRequest) {
				m.repo.EXPECT().GetUserByEmail(ctx, dto.Email).Return(ExistingUser, nil)
				m.password.EXPECT().CompareHashAndPassword(PasswordHash, []byte(dto.Password)).Return(bcrypt.ErrMismatchedHashAndPassword)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name: "unexpected error",
			mockBehavior: func(ctx context.Context, m mocks, dto auth.SignInRequest) {
				m.repo.EXPECT().GetUserByEmail(ctx, dto.Email).Return(nil, ErrUnexpected)
			},
			expectedError: ErrUnexpected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newTestService(t)
			ctx := context.Background()
			tt.mockBehavior(ctx, m, dto)

			session, err := s.SignIn(ctx, dto, UserAgent)

			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
				require.Nil(t, session)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, AccessToken, session.AccessToken)
		})
	}
}

func TestRefresh(t *testing.T) {
	type mockBehavior func(ctx context.Context, m mocks)

	tests := []struct {
		name          string
		mockBehavior  mockBehavior
		expectedError error
	}{
		{
			name: "success",
			mockBehavior: func(ctx context.Context, m mocks) {
				runInTx(m)
				m.repo.EXPECT().DeleteNotExpirySessionByToken(ctx, RefreshToken).Return(UserID, nil)
				m.repo.EXPECT().GetUserByID(ctx, UserID).Return(ExistingUser, nil)
				expectSession(m, ctx)
			},
		},
		{
			name: "unknown token",
			mockBehavior: func(ctx context.Context, m mocks) {
				runInTx(m)
				m.repo.EXPECT().DeleteNotExpirySessionByToken(ctx, RefreshToken).Return("", authdb.ErrSessionNotFound)
			},
			expectedError: apperror.ErrUnauthorized,
		},
		{
			name: "user removed",
			mockBehavior: func(ctx context.Context, m mocks) {
				runInTx(m)
				m.repo.EXPECT().DeleteNotExpirySessionByToken(ctx, RefreshToken).Return(UserID, nil)
				m.repo.EXPECT().GetUserByID(ctx, UserID).Return(nil, authdb.ErrUserNotFound)
			},
			expectedError: apperror.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newTestService(t)
			ctx := context.Background()
			tt.mockBehavior(ctx, m)

			session, err := s.Refresh(ctx, RefreshToken, UserAgent)

			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
				require.Nil(t, session)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, RefreshToken, session.RefreshToken)
		})
	}
}

func TestSignOut(t *testing.T) {
	tests := []struct {
		name          string
		repoErr       error
		expectedError error
	}{
		{name: "success", repoErr: nil, expectedError: nil},
		{name: "unknown token", repoErr: authdb.ErrSessionNotFound, expectedError: nil},
		{name: "unexpected error", repoErr: ErrUnexpected, expectedError: ErrUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newTestService(t)
			ctx := context.Background()
			m.repo.EXPECT().DeleteNotExpirySessionByToken(ctx, RefreshToken).Return(UserID, tt.repoErr)

			err := s.SignOut(ctx, RefreshToken)

			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestResetPassword(t *testing.T) {
	type mockBehavior func(ctx context.Context, m mocks)

	dto := auth.ResetPasswordRequest{Email: Email}

	tests := []struct {
		name          string
		mockBehavior  mockBehavior
		expectedError error
	}{
		{
			name: "mails a reset link",
			mockBehavior: func(ctx context.Context, m mocks) {
				m.repo.EXPECT().GetUserByEmail(ctx, Email).Return(ExistingUser, nil)
				m.token.EXPECT().GetResetTokenTTL().Return(time.Hour)
				m.repo.EXPECT().CreateResetToken(ctx, gomock.Any(), UserID, gomock.Any()).Return(nil)
				m.mail.EXPECT().Send(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, msg mail.Message) error {
					assert.Equal(t, []string{Email}, msg.To)
					assert.True(t, strings.Contains(msg.HTML, SiteURL+"/reset-password?token="))
					return nil
				})
			},
		},
		{
			name: "unknown email succeeds silently",
			mockBehavior: func(ctx context.Context, m mocks) {
				m.repo.EXPECT().GetUserByEmail(ctx, Email).Return(nil, authdb.ErrUserNotFound)
			},
		},
		{
			name: "mail failure is not surfaced",
			mockBehavior: func(ctx context.Context, m mocks) {
				m.repo.EXPECT().GetUserByEmail(ctx, Email).Return(ExistingUser, nil)
				m.token.EXPECT().GetResetTokenTTL().Return(time.Hour)
				m.repo.EXPECT().CreateResetToken(ctx, gomock.Any(), UserID, gomock.Any()).Return(nil)
				m.mail.EXPECT().Send(ctx, gomock.Any()).Return(ErrUnexpected)
			},
		},
		{
			name: "token storage fails",
			mockBehavior: func(ctx context.Context, m mocks) {
				m.repo.EXPECT().GetUserByEmail(ctx, Email).Return(ExistingUser, nil)
				m.token.EXPECT().GetResetTokenTTL().Return(time.Hour)
				m.repo.EXPECT().CreateResetToken(ctx, gomock.Any(), UserID, gomock.Any()).Return(ErrUnexpected)
			},
			expectedError: ErrUnexpected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newTestService(t)
			ctx := context.Background()
			tt.mockBehavior(ctx, m)

			err := s.ResetPassword(ctx, dto)

			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfirmPasswordReset(t *testing.T) {
	dto := auth.ConfirmResetRequest{Token: "reset-token", Password: "new-secret"}

	t.Run("success", func(t *testing.T) {
		s, m := newTestService(t)
		ctx := context.Background()

		m.password.EXPECT().GenerateHashFromPassword([]byte(dto.Password)).Return(PasswordHash, nil)
		runInTx(m)
		m.repo.EXPECT().ConsumeResetToken(ctx, dto.Token).Return(UserID, nil)
		m.repo.EXPECT().SetPassword(ctx, UserID, PasswordHash).Return(nil)
		m.repo.EXPECT().DeleteUserSessions(ctx, UserID).Return(nil)

		require.NoError(t, s.ConfirmPasswordReset(ctx, dto))
	})

	t.Run("expired token", func(t *testing.T) {
		s, m := newTestService(t)
		ctx := context.Background()

		m.password.EXPECT().GenerateHashFromPassword(gomock.Any()).Return(PasswordHash, nil)
		runInTx(m)
		m.repo.EXPECT().ConsumeResetToken(ctx, dto.Token).Return("", authdb.ErrResetTokenNotFound)

		require.ErrorIs(t, s.ConfirmPasswordReset(ctx, dto), ErrInvalidResetToken)
	})
}

func TestGetUser(t *testing.T) {
	tests := []struct {
		name          string
		repoUser      *auth.User
		repoErr       error
		expectedError error
	}{
		{name: "success", repoUser: ExistingUser},
		{name: "user removed", repoErr: authdb.ErrUserNotFound, expectedError: apperror.ErrUnauthorized},
		{name: "unexpected error", repoErr: ErrUnexpected, expectedError: ErrUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newTestService(t)
			ctx := context.Background()
			m.repo.EXPECT().GetUserByID(ctx, UserID).Return(tt.repoUser, tt.repoErr)

			identity, err := s.GetUser(ctx, UserID)

			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
				require.Nil(t, identity)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Acme Cleaning", identity.CompanyName)
		})
	}
}

func TestUpdateUser(t *testing.T) {
	s, m := newTestService(t)
	ctx := context.Background()

	name := "Jane Acme"
	dto := auth.UpdateUserRequest{CompanyName: &name}

	updated := *ExistingUser
	updated.CompanyName = name
	m.repo.EXPECT().UpdateUser(ctx, UserID, backend.UserAttributes{CompanyName: &name}).Return(&updated, nil)

	identity, err := s.UpdateUser(ctx, UserID, dto)
	require.NoError(t, err)

	assert.Equal(t, name, identity.CompanyName)
}
