package authservice

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/xw1nchester/tca-backend/internal/apperror"
	"github.com/xw1nchester/tca-backend/internal/auth"
	authdb "github.com/xw1nchester/tca-backend/internal/auth/db"
	jwtauth "github.com/xw1nchester/tca-backend/internal/auth/jwt"
	"github.com/xw1nchester/tca-backend/internal/backend"
	"github.com/xw1nchester/tca-backend/internal/mail"
	"github.com/xw1nchester/tca-backend/pkg/transactor"
	"go.uber.org/zap"
)

var (
	ErrEmailAlreadyExists = apperror.NewCodedError(backend.KindConflict, backend.ErrConflict.Message)
	ErrInvalidCredentials = apperror.NewCodedError(backend.KindInvalidCredentials, "Invalid login credentials")
	ErrInvalidResetToken  = apperror.NewAppError("the password reset link is invalid or has expired")
)

//go:generate mockgen -destination=mocks/repo/mock.go -package=mockauthrepo . Repository
type Repository interface {
	CreateUser(ctx context.Context, data auth.User) (*auth.User, error)
	GetUserByEmail(ctx context.Context, email string) (*auth.User, error)
	GetUserByID(ctx context.Context, id string) (*auth.User, error)
	UpdateUser(ctx context.Context, id string, attrs backend.UserAttributes) (*auth.User, error)
	SetPassword(ctx context.Context, id string, passwordHash []byte) error
	CreateSession(ctx context.Context, token string, userAgent string, userID string, expiryDate time.Time) error
	DeleteNotExpirySessionByToken(ctx context.Context, token string) (string, error)
	DeleteUserSessions(ctx context.Context, userID string) error
	CreateResetToken(ctx context.Context, token string, userID string, expiryDate time.Time) error
	ConsumeResetToken(ctx context.Context, token string) (string, error)
}

//go:generate mockgen -destination=mocks/token/mock.go -package=mocktoken . TokenManager
type TokenManager interface {
	GenerateToken(user jwtauth.UserClaims) (string, error)
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetResetTokenTTL() time.Duration
}

//go:generate mockgen -destination=mocks/password/mock.go -package=mockpassword . PasswordManager
type PasswordManager interface {
	GenerateHashFromPassword(password []byte) ([]byte, error)
	CompareHashAndPassword(hashedPassword []byte, password []byte) error
}

//go:generate mockgen -destination=mocks/mail/mock.go -package=mockmail . MailSender
type MailSender interface {
	Send(ctx context.Context, msg mail.Message) error
}

type service struct {
	repository      Repository
	tokenManager    TokenManager
	passwordManager PasswordManager
	mailSender      MailSender
	txManager       transactor.Manager
	siteURL         string
	logger          *zap.Logger
}

func New(
	repository Repository,
	tokenManager TokenManager,
	passwordManager PasswordManager,
	mailSender MailSender,
	txManager transactor.Manager,
	siteURL string,
	logger *zap.Logger,
) *service {
	return &service{
		repository:      repository,
		tokenManager:    tokenManager,
		passwordManager: passwordManager,
		mailSender:      mailSender,
		txManager:       txManager,
		siteURL:         siteURL,
		logger:          logger,
	}
}

func (s *service) generateSession(ctx context.Context, userAgent string, user auth.User) (*backend.Session, error) {
	accessToken, err := s.tokenManager.GenerateToken(jwtauth.UserClaims{UserID: user.ID, Email: user.Email})
	if err != nil {
		s.logger.Error("unexpected error when generating jwt token", zap.Error(err))
		return nil, err
	}

	refreshToken := uuid.New().String()
	now := time.Now()

	err = s.repository.CreateSession(ctx, refreshToken, userAgent, user.ID, now.Add(s.tokenManager.GetRefreshTokenTTL()))
	if err != nil {
		s.logger.Error("unexpected error when creating session", zap.Error(err))
		return nil, err
	}

	return &backend.Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(s.tokenManager.GetAccessTokenTTL()),
		User:         user.Identity(),
	}, nil
}

func (s *service) SignUp(ctx context.Context, dto auth.SignUpRequest, userAgent string) (*backend.Session, error) {
	_, err := s.repository.GetUserByEmail(ctx, dto.Email)
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, authdb.ErrUserNotFound) {
		s.logger.Error("unexpected error when fetching user by email", zap.Error(err))
		return nil, err
	}

	passHash, err := s.passwordManager.GenerateHashFromPassword([]byte(dto.Password))
	if err != nil {
		return nil, err
	}

	var session *backend.Session

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err := s.repository.CreateUser(ctx, auth.User{
			Email:        dto.Email,
			PasswordHash: passHash,
			CompanyName:  dto.CompanyName,
			BusinessLink: dto.CompanyURL,
		})
		if err != nil {
			if errors.Is(err, authdb.ErrUserExists) {
				return ErrEmailAlreadyExists
			}
			s.logger.Error("unexpected error when creating user", zap.Error(err))
			return err
		}

		session, err = s.generateSession(ctx, userAgent, *created)

		return err
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

func (s *service) SignIn(ctx context.Context, dto auth.SignInRequest, userAgent string) (*backend.Session, error) {
	existingUser, err := s.repository.GetUserByEmail(ctx, dto.Email)
	if err != nil {
		if errors.Is(err, authdb.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("unexpected error when fetching user by email", zap.Error(err))
		return nil, err
	}

	if err := s.passwordManager.CompareHashAndPassword(existingUser.PasswordHash, []byte(dto.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateSession(ctx, userAgent, *existingUser)
}

func (s *service) Refresh(ctx context.Context, token string, userAgent string) (*backend.Session, error) {
	var session *backend.Session

	if err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		userID, err := s.repository.DeleteNotExpirySessionByToken(ctx, token)
		if err != nil {
			if errors.Is(err, authdb.ErrSessionNotFound) {
				return apperror.ErrUnauthorized
			}
			s.logger.Error("unexpected error when deleting refresh token", zap.Error(err))
			return err
		}

		existingUser, err := s.repository.GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, authdb.ErrUserNotFound) {
				return apperror.ErrUnauthorized
			}
			s.logger.Error("unexpected error when fetching user by id", zap.Error(err))
			return err
		}

		session, err = s.generateSession(ctx, userAgent, *existingUser)

		return err
	}); err != nil {
		return nil, err
	}

	return session, nil
}

// SignOut is idempotent: an unknown or expired token is not an error.
func (s *service) SignOut(ctx context.Context, token string) error {
	_, err := s.repository.DeleteNotExpirySessionByToken(ctx, token)
	if err != nil && !errors.Is(err, authdb.ErrSessionNotFound) {
		s.logger.Error("unexpected error when deleting refresh token", zap.Error(err))
		return err
	}

	return nil
}

// ResetPassword mails a one-time reset link. Unknown emails succeed silently.
func (s *service) ResetPassword(ctx context.Context, dto auth.ResetPasswordRequest) error {
	existingUser, err := s.repository.GetUserByEmail(ctx, dto.Email)
	if err != nil {
		if errors.Is(err, authdb.ErrUserNotFound) {
			s.logger.Info("password reset requested for unknown email")
			return nil
		}
		s.logger.Error("unexpected error when fetching user by email", zap.Error(err))
		return err
	}

	token := uuid.New().String()

	if err := s.repository.CreateResetToken(ctx, token, existingUser.ID, time.Now().Add(s.tokenManager.GetResetTokenTTL())); err != nil {
		s.logger.Error("unexpected error when creating reset token", zap.Error(err))
		return err
	}

	link := s.siteURL + "/reset-password?token=" + url.QueryEscape(token)

	if err := s.mailSender.Send(ctx, mail.Message{
		To:      []string{existingUser.Email},
		Subject: "Reset your password",
		HTML: fmt.Sprintf(
			`<p>We received a request to reset your password.</p><p><a href="%s">Choose a new password</a></p>`,
			html.EscapeString(link),
		),
	}); err != nil {
		s.logger.Error("unexpected error when sending reset email", zap.Error(err))
	}

	return nil
}

func (s *service) ConfirmPasswordReset(ctx context.Context, dto auth.ConfirmResetRequest) error {
	passHash, err := s.passwordManager.GenerateHashFromPassword([]byte(dto.Password))
	if err != nil {
		return err
	}

	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		userID, err := s.repository.ConsumeResetToken(ctx, dto.Token)
		if err != nil {
			if errors.Is(err, authdb.ErrResetTokenNotFound) {
				return ErrInvalidResetToken
			}
			s.logger.Error("unexpected error when consuming reset token", zap.Error(err))
			return err
		}

		if err := s.repository.SetPassword(ctx, userID, passHash); err != nil {
			s.logger.Error("unexpected error when setting password", zap.Error(err))
			return err
		}

		return s.repository.DeleteUserSessions(ctx, userID)
	})
}

func (s *service) GetUser(ctx context.Context, userID string) (*backend.Identity, error) {
	existingUser, err := s.repository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, authdb.ErrUserNotFound) {
			return nil, apperror.ErrUnauthorized
		}
		s.logger.Error("unexpected error when fetching user by id", zap.Error(err))
		return nil, err
	}

	identity := existingUser.Identity()

	return &identity, nil
}

func (s *service) UpdateUser(ctx context.Context, userID string, dto auth.UpdateUserRequest) (*backend.Identity, error) {
	updated, err := s.repository.UpdateUser(ctx, userID, dto.Attributes())
	if err != nil {
		if errors.Is(err, authdb.ErrUserNotFound) {
			return nil, apperror.ErrUnauthorized
		}
		s.logger.Error("unexpected error when updating user", zap.Error(err))
		return nil, err
	}

	identity := updated.Identity()

	return &identity, nil
}
