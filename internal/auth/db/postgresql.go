package authdb

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xw1nchester/tca-backend/internal/auth"
	"github.com/xw1nchester/tca-backend/internal/backend"
	"github.com/xw1nchester/tca-backend/internal/logging"
	"github.com/xw1nchester/tca-backend/pkg/client/postgresql"
	pgtx "github.com/xw1nchester/tca-backend/pkg/transactor/postgresql"
	"go.uber.org/zap"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user with this email already exists")
	ErrSessionNotFound    = errors.New("session not found")
	ErrResetTokenNotFound = errors.New("reset token not found")
)

const userColumns = `
	id::text,
	email,
	password_hash,
	company_name,
	phone,
	membership_tier,
	membership_expires,
	logo_url,
	business_link,
	created_at,
	updated_at
`

type repository struct {
	client *pgxpool.Pool
	logger *zap.Logger
}

func New(client *pgxpool.Pool, logger *zap.Logger) *repository {
	return &repository{
		client: client,
		logger: logger,
	}
}

func scanUser(row pgx.Row) (*auth.User, error) {
	var u auth.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.CompanyName,
		&u.Phone,
		&u.MembershipTier,
		&u.MembershipExpires,
		&u.LogoURL,
		&u.BusinessLink,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

func (r *repository) CreateUser(ctx context.Context, data auth.User) (*auth.User, error) {
	query := `
		INSERT INTO users (email, password_hash, company_name, business_link)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	logging.LogSQLQuery(r.logger, query)

	created, err := scanUser(pgtx.GetExecutor(ctx, r.client).QueryRow(
		ctx,
		query,
		data.Email,
		data.PasswordHash,
		data.CompanyName,
		data.BusinessLink,
	))
	if err != nil {
		if postgresql.HasCode(err, postgresql.CodeUniqueViolation) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return created, nil
}

func (r *repository) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`

	logging.LogSQLQuery(r.logger, query)

	return scanUser(pgtx.GetExecutor(ctx, r.client).QueryRow(ctx, query, email))
}

func (r *repository) GetUserByID(ctx context.Context, id string) (*auth.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id::text = $1`

	logging.LogSQLQuery(r.logger, query)

	return scanUser(pgtx.GetExecutor(ctx, r.client).QueryRow(ctx, query, id))
}

// UpdateUser changes only the attributes that are set.
func (r *repository) UpdateUser(ctx context.Context, id string, attrs backend.UserAttributes) (*auth.User, error) {
	query := `
		UPDATE users SET
			company_name = COALESCE($2, company_name),
			business_link = COALESCE($3, business_link),
			phone = COALESCE($4, phone),
			updated_at = now()
		WHERE id::text = $1
		RETURNING ` + userColumns

	logging.LogSQLQuery(r.logger, query)

	return scanUser(pgtx.GetExecutor(ctx, r.client).QueryRow(
		ctx,
		query,
		id,
		attrs.CompanyName,
		attrs.BusinessLink,
		attrs.Phone,
	))
}

func (r *repository) SetPassword(ctx context.Context, id string, passwordHash []byte) error {
	query := `UPDATE users SET password_hash = $2, updated_at = now() WHERE id::text = $1`

	logging.LogSQLQuery(r.logger, query)

	tag, err := pgtx.GetExecutor(ctx, r.client).Exec(ctx, query, id, passwordHash)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *repository) CreateSession(ctx context.Context, token string, userAgent string, userID string, expiryDate time.Time) error {
	query := `
		INSERT INTO sessions (token, user_agent, user_id, expiry_date)
		VALUES ($1, $2, $3::uuid, $4)
	`

	logging.LogSQLQuery(r.logger, query)

	_, err := pgtx.GetExecutor(ctx, r.client).Exec(ctx, query, token, userAgent, userID, expiryDate)

	return err
}

// DeleteNotExpirySessionByToken removes a live session and returns its owner.
func (r *repository) DeleteNotExpirySessionByToken(ctx context.Context, token string) (string, error) {
	query := `
		DELETE FROM sessions
		WHERE token = $1 AND expiry_date > now()
		RETURNING user_id::text
	`

	logging.LogSQLQuery(r.logger, query)

	var userID string
	if err := pgtx.GetExecutor(ctx, r.client).QueryRow(ctx, query, token).Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrSessionNotFound
		}
		return "", err
	}

	return userID, nil
}

func (r *repository) CreateResetToken(ctx context.Context, token string, userID string, expiryDate time.Time) error {
	query := `
		INSERT INTO password_resets (token, user_id, expiry_date)
		VALUES ($1, $2::uuid, $3)
	`

	logging.LogSQLQuery(r.logger, query)

	_, err := pgtx.GetExecutor(ctx, r.client).Exec(ctx, query, token, userID, expiryDate)

	return err
}

// ConsumeResetToken deletes a live reset token and returns its owner.
func (r *repository) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	query := `
		DELETE FROM password_resets
		WHERE token = $1 AND expiry_date > now()
		RETURNING user_id::text
	`

	logging.LogSQLQuery(r.logger, query)

	var userID string
	if err := pgtx.GetExecutor(ctx, r.client).QueryRow(ctx, query, token).Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrResetTokenNotFound
		}
		return "", err
	}

	return userID, nil
}

// DeleteUserSessions signs the user out everywhere.
func (r *repository) DeleteUserSessions(ctx context.Context, userID string) error {
	query := `DELETE FROM sessions WHERE user_id::text = $1`

	logging.LogSQLQuery(r.logger, query)

	_, err := pgtx.GetExecutor(ctx, r.client).Exec(ctx, query, userID)

	return err
}
