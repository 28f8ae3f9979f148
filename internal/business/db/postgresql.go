package businessdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xw1nchester/tca-backend/internal/business"
	"github.com/xw1nchester/tca-backend/internal/logging"
	"github.com/xw1nchester/tca-backend/pkg/client/postgresql"
	pgtx "github.com/xw1nchester/tca-backend/pkg/transactor/postgresql"
	"go.uber.org/zap"
)

var (
	ErrProfileNotFound = errors.New("business profile not found")
	ErrTableMissing    = errors.New("businesses table does not exist")
)

const profileColumns = `
	id::text,
	user_id::text,
	name,
	description,
	logo_url,
	website,
	phone,
	email,
	address,
	city,
	state,
	zip_code,
	operating_hours,
	social_media,
	services,
	projects,
	insurance_bond,
	reviews,
	google_place_id,
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

func scanProfile(row pgx.Row) (*business.Profile, error) {
	var p business.Profile
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Description,
		&p.LogoURL,
		&p.Website,
		&p.Phone,
		&p.Email,
		&p.Address,
		&p.City,
		&p.State,
		&p.ZipCode,
		&p.OperatingHours,
		&p.SocialMedia,
		&p.Services,
		&p.Projects,
		&p.InsuranceBond,
		&p.Reviews,
		&p.GooglePlaceID,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}

	return &p, nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return ErrProfileNotFound
	case postgresql.HasCode(err, postgresql.CodeUndefinedTable):
		return ErrTableMissing
	default:
		return err
	}
}

func (r *repository) GetByOwner(ctx context.Context, userID string) (*business.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM businesses WHERE user_id::text = $1`

	logging.LogSQLQuery(r.logger, query)

	return scanProfile(pgtx.GetExecutor(ctx, r.client).QueryRow(ctx, query, userID))
}

func (r *repository) GetByID(ctx context.Context, id string) (*business.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM businesses WHERE id::text = $1`

	logging.LogSQLQuery(r.logger, query)

	return scanProfile(pgtx.GetExecutor(ctx, r.client).QueryRow(ctx, query, id))
}

// Upsert writes one row per owner. The stored id survives later writes.
func (r *repository) Upsert(ctx context.Context, data business.Profile) (*business.Profile, error) {
	query := `
		INSERT INTO businesses (
			user_id, name, description, logo_url, website, phone, email, address, city, state,
			zip_code, operating_hours, social_media, services, projects, insurance_bond, reviews,
			google_place_id, updated_at
		)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			logo_url = EXCLUDED.logo_url,
			website = EXCLUDED.website,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			zip_code = EXCLUDED.zip_code,
			operating_hours = EXCLUDED.operating_hours,
			social_media = EXCLUDED.social_media,
			services = EXCLUDED.services,
			projects = EXCLUDED.projects,
			insurance_bond = EXCLUDED.insurance_bond,
			reviews = EXCLUDED.reviews,
			google_place_id = EXCLUDED.google_place_id,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + profileColumns

	logging.LogSQLQuery(r.logger, query)

	return scanProfile(pgtx.GetExecutor(ctx, r.client).QueryRow(
		ctx,
		query,
		data.UserID,
		data.Name,
		data.Description,
		data.LogoURL,
		data.Website,
		data.Phone,
		data.Email,
		data.Address,
		data.City,
		data.State,
		data.ZipCode,
		data.OperatingHours,
		data.SocialMedia,
		nonNil(data.Services),
		nonNil(data.Projects),
		data.InsuranceBond,
		nonNil(data.Reviews),
		data.GooglePlaceID,
		data.UpdatedAt,
	))
}

func (r *repository) DeleteByOwner(ctx context.Context, userID string) error {
	query := `DELETE FROM businesses WHERE user_id::text = $1`

	logging.LogSQLQuery(r.logger, query)

	if _, err := pgtx.GetExecutor(ctx, r.client).Exec(ctx, query, userID); err != nil {
		return translate(err)
	}

	return nil
}

// Search lists profiles ordered by name. An empty term matches everything.
func (r *repository) Search(ctx context.Context, term string, limit, offset int) ([]business.Profile, error) {
	query := `
		SELECT ` + profileColumns + ` FROM businesses
		WHERE $1 = ''
			OR name ILIKE '%' || $1 || '%'
			OR email ILIKE '%' || $1 || '%'
			OR city ILIKE '%' || $1 || '%'
			OR state ILIKE '%' || $1 || '%'
		ORDER BY name, id
		LIMIT $2 OFFSET $3
	`

	logging.LogSQLQuery(r.logger, query)

	rows, err := pgtx.GetExecutor(ctx, r.client).Query(ctx, query, term, limit, offset)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	profiles := make([]business.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		profiles = append(profiles, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error: %w", translate(err))
	}

	return profiles, nil
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
