package builder

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"standsdir/internal/directory/models"
	"standsdir/internal/location"
	id "standsdir/pkg/domain"
	"standsdir/pkg/platform/sentinel"
	"standsdir/pkg/platform/tx"
)

// PostgresStore persists builders in PostgreSQL. Service locations are a
// JSONB array of {country, city} objects.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed builder store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// conn joins the caller's transaction when one is in ctx.
func (s *PostgresStore) conn(ctx context.Context) tx.DBTX {
	return tx.Executor(ctx, s.db)
}

const builderColumns = `id, company_name, slug, contact_email, headquarters_country, headquarters_city,
	service_locations, status, verified, premium, plan, rating, average_project, created_at`

func (s *PostgresStore) Save(ctx context.Context, b *models.Builder) error {
	areas, err := json.Marshal(nonNilAreas(b.ServiceLocations))
	if err != nil {
		return fmt.Errorf("marshal service locations: %w", err)
	}
	query := `
		INSERT INTO builders (` + builderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			slug = EXCLUDED.slug,
			contact_email = EXCLUDED.contact_email,
			headquarters_country = EXCLUDED.headquarters_country,
			headquarters_city = EXCLUDED.headquarters_city,
			service_locations = EXCLUDED.service_locations,
			status = EXCLUDED.status,
			verified = EXCLUDED.verified,
			premium = EXCLUDED.premium,
			plan = EXCLUDED.plan,
			rating = EXCLUDED.rating,
			average_project = EXCLUDED.average_project
	`
	_, err = s.conn(ctx).ExecContext(ctx, query,
		uuid.UUID(b.ID), b.CompanyName, b.Slug, b.ContactEmail,
		b.HeadquartersCountry, b.HeadquartersCity, areas, b.Status,
		b.Verified, b.Premium, string(b.Plan), b.Rating, b.AverageProject, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save builder: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, builderID id.BuilderID) (*models.Builder, error) {
	row := s.conn(ctx).QueryRowContext(ctx, `SELECT `+builderColumns+` FROM builders WHERE id = $1`, uuid.UUID(builderID))
	b, err := scanBuilder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find builder by id: %w", err)
	}
	return b, nil
}

// List returns every builder ordered by creation time.
func (s *PostgresStore) List(ctx context.Context) ([]*models.Builder, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, `SELECT `+builderColumns+` FROM builders ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list builders: %w", err)
	}
	defer rows.Close()

	var out []*models.Builder
	for rows.Next() {
		b, err := scanBuilder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan builder: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate builders: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBuilder(row rowScanner) (*models.Builder, error) {
	var (
		b     models.Builder
		rawID uuid.UUID
		areas []byte
		plan  string
	)
	err := row.Scan(
		&rawID, &b.CompanyName, &b.Slug, &b.ContactEmail,
		&b.HeadquartersCountry, &b.HeadquartersCity, &areas, &b.Status,
		&b.Verified, &b.Premium, &plan, &b.Rating, &b.AverageProject, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(areas) > 0 {
		if err := json.Unmarshal(areas, &b.ServiceLocations); err != nil {
			return nil, fmt.Errorf("unmarshal service locations: %w", err)
		}
	}
	b.ID = id.BuilderID(rawID)
	b.Plan = models.Plan(plan)
	return &b, nil
}

func nonNilAreas(areas []location.ServiceArea) []location.ServiceArea {
	if areas == nil {
		return []location.ServiceArea{}
	}
	return areas
}
