package lead

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"standsdir/internal/directory/models"
	id "standsdir/pkg/domain"
	"standsdir/pkg/platform/sentinel"
	"standsdir/pkg/platform/tx"
)

// PostgresStore persists leads in PostgreSQL. Assignments are stored as JSONB
// alongside a TEXT[] of builder IDs for indexed lookups.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed lead store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// conn joins the caller's transaction when one is in ctx.
func (s *PostgresStore) conn(ctx context.Context) tx.DBTX {
	return tx.Executor(ctx, s.db)
}

const leadColumns = `id, company_name, contact_email, trade_show_name, country, city, estimated_value,
	stand_size, event_date, status, assignments, routed_at, rerouted, created_at`

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

func (s *PostgresStore) Create(ctx context.Context, l *models.Lead) error {
	assignments, builderIDs, err := encodeAssignments(l.Assignments)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO leads (` + leadColumns + `, assigned_builder_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = s.conn(ctx).ExecContext(ctx, query,
		uuid.UUID(l.ID), l.CompanyName, l.ContactEmail, l.TradeShowName, l.Country, l.City,
		l.EstimatedValue, l.StandSize, l.EventDate, string(l.Status), assignments,
		nullTime(l.RoutedAt), l.Rerouted, l.CreatedAt, pq.Array(builderIDs),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create lead: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, l *models.Lead) error {
	assignments, builderIDs, err := encodeAssignments(l.Assignments)
	if err != nil {
		return err
	}
	query := `
		UPDATE leads SET
			status = $2,
			assignments = $3,
			assigned_builder_ids = $4,
			routed_at = $5,
			rerouted = $6
		WHERE id = $1
	`
	res, err := s.conn(ctx).ExecContext(ctx, query,
		uuid.UUID(l.ID), string(l.Status), assignments, pq.Array(builderIDs), nullTime(l.RoutedAt), l.Rerouted,
	)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update lead rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, leadID id.LeadID) (*models.Lead, error) {
	row := s.conn(ctx).QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, uuid.UUID(leadID))
	l, err := scanLead(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find lead by id: %w", err)
	}
	return l, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Lead, error) {
	return s.query(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at, id`)
}

func (s *PostgresStore) ListRerouteCandidates(ctx context.Context, cutoff time.Time) ([]*models.Lead, error) {
	return s.query(ctx, `
		SELECT `+leadColumns+` FROM leads
		WHERE status = $1 AND NOT rerouted AND COALESCE(routed_at, created_at) < $2
		ORDER BY created_at, id`,
		string(models.LeadStatusRouted), cutoff,
	)
}

// OpenLeadCounts aggregates assigned builder IDs over leads in an open status.
func (s *PostgresStore) OpenLeadCounts(ctx context.Context) (map[id.BuilderID]int, error) {
	open := []string{
		string(models.LeadStatusNew), string(models.LeadStatusRouted),
		string(models.LeadStatusViewed), string(models.LeadStatusQuoted),
	}
	rows, err := s.conn(ctx).QueryContext(ctx, `
		SELECT builder_id, COUNT(*)
		FROM leads, unnest(assigned_builder_ids) AS builder_id
		WHERE status = ANY($1)
		GROUP BY builder_id`,
		pq.Array(open),
	)
	if err != nil {
		return nil, fmt.Errorf("count open leads: %w", err)
	}
	defer rows.Close()

	counts := make(map[id.BuilderID]int)
	for rows.Next() {
		var (
			raw   string
			count int
		)
		if err := rows.Scan(&raw, &count); err != nil {
			return nil, fmt.Errorf("scan open lead count: %w", err)
		}
		builderID, err := id.ParseBuilderID(raw)
		if err != nil {
			continue
		}
		counts[builderID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate open lead counts: %w", err)
	}
	return counts, nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]*models.Lead, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}
	defer rows.Close()

	var out []*models.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*models.Lead, error) {
	var (
		l           models.Lead
		rawID       uuid.UUID
		status      string
		assignments []byte
		routedAt    sql.NullTime
	)
	err := row.Scan(
		&rawID, &l.CompanyName, &l.ContactEmail, &l.TradeShowName, &l.Country, &l.City,
		&l.EstimatedValue, &l.StandSize, &l.EventDate, &status, &assignments,
		&routedAt, &l.Rerouted, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(assignments) > 0 {
		if err := json.Unmarshal(assignments, &l.Assignments); err != nil {
			return nil, fmt.Errorf("unmarshal assignments: %w", err)
		}
	}
	if len(l.Assignments) == 0 {
		l.Assignments = nil
	}
	if routedAt.Valid {
		t := routedAt.Time
		l.RoutedAt = &t
	}
	l.ID = id.LeadID(rawID)
	l.Status = models.LeadStatus(status)
	return &l, nil
}

func encodeAssignments(assignments []models.Assignment) ([]byte, []string, error) {
	if assignments == nil {
		assignments = []models.Assignment{}
	}
	data, err := json.Marshal(assignments)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal assignments: %w", err)
	}
	builderIDs := make([]string, 0, len(assignments))
	for _, a := range assignments {
		builderIDs = append(builderIDs, a.BuilderID.String())
	}
	return data, builderIDs, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
