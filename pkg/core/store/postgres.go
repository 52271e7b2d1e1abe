package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/phuslu/log"

	"hagwon_strategy/pkg/models"
)

// PostgresStore keeps records as JSONB rows.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS input_data (
	id          TEXT PRIMARY KEY,
	profile     JSONB NOT NULL,
	competitors JSONB NOT NULL DEFAULT '[]',
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS saved_reports (
	id            TEXT PRIMARY KEY,
	title         TEXT NOT NULL,
	input_data_id TEXT,
	report_data   JSONB NOT NULL,
	location      TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS saved_reports_created_at_idx ON saved_reports (created_at DESC);
`

// OpenPostgres connects to databaseURL and creates the tables if missing.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	log.Debug().Str("host", config.ConnConfig.Host).Msg("postgres store ready")
	return s, nil
}

// Migrate creates the tables. Safe to run repeatedly.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

func (s *PostgresStore) PutProfile(ctx context.Context, rec *models.ProfileRecord) (string, error) {
	if err := prepareProfile(rec); err != nil {
		return "", err
	}

	profileJSON, err := json.Marshal(rec.Profile)
	if err != nil {
		return "", fmt.Errorf("failed to marshal profile: %w", err)
	}
	comps := rec.Competitors
	if comps == nil {
		comps = []models.Competitor{}
	}
	compJSON, err := json.Marshal(comps)
	if err != nil {
		return "", fmt.Errorf("failed to marshal competitors: %w", err)
	}

	query := `
		INSERT INTO input_data (id, profile, competitors, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET
			profile = EXCLUDED.profile,
			competitors = EXCLUDED.competitors;
	`
	if _, err := s.pool.Exec(ctx, query, rec.ID, profileJSON, compJSON, rec.CreatedAt); err != nil {
		return "", fmt.Errorf("failed to save profile: %w", err)
	}
	return rec.ID, nil
}

func (s *PostgresStore) GetProfile(ctx context.Context, id string) (*models.ProfileRecord, error) {
	query := `SELECT profile, competitors, created_at FROM input_data WHERE id = $1`

	rec := models.ProfileRecord{ID: id}
	var profileJSON, compJSON []byte
	err := s.pool.QueryRow(ctx, query, id).Scan(&profileJSON, &compJSON, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if err := json.Unmarshal(profileJSON, &rec.Profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	if err := json.Unmarshal(compJSON, &rec.Competitors); err != nil {
		return nil, fmt.Errorf("failed to unmarshal competitors: %w", err)
	}
	return &rec, nil
}

func (s *PostgresStore) SaveReport(ctx context.Context, rep *models.SavedReport) (string, error) {
	if err := prepareReport(rep); err != nil {
		return "", err
	}
	query := `
		INSERT INTO saved_reports (id, title, input_data_id, report_data, location, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
		ON CONFLICT (id)
		DO UPDATE SET
			title = EXCLUDED.title,
			report_data = EXCLUDED.report_data,
			location = EXCLUDED.location;
	`
	_, err := s.pool.Exec(ctx, query, rep.ID, rep.Title, rep.InputID, []byte(rep.Report), rep.Location, rep.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	return rep.ID, nil
}

func (s *PostgresStore) ListReports(ctx context.Context) ([]models.SavedReport, error) {
	query := `
		SELECT id, title, COALESCE(input_data_id, ''), report_data, location, created_at
		FROM saved_reports
		ORDER BY created_at DESC, id DESC
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := []models.SavedReport{}
	for rows.Next() {
		var r models.SavedReport
		var data []byte
		if err := rows.Scan(&r.ID, &r.Title, &r.InputID, &data, &r.Location, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		r.Report = data
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

func (s *PostgresStore) GetReport(ctx context.Context, id string) (*models.SavedReport, error) {
	query := `
		SELECT id, title, COALESCE(input_data_id, ''), report_data, location, created_at
		FROM saved_reports WHERE id = $1
	`
	var r models.SavedReport
	var data []byte
	err := s.pool.QueryRow(ctx, query, id).Scan(&r.ID, &r.Title, &r.InputID, &data, &r.Location, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	r.Report = data
	return &r, nil
}

func (s *PostgresStore) DeleteReport(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM saved_reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
