package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migrate_postgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/slidelens/slidelens/internal/types"
)

//go:embed migrations/*.sql
var migrations embed.FS

// PostgresStore keeps reports as jsonb next to the columns used for listing.
type PostgresStore struct {
	db *sqlx.DB
}

// OpenPostgres connects and brings the schema up to date.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := Migrate(db.DB); err != nil {
		db.Close()
		return nil, err
	}
	return NewPostgresStore(db), nil
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate applies the embedded migrations.
func Migrate(db *sql.DB) error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("migrations source: %w", err)
	}
	driver, err := migrate_postgres.WithInstance(db, &migrate_postgres.Config{})
	if err != nil {
		return fmt.Errorf("migrations driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, report *types.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (id, filename, checksum, count_slides, presentation_score, overall_verdict, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET payload = EXCLUDED.payload, presentation_score = EXCLUDED.presentation_score, overall_verdict = EXCLUDED.overall_verdict
	`, report.ID, report.Filename, report.Checksum, report.CountSlides,
		report.Summary.PresentationScore, report.Summary.OverallVerdict, payload, report.CreatedAt)
	if err != nil {
		return fmt.Errorf("save report %s: %w", report.ID, err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*types.Report, error) {
	var payload []byte
	err := s.db.GetContext(ctx, &payload, `SELECT payload FROM reports WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get report %s: %w", id, err)
	}

	report := &types.Report{}
	if err := json.Unmarshal(payload, report); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", id, err)
	}
	return report, nil
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]types.ReportSummary, error) {
	summaries := []types.ReportSummary{}
	err := s.db.SelectContext(ctx, &summaries, `
		SELECT id, filename, count_slides, presentation_score, overall_verdict, created_at
		FROM reports
		ORDER BY created_at DESC, id
		LIMIT $1
	`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return summaries, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
