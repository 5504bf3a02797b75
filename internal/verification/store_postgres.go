package verification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresSourceStore reads source records from PostgreSQL.
type PostgresSourceStore struct {
	db *sql.DB
}

func NewPostgresSourceStore(db *sql.DB) *PostgresSourceStore {
	return &PostgresSourceStore{db: db}
}

// EnsureSchema creates the source records table if missing and is idempotent.
// Convenience for the demo deployment; prefer migrations in production.
func (s *PostgresSourceStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS source_records (
  id UUID PRIMARY KEY,
  id_type TEXT NOT NULL,
  id_number TEXT NOT NULL UNIQUE,
  full_name TEXT NOT NULL,
  date_of_birth TEXT NOT NULL,
  gender TEXT NOT NULL,
  mobile_number TEXT NOT NULL,
  province TEXT NOT NULL,
  district TEXT NOT NULL,
  postal_code TEXT NOT NULL,
  source_name TEXT NOT NULL,
  is_verified BOOLEAN NOT NULL DEFAULT true,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_source_records_source ON source_records(source_name);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure source_records schema: %w", err)
	}
	return nil
}

// Load upserts seed records. The unique id_number constraint enforces the
// simplified one-record-per-identity model.
func (s *PostgresSourceStore) Load(ctx context.Context, records ...SourceRecord) error {
	const query = `
		INSERT INTO source_records (
			id, id_type, id_number, full_name, date_of_birth, gender,
			mobile_number, province, district, postal_code, source_name,
			is_verified, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id_number) DO NOTHING
	`
	for _, r := range records {
		_, err := s.db.ExecContext(ctx, query,
			r.ID, string(r.IDType), r.IDNumber, r.FullName, r.DateOfBirth, r.Gender,
			r.MobileNumber, r.Province, r.District, r.PostalCode, r.SourceName,
			r.IsVerified, r.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("load source record %s: %w", r.IDNumber, err)
		}
	}
	return nil
}

const sourceRecordColumns = `
	id, id_type, id_number, full_name, date_of_birth, gender,
	mobile_number, province, district, postal_code, source_name,
	is_verified, created_at
`

func (s *PostgresSourceStore) FindByIDAndSource(ctx context.Context, idNumber, sourceName string) (*SourceRecord, error) {
	query := `SELECT ` + sourceRecordColumns + `
		FROM source_records
		WHERE id_number = $1 AND source_name = $2`
	row := s.db.QueryRowContext(ctx, query, idNumber, sourceName)
	record, err := scanSourceRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find source record: %w", err)
	}
	return record, nil
}

func (s *PostgresSourceStore) SearchByIDNumber(ctx context.Context, idNumber string) ([]SourceRecord, error) {
	query := `SELECT ` + sourceRecordColumns + `
		FROM source_records
		WHERE id_number LIKE '%' || $1 || '%'
		ORDER BY source_name, id_number`
	return s.queryRecords(ctx, query, idNumber)
}

func (s *PostgresSourceStore) ListAll(ctx context.Context) ([]SourceRecord, error) {
	query := `SELECT ` + sourceRecordColumns + `
		FROM source_records
		ORDER BY source_name, id_number`
	return s.queryRecords(ctx, query)
}

func (s *PostgresSourceStore) queryRecords(ctx context.Context, query string, args ...any) ([]SourceRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query source records: %w", err)
	}
	defer rows.Close()

	var out []SourceRecord
	for rows.Next() {
		record, err := scanSourceRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan source record: %w", err)
		}
		out = append(out, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate source records: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSourceRecord(row rowScanner) (*SourceRecord, error) {
	var r SourceRecord
	var idType string
	err := row.Scan(
		&r.ID, &idType, &r.IDNumber, &r.FullName, &r.DateOfBirth, &r.Gender,
		&r.MobileNumber, &r.Province, &r.District, &r.PostalCode, &r.SourceName,
		&r.IsVerified, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.IDType = IDType(idType)
	return &r, nil
}

// PostgresAttemptStore persists verification attempts in PostgreSQL.
type PostgresAttemptStore struct {
	db *sql.DB
}

func NewPostgresAttemptStore(db *sql.DB) *PostgresAttemptStore {
	return &PostgresAttemptStore{db: db}
}

func (s *PostgresAttemptStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS verification_attempts (
  id UUID PRIMARY KEY,
  user_id TEXT NOT NULL,
  id_number TEXT NOT NULL,
  searched_at TIMESTAMPTZ NOT NULL,
  status TEXT NOT NULL,
  result_count INT NOT NULL,
  response_time_ms BIGINT NOT NULL,
  source_system TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_verification_attempts_user ON verification_attempts(user_id);
CREATE INDEX IF NOT EXISTS idx_verification_attempts_status ON verification_attempts(status);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure verification_attempts schema: %w", err)
	}
	return nil
}

func (s *PostgresAttemptStore) Append(ctx context.Context, attempt VerificationAttempt) error {
	const query = `
		INSERT INTO verification_attempts (
			id, user_id, id_number, searched_at, status,
			result_count, response_time_ms, source_system
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		attempt.ID, attempt.UserID, attempt.IDNumber, attempt.SearchedAt,
		string(attempt.Status), attempt.ResultCount, attempt.ResponseTimeMs,
		attempt.SourceSystem,
	)
	if err != nil {
		return fmt.Errorf("append verification attempt: %w", err)
	}
	return nil
}

func (s *PostgresAttemptStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM verification_attempts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count verification attempts: %w", err)
	}
	return count, nil
}

func (s *PostgresAttemptStore) CountByStatus(ctx context.Context) (map[AttemptStatus]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM verification_attempts GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count attempts by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[AttemptStatus]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan attempt count: %w", err)
		}
		counts[AttemptStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempt counts: %w", err)
	}
	return counts, nil
}

func (s *PostgresAttemptStore) AverageResponseTimeMs(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `SELECT AVG(response_time_ms) FROM verification_attempts`).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("average attempt response time: %w", err)
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}
