package clients

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// PostgresStore persists registered clients in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the registered clients table if missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS registered_clients (
  id UUID PRIMARY KEY,
  id_number TEXT NOT NULL UNIQUE,
  id_type TEXT NOT NULL,
  full_name TEXT NOT NULL,
  date_of_birth TEXT NOT NULL,
  gender TEXT NOT NULL,
  mobile_number TEXT NOT NULL,
  email TEXT NOT NULL DEFAULT '',
  province TEXT NOT NULL,
  district TEXT NOT NULL,
  postal_code TEXT NOT NULL,
  source_system TEXT NOT NULL,
  registered_by TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_registered_clients_source ON registered_clients(source_system);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure registered_clients schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, client Client) error {
	const query = `
		INSERT INTO registered_clients (
			id, id_number, id_type, full_name, date_of_birth, gender,
			mobile_number, email, province, district, postal_code,
			source_system, registered_by, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := s.db.ExecContext(ctx, query,
		client.ID, client.IDNumber, client.IDType, client.FullName,
		client.DateOfBirth, client.Gender, client.MobileNumber, client.Email,
		client.Province, client.District, client.PostalCode,
		client.SourceSystem, client.RegisteredBy, client.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicate
		}
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

const clientColumns = `
	id, id_number, id_type, full_name, date_of_birth, gender,
	mobile_number, email, province, district, postal_code,
	source_system, registered_by, created_at
`

func (s *PostgresStore) GetByID(ctx context.Context, id string) (*Client, error) {
	query := `SELECT ` + clientColumns + ` FROM registered_clients WHERE id = $1`
	var c Client
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.IDNumber, &c.IDType, &c.FullName, &c.DateOfBirth, &c.Gender,
		&c.MobileNumber, &c.Email, &c.Province, &c.District, &c.PostalCode,
		&c.SourceSystem, &c.RegisteredBy, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Client, error) {
	query := `SELECT ` + clientColumns + ` FROM registered_clients ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		var c Client
		err := rows.Scan(
			&c.ID, &c.IDNumber, &c.IDType, &c.FullName, &c.DateOfBirth, &c.Gender,
			&c.MobileNumber, &c.Email, &c.Province, &c.District, &c.PostalCode,
			&c.SourceSystem, &c.RegisteredBy, &c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM registered_clients`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) CountBySource(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT source_system, COUNT(*) FROM registered_clients GROUP BY source_system`)
	if err != nil {
		return nil, fmt.Errorf("count clients by source: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var source string
		var count int64
		if err := rows.Scan(&source, &count); err != nil {
			return nil, fmt.Errorf("scan client count: %w", err)
		}
		counts[source] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate client counts: %w", err)
	}
	return counts, nil
}

func (s *PostgresStore) RegisteredIDNumbers(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id_number FROM registered_clients`)
	if err != nil {
		return nil, fmt.Errorf("list registered id numbers: %w", err)
	}
	defer rows.Close()

	out := make(map[string]struct{})
	for rows.Next() {
		var idNumber string
		if err := rows.Scan(&idNumber); err != nil {
			return nil, fmt.Errorf("scan id number: %w", err)
		}
		out[idNumber] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate id numbers: %w", err)
	}
	return out, nil
}
