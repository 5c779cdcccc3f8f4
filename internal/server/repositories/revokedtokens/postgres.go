package revokedtokens

import (
	"context"
	"fmt"

	"github.com/dsmirnov87/taskvault/internal/dbx"
)

// PostgresRepository implements the revocation ledger over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Revoke inserts jti into the ledger. The unique index plus ON CONFLICT
// DO NOTHING makes the operation idempotent.
func (r *PostgresRepository) Revoke(ctx context.Context, jti string) error {
	query := `
		INSERT INTO revoked_tokens (jti)
		VALUES ($1)
		ON CONFLICT (jti) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, jti); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti is present in the ledger.
func (r *PostgresRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1)
	`
	var revoked bool
	if err := r.db.QueryRowContext(ctx, query, jti).Scan(&revoked); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return revoked, nil
}
