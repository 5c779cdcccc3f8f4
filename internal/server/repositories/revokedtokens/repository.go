// Package revokedtokens declares the repository contract for the revocation
// ledger: the append-only set of token ids that must no longer be honored.
package revokedtokens

import "context"

// Repository defines the revocation ledger operations.
type Repository interface {
	// Revoke appends jti to the ledger. Revoking an already-revoked jti is
	// a no-op success.
	Revoke(ctx context.Context, jti string) error

	// IsRevoked reports whether jti is present in the ledger.
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
