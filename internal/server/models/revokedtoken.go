package models

import "time"

// RevokedToken records the jti of a token that must no longer be honored,
// regardless of its remaining validity window.
type RevokedToken struct {
	ID        int64
	JTI       string
	RevokedAt time.Time
}
