package auth

import "time"

// DefaultTokenTTL bounds token lifetime when no TTL is configured.
const DefaultTokenTTL = 24 * time.Hour

// Strategy issues and verifies opaque auth tokens carrying an admin id.
type Strategy interface {
	IssueToken(adminID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

// Options tunes token issuance.
type Options struct {
	TTL time.Duration
}
