package service

import "time"

// TokenService defines the interface for issuing and verifying bearer tokens.
// This abstracts the details of token encoding from the use cases.
//
// A token has exactly two observable states at verification time: valid
// (signature checks, not expired, subject present) or invalid (anything else).
// Validate never reports which check failed.
type TokenService interface {
	// Issue creates a signed, time-limited token carrying the subject claim.
	// Expiry is now + the configured TTL.
	Issue(subject string) (string, error)

	// Validate checks signature and expiry and returns the subject claim.
	// Any failure yields the single domain error ErrInvalidToken.
	Validate(token string) (subject string, err error)

	// AccessTokenTTL returns the configured token lifetime.
	AccessTokenTTL() time.Duration
}
