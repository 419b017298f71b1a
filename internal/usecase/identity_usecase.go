package usecase

import (
	"context"

	"healthvault/internal/domain/entity"
)

// IdentityUsecase resolves an inbound bearer token to a persisted user record.
// It is invoked as a precondition by every protected operation: one token check
// and one repository lookup per call, no caching across calls.
type IdentityUsecase interface {
	// Resolve returns the user named by the token's subject claim.
	// A missing, invalid, or expired token, and a token whose subject no longer
	// exists, all yield domainerrors.ErrUnauthorized without distinction.
	Resolve(ctx context.Context, token string) (*entity.User, error)
}
