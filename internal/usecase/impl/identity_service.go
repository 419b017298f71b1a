package impl

import (
	"context"
	"log/slog"

	"healthvault/internal/domain/entity"
	domainerrors "healthvault/internal/domain/errors"
	"healthvault/internal/domain/repository"
	"healthvault/internal/domain/service"
	"healthvault/internal/usecase"

	"github.com/pkg/errors"
)

// identityService implements the IdentityUsecase interface.
type identityService struct {
	userRepo     repository.UserRepository
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewIdentityService is the constructor for identityService.
func NewIdentityService(
	userRepo repository.UserRepository,
	tokenService service.TokenService,
	logger *slog.Logger,
) usecase.IdentityUsecase {
	return &identityService{
		userRepo:     userRepo,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Resolve validates the bearer token and loads the user it names.
// A token can outlive the account it names; that case is reported exactly like
// a bad token, as ErrUnauthorized.
func (srv *identityService) Resolve(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "missing bearer token")
	}

	subject, err := srv.tokenService.Validate(token)
	if err != nil {
		srv.logger.Debug("Token validation failed", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "invalid bearer token")
	}

	user, err := srv.userRepo.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.logger.Debug("Token subject no longer exists", slog.String("subject", subject))

			return nil, errors.Wrap(domainerrors.ErrUnauthorized, "token subject not found")
		}

		return nil, errors.Wrap(err, "failed to find user by token subject")
	}

	return user, nil
}
