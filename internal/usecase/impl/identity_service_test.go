package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"healthvault/internal/domain/entity"
	domainerrors "healthvault/internal/domain/errors"
	"healthvault/internal/domain/repository"
	mockRepo "healthvault/internal/mocks/repository"
	mockSvc "healthvault/internal/mocks/service"
	"healthvault/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type identityServiceFixtures struct {
	service  usecase.IdentityUsecase
	userRepo *mockRepo.UserRepository
	tokenSvc *mockSvc.TokenService
}

func createTestIdentityService(t *testing.T) identityServiceFixtures {
	t.Helper()

	userRepo := &mockRepo.UserRepository{}
	tokenSvc := &mockSvc.TokenService{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return identityServiceFixtures{
		service:  NewIdentityService(userRepo, tokenSvc, logger),
		userRepo: userRepo,
		tokenSvc: tokenSvc,
	}
}

func TestIdentityService_Resolve_Success(t *testing.T) {
	fx := createTestIdentityService(t)
	ctx := context.Background()

	expected := &entity.User{ID: uuid.New(), Email: "alice@example.com"}

	fx.tokenSvc.On("Validate", "good-token").Return("alice@example.com", nil)
	fx.userRepo.On("FindByEmail", ctx, "alice@example.com").Return(expected, nil)

	user, err := fx.service.Resolve(ctx, "good-token")

	require.NoError(t, err)
	assert.Equal(t, expected, user)
}

func TestIdentityService_Resolve_EmptyToken(t *testing.T) {
	fx := createTestIdentityService(t)

	_, err := fx.service.Resolve(context.Background(), "")

	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
	fx.tokenSvc.AssertNotCalled(t, "Validate", mock.Anything)
}

func TestIdentityService_Resolve_InvalidToken(t *testing.T) {
	fx := createTestIdentityService(t)

	fx.tokenSvc.On("Validate", "bad-token").Return("", domainerrors.ErrInvalidToken)

	_, err := fx.service.Resolve(context.Background(), "bad-token")

	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
	fx.userRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestIdentityService_Resolve_SubjectNoLongerExists(t *testing.T) {
	fx := createTestIdentityService(t)
	ctx := context.Background()

	// A token can outlive the account it names; same error as a bad token.
	fx.tokenSvc.On("Validate", "orphan-token").Return("gone@example.com", nil)
	fx.userRepo.On("FindByEmail", ctx, "gone@example.com").Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.Resolve(ctx, "orphan-token")

	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestIdentityService_Resolve_RepositoryFailure(t *testing.T) {
	fx := createTestIdentityService(t)
	ctx := context.Background()

	fx.tokenSvc.On("Validate", "good-token").Return("alice@example.com", nil)
	fx.userRepo.On("FindByEmail", ctx, "alice@example.com").Return(nil, errors.New("connection reset"))

	_, err := fx.service.Resolve(ctx, "good-token")

	assert.Error(t, err)
	assert.False(t, errors.Is(err, domainerrors.ErrUnauthorized))
}
