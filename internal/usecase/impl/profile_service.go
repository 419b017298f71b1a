package impl

import (
	"context"
	"log/slog"
	"time"

	"healthvault/internal/domain/entity"
	"healthvault/internal/domain/repository"
	"healthvault/internal/usecase"

	"github.com/pkg/errors"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(
	userRepo repository.UserRepository,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// UpdateProfile applies a partial update to an already-resolved user record.
// Concurrent updates to the same user are last-write-wins; whichever commit
// lands last overwrites the other's fields wholesale.
func (srv *profileService) UpdateProfile(ctx context.Context, user *entity.User, input *usecase.UpdateProfileInput) (*entity.User, error) {
	srv.logger.Info("Updating user profile", slog.Any("userID", user.ID))

	applyScalar(&user.FullName, input.FullName)
	applyScalar(&user.DateOfBirth, input.DateOfBirth)
	applyScalar(&user.Phone, input.Phone)
	applyScalar(&user.Address, input.Address)
	applyScalar(&user.EmergencyContact, input.EmergencyContact)
	applyScalar(&user.MedicalHistory, input.MedicalHistory)
	applyScalar(&user.BloodType, input.BloodType)
	applyScalar(&user.Height, input.Height)
	applyScalar(&user.Weight, input.Weight)

	// List fields only replace when non-empty. An empty patch list is a no-op,
	// so this operation cannot clear a stored list.
	if len(input.Allergies) > 0 {
		user.Allergies = input.Allergies
	}
	if len(input.CurrentMedications) > 0 {
		user.CurrentMedications = input.CurrentMedications
	}

	now := time.Now()
	user.UpdatedAt = &now

	if err := srv.userRepo.Update(ctx, user); err != nil {
		srv.logger.Error("Failed to update user profile", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update user profile")
	}

	srv.logger.Debug("User profile updated", slog.Any("userID", user.ID))

	return user, nil
}

// applyScalar overwrites dst only when the patch field is present.
func applyScalar(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
