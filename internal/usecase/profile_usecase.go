package usecase

import (
	"context"

	"healthvault/internal/domain/entity"
)

// UpdateProfileInput is a partial patch of the extended profile fields.
// A nil scalar leaves the stored value untouched. The list fields replace the
// stored value only when non-empty; an empty or absent list is a no-op, so this
// operation cannot clear a list (kept deliberately, matching existing clients).
type UpdateProfileInput struct {
	FullName         *string
	DateOfBirth      *string
	Phone            *string
	Address          *string
	EmergencyContact *string
	MedicalHistory   *string
	BloodType        *string
	Height           *string
	Weight           *string

	Allergies          []string
	CurrentMedications []string
}

// ProfileUsecase defines the operations on a user's extended profile.
type ProfileUsecase interface {
	// UpdateProfile applies the patch to an already-resolved user, advances the
	// updated-at timestamp, persists, and returns the stored post-update record.
	// Writes are last-write-wins; there is no merge of concurrent updates.
	UpdateProfile(ctx context.Context, user *entity.User, input *UpdateProfileInput) (*entity.User, error)
}
