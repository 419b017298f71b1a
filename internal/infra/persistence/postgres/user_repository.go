// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"strings"

	"healthvault/internal/domain/entity"
	domainerrors "healthvault/internal/domain/errors"
	"healthvault/internal/domain/repository"
	"healthvault/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// listSeparator joins the list-valued profile fields into their stored
// single-column encoding. It exists only at this persistence boundary.
const listSeparator = ", "

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel

	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&userM).Error
	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		// Otherwise, return the original database error.
		return nil, errors.Wrap(err, "failed to find user by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
// The match is exact as stored; no case normalization is applied.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel

	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity. The database assigns the ID and creation
// timestamp, and the unique index on email turns a concurrent duplicate insert
// into ErrEmailAlreadyRegistered rather than a second record.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("missing required user information")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the user entity with the generated ID and timestamps
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt

	return nil
}

// Update modifies an existing user entity in the database.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Save(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserUpdateFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:                 data.ID,
		Email:              data.Email,
		PasswordHash:       data.PasswordHash,
		FullName:           data.FullName,
		DateOfBirth:        data.DateOfBirth,
		Phone:              data.Phone,
		Address:            data.Address,
		EmergencyContact:   data.EmergencyContact,
		MedicalHistory:     data.MedicalHistory,
		Allergies:          splitList(data.Allergies),
		CurrentMedications: splitList(data.CurrentMedications),
		BloodType:          data.BloodType,
		Height:             data.Height,
		Weight:             data.Weight,
		Age:                data.Age,
		Gender:             data.Gender,
		IsVerified:         data.IsVerified,
		CreatedAt:          data.CreatedAt,
		LastLogin:          data.LastLogin,
		UpdatedAt:          data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:                 data.ID,
		Email:              data.Email,
		PasswordHash:       data.PasswordHash,
		FullName:           data.FullName,
		DateOfBirth:        data.DateOfBirth,
		Phone:              data.Phone,
		Address:            data.Address,
		EmergencyContact:   data.EmergencyContact,
		MedicalHistory:     data.MedicalHistory,
		Allergies:          joinList(data.Allergies),
		CurrentMedications: joinList(data.CurrentMedications),
		BloodType:          data.BloodType,
		Height:             data.Height,
		Weight:             data.Weight,
		Age:                data.Age,
		Gender:             data.Gender,
		IsVerified:         data.IsVerified,
		CreatedAt:          data.CreatedAt,
		LastLogin:          data.LastLogin,
		UpdatedAt:          data.UpdatedAt,
	}
}

func joinList(items []string) string {
	return strings.Join(items, listSeparator)
}

func splitList(stored string) []string {
	if stored == "" {
		return nil
	}

	return strings.Split(stored, listSeparator)
}
