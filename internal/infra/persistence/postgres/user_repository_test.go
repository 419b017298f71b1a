package postgres

import (
	"testing"
	"time"

	"healthvault/internal/domain/entity"
	"healthvault/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMapper_RoundTrip(t *testing.T) {
	now := time.Now()
	age := 30

	user := &entity.User{
		ID:                 uuid.New(),
		Email:              "alice@example.com",
		PasswordHash:       "hashed-pw",
		FullName:           "Alice Example",
		DateOfBirth:        "1990-01-15",
		Phone:              "555-0100",
		Address:            "1 Main St",
		EmergencyContact:   "Bob Example, 555-0101",
		MedicalHistory:     "none",
		Allergies:          []string{"peanuts", "penicillin"},
		CurrentMedications: []string{"aspirin"},
		BloodType:          "O+",
		Height:             "170cm",
		Weight:             "60kg",
		Age:                &age,
		Gender:             "female",
		IsVerified:         false,
		CreatedAt:          now,
		LastLogin:          &now,
		UpdatedAt:          &now,
	}

	userM := fromUserDomain(user)
	back := toUserDomain(userM)

	assert.Equal(t, user, back)
}

func TestUserMapper_ListEncoding(t *testing.T) {
	user := &entity.User{
		Email:     "alice@example.com",
		Allergies: []string{"peanuts", "penicillin"},
	}

	userM := fromUserDomain(user)

	// The stored column holds the comma-space joined encoding.
	require.NotNil(t, userM)
	assert.Equal(t, "peanuts, penicillin", userM.Allergies)
	assert.Equal(t, "", userM.CurrentMedications)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"aspirin"}, splitList("aspirin"))
	assert.Equal(t, []string{"peanuts", "penicillin"}, splitList("peanuts, penicillin"))
}

func TestJoinList(t *testing.T) {
	assert.Equal(t, "", joinList(nil))
	assert.Equal(t, "aspirin", joinList([]string{"aspirin"}))
	assert.Equal(t, "peanuts, penicillin", joinList([]string{"peanuts", "penicillin"}))
}

func TestUserMapper_NilSafe(t *testing.T) {
	assert.Nil(t, toUserDomain(nil))
	assert.Nil(t, fromUserDomain(nil))
}

func TestUserModel_TableName(t *testing.T) {
	assert.Equal(t, "users", model.UserModel{}.TableName())
}
