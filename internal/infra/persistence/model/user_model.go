// Package model contains the GORM persistence models mirroring the database schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via gen_random_uuid().
//
// The two list-valued profile fields (allergies, current medications) are stored
// as single text columns holding ", "-joined values; the repository mappers are
// the only place that encoding exists.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`

	FullName           string `gorm:"type:varchar(100)"`
	DateOfBirth        string `gorm:"type:varchar(30)"`
	Phone              string `gorm:"type:varchar(30)"`
	Address            string `gorm:"type:text"`
	EmergencyContact   string `gorm:"type:varchar(255)"`
	MedicalHistory     string `gorm:"type:text"`
	Allergies          string `gorm:"type:text"`
	CurrentMedications string `gorm:"type:text"`
	BloodType          string `gorm:"type:varchar(10)"`
	Height             string `gorm:"type:varchar(20)"`
	Weight             string `gorm:"type:varchar(20)"`
	Age                *int
	Gender             string `gorm:"type:varchar(30)"`

	IsVerified bool `gorm:"not null;default:false"`
	CreatedAt  time.Time
	LastLogin  *time.Time
	// autoUpdateTime is disabled: updated_at only advances on profile writes,
	// where the service sets it explicitly. A login must not touch it.
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
