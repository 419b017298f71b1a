// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a single registered account
// together with its extended health profile. The password is only ever held as a
// bcrypt hash; the plaintext never leaves the registration/login request scope.
type User struct {
	ID           uuid.UUID // Unique identifier, assigned by the persistence layer.
	Email        string    // Login identifier. Unique, matched exactly as stored.
	PasswordHash string    // bcrypt-encoded hash. Never empty once the user exists.

	FullName           string
	DateOfBirth        string
	Phone              string
	Address            string
	EmergencyContact   string
	MedicalHistory     string
	Allergies          []string // Ordered list; joined with ", " only at the persistence boundary.
	CurrentMedications []string
	BloodType          string
	Height             string
	Weight             string
	Age                *int
	Gender             string

	IsVerified bool       // Defaults to false at registration.
	CreatedAt  time.Time  // Set once on creation, never changes afterwards.
	LastLogin  *time.Time // Updated on each successful login.
	UpdatedAt  *time.Time // Advances on each profile write, never set backward.
}
