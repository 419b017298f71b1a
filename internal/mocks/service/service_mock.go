// Package service provides hand-written test doubles for the domain
// service interfaces.
package service

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// PasswordHasher is a testify mock for service.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// TokenService is a testify mock for service.TokenService.
type TokenService struct {
	mock.Mock
}

func (m *TokenService) Issue(subject string) (string, error) {
	args := m.Called(subject)

	return args.String(0), args.Error(1)
}

func (m *TokenService) Validate(token string) (string, error) {
	args := m.Called(token)

	return args.String(0), args.Error(1)
}

func (m *TokenService) AccessTokenTTL() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}
