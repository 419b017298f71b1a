// Package repository provides hand-written test doubles for the domain
// repository interfaces.
package repository

import (
	"context"

	"healthvault/internal/domain/entity"
	domainrepo "healthvault/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// UserRepository is a testify mock for repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *UserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *UserRepository) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

// TransactionManager is a testify mock for repository.TransactionManager.
// Execute runs the given function against the factory immediately, without a
// real transaction.
type TransactionManager struct {
	mock.Mock

	Factory domainrepo.RepositoryFactory
}

func (m *TransactionManager) Execute(ctx context.Context, fn func(domainrepo.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}

	return fn(m.Factory)
}

// RepositoryFactory hands out the mocked repositories inside Execute.
type RepositoryFactory struct {
	UserRepository domainrepo.UserRepository
}

func (f *RepositoryFactory) UserRepo() domainrepo.UserRepository {
	return f.UserRepository
}
