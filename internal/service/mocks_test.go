package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"chronicle/internal/models"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetWithCredentials(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) SearchByDisplayName(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, query, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Register(ctx context.Context, user *models.User, rel *models.UserRelationship) error {
	args := m.Called(ctx, user, rel)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

// MockRelationshipRepository is a mock of the RelationshipRepository interface
type MockRelationshipRepository struct {
	mock.Mock
}

func (m *MockRelationshipRepository) GetByUsername(ctx context.Context, username string) (*models.UserRelationship, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserRelationship), args.Error(1)
}

func (m *MockRelationshipRepository) Create(ctx context.Context, rel *models.UserRelationship) error {
	args := m.Called(ctx, rel)
	return args.Error(0)
}

func (m *MockRelationshipRepository) Save(ctx context.Context, rel *models.UserRelationship) error {
	args := m.Called(ctx, rel)
	return args.Error(0)
}

// MockJournalRepository is a mock of the JournalRepository interface
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) GetByID(ctx context.Context, id uint) (*models.Journal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Journal), args.Error(1)
}

func (m *MockJournalRepository) List(ctx context.Context, limit, offset int) ([]models.Journal, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListByUsername(ctx context.Context, username string, limit, offset int) ([]models.Journal, error) {
	args := m.Called(ctx, username, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListByUsernames(ctx context.Context, usernames []string, limit, offset int) ([]models.Journal, error) {
	args := m.Called(ctx, usernames, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Journal), args.Error(1)
}

func (m *MockJournalRepository) Search(ctx context.Context, keywords string) ([]models.Journal, error) {
	args := m.Called(ctx, keywords)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Journal), args.Error(1)
}

func (m *MockJournalRepository) Create(ctx context.Context, journal *models.Journal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

func (m *MockJournalRepository) Save(ctx context.Context, journal *models.Journal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}
