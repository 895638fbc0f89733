package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/haguru/kakashi/internal/models"
)

type MockAccountRepository struct {
	mock.Mock
}

func NewMockAccountRepository(t TestingT) *MockAccountRepository {
	m := &MockAccountRepository{}
	register(&m.Mock, t)
	return m
}

func (_m *MockAccountRepository) AddUser(ctx context.Context, user models.User) (string, error) {
	ret := _m.Called(ctx, user)
	return ret.String(0), errAt(ret, 1)
}

func (_m *MockAccountRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	ret := _m.Called(ctx, username)
	var user *models.User
	if ret.Get(0) != nil {
		user = ret.Get(0).(*models.User)
	}
	return user, errAt(ret, 1)
}

func (_m *MockAccountRepository) EnsureIndices(ctx context.Context) error {
	return errAt(_m.Called(ctx), 0)
}

func (_m *MockAccountRepository) Close(ctx context.Context) error {
	return errAt(_m.Called(ctx), 0)
}

type MockWatchlistRepository struct {
	mock.Mock
}

func NewMockWatchlistRepository(t TestingT) *MockWatchlistRepository {
	m := &MockWatchlistRepository{}
	register(&m.Mock, t)
	return m
}

func (_m *MockWatchlistRepository) AddEntry(ctx context.Context, entry models.WatchlistEntry) (string, error) {
	ret := _m.Called(ctx, entry)
	return ret.String(0), errAt(ret, 1)
}

func (_m *MockWatchlistRepository) ListEntries(ctx context.Context, owner string) ([]models.WatchlistEntry, error) {
	ret := _m.Called(ctx, owner)
	var entries []models.WatchlistEntry
	if ret.Get(0) != nil {
		entries = ret.Get(0).([]models.WatchlistEntry)
	}
	return entries, errAt(ret, 1)
}

func (_m *MockWatchlistRepository) FindEntry(ctx context.Context, owner, movieRef string) (*models.WatchlistEntry, error) {
	ret := _m.Called(ctx, owner, movieRef)
	var entry *models.WatchlistEntry
	if ret.Get(0) != nil {
		entry = ret.Get(0).(*models.WatchlistEntry)
	}
	return entry, errAt(ret, 1)
}

func (_m *MockWatchlistRepository) DeleteEntry(ctx context.Context, owner, movieRef string) (int64, error) {
	ret := _m.Called(ctx, owner, movieRef)
	return ret.Get(0).(int64), errAt(ret, 1)
}

func (_m *MockWatchlistRepository) DeleteAllEntries(ctx context.Context, owner string) (int64, error) {
	ret := _m.Called(ctx, owner)
	return ret.Get(0).(int64), errAt(ret, 1)
}

func (_m *MockWatchlistRepository) EnsureIndices(ctx context.Context) error {
	return errAt(_m.Called(ctx), 0)
}

func (_m *MockWatchlistRepository) Close(ctx context.Context) error {
	return errAt(_m.Called(ctx), 0)
}
