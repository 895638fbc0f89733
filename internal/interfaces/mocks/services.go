package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/haguru/kakashi/internal/models"
)

type MockAccountService struct {
	mock.Mock
}

func NewMockAccountService(t TestingT) *MockAccountService {
	m := &MockAccountService{}
	register(&m.Mock, t)
	return m
}

func (_m *MockAccountService) Register(ctx context.Context, username, password string) error {
	return errAt(_m.Called(ctx, username, password), 0)
}

func (_m *MockAccountService) Authenticate(ctx context.Context, username, password string) (*models.Identity, error) {
	ret := _m.Called(ctx, username, password)
	var id *models.Identity
	if ret.Get(0) != nil {
		id = ret.Get(0).(*models.Identity)
	}
	return id, errAt(ret, 1)
}

type MockWatchlistService struct {
	mock.Mock
}

func NewMockWatchlistService(t TestingT) *MockWatchlistService {
	m := &MockWatchlistService{}
	register(&m.Mock, t)
	return m
}

func (_m *MockWatchlistService) Add(ctx context.Context, owner string, entry models.WatchlistEntry) error {
	return errAt(_m.Called(ctx, owner, entry), 0)
}

func (_m *MockWatchlistService) List(ctx context.Context, owner string) ([]models.WatchlistEntry, error) {
	ret := _m.Called(ctx, owner)
	var entries []models.WatchlistEntry
	if ret.Get(0) != nil {
		entries = ret.Get(0).([]models.WatchlistEntry)
	}
	return entries, errAt(ret, 1)
}

func (_m *MockWatchlistService) Remove(ctx context.Context, owner, movieRef string) error {
	return errAt(_m.Called(ctx, owner, movieRef), 0)
}

func (_m *MockWatchlistService) Clear(ctx context.Context, owner string) (int64, error) {
	ret := _m.Called(ctx, owner)
	return ret.Get(0).(int64), errAt(ret, 1)
}

func (_m *MockWatchlistService) Contains(ctx context.Context, owner, movieRef string) (bool, error) {
	ret := _m.Called(ctx, owner, movieRef)
	return ret.Bool(0), errAt(ret, 1)
}

type MockAssistantService struct {
	mock.Mock
}

func NewMockAssistantService(t TestingT) *MockAssistantService {
	m := &MockAssistantService{}
	register(&m.Mock, t)
	return m
}

func (_m *MockAssistantService) MovieInfo(ctx context.Context, title string) (*models.MovieInfo, error) {
	ret := _m.Called(ctx, title)
	var info *models.MovieInfo
	if ret.Get(0) != nil {
		info = ret.Get(0).(*models.MovieInfo)
	}
	return info, errAt(ret, 1)
}

func (_m *MockAssistantService) Availability(ctx context.Context, title string) ([]models.StreamingSource, error) {
	ret := _m.Called(ctx, title)
	var sources []models.StreamingSource
	if ret.Get(0) != nil {
		sources = ret.Get(0).([]models.StreamingSource)
	}
	return sources, errAt(ret, 1)
}

func (_m *MockAssistantService) Recommend(ctx context.Context, mood string) ([]string, error) {
	ret := _m.Called(ctx, mood)
	return stringsAt(ret, 0), errAt(ret, 1)
}

func (_m *MockAssistantService) Summarize(ctx context.Context, text string) (string, error) {
	ret := _m.Called(ctx, text)
	return ret.String(0), errAt(ret, 1)
}

func (_m *MockAssistantService) PersonalRecommendations(ctx context.Context, titles []string) ([]string, error) {
	ret := _m.Called(ctx, titles)
	return stringsAt(ret, 0), errAt(ret, 1)
}

func stringsAt(args mock.Arguments, i int) []string {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).([]string)
}
