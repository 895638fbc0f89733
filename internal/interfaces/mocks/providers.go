package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/haguru/kakashi/internal/models"
)

type MockMetadataClient struct {
	mock.Mock
}

func NewMockMetadataClient(t TestingT) *MockMetadataClient {
	m := &MockMetadataClient{}
	register(&m.Mock, t)
	return m
}

func (_m *MockMetadataClient) FetchMovie(ctx context.Context, query string) (*models.Movie, error) {
	ret := _m.Called(ctx, query)
	var movie *models.Movie
	if ret.Get(0) != nil {
		movie = ret.Get(0).(*models.Movie)
	}
	return movie, errAt(ret, 1)
}

type MockSearchClient struct {
	mock.Mock
}

func NewMockSearchClient(t TestingT) *MockSearchClient {
	m := &MockSearchClient{}
	register(&m.Mock, t)
	return m
}

func (_m *MockSearchClient) Snippets(ctx context.Context, query string) ([]string, error) {
	ret := _m.Called(ctx, query)
	return stringsAt(ret, 0), errAt(ret, 1)
}

type MockLanguageModel struct {
	mock.Mock
}

func NewMockLanguageModel(t TestingT) *MockLanguageModel {
	m := &MockLanguageModel{}
	register(&m.Mock, t)
	return m
}

func (_m *MockLanguageModel) Complete(ctx context.Context, prompt string) (string, error) {
	ret := _m.Called(ctx, prompt)
	return ret.String(0), errAt(ret, 1)
}
