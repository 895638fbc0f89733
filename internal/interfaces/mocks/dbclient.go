package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/haguru/kakashi/internal/interfaces"
)

type MockDBClient struct {
	mock.Mock
}

func NewMockDBClient(t TestingT) *MockDBClient {
	m := &MockDBClient{}
	register(&m.Mock, t)
	return m
}

func (_m *MockDBClient) Connect(ctx context.Context, dsn string) error {
	return errAt(_m.Called(ctx, dsn), 0)
}

func (_m *MockDBClient) Disconnect(ctx context.Context) error {
	return errAt(_m.Called(ctx), 0)
}

func (_m *MockDBClient) InsertOne(ctx context.Context, collectionName string, document interfaces.Document) (interface{}, error) {
	ret := _m.Called(ctx, collectionName, document)
	return ret.Get(0), errAt(ret, 1)
}

func (_m *MockDBClient) FindOne(ctx context.Context, collectionName string, filter interfaces.Document, result interfaces.Document) error {
	return errAt(_m.Called(ctx, collectionName, filter, result), 0)
}

func (_m *MockDBClient) FindMany(ctx context.Context, collectionName string, filter interfaces.Document, sortField string) ([]interfaces.Document, error) {
	ret := _m.Called(ctx, collectionName, filter, sortField)
	var docs []interfaces.Document
	if ret.Get(0) != nil {
		docs = ret.Get(0).([]interfaces.Document)
	}
	return docs, errAt(ret, 1)
}

func (_m *MockDBClient) DeleteOne(ctx context.Context, collectionName string, filter interfaces.Document) (int64, error) {
	ret := _m.Called(ctx, collectionName, filter)
	return ret.Get(0).(int64), errAt(ret, 1)
}

func (_m *MockDBClient) DeleteMany(ctx context.Context, collectionName string, filter interfaces.Document) (int64, error) {
	ret := _m.Called(ctx, collectionName, filter)
	return ret.Get(0).(int64), errAt(ret, 1)
}

func (_m *MockDBClient) EnsureSchema(ctx context.Context, collectionName string, schema interfaces.Document) error {
	return errAt(_m.Called(ctx, collectionName, schema), 0)
}

func (_m *MockDBClient) Ping(ctx context.Context) error {
	return errAt(_m.Called(ctx), 0)
}
