// Package mocks holds testify mocks for the contracts in package interfaces.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/haguru/kakashi/internal/interfaces"
)

// TestingT is the subset of *testing.T the constructors need.
type TestingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t TestingT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

func errAt(args mock.Arguments, i int) error {
	if args.Get(i) == nil {
		return nil
	}
	return args.Error(i)
}

var (
	_ interfaces.DBClient            = (*MockDBClient)(nil)
	_ interfaces.AccountRepository   = (*MockAccountRepository)(nil)
	_ interfaces.WatchlistRepository = (*MockWatchlistRepository)(nil)
	_ interfaces.AccountService      = (*MockAccountService)(nil)
	_ interfaces.WatchlistService    = (*MockWatchlistService)(nil)
	_ interfaces.AssistantService    = (*MockAssistantService)(nil)
	_ interfaces.MetadataClient      = (*MockMetadataClient)(nil)
	_ interfaces.SearchClient        = (*MockSearchClient)(nil)
	_ interfaces.LanguageModel       = (*MockLanguageModel)(nil)
)
