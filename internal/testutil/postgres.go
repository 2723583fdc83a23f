package testutil

import (
	"context"

	"github.com/ThotaNithin79/Billing-Application/internal/postgres"
)

// MockPostgresClient satisfies postgres.IClient for service tests backed by
// the in-memory stores. WithTx simply runs the function: the in-memory stores
// apply writes immediately, so tests exercise transactional call paths without
// transactional semantics.
type MockPostgresClient struct{}

func NewMockPostgresClient() *MockPostgresClient {
	return &MockPostgresClient{}
}

func (m *MockPostgresClient) GetQuerier(ctx context.Context) postgres.Querier {
	return nil
}

func (m *MockPostgresClient) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
