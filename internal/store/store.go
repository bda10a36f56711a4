package store

import (
	"context"

	"github.com/vanagogh/mint-gateway/internal/store/schema"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// SaveMintRecord writes one submission attempt to the journal
	SaveMintRecord(ctx context.Context, record *schema.MintRecord) error
	// ListMintRecords retrieves the most recent journal rows for an account
	ListMintRecords(ctx context.Context, account string, limit int) ([]schema.MintRecord, error)
}

// NoopStore discards all writes and returns no rows. Used when no journal
// database is configured.
type NoopStore struct{}

// NewNoopStore creates a store that keeps nothing
func NewNoopStore() Store {
	return &NoopStore{}
}

func (s *NoopStore) SaveMintRecord(ctx context.Context, record *schema.MintRecord) error {
	return nil
}

func (s *NoopStore) ListMintRecords(ctx context.Context, account string, limit int) ([]schema.MintRecord, error) {
	return nil, nil
}
