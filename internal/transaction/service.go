// Package transaction answers transaction queries.
package transaction

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/badfoxmc/cardano-api/internal/domain"
)

// Indexer provides the transaction calls of the chain indexer.
type Indexer interface {
	Transaction(ctx context.Context, txID string) (domain.TransactionInfo, error)
	TransactionUTxOs(ctx context.Context, txID string) (json.RawMessage, error)
}

// Options control optional transaction fields.
type Options struct {
	WithUTxOs bool
}

// Service answers transaction queries.
type Service struct {
	indexer Indexer
}

// NewService creates a transaction Service.
func NewService(indexer Indexer) *Service {
	return &Service{indexer: indexer}
}

// GetTransaction locates a transaction on chain and optionally attaches its UTxOs.
func (s *Service) GetTransaction(ctx context.Context, txID string, opts Options) (domain.Transaction, error) {
	info, err := s.indexer.Transaction(ctx, txID)
	if err != nil {
		return domain.Transaction{}, err
	}

	tx := domain.Transaction{
		TransactionID: txID,
		Block:         info.Block,
		BlockHeight:   info.BlockHeight,
	}
	if opts.WithUTxOs {
		utxos, err := s.indexer.TransactionUTxOs(ctx, txID)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("fetching utxos of %s: %w", txID, err)
		}
		tx.UTxOs = utxos
	}
	return tx, nil
}
