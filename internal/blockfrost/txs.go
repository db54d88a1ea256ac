package blockfrost

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/badfoxmc/cardano-api/internal/domain"
)

// Transaction fetches the block location of a transaction.
func (c *Client) Transaction(ctx context.Context, txID string) (domain.TransactionInfo, error) {
	var resp txResponse
	if err := c.getJSON(ctx, "/txs/"+url.PathEscape(txID), &resp); err != nil {
		return domain.TransactionInfo{}, fmt.Errorf("fetching transaction %s: %w", txID, err)
	}

	return domain.TransactionInfo{
		Hash:        resp.Hash,
		Block:       resp.Block,
		BlockHeight: resp.BlockHeight,
	}, nil
}

// TransactionUTxOs fetches the inputs and outputs of a transaction as reported by the
// indexer.
func (c *Client) TransactionUTxOs(ctx context.Context, txID string) (json.RawMessage, error) {
	var resp json.RawMessage
	if err := c.getJSON(ctx, "/txs/"+url.PathEscape(txID)+"/utxos", &resp); err != nil {
		return nil, fmt.Errorf("fetching utxos of %s: %w", txID, err)
	}
	return resp, nil
}
