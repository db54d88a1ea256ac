package token

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/badfoxmc/cardano-api/internal/blockfrost"
	"github.com/badfoxmc/cardano-api/internal/domain"
)

type mockIndexer struct {
	assets    map[string]domain.RawAsset
	holders   []domain.AddressHolding
	addresses map[string]domain.AddressInfo
	txs       map[string]domain.TransactionInfo
	lastPage  blockfrost.Page
}

func (m *mockIndexer) AssetByID(ctx context.Context, tokenID string) (domain.RawAsset, error) {
	a, ok := m.assets[tokenID]
	if !ok {
		return domain.RawAsset{}, fmt.Errorf("asset %s: %w", tokenID, domain.ErrNotFound)
	}
	return a, nil
}

func (m *mockIndexer) AssetAddresses(ctx context.Context, tokenID string, p blockfrost.Page) ([]domain.AddressHolding, error) {
	m.lastPage = p
	return m.holders, nil
}

func (m *mockIndexer) Address(ctx context.Context, address string) (domain.AddressInfo, error) {
	// Reverse completion order to prove ordering does not depend on it.
	if strings.HasSuffix(address, "0") {
		time.Sleep(5 * time.Millisecond)
	}
	info, ok := m.addresses[address]
	if !ok {
		return domain.AddressInfo{}, fmt.Errorf("address %s: %w", address, domain.ErrUpstream)
	}
	return info, nil
}

func (m *mockIndexer) Transaction(ctx context.Context, txID string) (domain.TransactionInfo, error) {
	tx, ok := m.txs[txID]
	if !ok {
		return domain.TransactionInfo{}, domain.ErrNotFound
	}
	return tx, nil
}

func TestGetTokenPopulateMintTx(t *testing.T) {
	tokenID := testPolicy + "466f78"
	idx := &mockIndexer{
		assets: map[string]domain.RawAsset{
			tokenID: {TokenID: tokenID, PolicyID: testPolicy, AssetNameHex: "466f78", Quantity: "1", MintTransactionID: "mint1"},
		},
		txs: map[string]domain.TransactionInfo{"mint1": {Hash: "mint1", Block: "blk", BlockHeight: 7777}},
	}
	svc := NewService(idx, newTestNormalizer(&mockLookup{}), 5, nil)

	plain, err := svc.GetToken(context.Background(), tokenID, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plain.MintBlockHeight != nil {
		t.Errorf("mint block height = %d, want absent", *plain.MintBlockHeight)
	}

	populated, err := svc.GetToken(context.Background(), tokenID, Options{PopulateMintTx: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if populated.MintBlockHeight == nil || *populated.MintBlockHeight != 7777 {
		t.Errorf("mint block height = %v, want 7777", populated.MintBlockHeight)
	}
}

func TestGetTokenNotFound(t *testing.T) {
	svc := NewService(&mockIndexer{}, newTestNormalizer(&mockLookup{}), 5, nil)

	_, err := svc.GetToken(context.Background(), "missing", Options{})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestOwnersPreservesOrder(t *testing.T) {
	idx := &mockIndexer{
		holders: []domain.AddressHolding{
			{Address: "addr1_0", Quantity: "1"},
			{Address: "addr1_1", Quantity: "3"},
			{Address: "addr1_2", Quantity: "2"},
		},
		addresses: map[string]domain.AddressInfo{
			"addr1_0": {Address: "addr1_0", StakeKey: "stake1_a"},
			"addr1_1": {Address: "addr1_1", StakeKey: "stake1_b", IsScript: true},
			"addr1_2": {Address: "addr1_2", StakeKey: ""},
		},
	}
	svc := NewService(idx, newTestNormalizer(&mockLookup{}), 3, nil)

	got, err := svc.Owners(context.Background(), "tok", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Page != 1 || got.TokenID != "tok" {
		t.Errorf("page/token = %d/%s", got.Page, got.TokenID)
	}
	if idx.lastPage.Page != 1 || idx.lastPage.Count != 100 || idx.lastPage.Order != blockfrost.OrderAsc {
		t.Errorf("page request = %+v", idx.lastPage)
	}

	want := []domain.Owner{
		{Address: "addr1_0", StakeKey: "stake1_a", Quantity: decimal.NewFromInt(1)},
		{Address: "addr1_1", StakeKey: "stake1_b", IsScript: true, Quantity: decimal.NewFromInt(3)},
		{Address: "addr1_2", Quantity: decimal.NewFromInt(2)},
	}
	if len(got.Owners) != len(want) {
		t.Fatalf("owners = %+v", got.Owners)
	}
	for i := range want {
		g, w := got.Owners[i], want[i]
		if g.Address != w.Address || g.StakeKey != w.StakeKey || g.IsScript != w.IsScript || !g.Quantity.Equal(w.Quantity) {
			t.Errorf("owners[%d] = %+v, want %+v", i, g, w)
		}
	}
}

func TestOwnersKeepsLargeQuantities(t *testing.T) {
	const maxSupply = "18446744073709551615"
	idx := &mockIndexer{
		holders:   []domain.AddressHolding{{Address: "addr1_whale", Quantity: maxSupply}},
		addresses: map[string]domain.AddressInfo{"addr1_whale": {Address: "addr1_whale", StakeKey: "stake1_w"}},
	}
	svc := NewService(idx, newTestNormalizer(&mockLookup{}), 3, nil)

	got, err := svc.Owners(context.Background(), "tok", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Owners) != 1 || got.Owners[0].Quantity.String() != maxSupply {
		t.Fatalf("owners = %+v, want quantity %s", got.Owners, maxSupply)
	}

	body, err := json.Marshal(got.Owners[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(body), `"quantity":`+maxSupply) {
		t.Errorf("body = %s, want quantity as a JSON number", body)
	}
}

func TestOwnersFailsOnEnrichmentError(t *testing.T) {
	idx := &mockIndexer{
		holders:   []domain.AddressHolding{{Address: "addr1_x", Quantity: "1"}},
		addresses: map[string]domain.AddressInfo{},
	}
	svc := NewService(idx, newTestNormalizer(&mockLookup{}), 3, nil)

	_, err := svc.Owners(context.Background(), "tok", 2)
	if !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("err = %v, want ErrUpstream", err)
	}
}
