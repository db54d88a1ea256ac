package policy

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/badfoxmc/cardano-api/internal/blockfrost"
	"github.com/badfoxmc/cardano-api/internal/domain"
	"github.com/badfoxmc/cardano-api/internal/ipfs"
	"github.com/badfoxmc/cardano-api/internal/rank"
	"github.com/badfoxmc/cardano-api/internal/registry"
	"github.com/badfoxmc/cardano-api/internal/token"
)

const testPolicy = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

type mockIndexer struct {
	units   []domain.PolicyUnit
	lastAll bool
}

func (m *mockIndexer) AssetsByPolicy(ctx context.Context, policyID string, p blockfrost.Page, all bool) ([]domain.PolicyUnit, error) {
	m.lastAll = all
	if policyID == "bad" {
		return nil, fmt.Errorf("policy %s: %w", policyID, domain.ErrMalformedID)
	}
	return m.units, nil
}

type mockRanks struct {
	ds    *rank.Dataset
	err   error
	calls atomic.Int32
}

func (m *mockRanks) PolicyRanks(ctx context.Context, policyID string) (*rank.Dataset, error) {
	m.calls.Add(1)
	return m.ds, m.err
}

type mockLookup struct {
	info  registry.TokenInfo
	calls atomic.Int32
}

func (m *mockLookup) TokenInfo(ctx context.Context, tokenID string) (registry.TokenInfo, error) {
	m.calls.Add(1)
	return m.info, nil
}

func unit(nameHex, quantity string) domain.PolicyUnit {
	return domain.PolicyUnit{TokenID: testPolicy + nameHex, Quantity: quantity}
}

func newTestEnumerator(idx Indexer, ranks RankProvider, lookup registry.Lookup) *Enumerator {
	normalizer := token.NewNormalizer(registry.NewResolver(lookup), ipfs.NewFormatter(""))
	return NewEnumerator(idx, ranks, normalizer, 4, nil)
}

func TestEnumerateRankSentinel(t *testing.T) {
	idx := &mockIndexer{units: []domain.PolicyUnit{
		unit(domain.TextToHex("Fox #1"), "1"),
		unit(domain.TextToHex("Fox #2"), "1"),
	}}
	ranks := &mockRanks{ds: rank.FromNames(map[string]int{"Fox #1": 5})}

	got, err := newTestEnumerator(idx, ranks, &mockLookup{}).Enumerate(context.Background(), testPolicy, Options{WithRanks: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Tokens) != 2 {
		t.Fatalf("tokens = %+v", got.Tokens)
	}
	if r := got.Tokens[0].RarityRank; r == nil || *r != 5 {
		t.Errorf("Fox #1 rank = %v, want 5", r)
	}
	if r := got.Tokens[1].RarityRank; r == nil || *r != 0 {
		t.Errorf("Fox #2 rank = %v, want present 0", r)
	}
}

func TestEnumerateWithoutRanksOmitsRank(t *testing.T) {
	idx := &mockIndexer{units: []domain.PolicyUnit{unit("01", "1")}}
	ranks := &mockRanks{}

	got, err := newTestEnumerator(idx, ranks, &mockLookup{}).Enumerate(context.Background(), testPolicy, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Tokens[0].RarityRank != nil {
		t.Errorf("rank = %d, want absent", *got.Tokens[0].RarityRank)
	}
	if ranks.calls.Load() != 0 {
		t.Errorf("rank provider called %d times", ranks.calls.Load())
	}
}

func TestEnumerateDropsBurnedUnlessRequested(t *testing.T) {
	idx := &mockIndexer{units: []domain.PolicyUnit{
		unit("01", "1"),
		unit("02", "0"),
		unit("03", "5"),
	}}
	e := newTestEnumerator(idx, &mockRanks{}, &mockLookup{info: registry.TokenInfo{Decimals: 1, Ticker: "T"}})

	got, err := e.Enumerate(context.Background(), testPolicy, Options{AllTokens: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Tokens) != 2 || got.Tokens[0].TokenID != testPolicy+"01" || got.Tokens[1].TokenID != testPolicy+"03" {
		t.Errorf("tokens = %+v", got.Tokens)
	}
	if !idx.lastAll {
		t.Error("AllTokens should request every page")
	}
	if !got.Tokens[1].IsFungible || got.Tokens[1].TokenAmount.Decimals != 1 {
		t.Errorf("fungible token = %+v", got.Tokens[1])
	}

	withBurned, err := e.Enumerate(context.Background(), testPolicy, Options{WithBurned: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(withBurned.Tokens) != 3 {
		t.Errorf("tokens = %d, want 3", len(withBurned.Tokens))
	}
	if idx.lastAll {
		t.Error("first page only should not request every page")
	}
}

func TestEnumeratePolicyNotRanked(t *testing.T) {
	idx := &mockIndexer{units: []domain.PolicyUnit{unit("01", "1")}}
	ranks := &mockRanks{err: fmt.Errorf("policy: %w", domain.ErrPolicyNotRanked)}

	_, err := newTestEnumerator(idx, ranks, &mockLookup{}).Enumerate(context.Background(), testPolicy, Options{WithRanks: true})
	if !errors.Is(err, domain.ErrPolicyNotRanked) {
		t.Errorf("err = %v, want ErrPolicyNotRanked", err)
	}
}

func TestEnumerateMalformedPolicy(t *testing.T) {
	_, err := newTestEnumerator(&mockIndexer{}, &mockRanks{}, &mockLookup{}).Enumerate(context.Background(), "bad", Options{})
	if !errors.Is(err, domain.ErrMalformedID) {
		t.Errorf("err = %v, want ErrMalformedID", err)
	}
}

func TestEnumeratePreservesOrderUnderFanout(t *testing.T) {
	var units []domain.PolicyUnit
	for i := range 60 {
		units = append(units, unit(fmt.Sprintf("%04x", i), "10"))
	}
	lookup := &mockLookup{info: registry.TokenInfo{Decimals: 0}}

	got, err := newTestEnumerator(&mockIndexer{units: units}, &mockRanks{}, lookup).Enumerate(context.Background(), testPolicy, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, tok := range got.Tokens {
		if tok.TokenID != units[i].TokenID {
			t.Fatalf("tokens[%d] = %s, want %s", i, tok.TokenID, units[i].TokenID)
		}
	}
	if lookup.calls.Load() != 60 {
		t.Errorf("registry calls = %d, want 60", lookup.calls.Load())
	}
}
