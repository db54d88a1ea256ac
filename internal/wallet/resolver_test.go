package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/badfoxmc/cardano-api/internal/blockfrost"
	"github.com/badfoxmc/cardano-api/internal/domain"
)

type mockIndexer struct {
	addresses map[string]domain.AddressInfo
	accounts  map[string][]string
	holders   map[string][]domain.AddressHolding
	pools     map[string]string
	assets    map[string][]domain.PolicyUnit
	raw       map[string]domain.RawAsset

	addressCalls atomic.Int32
	holderCalls  atomic.Int32
}

func (m *mockIndexer) Address(ctx context.Context, address string) (domain.AddressInfo, error) {
	m.addressCalls.Add(1)
	info, ok := m.addresses[address]
	if !ok {
		return domain.AddressInfo{}, fmt.Errorf("address %s: %w", address, domain.ErrNotFound)
	}
	return info, nil
}

func (m *mockIndexer) AccountAddresses(ctx context.Context, stakeKey string) ([]string, error) {
	addrs, ok := m.accounts[stakeKey]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", stakeKey, domain.ErrNotFound)
	}
	return addrs, nil
}

func (m *mockIndexer) AssetAddresses(ctx context.Context, tokenID string, p blockfrost.Page) ([]domain.AddressHolding, error) {
	m.holderCalls.Add(1)
	h, ok := m.holders[tokenID]
	if !ok {
		return nil, fmt.Errorf("asset %s: %w", tokenID, domain.ErrNotFound)
	}
	return h, nil
}

func (m *mockIndexer) Account(ctx context.Context, stakeKey string) (domain.AccountInfo, error) {
	return domain.AccountInfo{StakeKey: stakeKey, PoolID: m.pools[stakeKey]}, nil
}

func (m *mockIndexer) AccountAssets(ctx context.Context, stakeKey string) ([]domain.PolicyUnit, error) {
	return m.assets[stakeKey], nil
}

func (m *mockIndexer) AssetByID(ctx context.Context, tokenID string) (domain.RawAsset, error) {
	a, ok := m.raw[tokenID]
	if !ok {
		return domain.RawAsset{}, fmt.Errorf("asset %s: %w", tokenID, domain.ErrNotFound)
	}
	return a, nil
}

func newMockIndexer() *mockIndexer {
	return &mockIndexer{
		addresses: map[string]domain.AddressInfo{
			"addr1owner":      {Address: "addr1owner", StakeKey: "stake1owner"},
			testAddress:       {Address: testAddress, StakeKey: testStakeKey},
			"addr1enterprise": {Address: "addr1enterprise"},
		},
		accounts: map[string][]string{
			"stake1owner": {"addr1owner", "addr1second", "addr1third"},
			testStakeKey:  {testAddress},
		},
		holders: map[string][]domain.AddressHolding{
			domain.HandleTokenID("$badfox"): {{Address: "addr1owner", Quantity: "1"}},
			domain.HandleTokenID("$burned"): {},
		},
	}
}

func TestResolveStakeKeyNeedsNoAddressLookup(t *testing.T) {
	idx := newMockIndexer()
	r := NewResolver(idx, NewClassifier(nil))

	got, err := r.Resolve(context.Background(), "stake1owner")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.StakeKey != "stake1owner" || len(got.Addresses) != 3 {
		t.Errorf("got %+v", got)
	}
	if idx.addressCalls.Load() != 0 {
		t.Errorf("address lookups = %d, want 0", idx.addressCalls.Load())
	}
}

func TestResolveAddress(t *testing.T) {
	r := NewResolver(newMockIndexer(), NewClassifier(nil))

	got, err := r.Resolve(context.Background(), "addr1owner")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"addr1owner", "addr1second", "addr1third"}
	if got.StakeKey != "stake1owner" || len(got.Addresses) != len(want) {
		t.Fatalf("got %+v", got)
	}
	for i := range want {
		if got.Addresses[i] != want[i] {
			t.Errorf("addresses = %v, want %v", got.Addresses, want)
		}
	}
}

func TestResolveHandle(t *testing.T) {
	idx := newMockIndexer()
	r := NewResolver(idx, NewClassifier(nil))

	got, err := r.Resolve(context.Background(), "$badfox")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.StakeKey != "stake1owner" {
		t.Errorf("stake key = %q, want stake1owner", got.StakeKey)
	}
	if idx.holderCalls.Load() != 1 || idx.addressCalls.Load() != 1 {
		t.Errorf("holder calls = %d, address calls = %d", idx.holderCalls.Load(), idx.addressCalls.Load())
	}
}

func TestResolveRawEncoded(t *testing.T) {
	r := NewResolver(newMockIndexer(), NewClassifier(nil))

	for _, input := range []string{testStakeBytes, testAddrBytes} {
		got, err := r.Resolve(context.Background(), input)
		if err != nil {
			t.Fatalf("Resolve(%q): unexpected error: %v", input, err)
		}
		if got.StakeKey != testStakeKey || len(got.Addresses) != 1 || got.Addresses[0] != testAddress {
			t.Errorf("Resolve(%q) = %+v", input, got)
		}
	}
}

func TestResolveFailures(t *testing.T) {
	r := NewResolver(newMockIndexer(), NewClassifier(nil))

	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"garbage", "hello world", domain.ErrInvalidIdentifier},
		{"empty", "", domain.ErrInvalidIdentifier},
		{"unknown handle", "$nobody", domain.ErrNotFound},
		{"burned handle", "$burned", domain.ErrNotFound},
		{"unknown address", "addr1unknown", domain.ErrNotFound},
		{"no stake credential", "addr1enterprise", domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(context.Background(), tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("Resolve(%q) err = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	r := NewResolver(newMockIndexer(), NewClassifier(nil))

	for _, input := range []string{"stake1owner", "addr1owner", "$badfox", testAddrBytes} {
		a, err := r.Resolve(context.Background(), input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, err := r.Resolve(context.Background(), input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.StakeKey != b.StakeKey || fmt.Sprint(a.Addresses) != fmt.Sprint(b.Addresses) {
			t.Errorf("Resolve(%q) not idempotent: %+v vs %+v", input, a, b)
		}
	}
}
