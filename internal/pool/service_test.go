package pool

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/badfoxmc/cardano-api/internal/domain"
)

type mockIndexer struct {
	pools      map[string]domain.PoolInfo
	delegators map[string][]string
	calls      int
}

func (m *mockIndexer) PoolMetadata(ctx context.Context, poolID string) (domain.PoolInfo, error) {
	info, ok := m.pools[poolID]
	if !ok {
		return domain.PoolInfo{}, fmt.Errorf("pool %s: %w", poolID, domain.ErrMalformedID)
	}
	return info, nil
}

func (m *mockIndexer) PoolDelegators(ctx context.Context, poolID string) ([]string, error) {
	m.calls++
	return m.delegators[poolID], nil
}

func TestGetPool(t *testing.T) {
	idx := &mockIndexer{
		pools:      map[string]domain.PoolInfo{"pool1bad": {PoolID: "pool1bad", Ticker: "BANK"}},
		delegators: map[string][]string{"pool1bad": {"stake1a", "stake1b"}},
	}
	svc := NewService(idx)

	p, err := svc.GetPool(context.Background(), "pool1bad", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Ticker != "BANK" || p.Delegators != nil || idx.calls != 0 {
		t.Errorf("pool = %+v, delegator calls = %d", p, idx.calls)
	}

	p, err = svc.GetPool(context.Background(), "pool1bad", Options{WithDelegators: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Delegators) != 2 || p.Delegators[0] != "stake1a" {
		t.Errorf("delegators = %v", p.Delegators)
	}
}

func TestGetPoolMalformed(t *testing.T) {
	_, err := NewService(&mockIndexer{}).GetPool(context.Background(), "nope", Options{})
	if !errors.Is(err, domain.ErrMalformedID) {
		t.Errorf("err = %v, want ErrMalformedID", err)
	}
}
