package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/badfoxmc/cardano-api/internal/domain"
	"github.com/badfoxmc/cardano-api/internal/policy"
)

// SheetName is the sheet every writer fills.
const SheetName = "TOKENS"

// header is the first row of the token sheet.
var header = []any{"tokenId", "name", "fungible", "amount", "decimals", "ticker", "rank"}

// Row is one enumerated token flattened for a spreadsheet.
type Row struct {
	TokenID  string
	Name     string
	Fungible bool
	Amount   decimal.Decimal
	Decimals int
	Ticker   string
	Rank     *int
}

// SheetWriter writes token rows to a spreadsheet destination.
type SheetWriter interface {
	Write(ctx context.Context, rows []Row) error
}

// Enumerator lists the tokens of a policy.
type Enumerator interface {
	Enumerate(ctx context.Context, policyID string, opts policy.Options) (domain.Policy, error)
}

// Service enumerates a policy and delegates writing to a SheetWriter.
type Service struct {
	policies Enumerator
	writer   SheetWriter
}

// NewService creates a new export Service.
func NewService(policies Enumerator, writer SheetWriter) *Service {
	return &Service{policies: policies, writer: writer}
}

// Export writes one row per enumerated token of policyID and returns the row count.
func (s *Service) Export(ctx context.Context, policyID string, opts policy.Options) (int, error) {
	p, err := s.policies.Enumerate(ctx, policyID, opts)
	if err != nil {
		return 0, fmt.Errorf("enumerating policy %s: %w", policyID, err)
	}

	rows := Rows(p)
	if err := s.writer.Write(ctx, rows); err != nil {
		return 0, fmt.Errorf("writing policy %s: %w", policyID, err)
	}

	slog.Info("exported policy", "policy_id", policyID, "rows", len(rows))
	return len(rows), nil
}

// Rows flattens a policy into sheet rows, keeping enumeration order.
func Rows(p domain.Policy) []Row {
	return lo.Map(p.Tokens, func(t domain.RankedToken, _ int) Row {
		row := Row{
			TokenID:  t.TokenID,
			Fungible: t.IsFungible,
			Amount:   t.TokenAmount.Display,
			Decimals: t.TokenAmount.Decimals,
			Rank:     t.RarityRank,
		}
		if t.TokenName != nil {
			row.Name = t.TokenName.OnChain
			row.Ticker = t.TokenName.Ticker
		}
		return row
	})
}

// values builds the sheet cells including the header row.
func values(rows []Row) [][]any {
	data := make([][]any, 0, len(rows)+1)
	data = append(data, header)
	for _, r := range rows {
		data = append(data, []any{
			r.TokenID, r.Name, r.Fungible,
			toFloat(r.Amount), r.Decimals, r.Ticker,
			ptrInt(r.Rank),
		})
	}
	return data
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func ptrInt(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}
