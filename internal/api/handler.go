package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/badfoxmc/cardano-api/internal/domain"
	"github.com/badfoxmc/cardano-api/internal/policy"
	"github.com/badfoxmc/cardano-api/internal/pool"
	"github.com/badfoxmc/cardano-api/internal/token"
	"github.com/badfoxmc/cardano-api/internal/transaction"
	"github.com/badfoxmc/cardano-api/internal/wallet"
)

// WalletService resolves wallets.
type WalletService interface {
	GetWallet(ctx context.Context, identifier string, opts wallet.Options) (domain.WalletIdentity, error)
}

// TokenService fetches tokens and their holders.
type TokenService interface {
	GetToken(ctx context.Context, tokenID string, opts token.Options) (domain.PopulatedToken, error)
	Owners(ctx context.Context, tokenID string, page int) (domain.TokenOwners, error)
}

// PolicyService enumerates policies.
type PolicyService interface {
	Enumerate(ctx context.Context, policyID string, opts policy.Options) (domain.Policy, error)
}

// PoolService fetches stake pools.
type PoolService interface {
	GetPool(ctx context.Context, poolID string, opts pool.Options) (domain.Pool, error)
}

// TransactionService fetches transactions.
type TransactionService interface {
	GetTransaction(ctx context.Context, txID string, opts transaction.Options) (domain.Transaction, error)
}

// MarketService passes marketplace data through.
type MarketService interface {
	Listings(ctx context.Context, policyID string, all bool) ([]json.RawMessage, error)
	Token(ctx context.Context, tokenID string) (json.RawMessage, error)
	TokenActivity(ctx context.Context, tokenID string) ([]json.RawMessage, error)
}

// Services groups the query services behind the HTTP API.
type Services struct {
	Wallets      WalletService
	Tokens       TokenService
	Policies     PolicyService
	Pools        PoolService
	Transactions TransactionService
	Market       MarketService
}

// Handler provides HTTP endpoints for the entity query API.
type Handler struct {
	svc Services
}

// NewHandler creates a new API handler.
func NewHandler(svc Services) *Handler {
	return &Handler{svc: svc}
}

// GetWallet handles GET /wallet/{identifier}.
func (h *Handler) GetWallet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("identifier")
	opts := wallet.Options{
		AllAddresses:  flag(r, "all_addresses"),
		WithStakePool: flag(r, "with_stake_pool"),
		WithTokens:    flag(r, "with_tokens"),
	}

	wi, err := h.svc.Wallets.GetWallet(r.Context(), id, opts)
	if err != nil {
		// An identifier the indexer cannot parse is reported as an unknown wallet.
		if errors.Is(err, domain.ErrMalformedID) {
			writeError(w, http.StatusNotFound, "wallet not found")
			return
		}
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wi)
}

// GetToken handles GET /token/{tokenId}.
func (h *Handler) GetToken(w http.ResponseWriter, r *http.Request) {
	tok, err := h.svc.Tokens.GetToken(r.Context(), r.PathValue("tokenId"), token.Options{
		PopulateMintTx: flag(r, "populate_mint_tx"),
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tok)
}

// GetTokenOwners handles GET /token/{tokenId}/owners.
func (h *Handler) GetTokenOwners(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			page = n
		}
	}

	owners, err := h.svc.Tokens.Owners(r.Context(), r.PathValue("tokenId"), page)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, owners)
}

// GetTokenMarket handles GET /token/{tokenId}/market.
func (h *Handler) GetTokenMarket(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.Market.Token(r.Context(), r.PathValue("tokenId"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// GetTokenMarketActivity handles GET /token/{tokenId}/market/activity.
func (h *Handler) GetTokenMarketActivity(w http.ResponseWriter, r *http.Request) {
	tokenID := r.PathValue("tokenId")
	items, err := h.svc.Market.TokenActivity(r.Context(), tokenID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tokenId": tokenID, "items": nonNil(items)})
}

// GetPolicy handles GET /policy/{policyId}.
func (h *Handler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Policies.Enumerate(r.Context(), r.PathValue("policyId"), policy.Options{
		AllTokens:  flag(r, "all_tokens"),
		WithBurned: flag(r, "with_burned"),
		WithRanks:  flag(r, "with_ranks"),
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GetPolicyMarket handles GET /policy/{policyId}/market.
func (h *Handler) GetPolicyMarket(w http.ResponseWriter, r *http.Request) {
	policyID := r.PathValue("policyId")
	items, err := h.svc.Market.Listings(r.Context(), policyID, true)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"policyId": policyID, "items": nonNil(items)})
}

// GetPool handles GET /pool/{poolId}.
func (h *Handler) GetPool(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Pools.GetPool(r.Context(), r.PathValue("poolId"), pool.Options{
		WithDelegators: flag(r, "with_delegators"),
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GetTransaction handles GET /transaction/{transactionId}.
func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := h.svc.Transactions.GetTransaction(r.Context(), r.PathValue("transactionId"), transaction.Options{
		WithUTxOs: flag(r, "with_utxos"),
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// flag reports whether a boolean query parameter is exactly "true".
func flag(r *http.Request, name string) bool {
	return r.URL.Query().Get(name) == "true"
}

func nonNil(items []json.RawMessage) []json.RawMessage {
	if items == nil {
		return []json.RawMessage{}
	}
	return items
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidIdentifier),
		errors.Is(err, domain.ErrMalformedID),
		errors.Is(err, domain.ErrPolicyNotRanked):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	switch status {
	case http.StatusBadGateway:
		slog.Error("upstream failure", "path", r.URL.Path, "error", err)
		writeError(w, status, "upstream failure")
	case http.StatusInternalServerError:
		slog.Error("request failed", "path", r.URL.Path, "error", err)
		writeError(w, status, "internal error")
	default:
		writeError(w, status, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
