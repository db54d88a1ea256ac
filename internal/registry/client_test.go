package registry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/badfoxmc/cardano-api/internal/domain"
)

func TestClientTokenInfo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /metadata/{subject}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("subject") {
		case "known":
			w.Write([]byte(`{
				"subject": "known",
				"name": {"value": "Hosky Token", "sequenceNumber": 0},
				"ticker": {"value": "HOSKY", "sequenceNumber": 0},
				"decimals": {"value": 0, "sequenceNumber": 0}
			}`))
		case "noticker":
			w.Write([]byte(`{"subject": "noticker", "decimals": {"value": 6}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`Requested subject 'x' not found`))
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(server.URL, 0, time.Millisecond, time.Second, nil)

	info, err := client.TokenInfo(context.Background(), "known")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Ticker != "HOSKY" || info.Decimals != 0 || info.Name != "Hosky Token" {
		t.Errorf("info = %+v", info)
	}

	info, err = client.TokenInfo(context.Background(), "noticker")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Ticker != "" || info.Decimals != 6 {
		t.Errorf("info = %+v", info)
	}

	_, err = client.TokenInfo(context.Background(), "unknown")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
