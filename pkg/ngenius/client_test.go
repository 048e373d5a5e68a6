package ngenius

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AskiaMohamed22/ngenius-backend/pkg/config"
	pkgerrors "github.com/AskiaMohamed22/ngenius-backend/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), config.NgeniusConfig{
		APIURL:      srv.URL,
		OutletRef:   "outlet-1",
		APIKey:      "c2VjcmV0",
		Currency:    "AED",
		RedirectURL: "https://shop.example/return",
	}, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, srv
}

func TestCreateHostedSession(t *testing.T) {
	var gotOrder map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/identity/auth/access-token", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Basic c2VjcmV0" {
			t.Fatalf("unexpected auth header %q", got)
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1"})
	})
	mux.HandleFunc("/transactions/outlets/outlet-1/orders", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Fatalf("unexpected bearer header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotOrder); err != nil {
			t.Fatalf("decode order request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"reference": "ng-ref-1",
			"_links": map[string]any{
				"payment": map[string]string{"href": "https://paypage.example/pay"},
			},
		})
	})

	client, _ := newTestClient(t, mux)

	session, err := client.CreateHostedSession(context.Background(), HostedSessionInput{
		OrderID:     "ORD-1",
		Email:       "buyer@example.com",
		AmountMinor: 100000,
		Currency:    "AED",
		RedirectURL: "https://shop.example/return",
	})
	if err != nil {
		t.Fatalf("create hosted session: %v", err)
	}
	if session.Reference != "ng-ref-1" {
		t.Fatalf("expected reference ng-ref-1, got %q", session.Reference)
	}
	if session.PaymentURL != "https://paypage.example/pay" {
		t.Fatalf("expected payment url, got %q", session.PaymentURL)
	}

	if gotOrder["merchantOrderReference"] != "ORD-1" {
		t.Fatalf("expected merchantOrderReference ORD-1, got %v", gotOrder["merchantOrderReference"])
	}
	amount, _ := gotOrder["amount"].(map[string]any)
	if amount["value"] != float64(100000) {
		t.Fatalf("expected minor-unit amount 100000, got %v", amount["value"])
	}
}

func TestCreateHostedSessionUpstreamRejection(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/identity/auth/access-token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1"})
	})
	mux.HandleFunc("/transactions/outlets/outlet-1/orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid outlet"}`))
	})

	client, _ := newTestClient(t, mux)

	_, err := client.CreateHostedSession(context.Background(), HostedSessionInput{
		OrderID:     "ORD-1",
		AmountMinor: 500,
		Currency:    "AED",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUpstream {
		t.Fatalf("expected upstream error, got %v", err)
	}
	details, _ := typed.Details().(map[string]any)
	if details["status"] != http.StatusUnprocessableEntity {
		t.Fatalf("expected upstream status in details, got %v", details)
	}
}

func TestRequestTokenRejection(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/identity/auth/access-token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client, _ := newTestClient(t, mux)

	if _, err := client.RequestToken(context.Background()); pkgerrors.As(err) == nil {
		t.Fatalf("expected typed upstream error, got %v", err)
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(context.Background(), config.NgeniusConfig{OutletRef: "o", APIKey: "k"}, nil); err == nil {
		t.Fatal("expected error for missing api url")
	}
	if _, err := NewClient(context.Background(), config.NgeniusConfig{APIURL: "https://x", APIKey: "k"}, nil); err == nil {
		t.Fatal("expected error for missing outlet")
	}
	if _, err := NewClient(context.Background(), config.NgeniusConfig{APIURL: "https://x", OutletRef: "o"}, nil); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
