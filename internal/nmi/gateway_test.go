package nmi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLiveGatewayTransact(t *testing.T) {
	var gotPath, gotContentType string
	var gotForm map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		gotForm = r.PostForm
		w.Write([]byte("response=1\r\nresponse_code=100\r\ntransaction_id=abc123"))
	}))
	defer server.Close()

	gateway := NewLiveGateway(server.URL, "sk_test")
	result, err := gateway.Transact(context.Background(), map[string]string{
		"type":   "sale",
		"amount": "10.00",
	})
	if err != nil {
		t.Fatalf("Transact: %v", err)
	}

	if gotPath != "/api/transact.php" {
		t.Errorf("path = %q, want /api/transact.php", gotPath)
	}
	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("content type = %q", gotContentType)
	}
	if got := gotForm["security_key"]; len(got) != 1 || got[0] != "sk_test" {
		t.Errorf("security_key = %v, want injected credential", got)
	}
	if got := gotForm["type"]; len(got) != 1 || got[0] != "sale" {
		t.Errorf("type = %v", got)
	}

	if result.StatusCode != http.StatusOK {
		t.Errorf("status = %d", result.StatusCode)
	}
	if result.Fields["response"] != "1" {
		t.Errorf("response = %q, want normalized body", result.Fields["response"])
	}
	if result.Fields["transaction_id"] != "abc123" {
		t.Errorf("transaction_id = %q", result.Fields["transaction_id"])
	}
}

func TestLiveGatewayQueryUsesReportEndpoint(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte("report=empty"))
	}))
	defer server.Close()

	gateway := NewLiveGateway(server.URL, "sk_test")
	if _, err := gateway.Query(context.Background(), map[string]string{"report_type": "transaction"}); err != nil {
		t.Fatalf("Query: %v", err)
	}
	if gotPath != "/api/query.php" {
		t.Errorf("path = %q, want /api/query.php", gotPath)
	}
}

func TestLiveGatewayStatusPassthrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("response=3\nresponsetext=upstream trouble"))
	}))
	defer server.Close()

	gateway := NewLiveGateway(server.URL, "sk_test")
	result, err := gateway.Transact(context.Background(), nil)
	if err != nil {
		t.Fatalf("a non-2xx upstream answer is not a transport failure: %v", err)
	}
	if result.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want upstream 502 passed through", result.StatusCode)
	}
}

func TestLiveGatewayTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	gateway := NewLiveGateway(server.URL, "sk_test")
	_, err := gateway.Transact(context.Background(), map[string]string{"type": "sale"})
	if err == nil {
		t.Fatal("expected a transport error from a closed server")
	}
	if !errors.Is(err, ErrRelayFailed) {
		t.Errorf("err = %v, want ErrRelayFailed", err)
	}
}
