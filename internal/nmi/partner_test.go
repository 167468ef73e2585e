package nmi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

// countingTransport records every round trip so tests can prove a call
// never reached the network.
type countingTransport struct {
	calls     int
	roundTrip func(*http.Request) (*http.Response, error)
}

func (t *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.calls++
	if t.roundTrip != nil {
		return t.roundTrip(req)
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("{}")),
		Header:     http.Header{},
	}, nil
}

func newTestPartnerClient(key string, transport *countingTransport) *PartnerClient {
	client := NewPartnerClient("https://gateway.test", key)
	client.client = &http.Client{Transport: transport}
	return client
}

func TestPartnerClientMissingKeyFailsFast(t *testing.T) {
	transport := &countingTransport{}
	client := newTestPartnerClient("", transport)
	ctx := context.Background()

	calls := []func() (*RelayResult, error){
		func() (*RelayResult, error) { return client.ListMerchants(ctx) },
		func() (*RelayResult, error) { return client.ListUsers(ctx, "") },
		func() (*RelayResult, error) { return client.ListBilling(ctx) },
		func() (*RelayResult, error) { return client.ListCommission(ctx) },
		func() (*RelayResult, error) { return client.CreateMerchant(ctx, map[string]any{"company": "Haus"}) },
		func() (*RelayResult, error) { return client.CreateUser(ctx, map[string]any{"username": "lerato"}) },
		func() (*RelayResult, error) { return client.GenerateMerchantKey(ctx, "42") },
	}
	for i, call := range calls {
		if _, err := call(); !errors.Is(err, ErrPartnerKeyMissing) {
			t.Errorf("call %d: err = %v, want ErrPartnerKeyMissing", i, err)
		}
	}
	if transport.calls != 0 {
		t.Fatalf("network calls = %d, want 0 without a partner key", transport.calls)
	}
}

func TestPartnerClientAuthorizationHeader(t *testing.T) {
	var gotAuth, gotContentType, gotBody string
	transport := &countingTransport{
		roundTrip: func(req *http.Request) (*http.Response, error) {
			gotAuth = req.Header.Get("Authorization")
			gotContentType = req.Header.Get("Content-Type")
			raw, _ := io.ReadAll(req.Body)
			gotBody = string(raw)
			return &http.Response{
				StatusCode: http.StatusCreated,
				Body:       io.NopCloser(strings.NewReader(`{"id":"m_1"}`)),
				Header:     http.Header{},
			}, nil
		},
	}
	client := newTestPartnerClient("pk_partner", transport)

	result, err := client.CreateMerchant(context.Background(), map[string]any{"company": "Haus"})
	if err != nil {
		t.Fatalf("CreateMerchant: %v", err)
	}
	if gotAuth != "pk_partner" {
		t.Errorf("Authorization = %q, want the bare partner key (no Bearer scheme)", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if !strings.Contains(gotBody, `"company":"Haus"`) {
		t.Errorf("body = %q, want payload forwarded verbatim", gotBody)
	}
	if result.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want upstream status passed through", result.StatusCode)
	}
	if result.Fields != nil {
		t.Error("v4 results must not be normalized")
	}
}

func TestPartnerClientGenerateMerchantKeyPath(t *testing.T) {
	var gotURL string
	var gotBody io.ReadCloser
	transport := &countingTransport{
		roundTrip: func(req *http.Request) (*http.Response, error) {
			gotURL = req.URL.String()
			gotBody = req.Body
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(`{"key":"k"}`)),
				Header:     http.Header{},
			}, nil
		},
	}
	client := newTestPartnerClient("pk_partner", transport)

	if _, err := client.GenerateMerchantKey(context.Background(), "m 1"); err != nil {
		t.Fatalf("GenerateMerchantKey: %v", err)
	}
	if !strings.Contains(gotURL, "/api/v4/merchants/m%201/api_keys") {
		t.Errorf("url = %q, want the merchant id URL-escaped in the path", gotURL)
	}
	if gotBody != nil {
		t.Error("key generation must send no body")
	}
}

func TestPartnerClientListUsersQueryFilter(t *testing.T) {
	var gotQuery string
	transport := &countingTransport{
		roundTrip: func(req *http.Request) (*http.Response, error) {
			gotQuery = req.URL.RawQuery
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader("<users/>")),
				Header:     http.Header{},
			}, nil
		},
	}
	client := newTestPartnerClient("pk_partner", transport)

	if _, err := client.ListUsers(context.Background(), "42"); err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if gotQuery != "merchant_id=42" {
		t.Errorf("query = %q, want merchant_id filter appended", gotQuery)
	}

	if _, err := client.ListUsers(context.Background(), ""); err != nil {
		t.Fatalf("ListUsers without filter: %v", err)
	}
	if gotQuery != "" {
		t.Errorf("query = %q, want none without a merchant id", gotQuery)
	}
}
