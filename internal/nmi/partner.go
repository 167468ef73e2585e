package nmi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hausmanager/api/internal/metrics"
	json "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

const (
	merchantsPath         = "/api/v4/merchants"
	merchantReportsPath   = "/api/v4/merchants/reports"
	usersPath             = "/api/v4/users"
	userReportsPath       = "/api/v4/users/reports"
	billingReportsPath    = "/api/v4/billing/reports"
	commissionReportsPath = "/api/v4/billing/commission/reports"
)

// PartnerAPI is the slice of the gateway's v4 resource API the portal
// consumes. Response bodies pass through unparsed: v4 answers are already
// machine-readable JSON or XML, so re-serializing them would only couple
// this layer to the upstream's evolving schema.
type PartnerAPI interface {
	CreateMerchant(ctx context.Context, payload map[string]any) (*RelayResult, error)
	CreateUser(ctx context.Context, payload map[string]any) (*RelayResult, error)
	GenerateMerchantKey(ctx context.Context, merchantID string) (*RelayResult, error)
	ListMerchants(ctx context.Context) (*RelayResult, error)
	ListUsers(ctx context.Context, merchantID string) (*RelayResult, error)
	ListBilling(ctx context.Context) (*RelayResult, error)
	ListCommission(ctx context.Context) (*RelayResult, error)
}

// PartnerClient talks to the v4 endpoints with the partner-level key sent
// directly as the Authorization header value (the gateway does not use a
// Bearer scheme). A missing key fails every call before any network I/O.
type PartnerClient struct {
	baseURL    string
	partnerKey string
	client     *http.Client
}

func NewPartnerClient(baseURL, partnerKey string) *PartnerClient {
	return &PartnerClient{
		baseURL:    baseURL,
		partnerKey: partnerKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *PartnerClient) CreateMerchant(ctx context.Context, payload map[string]any) (*RelayResult, error) {
	return c.post(ctx, merchantsPath, payload)
}

func (c *PartnerClient) CreateUser(ctx context.Context, payload map[string]any) (*RelayResult, error) {
	return c.post(ctx, usersPath, payload)
}

func (c *PartnerClient) GenerateMerchantKey(ctx context.Context, merchantID string) (*RelayResult, error) {
	path := merchantsPath + "/" + url.PathEscape(merchantID) + "/api_keys"
	return c.post(ctx, path, nil)
}

func (c *PartnerClient) ListMerchants(ctx context.Context) (*RelayResult, error) {
	return c.get(ctx, merchantReportsPath, nil)
}

func (c *PartnerClient) ListUsers(ctx context.Context, merchantID string) (*RelayResult, error) {
	var query url.Values
	if merchantID != "" {
		query = url.Values{"merchant_id": {merchantID}}
	}
	return c.get(ctx, userReportsPath, query)
}

func (c *PartnerClient) ListBilling(ctx context.Context) (*RelayResult, error) {
	return c.get(ctx, billingReportsPath, nil)
}

func (c *PartnerClient) ListCommission(ctx context.Context) (*RelayResult, error) {
	return c.get(ctx, commissionReportsPath, nil)
}

func (c *PartnerClient) post(ctx context.Context, path string, payload map[string]any) (*RelayResult, error) {
	if c.partnerKey == "" {
		return nil, ErrPartnerKeyMissing
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("[relay] failed to marshal v4 payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("[relay] failed to build request for %s: %w", path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req)
}

func (c *PartnerClient) get(ctx context.Context, path string, query url.Values) (*RelayResult, error) {
	if c.partnerKey == "" {
		return nil, ErrPartnerKeyMissing
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("[relay] failed to build request for %s: %w", path, err)
	}
	return c.do(req)
}

func (c *PartnerClient) do(req *http.Request) (*RelayResult, error) {
	req.Header.Set("Authorization", c.partnerKey)

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RelayRequests.WithLabelValues("json", "transport_error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RelayRequests.WithLabelValues("json", "transport_error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}

	metrics.RelayRequests.WithLabelValues("json", "ok").Inc()
	log.Debug().
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Msg("[relay] v4 gateway response")

	return &RelayResult{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}, nil
}
