package nmi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hausmanager/api/internal/metrics"
	"github.com/rs/zerolog/log"
)

const (
	transactPath = "/api/transact.php"
	queryPath    = "/api/query.php"
)

// RelayResult carries an upstream response back to the handler layer. The
// upstream status code is passed through to the portal caller verbatim.
// Fields holds the normalized key=value mapping for legacy form relays and
// is nil for v4 results, which are passed through unparsed.
type RelayResult struct {
	StatusCode int
	Body       string
	Fields     map[string]string
}

// TransactionGateway abstracts the legacy form-encoded transaction API.
// Exactly one implementation is selected at startup: LiveGateway when a
// security key is configured, MockGateway otherwise. Handlers never learn
// which one is active.
type TransactionGateway interface {
	// Transact posts fields to the transaction endpoint (sales, refunds,
	// voids, vault and invoice operations).
	Transact(ctx context.Context, fields map[string]string) (*RelayResult, error)

	// Query posts fields to the report endpoint (transaction reports).
	Query(ctx context.Context, fields map[string]string) (*RelayResult, error)
}

// LiveGateway relays to the real gateway over HTTP, injecting the
// transaction security key into every request.
type LiveGateway struct {
	baseURL     string
	securityKey string
	client      *http.Client
}

func NewLiveGateway(baseURL, securityKey string) *LiveGateway {
	return &LiveGateway{
		baseURL:     baseURL,
		securityKey: securityKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (g *LiveGateway) Transact(ctx context.Context, fields map[string]string) (*RelayResult, error) {
	return g.post(ctx, transactPath, fields)
}

func (g *LiveGateway) Query(ctx context.Context, fields map[string]string) (*RelayResult, error) {
	return g.post(ctx, queryPath, fields)
}

func (g *LiveGateway) post(ctx context.Context, path string, fields map[string]string) (*RelayResult, error) {
	form := url.Values{}
	form.Set("security_key", g.securityKey)
	for key, value := range fields {
		form.Set(key, value)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("[relay] failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		metrics.RelayRequests.WithLabelValues("form", "transport_error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RelayRequests.WithLabelValues("form", "transport_error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}

	metrics.RelayRequests.WithLabelValues("form", "ok").Inc()
	log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("[relay] legacy gateway response")

	return &RelayResult{
		StatusCode: resp.StatusCode,
		Body:       string(body),
		Fields:     ParseResponse(string(body)),
	}, nil
}
