package nmi

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/hausmanager/api/internal/metrics"
)

// MockGateway answers every transaction with a synthetic approval so the
// portal keeps working offline or without gateway credentials. It is
// selected at startup when no usable security key is configured and never
// touches the network.
type MockGateway struct{}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// Transact answers with a synthetic approval. A transaction_id field (sent
// by by-id query relays) is echoed back so the record appears to exist
// upstream; all other transaction types get a fresh TEST id.
func (g *MockGateway) Transact(ctx context.Context, fields map[string]string) (*RelayResult, error) {
	metrics.RelayRequests.WithLabelValues("form", "mock").Inc()
	id := fields["transaction_id"]
	if id == "" {
		id = newTestTransactionID()
	}
	return mockResult(approvalFields(fields["amount"], id)), nil
}

// Query answers report lookups with the same synthetic approval, echoing a
// requested transaction_id filter so a record appears to exist upstream.
func (g *MockGateway) Query(ctx context.Context, fields map[string]string) (*RelayResult, error) {
	metrics.RelayRequests.WithLabelValues("form", "mock").Inc()
	id := fields["transaction_id"]
	if id == "" {
		id = newTestTransactionID()
	}
	return mockResult(approvalFields(fields["amount"], id)), nil
}

func approvalFields(amount, transactionID string) map[string]string {
	if amount == "" {
		amount = "0.00"
	}
	return map[string]string{
		"response":       "1",
		"response_code":  "100",
		"response_text":  "TEST MODE: Transaction approved",
		"transaction_id": transactionID,
		"auth_code":      "TEST99",
		"amount":         amount,
	}
}

// mockResult renders fields back into the gateway's wire format so Body and
// Fields stay consistent for callers that read either.
func mockResult(fields map[string]string) *RelayResult {
	lines := make([]string, 0, len(fields))
	for key, value := range fields {
		lines = append(lines, key+"="+value)
	}
	sort.Strings(lines)
	return &RelayResult{
		StatusCode: http.StatusOK,
		Body:       strings.Join(lines, "\n"),
		Fields:     fields,
	}
}

func newTestTransactionID() string {
	return fmt.Sprintf("TEST%.8s", uuid.NewString())
}
