package dto

import (
	"fmt"
	"strconv"

	json "github.com/json-iterator/go"
)

// The relay endpoints validate a minimum field set and forward everything
// else untouched, so each request type pairs its typed required fields with
// a residual Extra map holding whatever else the caller sent.

type PaymentRequest struct {
	PaymentToken string
	Amount       string
	Type         string
	Extra        map[string]string
}

type OrderRequest struct {
	PaymentToken string
	Amount       string
	FirstName    string
	LastName     string
	Email        string
	Items        int
	Extra        map[string]string
}

type SubscriptionRequest struct {
	PaymentToken string
	Extra        map[string]string
}

type InvoiceRequest struct {
	Email  string
	Amount string
	Extra  map[string]string
}

type VaultAddRequest struct {
	PaymentToken string
	Extra        map[string]string
}

type VaultChargeRequest struct {
	VaultID string
	Amount  string
	Extra   map[string]string
}

// ProductRequest is fully typed: product creation is a local ledger write,
// so nothing passes through and every field is validated. Pointer fields
// distinguish absent numbers from zero values.
type ProductRequest struct {
	Name     string   `json:"name"`
	SKU      string   `json:"sku"`
	Price    *float64 `json:"price"`
	Stock    *int     `json:"stock"`
	Category string   `json:"category"`
}

func ParsePaymentRequest(body []byte) (*PaymentRequest, error) {
	fields, err := DecodeFields(body)
	if err != nil {
		return nil, err
	}
	return &PaymentRequest{
		PaymentToken: Take(fields, "payment_token"),
		Amount:       Take(fields, "amount"),
		Type:         Take(fields, "type"),
		Extra:        fields,
	}, nil
}

func ParseOrderRequest(body []byte) (*OrderRequest, error) {
	fields, err := DecodeFields(body)
	if err != nil {
		return nil, err
	}
	items := 1
	if raw := Take(fields, "items"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			items = n
		}
	}
	return &OrderRequest{
		PaymentToken: Take(fields, "payment_token"),
		Amount:       Take(fields, "amount"),
		FirstName:    Take(fields, "first_name"),
		LastName:     Take(fields, "last_name"),
		Email:        Take(fields, "email"),
		Items:        items,
		Extra:        fields,
	}, nil
}

func ParseSubscriptionRequest(body []byte) (*SubscriptionRequest, error) {
	fields, err := DecodeFields(body)
	if err != nil {
		return nil, err
	}
	return &SubscriptionRequest{
		PaymentToken: Take(fields, "payment_token"),
		Extra:        fields,
	}, nil
}

func ParseInvoiceRequest(body []byte) (*InvoiceRequest, error) {
	fields, err := DecodeFields(body)
	if err != nil {
		return nil, err
	}
	return &InvoiceRequest{
		Email:  Take(fields, "email"),
		Amount: Take(fields, "amount"),
		Extra:  fields,
	}, nil
}

func ParseVaultAddRequest(body []byte) (*VaultAddRequest, error) {
	fields, err := DecodeFields(body)
	if err != nil {
		return nil, err
	}
	return &VaultAddRequest{
		PaymentToken: Take(fields, "payment_token"),
		Extra:        fields,
	}, nil
}

func ParseVaultChargeRequest(body []byte) (*VaultChargeRequest, error) {
	fields, err := DecodeFields(body)
	if err != nil {
		return nil, err
	}
	return &VaultChargeRequest{
		VaultID: Take(fields, "customer_vault_id", "vault_id"),
		Amount:  Take(fields, "amount"),
		Extra:   fields,
	}, nil
}

func ParseProductRequest(body []byte) (*ProductRequest, error) {
	var req ProductRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("invalid JSON: %v", err)
	}
	return &req, nil
}

// DecodeFields unmarshals a JSON object into a flat string map, rendering
// scalars the way the legacy gateway expects them on the wire. An empty body
// decodes to an empty map so filter-style endpoints accept bodyless calls.
func DecodeFields(body []byte) (map[string]string, error) {
	fields := map[string]string{}
	if len(body) == 0 {
		return fields, nil
	}
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %v", err)
	}
	for key, value := range raw {
		fields[key] = Stringify(value)
	}
	return fields, nil
}

// DecodeJSON unmarshals a JSON object without flattening, for v4 payloads
// that are forwarded verbatim with their types intact.
func DecodeJSON(body []byte) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %v", err)
	}
	return raw, nil
}

// Stringify renders a decoded JSON scalar as the gateway's form encoding
// expects: numbers without a trailing ".0", booleans as true/false, null as
// empty. Non-scalars fall back to their JSON encoding.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}

// Take removes the first present key from fields and returns its value,
// falling through to later keys while the value is empty.
func Take(fields map[string]string, keys ...string) string {
	for _, key := range keys {
		value, ok := fields[key]
		if !ok {
			continue
		}
		delete(fields, key)
		if value != "" {
			return value
		}
	}
	return ""
}
