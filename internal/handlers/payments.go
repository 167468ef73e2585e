package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/hausmanager/api/internal/dto"
)

// ProcessPayment relays a tokenized sale (or other transaction type) to the
// legacy endpoint and records the outcome as a ledger transaction. Declined
// payments still produce an audit record, marked Declined.
func (h *Handler) ProcessPayment(c *fiber.Ctx) error {
	req, err := dto.ParsePaymentRequest(c.Body())
	if err != nil {
		return clientError(c, err.Error())
	}
	if req.PaymentToken == "" || req.Amount == "" {
		return clientError(c, "payment_token and amount are required")
	}
	if req.Type == "" {
		req.Type = "sale"
	}

	fields := mergeFields(map[string]string{
		"payment_token": req.PaymentToken,
		"amount":        req.Amount,
		"type":          req.Type,
	}, req.Extra)

	result, err := h.gateway.Transact(c.Context(), fields)
	if err != nil {
		return relayError(c, "Error processing payment", err)
	}

	approved := result.Fields["response"] == "1"
	customer := customerName(req.Extra["first_name"], req.Extra["last_name"])
	h.ledger.AddTransaction(customer, parseAmount(req.Amount), result.Fields["transaction_id"], approved)

	return relayJSON(c, result)
}

// CreateOrder is the portal checkout: a sale relay plus an order record and
// its transaction audit entry.
func (h *Handler) CreateOrder(c *fiber.Ctx) error {
	req, err := dto.ParseOrderRequest(c.Body())
	if err != nil {
		return clientError(c, err.Error())
	}
	if req.Amount == "" || req.PaymentToken == "" {
		return clientError(c, "Missing amount or payment_token")
	}

	fields := mergeFields(map[string]string{
		"type":          "sale",
		"amount":        req.Amount,
		"payment_token": req.PaymentToken,
		"first_name":    req.FirstName,
		"last_name":     req.LastName,
		"email":         req.Email,
	}, req.Extra)

	result, err := h.gateway.Transact(c.Context(), fields)
	if err != nil {
		return relayError(c, "Payment failed", err)
	}

	paid := result.Fields["response"] == "1"
	customer := customerName(req.FirstName, req.LastName)
	amount := parseAmount(req.Amount)
	h.ledger.AddOrder(customer, req.Items, amount, paid)
	h.ledger.AddTransaction(customer, amount, result.Fields["transaction_id"], paid)

	return relayJSON(c, result)
}

// CreateSubscription starts a recurring plan against a payment token. Plan
// fields (plan_payments, plan_amount, day_frequency, ...) ride along in the
// extras untouched.
func (h *Handler) CreateSubscription(c *fiber.Ctx) error {
	req, err := dto.ParseSubscriptionRequest(c.Body())
	if err != nil {
		return clientError(c, err.Error())
	}
	if req.PaymentToken == "" {
		return clientError(c, "payment_token is required")
	}

	fields := mergeFields(map[string]string{
		"recurring":     "add_subscription",
		"payment_token": req.PaymentToken,
	}, req.Extra)

	result, err := h.gateway.Transact(c.Context(), fields)
	if err != nil {
		return relayError(c, "Subscription creation failed", err)
	}

	active := result.Fields["response"] == "1"
	h.ledger.AddSubscription(req.Extra["plan"], req.Extra["customer"], active)

	return relayJSON(c, result)
}

// AddCustomerToVault stores a tokenized payment method in the gateway's
// customer vault.
func (h *Handler) AddCustomerToVault(c *fiber.Ctx) error {
	req, err := dto.ParseVaultAddRequest(c.Body())
	if err != nil {
		return clientError(c, err.Error())
	}
	if req.PaymentToken == "" {
		return clientError(c, "payment_token is required")
	}

	fields := mergeFields(map[string]string{
		"customer_vault": "add_customer",
		"payment_token":  req.PaymentToken,
	}, req.Extra)

	result, err := h.gateway.Transact(c.Context(), fields)
	if err != nil {
		return relayError(c, "Error adding customer", err)
	}
	return relayJSON(c, result)
}

// ChargeCustomerVault runs a sale against a stored vault customer.
func (h *Handler) ChargeCustomerVault(c *fiber.Ctx) error {
	req, err := dto.ParseVaultChargeRequest(c.Body())
	if err != nil {
		return clientError(c, err.Error())
	}
	if req.VaultID == "" {
		return clientError(c, "customer_vault_id is required")
	}

	fields := map[string]string{
		"customer_vault_id": req.VaultID,
		"type":              "sale",
	}
	if req.Amount != "" {
		fields["amount"] = req.Amount
	}
	fields = mergeFields(fields, req.Extra)

	result, err := h.gateway.Transact(c.Context(), fields)
	if err != nil {
		return relayError(c, "Error charging customer", err)
	}
	return relayJSON(c, result)
}

// CreateInvoice sends an invoice to a customer email via the legacy
// invoicing API.
func (h *Handler) CreateInvoice(c *fiber.Ctx) error {
	req, err := dto.ParseInvoiceRequest(c.Body())
	if err != nil {
		return clientError(c, err.Error())
	}
	if req.Email == "" || req.Amount == "" {
		return clientError(c, "email and amount are required")
	}

	fields := mergeFields(map[string]string{
		"invoicing": "add_invoice",
		"email":     req.Email,
		"amount":    req.Amount,
	}, req.Extra)

	result, err := h.gateway.Transact(c.Context(), fields)
	if err != nil {
		return relayError(c, "Error creating invoice", err)
	}
	return relayJSON(c, result)
}

// mergeFields lays the caller's residual fields over the handler's required
// set. Validated fields are a minimum, not an allow-list: everything the
// caller sent reaches the gateway.
func mergeFields(required, extra map[string]string) map[string]string {
	for key, value := range extra {
		required[key] = value
	}
	return required
}

func customerName(first, last string) string {
	name := strings.TrimSpace(first + " " + last)
	if name == "" {
		return "Unknown"
	}
	return name
}

func parseAmount(amount string) float64 {
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0
	}
	return value
}
