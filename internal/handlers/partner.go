package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hausmanager/api/internal/dto"
	"github.com/hausmanager/api/internal/nmi"
)

// The v4 handlers forward payloads verbatim and let the gateway validate
// them: onboarding fields change upstream often enough that enforcing a
// local schema would only break forward compatibility.

func (h *Handler) CreateMerchant(c *fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return clientError(c, "Missing request body")
	}
	payload, err := dto.DecodeJSON(c.Body())
	if err != nil {
		return clientError(c, err.Error())
	}

	result, err := h.partner.CreateMerchant(c.Context(), payload)
	if err != nil {
		return relayError(c, "Error creating merchant", err)
	}
	return relayBody(c, result)
}

func (h *Handler) CreateUser(c *fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return clientError(c, "Missing request body")
	}
	payload, err := dto.DecodeJSON(c.Body())
	if err != nil {
		return clientError(c, err.Error())
	}

	result, err := h.partner.CreateUser(c.Context(), payload)
	if err != nil {
		return relayError(c, "Error creating user", err)
	}
	return relayBody(c, result)
}

// GenerateMerchantKey mints an API key for a merchant. The merchant id comes
// from the path when routed with :id, otherwise from a merchant_id body
// field.
func (h *Handler) GenerateMerchantKey(c *fiber.Ctx) error {
	merchantID := c.Params("id")
	if merchantID == "" && len(c.Body()) > 0 {
		fields, err := dto.DecodeFields(c.Body())
		if err != nil {
			return clientError(c, err.Error())
		}
		merchantID = fields["merchant_id"]
	}
	if merchantID == "" {
		return clientError(c, "Missing merchant_id in URL or request body")
	}

	result, err := h.partner.GenerateMerchantKey(c.Context(), merchantID)
	if err != nil {
		return relayError(c, "Error generating API key", err)
	}
	return relayBody(c, result)
}

// ListMerchants fetches the v4 merchant report and flattens its XML into
// JSON records for the portal table.
func (h *Handler) ListMerchants(c *fiber.Ctx) error {
	result, err := h.partner.ListMerchants(c.Context())
	if err != nil {
		return relayError(c, "Error fetching merchants", err)
	}
	if result.StatusCode < 200 || result.StatusCode >= 300 {
		return relayBody(c, result)
	}

	records, err := nmi.ParseMerchantReport(result.Body)
	if err != nil {
		return serverError(c, "Error fetching merchants: "+err.Error())
	}
	return c.Status(result.StatusCode).JSON(records)
}

// ListUsers fetches the v4 user report, optionally scoped to one merchant
// via the merchant_id query parameter.
func (h *Handler) ListUsers(c *fiber.Ctx) error {
	result, err := h.partner.ListUsers(c.Context(), c.Query("merchant_id"))
	if err != nil {
		return relayError(c, "Error fetching users", err)
	}
	if result.StatusCode < 200 || result.StatusCode >= 300 {
		return relayBody(c, result)
	}

	records, err := nmi.ParseUserReport(result.Body)
	if err != nil {
		return serverError(c, "Error fetching users: "+err.Error())
	}
	return c.Status(result.StatusCode).JSON(records)
}

func (h *Handler) ListBilling(c *fiber.Ctx) error {
	result, err := h.partner.ListBilling(c.Context())
	if err != nil {
		return relayError(c, "Error fetching billing reports", err)
	}
	return relayBody(c, result)
}

func (h *Handler) ListCommission(c *fiber.Ctx) error {
	result, err := h.partner.ListCommission(c.Context())
	if err != nil {
		return relayError(c, "Error fetching commission reports", err)
	}
	return relayBody(c, result)
}
