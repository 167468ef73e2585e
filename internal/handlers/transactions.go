package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hausmanager/api/internal/dto"
	"github.com/hausmanager/api/internal/models"
)

func (h *Handler) ListTransactions(c *fiber.Ctx) error {
	return c.JSON(h.ledger.Transactions())
}

// QueryTransactions relays a transaction report request with free-form
// filter fields (start_date, end_date, ...). The report body is returned
// as-is; its structure belongs to the gateway.
func (h *Handler) QueryTransactions(c *fiber.Ctx) error {
	fields, err := dto.DecodeFields(c.Body())
	if err != nil {
		return clientError(c, err.Error())
	}
	fields["report_type"] = "transaction"

	result, err := h.gateway.Query(c.Context(), fields)
	if err != nil {
		return relayError(c, "Error fetching transactions", err)
	}
	return relayBody(c, result)
}

// GetTransaction serves a single transaction, preferring the ledger and
// falling back to a gateway query when the id is unknown locally.
func (h *Handler) GetTransaction(c *fiber.Ctx) error {
	id := c.Params("id")
	if txn, ok := h.ledger.FindTransaction(id); ok {
		return c.JSON(txn)
	}

	result, err := h.gateway.Transact(c.Context(), map[string]string{
		"transaction_id": id,
		"type":           "query",
	})
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}
	return relayJSON(c, result)
}

// RefundTransaction relays a refund for the original transaction id. The
// relay runs whether or not the ledger knows the id; a matching record's
// status transitions before the response is written so it can never stay
// Approved after a successful refund.
func (h *Handler) RefundTransaction(c *fiber.Ctx) error {
	id := c.Params("id")

	result, err := h.gateway.Transact(c.Context(), map[string]string{
		"type":          "refund",
		"transactionid": id,
	})
	if err != nil {
		return relayError(c, "Refund failed", err)
	}

	status := models.TransactionStatusRefundFailed
	if result.Fields["response"] == "1" {
		status = models.TransactionStatusRefunded
	}
	h.ledger.SetTransactionStatus(id, status)

	return relayJSON(c, result)
}

// VoidTransaction cancels an unsettled sale or auth.
func (h *Handler) VoidTransaction(c *fiber.Ctx) error {
	id := c.Params("id")

	result, err := h.gateway.Transact(c.Context(), map[string]string{
		"type":          "void",
		"transactionid": id,
	})
	if err != nil {
		return relayError(c, "Void failed", err)
	}

	status := models.TransactionStatusVoidFailed
	if result.Fields["response"] == "1" {
		status = models.TransactionStatusVoided
	}
	h.ledger.SetTransactionStatus(id, status)

	return relayJSON(c, result)
}
