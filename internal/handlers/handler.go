package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/hausmanager/api/internal/ledger"
	"github.com/hausmanager/api/internal/nmi"
	"github.com/rs/zerolog/log"
)

// Handler wires the portal's HTTP surface to the relay clients and the
// in-memory ledger. Every dependency is injected so tests run against a
// fresh ledger and stub gateways.
type Handler struct {
	gateway         nmi.TransactionGateway
	partner         nmi.PartnerAPI
	ledger          *ledger.Ledger
	tokenizationKey string
}

func New(gateway nmi.TransactionGateway, partner nmi.PartnerAPI, store *ledger.Ledger, tokenizationKey string) *Handler {
	return &Handler{
		gateway:         gateway,
		partner:         partner,
		ledger:          store,
		tokenizationKey: tokenizationKey,
	}
}

// Register mounts every route under /api.
func (h *Handler) Register(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/health", h.Health)
	api.Get("/tokenization-key", h.TokenizationKey)

	api.Get("/products", h.ListProducts)
	api.Post("/products", h.CreateProduct)
	api.Get("/inventory", h.ListInventory)

	api.Get("/orders", h.ListOrders)
	api.Post("/orders", h.CreateOrder)

	api.Get("/subscriptions", h.ListSubscriptions)
	api.Post("/subscriptions", h.CreateSubscription)

	api.Post("/payments", h.ProcessPayment)
	api.Post("/vault/customers", h.AddCustomerToVault)
	api.Post("/vault/charge", h.ChargeCustomerVault)
	api.Post("/invoices", h.CreateInvoice)

	api.Get("/transactions", h.ListTransactions)
	api.Post("/transactions/query", h.QueryTransactions)
	api.Get("/transactions/:id", h.GetTransaction)
	api.Post("/transactions/:id/refund", h.RefundTransaction)
	api.Post("/transactions/:id/void", h.VoidTransaction)

	api.Post("/merchants", h.CreateMerchant)
	api.Get("/merchants", h.ListMerchants)
	api.Post("/merchant-keys", h.GenerateMerchantKey)
	api.Post("/merchants/:id/keys", h.GenerateMerchantKey)
	api.Post("/users", h.CreateUser)
	api.Get("/users", h.ListUsers)
	api.Get("/billing", h.ListBilling)
	api.Get("/billing/commission", h.ListCommission)
}

// relayJSON answers a form relay with its normalized mapping, keeping the
// upstream status code.
func relayJSON(c *fiber.Ctx, result *nmi.RelayResult) error {
	return c.Status(result.StatusCode).JSON(result.Fields)
}

// relayBody answers with the upstream body and status untouched, for v4
// results whose shape belongs to the gateway.
func relayBody(c *fiber.Ctx, result *nmi.RelayResult) error {
	return c.Status(result.StatusCode).SendString(result.Body)
}

func clientError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func serverError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}

// relayError maps a relay client error onto the response: configuration
// errors name the missing key, everything else surfaces as a transport
// failure wrapped in context.
func relayError(c *fiber.Ctx, prefix string, err error) error {
	if errors.Is(err, nmi.ErrPartnerKeyMissing) {
		return serverError(c, "Missing environment variable: NMI_PARTNER_KEY")
	}
	log.Error().Err(err).Str("route", c.Route().Path).Msg("[http] gateway relay failed")
	return serverError(c, prefix+": "+err.Error())
}
