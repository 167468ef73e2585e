package models

// Status strings match what the portal front end renders; they are part of
// the API surface, not internal enums.
const (
	OrderStatusPaid    = "Paid"
	OrderStatusPending = "Pending"
	OrderStatusFailed  = "Failed"

	TransactionStatusApproved     = "Approved"
	TransactionStatusPending      = "Pending"
	TransactionStatusDeclined     = "Declined"
	TransactionStatusRefunded     = "Refunded"
	TransactionStatusRefundFailed = "Refund Failed"
	TransactionStatusVoided       = "Voided"
	TransactionStatusVoidFailed   = "Void Failed"

	SubscriptionStatusActive = "Active"
	SubscriptionStatusFailed = "Failed"

	InventoryStatusInStock = "In Stock"
	InventoryStatusLow     = "Low"
	InventoryStatusOut     = "Out"
)

type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	SKU      string  `json:"sku"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Category string  `json:"category"`
}

type Order struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Customer string  `json:"customer"`
	Items    int     `json:"items"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
}

type InventoryItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Quantity int    `json:"quantity"`
}

type Subscription struct {
	ID       string `json:"id"`
	Plan     string `json:"plan"`
	Customer string `json:"customer"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Status   string `json:"status"`
}

// Transaction is the portal's audit record of a relay outcome. GatewayID is
// the opaque id assigned by the gateway (or the mock); ID is the ledger's
// own local id.
type Transaction struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	Customer  string  `json:"customer"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Status    string  `json:"status"`
	GatewayID string  `json:"transactionId"`
}
