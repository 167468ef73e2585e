package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hausmanager/api/internal/models"
)

// Ledger holds the portal's demo dataset: orders, products, inventory,
// subscriptions and transactions, alive for the process lifetime only.
// It is always passed explicitly into handlers so each test can run
// against a fresh instance.
//
// All mutation goes through the mutex; sequential ids are derived from the
// collection under the same lock, so concurrent writers cannot double-assign.
type Ledger struct {
	mu            sync.Mutex
	products      []models.Product
	orders        []models.Order
	inventory     []models.InventoryItem
	subscriptions []models.Subscription
	transactions  []models.Transaction
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// NewSeeded returns a ledger pre-populated with the demo dataset the portal
// ships with, so the front end has something to render before any relay runs.
func NewSeeded() *Ledger {
	return &Ledger{
		products: []models.Product{
			{ID: "P001", Name: "Premium Jerky", SKU: "JERK-001", Price: 799.0, Stock: 42, Category: "Food"},
			{ID: "P002", Name: "Wireless POS Reader", SKU: "POS-002", Price: 1899.0, Stock: 15, Category: "Hardware"},
			{ID: "P003", Name: "Brand T-Shirt", SKU: "TSHIRT-003", Price: 399.0, Stock: 73, Category: "Apparel"},
		},
		orders: []models.Order{
			{ID: "10234", Date: "2025-08-20T10:40:00", Customer: "Lerato M.", Items: 3, Amount: 1799.0, Status: models.OrderStatusPaid},
			{ID: "10235", Date: "2025-08-20T09:52:00", Customer: "A. Jacobs", Items: 1, Amount: 899.0, Status: models.OrderStatusPending},
		},
		inventory: []models.InventoryItem{
			{ID: "INV001", Name: "Premium Jerky", Status: models.InventoryStatusInStock, Quantity: 42},
			{ID: "INV002", Name: "Wireless POS Reader", Status: models.InventoryStatusLow, Quantity: 15},
			{ID: "INV003", Name: "Brand T-Shirt", Status: models.InventoryStatusOut, Quantity: 0},
		},
		subscriptions: []models.Subscription{
			{ID: "SUB001", Plan: "Standard", Customer: "John S.", Start: "2025-08-01", End: "2026-08-01", Status: models.SubscriptionStatusActive},
			{ID: "SUB002", Plan: "Pro", Customer: "Sarah B.", Start: "2025-07-10", End: "2026-07-10", Status: models.SubscriptionStatusActive},
		},
		transactions: []models.Transaction{
			{ID: "TXN001", Date: "2025-08-20", Customer: "Lerato M.", Amount: 1799.0, Method: "Card", Status: models.TransactionStatusApproved, GatewayID: "ABC123"},
			{ID: "TXN002", Date: "2025-08-20", Customer: "A. Jacobs", Amount: 899.0, Method: "Card", Status: models.TransactionStatusPending, GatewayID: "XYZ789"},
		},
	}
}

// Products returns the product list, optionally filtered by a
// case-insensitive search over name, SKU and category.
func (l *Ledger) Products(search string) []models.Product {
	l.mu.Lock()
	defer l.mu.Unlock()

	if search == "" {
		return append([]models.Product(nil), l.products...)
	}
	search = strings.ToLower(search)
	filtered := []models.Product{}
	for _, p := range l.products {
		if strings.Contains(strings.ToLower(p.Name), search) ||
			strings.Contains(strings.ToLower(p.SKU), search) ||
			strings.Contains(strings.ToLower(p.Category), search) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// AddProduct appends a product and a matching inventory row.
func (l *Ledger) AddProduct(name, sku, category string, price float64, stock int) models.Product {
	l.mu.Lock()
	defer l.mu.Unlock()

	product := models.Product{
		ID:       fmt.Sprintf("P%03d", len(l.products)+1),
		Name:     name,
		SKU:      sku,
		Price:    price,
		Stock:    stock,
		Category: category,
	}
	l.products = append(l.products, product)
	l.inventory = append(l.inventory, models.InventoryItem{
		ID:       fmt.Sprintf("INV%03d", len(l.inventory)+1),
		Name:     name,
		Status:   models.InventoryStatusInStock,
		Quantity: stock,
	})
	return product
}

func (l *Ledger) Orders() []models.Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Order(nil), l.orders...)
}

// AddOrder appends an order. Ids continue numerically from the newest order,
// starting after the seed dataset's 10235 when the ledger is empty.
func (l *Ledger) AddOrder(customer string, items int, amount float64, paid bool) models.Order {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := 10236
	if len(l.orders) > 0 {
		if n, err := strconv.Atoi(l.orders[len(l.orders)-1].ID); err == nil {
			next = n + 1
		}
	}
	status := models.OrderStatusFailed
	if paid {
		status = models.OrderStatusPaid
	}
	order := models.Order{
		ID:       strconv.Itoa(next),
		Date:     time.Now().UTC().Format(time.RFC3339),
		Customer: customer,
		Items:    items,
		Amount:   amount,
		Status:   status,
	}
	l.orders = append(l.orders, order)
	return order
}

func (l *Ledger) Inventory() []models.InventoryItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.InventoryItem(nil), l.inventory...)
}

func (l *Ledger) Subscriptions() []models.Subscription {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Subscription(nil), l.subscriptions...)
}

func (l *Ledger) AddSubscription(plan, customer string, active bool) models.Subscription {
	l.mu.Lock()
	defer l.mu.Unlock()

	status := models.SubscriptionStatusFailed
	if active {
		status = models.SubscriptionStatusActive
	}
	if customer == "" {
		customer = "Unknown"
	}
	subscription := models.Subscription{
		ID:       fmt.Sprintf("SUB%03d", len(l.subscriptions)+1),
		Plan:     plan,
		Customer: customer,
		Start:    time.Now().UTC().Format("2006-01-02"),
		Status:   status,
	}
	l.subscriptions = append(l.subscriptions, subscription)
	return subscription
}

func (l *Ledger) Transactions() []models.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Transaction(nil), l.transactions...)
}

// AddTransaction appends an audit record for a relay outcome. Declined
// relays still produce a record, just with a Declined status.
func (l *Ledger) AddTransaction(customer string, amount float64, gatewayID string, approved bool) models.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	status := models.TransactionStatusDeclined
	if approved {
		status = models.TransactionStatusApproved
	}
	if gatewayID == "" {
		gatewayID = "UNKNOWN"
	}
	transaction := models.Transaction{
		ID:        fmt.Sprintf("TXN%03d", len(l.transactions)+1),
		Date:      time.Now().UTC().Format("2006-01-02"),
		Customer:  customer,
		Amount:    amount,
		Method:    "Card",
		Status:    status,
		GatewayID: gatewayID,
	}
	l.transactions = append(l.transactions, transaction)
	return transaction
}

// FindTransaction locates a record by the gateway-assigned id first, then by
// the ledger's local id. The two passes keep the lookup unambiguous when a
// local id happens to collide with another record's gateway id.
func (l *Ledger) FindTransaction(id string) (models.Transaction, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.indexOfTransaction(id); i >= 0 {
		return l.transactions[i], true
	}
	return models.Transaction{}, false
}

// SetTransactionStatus mutates a record's status in place, returning false
// when no record matches. Records are never deleted.
func (l *Ledger) SetTransactionStatus(id, status string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.indexOfTransaction(id); i >= 0 {
		l.transactions[i].Status = status
		return true
	}
	return false
}

func (l *Ledger) indexOfTransaction(id string) int {
	for i := range l.transactions {
		if l.transactions[i].GatewayID == id {
			return i
		}
	}
	for i := range l.transactions {
		if l.transactions[i].ID == id {
			return i
		}
	}
	return -1
}
