package domain

import "time"

// Order lifecycle: pending -> ready -> completed.
const (
	StatusPending   = "pending"
	StatusReady     = "ready"
	StatusCompleted = "completed"
)

func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusReady || s == StatusCompleted
}

// DateLayout is the calendar-day format used by daily_items and orders.
const DateLayout = "2006-01-02"

func Today() string { return time.Now().Format(DateLayout) }

type Item struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	Category    string `db:"category" json:"category"`
}

type DailyItem struct {
	ID            string `db:"id" json:"id"`
	ItemID        string `db:"item_id" json:"itemId"`
	VendorID      string `db:"vendor_id" json:"vendorId"`
	AvailableDate string `db:"available_date" json:"availableDate"`
	Quantity      int    `db:"quantity" json:"quantity"`
	IsAvailable   bool   `db:"is_available" json:"isAvailable"`
}

type Order struct {
	ID          string `db:"id" json:"id"`
	CustomerID  string `db:"customer_id" json:"customerId"`
	ItemID      string `db:"item_id" json:"itemId"`
	DailyItemID string `db:"daily_item_id" json:"dailyItemId"`
	OrderDate   string `db:"order_date" json:"orderDate"`
	Status      string `db:"status" json:"status"`
	CreatedAt   string `db:"created_at" json:"createdAt"`
}

type Notification struct {
	ID        string `db:"id" json:"id"`
	UserID    string `db:"user_id" json:"userId"`
	OrderID   string `db:"order_id" json:"orderId,omitempty"`
	Message   string `db:"message" json:"message"`
	IsRead    bool   `db:"is_read" json:"isRead"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}
