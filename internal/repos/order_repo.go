package repos

import (
	"errors"

	"github.com/jmoiron/sqlx"
)

// ErrNoStock is returned by Place when the daily item is missing or its
// quantity is already zero.
var ErrNoStock = errors.New("daily item out of stock")

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type CustomerOrderRow struct {
	ID        string `db:"id" json:"id"`
	ItemName  string `db:"item_name" json:"itemName"`
	Status    string `db:"status" json:"status"`
	OrderDate string `db:"order_date" json:"orderDate"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type VendorOrderRow struct {
	ID           string `db:"id" json:"id"`
	CustomerName string `db:"customer_name" json:"customerName"`
	ItemName     string `db:"item_name" json:"itemName"`
	Status       string `db:"status" json:"status"`
	OrderDate    string `db:"order_date" json:"orderDate"`
	CreatedAt    string `db:"created_at" json:"createdAt"`
}

// Place atomically takes one unit of stock and records the order. The
// conditional decrement's affected-row count gates the insert, so two
// concurrent calls can never both take the last unit: the loser's UPDATE
// matches no row and the transaction rolls back with ErrNoStock.
func (r *OrderRepo) Place(orderID, customerID, dailyItemID, orderDate string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
		UPDATE daily_items SET quantity = quantity - 1
		WHERE id = ? AND quantity > 0`, dailyItemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoStock
	}

	var itemID string
	if err := tx.Get(&itemID, `SELECT item_id FROM daily_items WHERE id = ?`, dailyItemID); err != nil {
		return err
	}

	if _, err := tx.Exec(`
		INSERT INTO orders(id, customer_id, item_id, daily_item_id, order_date, status)
		VALUES(?, ?, ?, ?, ?, 'pending')`,
		orderID, customerID, itemID, dailyItemID, orderDate); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateStatus returns the number of rows changed (0 when no such order).
func (r *OrderRepo) UpdateStatus(orderID, status string) (int64, error) {
	res, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, orderID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CustomerRef resolves the order's customer and item name for notifications.
func (r *OrderRepo) CustomerRef(orderID string) (customerID, itemName string, err error) {
	var row struct {
		CustomerID string `db:"customer_id"`
		ItemName   string `db:"item_name"`
	}
	err = r.db.Get(&row, `
		SELECT o.customer_id, i.name AS item_name
		FROM orders o
		JOIN items i ON i.id = o.item_id
		WHERE o.id = ?`, orderID)
	if err != nil {
		return "", "", err
	}
	return row.CustomerID, row.ItemName, nil
}

func (r *OrderRepo) ListByCustomer(customerID string) ([]CustomerOrderRow, error) {
	var out []CustomerOrderRow
	err := r.db.Select(&out, `
		SELECT o.id, i.name AS item_name, o.status, o.order_date, o.created_at
		FROM orders o
		JOIN items i ON i.id = o.item_id
		WHERE o.customer_id = ?
		ORDER BY datetime(o.created_at) DESC
	`, customerID)
	return out, err
}

// ListByVendor returns orders against the vendor's daily stock rows.
func (r *OrderRepo) ListByVendor(vendorID string) ([]VendorOrderRow, error) {
	var out []VendorOrderRow
	err := r.db.Select(&out, `
		SELECT o.id, u.full_name AS customer_name, i.name AS item_name,
		       o.status, o.order_date, o.created_at
		FROM orders o
		JOIN items i ON i.id = o.item_id
		JOIN users u ON u.id = o.customer_id
		JOIN daily_items di ON di.id = o.daily_item_id
		WHERE di.vendor_id = ?
		ORDER BY datetime(o.created_at) DESC
	`, vendorID)
	return out, err
}
