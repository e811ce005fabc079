package repos

import (
	"annapurna/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CatalogRepo struct{ db *sqlx.DB }

func NewCatalogRepo(db *sqlx.DB) *CatalogRepo { return &CatalogRepo{db: db} }

// Row returned by the customer-facing availability listing.
type AvailableItemRow struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	Category    string `db:"category" json:"category"`
	DailyItemID string `db:"daily_item_id" json:"dailyItemId"`
	Quantity    int    `db:"quantity" json:"quantity"`
}

// Row returned by the vendor stock listing.
type VendorStockRow struct {
	ID            string `db:"id" json:"id"`
	ItemID        string `db:"item_id" json:"itemId"`
	ItemName      string `db:"item_name" json:"itemName"`
	Quantity      int    `db:"quantity" json:"quantity"`
	AvailableDate string `db:"available_date" json:"availableDate"`
	IsAvailable   bool   `db:"is_available" json:"isAvailable"`
}

func (r *CatalogRepo) ItemByName(name string) (*domain.Item, error) {
	var it domain.Item
	err := r.db.Get(&it, `SELECT id, name, description, category FROM items WHERE name = ?`, name)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *CatalogRepo) ItemExists(id string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM items WHERE id = ?`, id)
	return n > 0, err
}

func (r *CatalogRepo) InsertItem(it *domain.Item) error {
	_, err := r.db.Exec(`
		INSERT INTO items(id, name, description, category) VALUES(?, ?, ?, ?)`,
		it.ID, it.Name, it.Description, it.Category)
	return err
}

func (r *CatalogRepo) ListItems() ([]domain.Item, error) {
	var items []domain.Item
	err := r.db.Select(&items, `SELECT id, name, description, category FROM items ORDER BY name`)
	return items, err
}

// UpsertDailyStock adds delta to the day's stock row for the item, creating it
// when absent. Restocks coalesce on UNIQUE(item_id, available_date); the last
// vendor to touch a day's stock owns the row.
func (r *CatalogRepo) UpsertDailyStock(id, itemID, vendorID, date string, delta int) error {
	_, err := r.db.Exec(`
		INSERT INTO daily_items(id, item_id, vendor_id, available_date, quantity, is_available)
		VALUES(?, ?, ?, ?, ?, 1)
		ON CONFLICT(item_id, available_date) DO UPDATE SET
		  quantity  = quantity + excluded.quantity,
		  vendor_id = excluded.vendor_id
	`, id, itemID, vendorID, date, delta)
	return err
}

func (r *CatalogRepo) ListAvailable(date string) ([]AvailableItemRow, error) {
	var rows []AvailableItemRow
	err := r.db.Select(&rows, `
		SELECT i.id, i.name, i.description, i.category,
		       di.id AS daily_item_id, di.quantity
		FROM items i
		JOIN daily_items di ON di.item_id = i.id
		WHERE di.available_date = ? AND di.is_available = 1 AND di.quantity > 0
		ORDER BY i.name
	`, date)
	return rows, err
}

func (r *CatalogRepo) ListVendorStock(vendorID, date string) ([]VendorStockRow, error) {
	var rows []VendorStockRow
	err := r.db.Select(&rows, `
		SELECT di.id, di.item_id, i.name AS item_name, di.quantity, di.available_date, di.is_available
		FROM daily_items di
		JOIN items i ON i.id = di.item_id
		WHERE di.vendor_id = ? AND di.available_date = ?
		ORDER BY i.name
	`, vendorID, date)
	return rows, err
}
