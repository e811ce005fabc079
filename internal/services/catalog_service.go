package services

import (
	"database/sql"
	"errors"

	"annapurna/internal/domain"
	"annapurna/internal/repos"

	"github.com/google/uuid"
)

var ErrItemNotFound = errors.New("item not found")

type CatalogService struct {
	Catalog *repos.CatalogRepo
}

func NewCatalogService(catalog *repos.CatalogRepo) *CatalogService {
	return &CatalogService{Catalog: catalog}
}

// FindOrCreateItem looks the item up by exact name and inserts it when absent.
// Name is the natural key; a concurrent insert losing the race falls back to
// the winner's row.
func (s *CatalogService) FindOrCreateItem(name, description, category string) (string, error) {
	if it, err := s.Catalog.ItemByName(name); err == nil {
		return it.ID, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}

	if category == "" {
		category = "Other"
	}
	it := &domain.Item{ID: uuid.NewString(), Name: name, Description: description, Category: category}
	if err := s.Catalog.InsertItem(it); err != nil {
		if repos.IsUniqueViolation(err) {
			existing, gerr := s.Catalog.ItemByName(name)
			if gerr != nil {
				return "", gerr
			}
			return existing.ID, nil
		}
		return "", err
	}
	return it.ID, nil
}

// AddItem registers (or reuses) a catalog item and stocks it for today.
func (s *CatalogService) AddItem(vendorID, name, description, category string, quantity int) (string, error) {
	itemID, err := s.FindOrCreateItem(name, description, category)
	if err != nil {
		return "", err
	}
	if err := s.Catalog.UpsertDailyStock(uuid.NewString(), itemID, vendorID, domain.Today(), quantity); err != nil {
		return "", err
	}
	return itemID, nil
}

// Restock adds quantity to an existing item's stock for today.
func (s *CatalogService) Restock(vendorID, itemID string, quantity int) error {
	ok, err := s.Catalog.ItemExists(itemID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrItemNotFound
	}
	return s.Catalog.UpsertDailyStock(uuid.NewString(), itemID, vendorID, domain.Today(), quantity)
}

func (s *CatalogService) ListAllItems() ([]domain.Item, error) {
	return s.Catalog.ListItems()
}

func (s *CatalogService) ListAvailableToday() ([]repos.AvailableItemRow, error) {
	return s.Catalog.ListAvailable(domain.Today())
}

func (s *CatalogService) ListVendorToday(vendorID string) ([]repos.VendorStockRow, error) {
	return s.Catalog.ListVendorStock(vendorID, domain.Today())
}
