package services

import (
	"database/sql"
	"errors"
	"fmt"

	"annapurna/internal/domain"
	"annapurna/internal/repos"

	"github.com/google/uuid"
)

var (
	ErrOutOfStock    = errors.New("item not available")
	ErrInvalidStatus = errors.New("invalid status")
	ErrOrderNotFound = errors.New("order not found")
)

type OrderService struct {
	Orders *repos.OrderRepo
	Notifs *repos.NotificationRepo
}

func NewOrderService(orders *repos.OrderRepo, notifs *repos.NotificationRepo) *OrderService {
	return &OrderService{Orders: orders, Notifs: notifs}
}

// Place creates a pending order for one unit of the daily item. The order
// insert and the stock decrement commit together or not at all, so quantity
// never goes negative and a sold-out row rejects every later caller.
func (s *OrderService) Place(customerID, dailyItemID string) (string, error) {
	orderID := uuid.NewString()
	err := s.Orders.Place(orderID, customerID, dailyItemID, domain.Today())
	if err != nil {
		if errors.Is(err, repos.ErrNoStock) {
			return "", ErrOutOfStock
		}
		return "", err
	}
	return orderID, nil
}

// UpdateStatus moves an order to newStatus and, on 'ready', notifies the
// customer naming the item. Re-applying 'ready' emits another notification;
// dedup is deliberately not attempted.
func (s *OrderService) UpdateStatus(orderID, newStatus string) error {
	if !domain.ValidStatus(newStatus) {
		return ErrInvalidStatus
	}
	n, err := s.Orders.UpdateStatus(orderID, newStatus)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	if newStatus != domain.StatusReady {
		return nil
	}

	customerID, itemName, err := s.Orders.CustomerRef(orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		return err
	}
	msg := fmt.Sprintf("Your order for %s is ready for pickup!", itemName)
	return s.Notifs.Append(uuid.NewString(), customerID, orderID, msg)
}

func (s *OrderService) ListForCustomer(customerID string) ([]repos.CustomerOrderRow, error) {
	return s.Orders.ListByCustomer(customerID)
}

func (s *OrderService) ListForVendor(vendorID string) ([]repos.VendorOrderRow, error) {
	return s.Orders.ListByVendor(vendorID)
}
