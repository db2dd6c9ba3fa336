package store

import (
	"fmt"

	"github.com/google/uuid"
)

// LineRequest is one requested product-quantity pair of a new order.
type LineRequest struct {
	ProductID int
	Quantity  int
}

// PlaceOrder resolves every requested line against the product collection
// inside one critical section. If any product is missing or short on stock
// the whole order is rejected and itemErrs reports each failing line;
// nothing is persisted. Product name and price are snapshotted at order
// time. Stock is an availability check only — placement does not decrement
// it.
func (s *Store) PlaceOrder(userID int, lines []LineRequest, addr Address, paymentMethod string) (Order, []string) {
	if paymentMethod == "" {
		paymentMethod = "credit_card"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var itemErrs []string
	items := make([]OrderItem, 0, len(lines))
	total := 0.0

	for _, l := range lines {
		i := s.productIndex(l.ProductID)
		if i < 0 {
			itemErrs = append(itemErrs, fmt.Sprintf("Product with ID %d not found", l.ProductID))
			continue
		}
		p := s.products[i]
		if p.Stock < l.Quantity {
			itemErrs = append(itemErrs, fmt.Sprintf("Insufficient stock for %s", p.Name))
			continue
		}

		itemTotal := p.Price * float64(l.Quantity)
		total += itemTotal
		items = append(items, OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Price:       p.Price,
			Quantity:    l.Quantity,
			ItemTotal:   itemTotal,
		})
	}

	if len(itemErrs) > 0 {
		return Order{}, itemErrs
	}

	now := s.now()
	o := Order{
		ID:              s.nextOrderID,
		UUID:            uuid.NewString(),
		UserID:          userID,
		Items:           items,
		Total:           total,
		Status:          StatusPending,
		ShippingAddress: addr,
		PaymentMethod:   paymentMethod,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.nextOrderID++
	s.orders = append(s.orders, o)
	return o, nil
}

// Orders lists all orders, optionally filtered by status and/or user id
// (zero values mean no filter).
func (s *Store) Orders(status string, userID int) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Order, 0)
	for _, o := range s.orders {
		if status != "" && o.Status != status {
			continue
		}
		if userID != 0 && o.UserID != userID {
			continue
		}
		out = append(out, o)
	}
	return out
}

func (s *Store) Order(id int) (Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.orderIndex(id)
	if i < 0 {
		return Order{}, false
	}
	return s.orders[i], true
}

func (s *Store) OrdersByUser(userID int) []Order {
	return s.Orders("", userID)
}

func (s *Store) UpdateOrderStatus(id int, status string) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.orderIndex(id)
	if i < 0 {
		return Order{}, false
	}
	s.orders[i].Status = status
	s.orders[i].UpdatedAt = s.now()
	return s.orders[i], true
}

// CancelOrder moves an order to cancelled, permitted only from pending.
func (s *Store) CancelOrder(id int) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.orderIndex(id)
	if i < 0 {
		return Order{}, ErrOrderNotFound
	}
	if s.orders[i].Status != StatusPending {
		return Order{}, ErrNotCancellable
	}
	s.orders[i].Status = StatusCancelled
	s.orders[i].UpdatedAt = s.now()
	return s.orders[i], nil
}

// orderIndex must be called with the lock held.
func (s *Store) orderIndex(id int) int {
	for i, o := range s.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}
