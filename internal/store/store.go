package store

import (
	"errors"
	"sync"
	"time"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Order lifecycle states. Transitions are free-form via UpdateOrderStatus
// except cancellation, which is only allowed from pending.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrCategoryExists     = errors.New("category with this name already exists")
	ErrProductNotFound    = errors.New("product not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrNotCancellable     = errors.New("only pending orders can be cancelled")
)

type Product struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"originalPrice"`
	Currency      string    `json:"currency"`
	Category      string    `json:"category"`
	CategoryID    int       `json:"categoryId"`
	Stock         int       `json:"stock"`
	Image         string    `json:"image"`
	SKU           string    `json:"sku"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"reviewCount"`
	Featured      bool      `json:"featured"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type User struct {
	ID           int       `json:"id"`
	UUID         string    `json:"uuid"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type OrderItem struct {
	ProductID   int     `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	ItemTotal   float64 `json:"itemTotal"`
}

type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

type Order struct {
	ID              int         `json:"id"`
	UUID            string      `json:"uuid"`
	UserID          int         `json:"userId"`
	Items           []OrderItem `json:"items"`
	Total           float64     `json:"total"`
	Status          string      `json:"status"`
	ShippingAddress Address     `json:"shippingAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

type Review struct {
	ID        int       `json:"id"`
	ProductID int       `json:"productId"`
	UserID    int       `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store owns every collection and all identity counters. One mutex guards
// the whole store so compound operations (review create + rating recompute,
// order placement with stock checks) are single critical sections.
//
// Ids are monotonic per collection and never reused after deletion.
type Store struct {
	mu sync.RWMutex

	products   []Product
	categories []Category
	users      []User
	orders     []Order
	reviews    []Review

	nextProductID  int
	nextCategoryID int
	nextUserID     int
	nextOrderID    int
	nextReviewID   int

	currency   string
	multiplier float64
}

// New returns an empty store. Display prices are derived from origin
// prices via the fixed multiplier.
func New(currencyCode string, multiplier float64) *Store {
	return &Store{
		nextProductID:  1,
		nextCategoryID: 1,
		nextUserID:     1,
		nextOrderID:    1,
		nextReviewID:   1,
		currency:       currencyCode,
		multiplier:     multiplier,
	}
}

func (s *Store) now() time.Time {
	return time.Now().UTC()
}
