// Package state holds the per-session source of truth for cart contents,
// wishlist contents, the cached identity snapshot and the denormalized
// order count. All transition operations are synchronous and keep the
// container invariants: one line item per product, quantity never below 1,
// wishlist toggle is its own inverse, and clearing the session empties the
// wishlist and order count but leaves the cart alone so a guest cart
// survives an account switch.
package state

import "time"

// SchemaVersion tags every persisted snapshot. Snapshots written under an
// older version are discarded at load time instead of migrated.
const SchemaVersion = 2

// UserSession is the authenticated identity snapshot cached alongside the
// cart.
type UserSession struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ProductSnapshot carries the display fields copied from the catalog record
// at the time of the action. The ID is opaque to this package.
type ProductSnapshot struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Category  string  `json:"category"`
	Stock     int     `json:"stock"`
}

// LineItem is one product-plus-quantity entry in the cart.
type LineItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
	Category  string  `json:"category"`
}

// State is the full serialized tree for one session slot.
type State struct {
	Version    int               `json:"version"`
	UserInfo   *UserSession      `json:"user_info"`
	OrderCount int               `json:"order_count"`
	Cart       []LineItem        `json:"cart"`
	Wishlist   []ProductSnapshot `json:"wishlist"`
	Catalog    []ProductSnapshot `json:"catalog"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// NewState returns the default empty tree.
func NewState() *State {
	return &State{
		Version:  SchemaVersion,
		Cart:     []LineItem{},
		Wishlist: []ProductSnapshot{},
		Catalog:  []ProductSnapshot{},
	}
}

// normalize repairs a snapshot deserialized from an older or partial
// payload so operations never see nil slices.
func (s *State) normalize() {
	if s.Cart == nil {
		s.Cart = []LineItem{}
	}
	if s.Wishlist == nil {
		s.Wishlist = []ProductSnapshot{}
	}
	if s.Catalog == nil {
		s.Catalog = []ProductSnapshot{}
	}
	if s.OrderCount < 0 {
		s.OrderCount = 0
	}
	for i := range s.Cart {
		if s.Cart[i].Quantity < 1 {
			s.Cart[i].Quantity = 1
		}
	}
}

// Subtotal sums unit price times quantity over the cart.
func (s *State) Subtotal() float64 {
	var total float64
	for _, item := range s.Cart {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// TotalItems counts cart units, not distinct line items.
func (s *State) TotalItems() int {
	var count int
	for _, item := range s.Cart {
		count += item.Quantity
	}
	return count
}
