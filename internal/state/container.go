package state

import (
	"context"
	"fmt"
	"log"
)

// Notifier receives the user-facing event a wishlist toggle emits. A nil
// notifier is valid and drops the events.
type Notifier interface {
	Notify(ctx context.Context, userID *int, kind, message string)
}

// Container owns one session's State and exposes the typed transition
// operations. Operations never return errors: they act on in-memory data
// and mirror the tree to the persister after every call, fire-and-forget.
type Container struct {
	key       string
	state     *State
	persister Persister
	notifier  Notifier
}

// Snapshot returns the current tree. Callers must not retain or mutate it
// across operations.
func (c *Container) Snapshot() *State {
	return c.state
}

// SetUser replaces the cached session wholesale. Idempotent.
func (c *Container) SetUser(ctx context.Context, session *UserSession) {
	c.state.UserInfo = session
	c.commit(ctx)
}

// ClearSession nulls the session, zeroes the order count and empties the
// wishlist. The cart is deliberately left untouched so it carries over to
// the next sign-in. Safe to call repeatedly.
func (c *Container) ClearSession(ctx context.Context) {
	c.state.UserInfo = nil
	c.state.OrderCount = 0
	c.state.Wishlist = []ProductSnapshot{}
	c.commit(ctx)
}

// SetOrderCount overwrites the cached badge count.
func (c *Container) SetOrderCount(ctx context.Context, n int) {
	if n < 0 {
		n = 0
	}
	c.state.OrderCount = n
	c.commit(ctx)
}

// ResetOrderCount zeroes the cached badge count.
func (c *Container) ResetOrderCount(ctx context.Context) {
	c.SetOrderCount(ctx, 0)
}

// ReplaceCatalog replaces the locally cached product list used for cart
// lookups.
func (c *Container) ReplaceCatalog(ctx context.Context, products []ProductSnapshot) {
	if products == nil {
		products = []ProductSnapshot{}
	}
	c.state.Catalog = products
	c.commit(ctx)
}

// AddToCart merges the product into the cart: an already-present product
// gets its quantity incremented instead of a duplicate entry. Quantity is
// at least 1 after the call.
func (c *Container) AddToCart(ctx context.Context, product ProductSnapshot, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.state.Cart {
		if c.state.Cart[i].ProductID == product.ProductID {
			c.state.Cart[i].Quantity += quantity
			c.commit(ctx)
			return
		}
	}
	c.state.Cart = append(c.state.Cart, LineItem{
		ProductID: product.ProductID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  quantity,
		Image:     product.Image,
		Category:  product.Category,
	})
	c.commit(ctx)
}

// IncrementQuantity raises the matching line item's quantity by one. No-op
// when the product is not in the cart.
func (c *Container) IncrementQuantity(ctx context.Context, productID string) {
	for i := range c.state.Cart {
		if c.state.Cart[i].ProductID == productID {
			c.state.Cart[i].Quantity++
			c.commit(ctx)
			return
		}
	}
}

// DecrementQuantity lowers the matching line item's quantity by one but
// never below 1; removal is RemoveLineItem's job.
func (c *Container) DecrementQuantity(ctx context.Context, productID string) {
	for i := range c.state.Cart {
		if c.state.Cart[i].ProductID == productID {
			if c.state.Cart[i].Quantity > 1 {
				c.state.Cart[i].Quantity--
				c.commit(ctx)
			}
			return
		}
	}
}

// RemoveLineItem deletes the matching entry if present.
func (c *Container) RemoveLineItem(ctx context.Context, productID string) {
	for i := range c.state.Cart {
		if c.state.Cart[i].ProductID == productID {
			c.state.Cart = append(c.state.Cart[:i], c.state.Cart[i+1:]...)
			c.commit(ctx)
			return
		}
	}
}

// ResetCart empties the cart entirely, e.g. after a successful checkout.
func (c *Container) ResetCart(ctx context.Context) {
	c.state.Cart = []LineItem{}
	c.commit(ctx)
}

// ToggleWishlist inserts the product if absent and removes it if present,
// so toggling twice restores the prior list. Each call emits a user-facing
// notification.
func (c *Container) ToggleWishlist(ctx context.Context, product ProductSnapshot) {
	var userID *int
	if c.state.UserInfo != nil {
		userID = &c.state.UserInfo.ID
	}

	for i := range c.state.Wishlist {
		if c.state.Wishlist[i].ProductID == product.ProductID {
			c.state.Wishlist = append(c.state.Wishlist[:i], c.state.Wishlist[i+1:]...)
			c.commit(ctx)
			c.notify(ctx, userID, fmt.Sprintf("%s removed from your wishlist", product.Name))
			return
		}
	}
	c.state.Wishlist = append(c.state.Wishlist, product)
	c.commit(ctx)
	c.notify(ctx, userID, fmt.Sprintf("%s added to your wishlist", product.Name))
}

// InWishlist reports whether the product is currently wishlisted.
func (c *Container) InWishlist(productID string) bool {
	for _, entry := range c.state.Wishlist {
		if entry.ProductID == productID {
			return true
		}
	}
	return false
}

func (c *Container) notify(ctx context.Context, userID *int, message string) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(ctx, userID, "wishlist", message)
}

// commit mirrors the whole tree back to storage. Failures are logged and
// swallowed; the in-memory state stays authoritative for this session.
func (c *Container) commit(ctx context.Context) {
	if c.persister == nil {
		return
	}
	if err := saveSnapshot(ctx, c.persister, c.key, c.state); err != nil {
		log.Printf("state: failed to persist snapshot for %q: %v", c.key, err)
	}
}
