package state

import (
	"context"
	"encoding/json"
	"testing"
)

func testContainer(t *testing.T) (*Store, *Container) {
	t.Helper()
	store := NewStore(NewMemoryPersister(), nil)
	return store, store.Load(context.Background(), "test-session")
}

func tee() ProductSnapshot {
	return ProductSnapshot{
		ProductID: "sku-42",
		Name:      "Tee",
		Price:     20,
		Image:     "/uploads/images/tee.png",
		Category:  "apparel",
		Stock:     10,
	}
}

func TestAddToCartMergesDuplicates(t *testing.T) {
	ctx := context.Background()
	_, c := testContainer(t)

	c.AddToCart(ctx, tee(), 2)
	c.AddToCart(ctx, tee(), 3)

	cart := c.Snapshot().Cart
	if len(cart) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(cart))
	}
	if cart[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", cart[0].Quantity)
	}
	if cart[0].UnitPrice != 20 {
		t.Errorf("expected unit price 20, got %v", cart[0].UnitPrice)
	}
}

func TestAddToCartFloorsQuantity(t *testing.T) {
	ctx := context.Background()
	_, c := testContainer(t)

	c.AddToCart(ctx, tee(), 0)

	if got := c.Snapshot().Cart[0].Quantity; got != 1 {
		t.Errorf("expected quantity 1, got %d", got)
	}
}

func TestDecrementQuantityFloor(t *testing.T) {
	ctx := context.Background()
	_, c := testContainer(t)

	c.AddToCart(ctx, tee(), 1)
	c.DecrementQuantity(ctx, "sku-42")

	if got := c.Snapshot().Cart[0].Quantity; got != 1 {
		t.Errorf("expected quantity to stay at 1, got %d", got)
	}

	c.IncrementQuantity(ctx, "sku-42")
	c.DecrementQuantity(ctx, "sku-42")
	if got := c.Snapshot().Cart[0].Quantity; got != 1 {
		t.Errorf("expected quantity 1 after increment/decrement, got %d", got)
	}
}

func TestDecrementUnknownProductIsNoop(t *testing.T) {
	ctx := context.Background()
	_, c := testContainer(t)

	c.DecrementQuantity(ctx, "missing")
	c.IncrementQuantity(ctx, "missing")
	c.RemoveLineItem(ctx, "missing")

	if len(c.Snapshot().Cart) != 0 {
		t.Errorf("expected empty cart, got %d items", len(c.Snapshot().Cart))
	}
}

func TestWishlistToggleIsSelfInverse(t *testing.T) {
	ctx := context.Background()
	_, c := testContainer(t)

	c.ToggleWishlist(ctx, tee())
	if !c.InWishlist("sku-42") {
		t.Fatal("expected product in wishlist after first toggle")
	}

	c.ToggleWishlist(ctx, tee())
	if c.InWishlist("sku-42") {
		t.Error("expected product removed after second toggle")
	}
	if len(c.Snapshot().Wishlist) != 0 {
		t.Errorf("expected empty wishlist, got %d entries", len(c.Snapshot().Wishlist))
	}
}

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(_ context.Context, _ *int, _ string, message string) {
	n.messages = append(n.messages, message)
}

func TestWishlistToggleEmitsNotificationEachTime(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	store := NewStore(NewMemoryPersister(), notifier)
	c := store.Load(ctx, "notify-session")

	c.ToggleWishlist(ctx, tee())
	c.ToggleWishlist(ctx, tee())

	if len(notifier.messages) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifier.messages))
	}
}

func TestClearSessionResetsDependentStateOnly(t *testing.T) {
	ctx := context.Background()
	_, c := testContainer(t)

	c.SetUser(ctx, &UserSession{ID: 7, Name: "Ada", Email: "ada@example.com", Role: "customer"})
	c.SetOrderCount(ctx, 3)
	c.AddToCart(ctx, tee(), 2)
	c.ToggleWishlist(ctx, tee())

	c.ClearSession(ctx)

	snapshot := c.Snapshot()
	if snapshot.UserInfo != nil {
		t.Error("expected user info to be nil after clear")
	}
	if snapshot.OrderCount != 0 {
		t.Errorf("expected order count 0, got %d", snapshot.OrderCount)
	}
	if len(snapshot.Wishlist) != 0 {
		t.Errorf("expected empty wishlist, got %d entries", len(snapshot.Wishlist))
	}
	// The cart survives logout so a guest cart carries across accounts.
	if len(snapshot.Cart) != 1 || snapshot.Cart[0].Quantity != 2 {
		t.Errorf("expected cart untouched, got %+v", snapshot.Cart)
	}

	// Clearing an already-cleared session must not panic.
	c.ClearSession(ctx)
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, c := testContainer(t)

	c.SetUser(ctx, &UserSession{ID: 1, Name: "Bea", Email: "bea@example.com", Role: "admin"})
	c.SetOrderCount(ctx, 4)
	c.AddToCart(ctx, tee(), 2)
	c.ToggleWishlist(ctx, ProductSnapshot{ProductID: "sku-7", Name: "Mug", Price: 9.5})

	reloaded := store.Load(ctx, "test-session").Snapshot()

	if reloaded.UserInfo == nil || reloaded.UserInfo.Email != "bea@example.com" {
		t.Errorf("expected user to round-trip, got %+v", reloaded.UserInfo)
	}
	if reloaded.OrderCount != 4 {
		t.Errorf("expected order count 4, got %d", reloaded.OrderCount)
	}
	if len(reloaded.Cart) != 1 || reloaded.Cart[0].ProductID != "sku-42" || reloaded.Cart[0].Quantity != 2 {
		t.Errorf("expected cart to round-trip, got %+v", reloaded.Cart)
	}
	if len(reloaded.Wishlist) != 1 || reloaded.Wishlist[0].ProductID != "sku-7" {
		t.Errorf("expected wishlist to round-trip, got %+v", reloaded.Wishlist)
	}
}

func TestVersionMismatchDiscardsSnapshot(t *testing.T) {
	ctx := context.Background()
	persister := NewMemoryPersister()

	// An older snapshot with the wishlist field missing entirely.
	stale := map[string]interface{}{
		"version":     1,
		"order_count": 9,
		"cart": []map[string]interface{}{
			{"product_id": "sku-1", "quantity": 2},
		},
	}
	data, err := json.Marshal(stale)
	if err != nil {
		t.Fatalf("failed to marshal stale snapshot: %v", err)
	}
	if err := persister.Save(ctx, "stale-session", data); err != nil {
		t.Fatalf("failed to seed stale snapshot: %v", err)
	}

	store := NewStore(persister, nil)
	snapshot := store.Load(ctx, "stale-session").Snapshot()

	if snapshot.OrderCount != 0 || len(snapshot.Cart) != 0 {
		t.Errorf("expected default state for stale snapshot, got %+v", snapshot)
	}
	if snapshot.Wishlist == nil {
		t.Error("expected wishlist initialized, got nil")
	}
}

func TestCorruptSnapshotDiscarded(t *testing.T) {
	ctx := context.Background()
	persister := NewMemoryPersister()
	if err := persister.Save(ctx, "bad-session", []byte("{not json")); err != nil {
		t.Fatalf("failed to seed corrupt snapshot: %v", err)
	}

	store := NewStore(persister, nil)
	snapshot := store.Load(ctx, "bad-session").Snapshot()

	if len(snapshot.Cart) != 0 || snapshot.UserInfo != nil {
		t.Errorf("expected default state for corrupt snapshot, got %+v", snapshot)
	}
}

// Mirrors the end-to-end flow: add, increment, remove.
func TestCartScenario(t *testing.T) {
	ctx := context.Background()
	_, c := testContainer(t)

	c.AddToCart(ctx, tee(), 1)
	if got := c.Snapshot().Cart[0].Quantity; got != 1 {
		t.Fatalf("expected quantity 1, got %d", got)
	}

	c.IncrementQuantity(ctx, "sku-42")
	if got := c.Snapshot().Cart[0].Quantity; got != 2 {
		t.Fatalf("expected quantity 2, got %d", got)
	}
	if got := c.Snapshot().Subtotal(); got != 40 {
		t.Errorf("expected subtotal 40, got %v", got)
	}

	c.RemoveLineItem(ctx, "sku-42")
	if len(c.Snapshot().Cart) != 0 {
		t.Errorf("expected empty cart, got %+v", c.Snapshot().Cart)
	}
}

func TestReplaceCatalog(t *testing.T) {
	ctx := context.Background()
	_, c := testContainer(t)

	c.ReplaceCatalog(ctx, []ProductSnapshot{tee()})
	if len(c.Snapshot().Catalog) != 1 {
		t.Fatalf("expected 1 catalog entry, got %d", len(c.Snapshot().Catalog))
	}

	c.ReplaceCatalog(ctx, nil)
	if c.Snapshot().Catalog == nil {
		t.Error("expected catalog initialized after nil replace")
	}
}
