package store

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/storefront/client/internal/domain/catalog"
	"github.com/storefront/client/internal/storage"
)

// WishlistEntry is one favorited product, keyed by product key alone (no
// size/color dimension).
type WishlistEntry struct {
	ProductKey string          `json:"prodId"`
	Product    catalog.Product `json:"product"`
	AddedAt    time.Time       `json:"addedAt"`
}

// Wishlist maintains a deduplicated favorites set with guest/owned duality:
// it starts in guest mode and transitions to owned exactly once per session,
// via MergeGuestIntoUser or SetOwned.
type Wishlist struct {
	mu        sync.Mutex
	items     []WishlistEntry
	guestMode bool
	storage   storage.Storage
	logger    *zap.Logger
	now       func() time.Time
}

// NewWishlist creates a wishlist hydrated from durable storage
func NewWishlist(st storage.Storage, logger *zap.Logger) *Wishlist {
	w := &Wishlist{
		guestMode: true,
		storage:   st,
		logger:    logger.Named("wishlist"),
		now:       time.Now,
	}
	hydrate(st, w.logger, storage.KeyWishlist, &w.items)
	return w
}

// AddItem favorites a product. Idempotent: a product already present is left
// untouched. Products without any identifier are rejected with a logged
// diagnostic.
func (w *Wishlist) AddItem(product catalog.Product) {
	if !product.HasKey() {
		w.logger.Warn("ignoring favorite of product without identifier",
			zap.String("name", product.Name),
		)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	key := product.Key()
	for i := range w.items {
		if w.items[i].ProductKey == key {
			return
		}
	}

	w.items = append(w.items, WishlistEntry{
		ProductKey: key,
		Product:    product,
		AddedAt:    w.now(),
	})
	w.persistLocked()
}

// RemoveItem unfavorites the product with the given key
func (w *Wishlist) RemoveItem(productKey string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	kept := w.items[:0]
	for _, entry := range w.items {
		if entry.ProductKey != productKey {
			kept = append(kept, entry)
		}
	}
	w.items = kept
	w.persistLocked()
}

// Clear empties the wishlist
func (w *Wishlist) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.items = nil
	w.persistLocked()
}

// MergeGuestIntoUser replaces the set with the union of the user's remote
// wishlist and the guest's local items, invoked exactly once when a guest
// with local favorites completes login or registration. Guest items not
// present in the user set are kept with a refreshed timestamp; on conflict
// the user entry wins. Idempotent: merging the same guest set twice yields
// the same result. Clears guest mode.
func (w *Wishlist) MergeGuestIntoUser(guestItems, userItems []WishlistEntry) {
	w.mu.Lock()
	defer w.mu.Unlock()

	merged := make([]WishlistEntry, 0, len(userItems)+len(guestItems))
	seen := make(map[string]bool, len(userItems))
	for _, entry := range userItems {
		if seen[entry.ProductKey] {
			continue
		}
		seen[entry.ProductKey] = true
		merged = append(merged, entry)
	}

	for _, entry := range guestItems {
		if seen[entry.ProductKey] {
			continue
		}
		seen[entry.ProductKey] = true
		entry.AddedAt = w.now()
		merged = append(merged, entry)
	}

	w.items = merged
	w.guestMode = false
	w.persistLocked()
}

// SetOwned replaces the set wholesale with a server-sourced list and clears
// guest mode. Used when an authenticated fetch supersedes local guest state.
func (w *Wishlist) SetOwned(items []WishlistEntry) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.items = make([]WishlistEntry, len(items))
	copy(w.items, items)
	w.guestMode = false
	w.persistLocked()
}

// Items returns a copy of the current entries
func (w *Wishlist) Items() []WishlistEntry {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]WishlistEntry, len(w.items))
	copy(out, w.items)
	return out
}

// Count returns the number of favorited products
func (w *Wishlist) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

// Contains reports whether the product key is favorited
func (w *Wishlist) Contains(productKey string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.items {
		if w.items[i].ProductKey == productKey {
			return true
		}
	}
	return false
}

// GuestMode reports whether the wishlist still holds anonymous local state
func (w *Wishlist) GuestMode() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.guestMode
}

// persistLocked mirrors the entries to durable storage. Caller must hold w.mu.
func (w *Wishlist) persistLocked() {
	items := w.items
	if items == nil {
		items = []WishlistEntry{}
	}
	persist(w.storage, w.logger, storage.KeyWishlist, items)
}
