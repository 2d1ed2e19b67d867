package store

import (
	"go.uber.org/zap"

	"github.com/storefront/client/internal/api"
	"github.com/storefront/client/internal/config"
	"github.com/storefront/client/internal/storage"
)

// Store composes every state slice behind a single root, the way the UI sees
// the application: one API client, one storage backend, one event bus. Slices
// never call each other directly; cross-slice effects travel over the bus.
type Store struct {
	Auth     *Auth
	Cart     *Cart
	Wishlist *Wishlist
	Catalog  *Catalog
	Orders   *Orders

	Client *api.Client

	bus    *eventBus
	logger *zap.Logger
}

// New builds the fully wired store. The auth slice is constructed first so
// the client can draw its bearer token from it, then bound back as the
// client's 401 hook: an unauthorized response anywhere logs the session out
// while leaving cart and wishlist state untouched.
func New(cfg *config.Config, st storage.Storage, logger *zap.Logger) *Store {
	bus := newEventBus()

	auth := NewAuth(st, logger)
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout,
		api.WithLogger(logger),
		api.WithTokenSource(auth.Token),
		api.WithUnauthorizedHook(auth.Logout),
	)
	auth.setClient(client)

	s := &Store{
		Auth:     auth,
		Cart:     NewCart(st, logger),
		Wishlist: NewWishlist(st, logger),
		Catalog:  NewCatalog(client, logger),
		Orders:   NewOrders(client, bus, logger),
		Client:   client,
		bus:      bus,
		logger:   logger.Named("store"),
	}

	bus.subscribe(EventOrderPlaced, func(string) {
		s.Cart.Clear()
	})

	return s
}
