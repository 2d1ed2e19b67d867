package store

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storefront/client/internal/api"
	"github.com/storefront/client/internal/config"
	"github.com/storefront/client/internal/domain/catalog"
	"github.com/storefront/client/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestStore wires a full store against a fake API server
func newTestStore(t *testing.T, handler http.Handler) (*Store, *storage.MemoryStorage) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	st := storage.NewMemoryStorage()
	cfg := &config.Config{
		API: config.APIConfig{
			BaseURL: srv.URL,
			Timeout: 5 * time.Second,
		},
	}
	return New(cfg, st, zap.NewNop()), st
}

// newOfflineStore wires a full store whose API calls all fail fast
func newOfflineStore(t *testing.T) (*Store, *storage.MemoryStorage) {
	t.Helper()
	return newTestStore(t, http.NotFoundHandler())
}

func testCredentials(email, password string) api.Credentials {
	return api.Credentials{Email: email, Password: password}
}

func testProduct(key, name string, price int64) catalog.Product {
	return catalog.Product{
		CanonicalID: key,
		Name:        name,
		Price:       decimal.NewFromInt(price),
		Active:      true,
	}
}

func TestStoreWiring(t *testing.T) {
	s, _ := newOfflineStore(t)

	if s.Auth == nil || s.Cart == nil || s.Wishlist == nil || s.Catalog == nil || s.Orders == nil {
		t.Fatal("store has unwired slices")
	}
	if s.Client == nil {
		t.Fatal("store has no API client")
	}
}
