package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Suya12/cloud-computing-project/internal/domain"
)

func TestHandleStores(t *testing.T) {
	t.Parallel()

	store := domain.Store{
		ID:           "store-1",
		Name:         "Kimbap Heaven",
		Category:     "korean",
		MinimumOrder: 15000,
		DeliveryTip:  3000,
	}
	menus := []domain.Menu{
		{ID: "menu-1", StoreID: "store-1", Name: "Bibimbap", Price: 12000},
	}

	t.Run("by store id includes menus", func(t *testing.T) {
		t.Parallel()
		svc := &stubStoreService{store: store, menus: menus}
		req := httptest.NewRequest(http.MethodGet, "/stores?store_id=store-1", nil)
		rec := httptest.NewRecorder()

		HandleStores(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, `"name":"Kimbap Heaven"`) || !strings.Contains(body, `"name":"Bibimbap"`) {
			t.Fatalf("expected store and menus in response, got %q", body)
		}
	})

	t.Run("by category", func(t *testing.T) {
		t.Parallel()
		svc := &stubStoreService{stores: []domain.Store{store}}
		req := httptest.NewRequest(http.MethodGet, "/stores?category=korean", nil)
		rec := httptest.NewRecorder()

		HandleStores(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"id":"store-1"`) {
			t.Fatalf("expected store in response, got %q", rec.Body.String())
		}
	})

	t.Run("missing params", func(t *testing.T) {
		t.Parallel()
		svc := &stubStoreService{}
		req := httptest.NewRequest(http.MethodGet, "/stores", nil)
		rec := httptest.NewRecorder()

		HandleStores(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("unknown store", func(t *testing.T) {
		t.Parallel()
		svc := &stubStoreService{err: domain.ErrStoreNotFound}
		req := httptest.NewRequest(http.MethodGet, "/stores?store_id=store-9", nil)
		rec := httptest.NewRecorder()

		HandleStores(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})
}

type stubStoreService struct {
	store  domain.Store
	menus  []domain.Menu
	stores []domain.Store
	err    error
}

func (s *stubStoreService) GetStoreWithMenus(_ context.Context, _ string) (domain.Store, []domain.Menu, error) {
	return s.store, s.menus, s.err
}

func (s *stubStoreService) ListByCategory(_ context.Context, _ string) ([]domain.Store, error) {
	return s.stores, s.err
}
