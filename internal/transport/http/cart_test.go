package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Suya12/cloud-computing-project/internal/domain"
)

func TestHandleAddCartItem(t *testing.T) {
	t.Parallel()

	staged := domain.CartItem{
		UserID:   "user-1",
		StoreID:  "store-1",
		MenuID:   "menu-1",
		MenuName: "Bibimbap",
		Price:    12000,
	}

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			body:           `{"user_id":"user-1","store_id":"store-1","menu_id":"menu-1"}`,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"menu_name":"Bibimbap"`,
		},
		{
			name:           "invalid json",
			body:           `{"user_id":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing fields",
			body:           `{"user_id":"user-1"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "different store in cart",
			body:           `{"user_id":"user-1","store_id":"store-2","menu_id":"menu-9"}`,
			serviceErr:     domain.ErrCartStoreMismatch,
			expectedStatus: http.StatusConflict,
			expectedSubstr: codeCartStoreMismatch,
		},
		{
			name:           "menu not in store",
			body:           `{"user_id":"user-1","store_id":"store-1","menu_id":"menu-9"}`,
			serviceErr:     domain.ErrMenuNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unknown user",
			body:           `{"user_id":"user-9","store_id":"store-1","menu_id":"menu-1"}`,
			serviceErr:     domain.ErrUserNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubCartService{item: staged, err: tt.serviceErr}
			req := httptest.NewRequest(http.MethodPost, "/cart/add", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			HandleAddCartItem(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestHandleRemoveCartItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		target         string
		serviceErr     error
		expectedStatus int
	}{
		{
			name:           "success",
			target:         "/cart/remove?userId=user-1&menuId=menu-1",
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "missing params",
			target:         "/cart/remove?userId=user-1",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not staged",
			target:         "/cart/remove?userId=user-1&menuId=menu-9",
			serviceErr:     domain.ErrCartItemNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubCartService{err: tt.serviceErr}
			req := httptest.NewRequest(http.MethodDelete, tt.target, nil)
			rec := httptest.NewRecorder()

			HandleRemoveCartItem(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

func TestHandleGetCart(t *testing.T) {
	t.Parallel()

	svc := &stubCartService{items: []domain.CartItem{
		{UserID: "user-1", StoreID: "store-1", MenuID: "menu-1", MenuName: "Bibimbap", Price: 12000},
	}}
	mux := NewMux(Services{Cart: svc})

	req := httptest.NewRequest(http.MethodGet, "/cart/user-1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"menu_id":"menu-1"`) {
		t.Fatalf("expected cart item in response, got %q", rec.Body.String())
	}
}

type stubCartService struct {
	item  domain.CartItem
	items []domain.CartItem
	err   error
}

func (s *stubCartService) AddItem(_ context.Context, _, _, _ string) (domain.CartItem, error) {
	return s.item, s.err
}

func (s *stubCartService) RemoveItem(_ context.Context, _, _ string) error {
	return s.err
}

func (s *stubCartService) GetCart(_ context.Context, _ string) ([]domain.CartItem, error) {
	return s.items, s.err
}
