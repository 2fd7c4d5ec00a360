package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Suya12/cloud-computing-project/internal/domain"
)

// CartService is the minimal interface needed by the cart endpoints.
type CartService interface {
	AddItem(ctx context.Context, userID, storeID, menuID string) (domain.CartItem, error)
	RemoveItem(ctx context.Context, userID, menuID string) error
	GetCart(ctx context.Context, userID string) ([]domain.CartItem, error)
}

// HandleAddCartItem returns an HTTP handler that stages a menu item with its
// price snapshotted at add time.
func HandleAddCartItem(svc CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addCartItemRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.UserID == "" || req.StoreID == "" || req.MenuID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "user_id, store_id and menu_id are required")
			return
		}

		item, err := svc.AddItem(r.Context(), req.UserID, req.StoreID, req.MenuID)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toCartItemResponse(item))
	}
}

// HandleRemoveCartItem returns an HTTP handler that removes a staged item.
func HandleRemoveCartItem(svc CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		userID := q.Get("userId")
		menuID := q.Get("menuId")
		if userID == "" || menuID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "userId and menuId query parameters are required")
			return
		}

		if err := svc.RemoveItem(r.Context(), userID, menuID); err != nil {
			respondServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleGetCart returns an HTTP handler listing a user's staged items.
func HandleGetCart(svc CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.GetCart(r.Context(), r.PathValue("userId"))
		if err != nil {
			respondServiceError(w, err)
			return
		}

		resp := make([]cartItemResponse, 0, len(items))
		for _, it := range items {
			resp = append(resp, toCartItemResponse(it))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type addCartItemRequest struct {
	UserID  string `json:"user_id"`
	StoreID string `json:"store_id"`
	MenuID  string `json:"menu_id"`
}

type cartItemResponse struct {
	UserID   string `json:"user_id"`
	StoreID  string `json:"store_id"`
	MenuID   string `json:"menu_id"`
	MenuName string `json:"menu_name"`
	Price    int    `json:"price"`
}

func toCartItemResponse(it domain.CartItem) cartItemResponse {
	return cartItemResponse{
		UserID:   it.UserID,
		StoreID:  it.StoreID,
		MenuID:   it.MenuID,
		MenuName: it.MenuName,
		Price:    it.Price,
	}
}
