package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Suya12/cloud-computing-project/internal/app"
	"github.com/Suya12/cloud-computing-project/internal/domain"
)

// OrderService is the minimal interface needed by the order endpoints.
type OrderService interface {
	CreateOrder(ctx context.Context, in app.CreateOrderInput) (domain.Order, error)
	GetOrderDetail(ctx context.Context, orderID string) (app.OrderDetail, error)
	DeleteOrder(ctx context.Context, orderID, requestingUserID string) error
	ListOrdersByCategory(ctx context.Context, category string, lat, lng *float64) ([]app.OrderListing, error)
	ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error)
}

// HandleCreateOrder returns an HTTP handler that commits the creator's cart
// into a new waiting order.
func HandleCreateOrder(svc OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOrderRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.UserID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "user_id is required")
			return
		}

		order, err := svc.CreateOrder(r.Context(), app.CreateOrderInput{
			CreatorID:        req.UserID,
			StoreID:          req.StoreID,
			SplitType:        domain.SplitType(req.SplitType),
			DeliveryLocation: req.DeliveryLocation,
			DetailedLocation: req.DetailedLocation,
			DeliveryLat:      req.DeliveryLat,
			DeliveryLng:      req.DeliveryLng,
		})
		if err != nil {
			respondServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toOrderResponse(order))
	}
}

// HandleGetOrder returns an HTTP handler for the order detail view.
func HandleGetOrder(svc OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := svc.GetOrderDetail(r.Context(), r.PathValue("id"))
		if err != nil {
			respondServiceError(w, err)
			return
		}

		resp := orderDetailResponse{
			orderResponse:    toOrderResponse(detail.Order),
			StoreName:        detail.StoreName,
			StoreCategory:    detail.StoreCategory,
			Matched:          detail.Matched,
			RemainingSeconds: detail.RemainingSeconds,
			PaidAmounts:      detail.PaidAmounts,
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleDeleteOrder returns an HTTP handler that cancels a waiting order and
// refunds the creator.
func HandleDeleteOrder(svc OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("userId")
		if userID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "userId query parameter is required")
			return
		}

		if err := svc.DeleteOrder(r.Context(), r.PathValue("id"), userID); err != nil {
			respondServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleListOrders returns an HTTP handler for the waiting-order feed. With
// lat and lng query parameters the feed is radius-filtered and nearest first.
func HandleListOrders(svc OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		category := q.Get("category")
		if category == "" {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "category query parameter is required")
			return
		}

		lat, ok := parseCoord(q.Get("lat"))
		if !ok {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid lat")
			return
		}
		lng, ok := parseCoord(q.Get("lng"))
		if !ok {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid lng")
			return
		}

		listings, err := svc.ListOrdersByCategory(r.Context(), category, lat, lng)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		resp := make([]orderListingResponse, 0, len(listings))
		for _, l := range listings {
			resp = append(resp, orderListingResponse{
				orderResponse:  toOrderResponse(l.Order),
				StoreName:      l.StoreName,
				DistanceMeters: l.DistanceMeters,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleMyOrders returns an HTTP handler listing a user's active orders,
// created or joined.
func HandleMyOrders(svc OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := svc.ListUserOrders(r.Context(), r.PathValue("userId"))
		if err != nil {
			respondServiceError(w, err)
			return
		}

		resp := make([]orderResponse, 0, len(orders))
		for _, o := range orders {
			resp = append(resp, toOrderResponse(o))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func parseCoord(raw string) (*float64, bool) {
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}

type createOrderRequest struct {
	UserID           string   `json:"user_id"`
	StoreID          string   `json:"store_id,omitempty"`
	SplitType        string   `json:"split_type"`
	DeliveryLocation string   `json:"delivery_location,omitempty"`
	DetailedLocation string   `json:"detailed_location,omitempty"`
	DeliveryLat      *float64 `json:"delivery_lat,omitempty"`
	DeliveryLng      *float64 `json:"delivery_lng,omitempty"`
}

type orderResponse struct {
	ID               string              `json:"id"`
	CreatorID        string              `json:"creator_id"`
	StoreID          string              `json:"store_id"`
	DeliveryLocation string              `json:"delivery_location"`
	DetailedLocation string              `json:"detailed_location"`
	DeliveryLat      *float64            `json:"delivery_lat,omitempty"`
	DeliveryLng      *float64            `json:"delivery_lng,omitempty"`
	SplitType        string              `json:"split_type"`
	OwnerPaidAmount  int                 `json:"owner_paid_amount"`
	Status           string              `json:"status"`
	CreatedAt        time.Time           `json:"created_at"`
	ExpiresAt        time.Time           `json:"expires_at"`
	Items            []orderItemResponse `json:"items"`
}

type orderItemResponse struct {
	UserID   string `json:"user_id"`
	MenuID   string `json:"menu_id"`
	MenuName string `json:"menu_name"`
	Price    int    `json:"price"`
}

type orderDetailResponse struct {
	orderResponse
	StoreName        string         `json:"store_name"`
	StoreCategory    string         `json:"store_category"`
	Matched          bool           `json:"matched"`
	RemainingSeconds int            `json:"remaining_seconds"`
	PaidAmounts      map[string]int `json:"paid_amounts"`
}

type orderListingResponse struct {
	orderResponse
	StoreName      string   `json:"store_name"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
}

func toOrderResponse(o domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemResponse{
			UserID:   it.UserID,
			MenuID:   it.MenuID,
			MenuName: it.MenuName,
			Price:    it.Price,
		})
	}
	return orderResponse{
		ID:               o.ID,
		CreatorID:        o.CreatorID,
		StoreID:          o.StoreID,
		DeliveryLocation: o.DeliveryLocation,
		DetailedLocation: o.DetailedLocation,
		DeliveryLat:      o.DeliveryLat,
		DeliveryLng:      o.DeliveryLng,
		SplitType:        string(o.SplitType),
		OwnerPaidAmount:  o.OwnerPaidAmount,
		Status:           string(o.Status),
		CreatedAt:        o.CreatedAt,
		ExpiresAt:        o.ExpiresAt,
		Items:            items,
	}
}
