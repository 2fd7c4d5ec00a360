package http

import (
	"context"
	"net/http"

	"github.com/Suya12/cloud-computing-project/internal/domain"
)

// StoreService is the minimal interface needed by the catalog endpoint.
type StoreService interface {
	GetStoreWithMenus(ctx context.Context, storeID string) (domain.Store, []domain.Menu, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Store, error)
}

// HandleStores returns an HTTP handler for catalog lookup. With store_id it
// returns one store with its menus, otherwise it lists stores by category.
func HandleStores(svc StoreService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if storeID := q.Get("store_id"); storeID != "" {
			store, menus, err := svc.GetStoreWithMenus(r.Context(), storeID)
			if err != nil {
				respondServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toStoreResponse(store, menus))
			return
		}

		category := q.Get("category")
		if category == "" {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "store_id or category query parameter is required")
			return
		}

		stores, err := svc.ListByCategory(r.Context(), category)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		resp := make([]storeResponse, 0, len(stores))
		for _, s := range stores {
			resp = append(resp, toStoreResponse(s, nil))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type storeResponse struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Category      string         `json:"category"`
	Location      string         `json:"location"`
	Latitude      *float64       `json:"latitude,omitempty"`
	Longitude     *float64       `json:"longitude,omitempty"`
	MinimumOrder  int            `json:"minimum_order"`
	DeliveryTip   int            `json:"delivery_tip"`
	DeliveryDelay int            `json:"delivery_delay"`
	Menus         []menuResponse `json:"menus,omitempty"`
}

type menuResponse struct {
	ID      string `json:"id"`
	StoreID string `json:"store_id"`
	Name    string `json:"name"`
	Price   int    `json:"price"`
}

func toStoreResponse(s domain.Store, menus []domain.Menu) storeResponse {
	resp := storeResponse{
		ID:            s.ID,
		Name:          s.Name,
		Category:      s.Category,
		Location:      s.Location,
		Latitude:      s.Latitude,
		Longitude:     s.Longitude,
		MinimumOrder:  s.MinimumOrder,
		DeliveryTip:   s.DeliveryTip,
		DeliveryDelay: s.DeliveryDelay,
	}
	for _, m := range menus {
		resp.Menus = append(resp.Menus, menuResponse{
			ID:      m.ID,
			StoreID: m.StoreID,
			Name:    m.Name,
			Price:   m.Price,
		})
	}
	return resp
}
