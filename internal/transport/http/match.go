package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Suya12/cloud-computing-project/internal/app"
	"github.com/Suya12/cloud-computing-project/internal/domain"
)

// Matcher is the minimal interface needed to join a waiting order.
type Matcher interface {
	MatchOrder(ctx context.Context, in app.MatchOrderInput) (domain.Order, error)
}

// HandleMatchOrder returns an HTTP handler that merges the joiner's cart into
// a waiting order. At most one concurrent caller succeeds per order.
func HandleMatchOrder(svc Matcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req matchOrderRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.OrderID == "" || req.MatchedUserID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "order_id and matched_user_id are required")
			return
		}

		order, err := svc.MatchOrder(r.Context(), app.MatchOrderInput{
			OrderID:       req.OrderID,
			MatchedUserID: req.MatchedUserID,
		})
		if err != nil {
			respondServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toOrderResponse(order))
	}
}

type matchOrderRequest struct {
	OrderID       string `json:"order_id"`
	MatchedUserID string `json:"matched_user_id"`
}
