package http

import (
	"context"
	"encoding/json"
	"net/http"
)

// CreditService is the minimal interface needed by the credit endpoints.
type CreditService interface {
	AddCredit(ctx context.Context, userID string, amount int) (int, error)
	GetCredit(ctx context.Context, userID string) (int, error)
}

// HandleAddCredit returns an HTTP handler that tops up a user's balance.
func HandleAddCredit(svc CreditService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addCreditRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		balance, err := svc.AddCredit(r.Context(), r.PathValue("id"), req.Amount)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, creditResponse{Credit: balance})
	}
}

// HandleGetCredit returns an HTTP handler for the current balance.
func HandleGetCredit(svc CreditService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		balance, err := svc.GetCredit(r.Context(), r.PathValue("id"))
		if err != nil {
			respondServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, creditResponse{Credit: balance})
	}
}

type addCreditRequest struct {
	Amount int `json:"amount"`
}

type creditResponse struct {
	Credit int `json:"credit"`
}
