package http

import (
	"encoding/json"
	"net/http"

	"github.com/Suya12/cloud-computing-project/internal/domain"
)

const (
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeInvalidID          = "invalid_id"
	codeEmptyCart          = "empty_cart"
	codeInsufficientCredit = "insufficient_credit"
	codeOrderNotJoinable   = "order_not_joinable"
	codeSelfMatch          = "self_match"
	codeOrderNotFound      = "order_not_found"
	codeUserNotFound       = "user_not_found"
	codeStoreNotFound      = "store_not_found"
	codeMenuNotFound       = "menu_not_found"
	codeCartItemNotFound   = "cart_item_not_found"
	codeForbidden          = "forbidden"
	codeCartStoreMismatch  = "cart_store_mismatch"
	codeBelowMinimumOrder  = "below_minimum_order"
	codeInvalidAmount      = "invalid_amount"
	codeInvalidSplitType   = "invalid_split_type"
	codeEmailRequired      = "email_required"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// respondServiceError maps domain sentinels to HTTP status and code.
func respondServiceError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrInvalidID:
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case domain.ErrEmptyCart:
		writeError(w, http.StatusBadRequest, codeEmptyCart, err.Error())
	case domain.ErrInvalidSplitType:
		writeError(w, http.StatusBadRequest, codeInvalidSplitType, err.Error())
	case domain.ErrInvalidAmount:
		writeError(w, http.StatusBadRequest, codeInvalidAmount, err.Error())
	case domain.ErrEmailRequired:
		writeError(w, http.StatusBadRequest, codeEmailRequired, err.Error())
	case domain.ErrForbidden:
		writeError(w, http.StatusForbidden, codeForbidden, err.Error())
	case domain.ErrOrderNotFound:
		writeError(w, http.StatusNotFound, codeOrderNotFound, err.Error())
	case domain.ErrUserNotFound:
		writeError(w, http.StatusNotFound, codeUserNotFound, err.Error())
	case domain.ErrStoreNotFound:
		writeError(w, http.StatusNotFound, codeStoreNotFound, err.Error())
	case domain.ErrMenuNotFound:
		writeError(w, http.StatusNotFound, codeMenuNotFound, err.Error())
	case domain.ErrCartItemNotFound:
		writeError(w, http.StatusNotFound, codeCartItemNotFound, err.Error())
	case domain.ErrInsufficientCredit:
		writeError(w, http.StatusConflict, codeInsufficientCredit, err.Error())
	case domain.ErrOrderNotJoinable:
		writeError(w, http.StatusConflict, codeOrderNotJoinable, err.Error())
	case domain.ErrSelfMatch:
		writeError(w, http.StatusConflict, codeSelfMatch, err.Error())
	case domain.ErrCartStoreMismatch:
		writeError(w, http.StatusConflict, codeCartStoreMismatch, err.Error())
	case domain.ErrBelowMinimumOrder:
		writeError(w, http.StatusConflict, codeBelowMinimumOrder, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
