package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Suya12/cloud-computing-project/internal/app"
	"github.com/Suya12/cloud-computing-project/internal/domain"
)

// UserService is the minimal interface needed by the user endpoints.
type UserService interface {
	Register(ctx context.Context, in app.RegisterUserInput) (domain.User, error)
	UpdateAddress(ctx context.Context, userID string, in app.UpdateAddressInput) error
}

// HandleRegisterUser returns an HTTP handler that records a verified
// identity. Registering the same email again returns the existing record.
func HandleRegisterUser(svc UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerUserRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		user, err := svc.Register(r.Context(), app.RegisterUserInput{
			Email: req.Email,
			Name:  req.Name,
		})
		if err != nil {
			respondServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toUserResponse(user))
	}
}

// HandleUpdateAddress returns an HTTP handler for the delivery address.
func HandleUpdateAddress(svc UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateAddressRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		err := svc.UpdateAddress(r.Context(), r.PathValue("id"), app.UpdateAddressInput{
			Address:         req.Address,
			DetailedAddress: req.DetailedAddress,
			Latitude:        req.Latitude,
			Longitude:       req.Longitude,
		})
		if err != nil {
			respondServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type registerUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type updateAddressRequest struct {
	Address         string  `json:"address"`
	DetailedAddress string  `json:"detailed_address,omitempty"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
}

type userResponse struct {
	ID              string   `json:"id"`
	Email           string   `json:"email"`
	Name            string   `json:"name"`
	Credit          int      `json:"credit"`
	Address         string   `json:"address"`
	DetailedAddress string   `json:"detailed_address"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Credit:          u.Credit,
		Address:         u.Address,
		DetailedAddress: u.DetailedAddress,
		Latitude:        u.Latitude,
		Longitude:       u.Longitude,
	}
}
