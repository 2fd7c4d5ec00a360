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

func TestHandleAddCredit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			body:           `{"amount":10000}`,
			expectedStatus: http.StatusOK,
			expectedSubstr: `"credit":60000`,
		},
		{
			name:           "invalid json",
			body:           `{"amount":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-positive amount",
			body:           `{"amount":0}`,
			serviceErr:     domain.ErrInvalidAmount,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: codeInvalidAmount,
		},
		{
			name:           "unknown user",
			body:           `{"amount":10000}`,
			serviceErr:     domain.ErrUserNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubCreditService{balance: 60000, err: tt.serviceErr}
			mux := NewMux(Services{Credit: svc})

			req := httptest.NewRequest(http.MethodPost, "/users/credit/add/user-1", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestHandleGetCredit(t *testing.T) {
	t.Parallel()

	svc := &stubCreditService{balance: 35000}
	mux := NewMux(Services{Credit: svc})

	req := httptest.NewRequest(http.MethodGet, "/users/credit/get/user-1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"credit":35000`) {
		t.Fatalf("expected balance in response, got %q", rec.Body.String())
	}
}

type stubCreditService struct {
	balance int
	err     error
}

func (s *stubCreditService) AddCredit(_ context.Context, _ string, _ int) (int, error) {
	return s.balance, s.err
}

func (s *stubCreditService) GetCredit(_ context.Context, _ string) (int, error) {
	return s.balance, s.err
}
