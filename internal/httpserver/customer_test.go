package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"customer-api/internal/domain"
)

type stubCustomerService struct {
	created    *domain.Customer
	createErr  error
	byID       *domain.Customer
	byIDErr    error
	byName     *domain.Customer
	byNameErr  error
	byEmail    *domain.Customer
	byEmailErr error
	list       []domain.Customer
	listErr    error
	updated    *domain.Customer
	updateErr  error
	deleteErr  error

	lastCreateInput domain.Customer
	lastUpdateID    string
}

func (s *stubCustomerService) Create(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	s.lastCreateInput = c
	if c.ID != "" {
		return nil, domain.ErrIDProvided
	}
	return s.created, s.createErr
}

func (s *stubCustomerService) GetByID(_ context.Context, _ string) (*domain.Customer, error) {
	return s.byID, s.byIDErr
}

func (s *stubCustomerService) GetByName(_ context.Context, _ string) (*domain.Customer, error) {
	return s.byName, s.byNameErr
}

func (s *stubCustomerService) GetByEmail(_ context.Context, _ string) (*domain.Customer, error) {
	return s.byEmail, s.byEmailErr
}

func (s *stubCustomerService) List(_ context.Context) ([]domain.Customer, error) {
	return s.list, s.listErr
}

func (s *stubCustomerService) Update(_ context.Context, id string, _ domain.Customer) (*domain.Customer, error) {
	s.lastUpdateID = id
	return s.updated, s.updateErr
}

func (s *stubCustomerService) Delete(_ context.Context, _ string) error {
	return s.deleteErr
}

func testRouter(svc customerService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := log.New(io.Discard, "", 0)
	return buildRouter(logger, nil, Deps{CustomerSvc: svc})
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

const testID = "6f1c1d2e-9b3a-4f6d-8a2b-0c1d2e3f4a5b"

func sampleCustomer() *domain.Customer {
	purchase := time.Date(2026, time.May, 28, 0, 0, 0, 0, time.UTC)
	return &domain.Customer{
		ID:               testID,
		Name:             "Ann",
		Email:            "ann@x.com",
		AnnualSpend:      decPtr("12000"),
		LastPurchaseDate: &purchase,
		Tier:             domain.TierPlatinum,
		CreatedAt:        time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateCustomer_Created(t *testing.T) {
	svc := &stubCustomerService{created: sampleCustomer()}
	router := testRouter(svc)

	body := `{"name":"Ann","email":"ann@x.com","annualSpend":12000,"lastPurchaseDate":"2026-05-28"}`
	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp customerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != testID {
		t.Fatalf("expected assigned id, got %q", resp.ID)
	}
	if resp.LastPurchaseDate != "2026-05-28" {
		t.Fatalf("expected date-only formatting, got %q", resp.LastPurchaseDate)
	}
	if svc.lastCreateInput.LastPurchaseDate == nil {
		t.Fatalf("purchase date not parsed into the domain input")
	}
}

func TestCreateCustomer_RejectsProvidedID(t *testing.T) {
	svc := &stubCustomerService{created: sampleCustomer()}
	router := testRouter(svc)

	body := `{"id":"` + testID + `","name":"Ann","email":"ann@x.com"}`
	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateCustomer_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"ann@x.com"}`},
		{"missing email", `{"name":"Ann"}`},
		{"malformed email", `{"name":"Ann","email":"not-an-email"}`},
		{"malformed date", `{"name":"Ann","email":"ann@x.com","lastPurchaseDate":"28-05-2026"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := testRouter(&stubCustomerService{created: sampleCustomer()})
			req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestCreateCustomer_DuplicateEmailConflict(t *testing.T) {
	svc := &stubCustomerService{createErr: domain.ErrEmailTaken}
	router := testRouter(svc)

	body := `{"name":"Ann","email":"ann@x.com"}`
	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestGetCustomerByID_OK(t *testing.T) {
	svc := &stubCustomerService{byID: sampleCustomer()}
	router := testRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/customers/"+testID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp customerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Tier != domain.TierPlatinum {
		t.Fatalf("expected tier in response, got %q", resp.Tier)
	}
}

func TestGetCustomerByID_MalformedUUID(t *testing.T) {
	router := testRouter(&stubCustomerService{})

	req := httptest.NewRequest(http.MethodGet, "/customers/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetCustomerByID_NotFound(t *testing.T) {
	svc := &stubCustomerService{byIDErr: domain.ErrNotFound}
	router := testRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/customers/"+testID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	for _, key := range []string{"timestamp", "message", "status"} {
		if _, ok := body[key]; !ok {
			t.Fatalf("error body missing %q: %v", key, body)
		}
	}
}

func TestGetCustomers_ByNameMissIs404(t *testing.T) {
	svc := &stubCustomerService{}
	router := testRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/customers?name=nobody", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetCustomers_ByEmailOK(t *testing.T) {
	svc := &stubCustomerService{byEmail: sampleCustomer()}
	router := testRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/customers?email=ann%40x.com", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGetCustomers_EmptyListIs204(t *testing.T) {
	svc := &stubCustomerService{list: []domain.Customer{}}
	router := testRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestGetCustomers_ListOK(t *testing.T) {
	svc := &stubCustomerService{list: []domain.Customer{*sampleCustomer()}}
	router := testRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp []customerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].Tier != domain.TierPlatinum {
		t.Fatalf("unexpected list payload: %+v", resp)
	}
}

func TestUpdateCustomer_OK(t *testing.T) {
	svc := &stubCustomerService{updated: sampleCustomer()}
	router := testRouter(svc)

	body := `{"name":"Ann","email":"ann@x.com","annualSpend":500}`
	req := httptest.NewRequest(http.MethodPut, "/customers/"+testID, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastUpdateID != testID {
		t.Fatalf("expected path id forwarded, got %q", svc.lastUpdateID)
	}
}

func TestUpdateCustomer_NotFound(t *testing.T) {
	svc := &stubCustomerService{updateErr: fmt.Errorf("customer %s: %w", testID, domain.ErrNotFound)}
	router := testRouter(svc)

	body := `{"name":"Ann","email":"ann@x.com"}`
	req := httptest.NewRequest(http.MethodPut, "/customers/"+testID, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteCustomer_NoContent(t *testing.T) {
	router := testRouter(&stubCustomerService{})

	req := httptest.NewRequest(http.MethodDelete, "/customers/"+testID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestDeleteCustomer_NotFound(t *testing.T) {
	svc := &stubCustomerService{deleteErr: domain.ErrNotFound}
	router := testRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/customers/"+testID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUnknownServiceErrorIs500(t *testing.T) {
	svc := &stubCustomerService{byIDErr: errors.New("boom")}
	router := testRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/customers/"+testID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
