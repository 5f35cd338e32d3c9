package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"customer-api/internal/domain"
)

const dateLayout = "2006-01-02"

// customerService is the slice of the domain service the handlers use.
type customerService interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByName(ctx context.Context, name string) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, id string, c domain.Customer) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
}

type customerRequest struct {
	ID               string           `json:"id"`
	Name             string           `json:"name" binding:"required"`
	Email            string           `json:"email" binding:"required,email"`
	AnnualSpend      *decimal.Decimal `json:"annualSpend"`
	LastPurchaseDate *string          `json:"lastPurchaseDate"`
}

func (r customerRequest) toDomain() (domain.Customer, error) {
	c := domain.Customer{
		ID:          strings.TrimSpace(r.ID),
		Name:        r.Name,
		Email:       r.Email,
		AnnualSpend: r.AnnualSpend,
	}
	if r.LastPurchaseDate != nil && *r.LastPurchaseDate != "" {
		d, err := time.Parse(dateLayout, *r.LastPurchaseDate)
		if err != nil {
			return domain.Customer{}, errors.New("lastPurchaseDate must be formatted YYYY-MM-DD")
		}
		c.LastPurchaseDate = &d
	}
	return c, nil
}

type customerResponse struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	AnnualSpend      *decimal.Decimal `json:"annualSpend,omitempty"`
	LastPurchaseDate string           `json:"lastPurchaseDate,omitempty"`
	Tier             domain.Tier      `json:"tier,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
}

func toCustomerResponse(c domain.Customer) customerResponse {
	resp := customerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		AnnualSpend: c.AnnualSpend,
		Tier:        c.Tier,
		CreatedAt:   c.CreatedAt,
	}
	if c.LastPurchaseDate != nil {
		resp.LastPurchaseDate = c.LastPurchaseDate.Format(dateLayout)
	}
	return resp
}

func createCustomer(svc customerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req customerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeErrorBody(c, http.StatusBadRequest, err.Error())
			return
		}
		input, err := req.toDomain()
		if err != nil {
			writeErrorBody(c, http.StatusBadRequest, err.Error())
			return
		}
		created, err := svc.Create(c.Request.Context(), input)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toCustomerResponse(*created))
	}
}

func getCustomerByID(svc customerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		customer, err := svc.GetByID(c.Request.Context(), id)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCustomerResponse(*customer))
	}
}

// getCustomers dispatches on query parameters: ?name= and ?email= are
// single-record lookups where a miss is a 404, no parameters lists
// everything with 204 standing in for an empty store.
func getCustomers(svc customerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if name := c.Query("name"); name != "" {
			found, err := svc.GetByName(ctx, name)
			if err != nil {
				writeServiceError(c, err)
				return
			}
			if found == nil {
				writeErrorBody(c, http.StatusNotFound, "no customer with name "+name)
				return
			}
			c.JSON(http.StatusOK, toCustomerResponse(*found))
			return
		}

		if email := c.Query("email"); email != "" {
			found, err := svc.GetByEmail(ctx, email)
			if err != nil {
				writeServiceError(c, err)
				return
			}
			if found == nil {
				writeErrorBody(c, http.StatusNotFound, "no customer with email "+email)
				return
			}
			c.JSON(http.StatusOK, toCustomerResponse(*found))
			return
		}

		customers, err := svc.List(ctx)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		if len(customers) == 0 {
			c.Status(http.StatusNoContent)
			return
		}
		out := make([]customerResponse, 0, len(customers))
		for _, cust := range customers {
			out = append(out, toCustomerResponse(cust))
		}
		c.JSON(http.StatusOK, out)
	}
}

func updateCustomer(svc customerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req customerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeErrorBody(c, http.StatusBadRequest, err.Error())
			return
		}
		req.ID = ""
		input, err := req.toDomain()
		if err != nil {
			writeErrorBody(c, http.StatusBadRequest, err.Error())
			return
		}
		updated, err := svc.Update(c.Request.Context(), id, input)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCustomerResponse(*updated))
	}
}

func deleteCustomer(svc customerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			writeServiceError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func pathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		writeErrorBody(c, http.StatusBadRequest, "id must be a valid UUID")
		return "", false
	}
	return id, true
}

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrIDProvided):
		writeErrorBody(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeErrorBody(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		writeErrorBody(c, http.StatusConflict, err.Error())
	default:
		writeErrorBody(c, http.StatusInternalServerError, "internal server error")
	}
}

func writeErrorBody(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"timestamp": time.Now().UTC(),
		"message":   message,
		"status":    status,
	})
}
