package customer

import (
	"context"

	"customer-api/internal/domain"
)

// Repository persists and fetches customers. Lookups return
// domain.ErrNotFound on a miss; Save maps a unique-email violation to
// domain.ErrEmailTaken.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByName(ctx context.Context, name string) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Save(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
}
