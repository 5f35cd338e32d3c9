package customer

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"customer-api/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const customerColumns = `id::text, name, email, annual_spend::text, last_purchase_date, created_at`

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
WHERE id = $1
LIMIT 1
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) GetByName(ctx context.Context, name string) (*domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
WHERE name = $1
LIMIT 1
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, name))
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
WHERE lower(email) = lower($1)
LIMIT 1
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, email))
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		c, err := r.scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}

func (r *postgresRepo) Save(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	if c.ID == "" {
		const q = `
INSERT INTO customers (name, email, annual_spend, last_purchase_date)
VALUES ($1, $2, $3::numeric, $4)
RETURNING ` + customerColumns + `
`
		return r.scanCustomer(r.pool.QueryRow(ctx, q, c.Name, c.Email, spendParam(c.AnnualSpend), c.LastPurchaseDate))
	}

	const q = `
UPDATE customers
SET name = $2, email = $3, annual_spend = $4::numeric, last_purchase_date = $5, updated_at = now()
WHERE id = $1
RETURNING ` + customerColumns + `
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, c.ID, c.Name, c.Email, spendParam(c.AnnualSpend), c.LastPurchaseDate))
}

func (r *postgresRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) DeleteByID(ctx context.Context, id string) error {
	const q = `DELETE FROM customers WHERE id = $1`
	_, err := r.pool.Exec(ctx, q, id)
	return err
}

func (r *postgresRepo) scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	var spend *string
	err := row.Scan(&c.ID, &c.Name, &c.Email, &spend, &c.LastPurchaseDate, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrEmailTaken
		}
		r.logger.Printf("customer repo: scan error=%v", err)
		return nil, err
	}
	if spend != nil {
		d, err := decimal.NewFromString(*spend)
		if err != nil {
			r.logger.Printf("customer repo: decode annual_spend id=%s err=%v", c.ID, err)
			return nil, err
		}
		c.AnnualSpend = &d
	}
	return &c, nil
}

func spendParam(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
