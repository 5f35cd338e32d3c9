package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type customerSeed struct {
	Name             string
	Email            string
	AnnualSpend      string
	LastPurchaseDate string
}

// Apply inserts basic seed data for manual testing. It is idempotent via
// ON CONFLICT on the unique email index. The spend/date spread lands one
// customer in each loyalty tier when read within a few months of seeding.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	customers := []customerSeed{
		{
			Name:             "Ann Platinum",
			Email:            "ann@example.com",
			AnnualSpend:      "12500.00",
			LastPurchaseDate: "now() - interval '2 months'",
		},
		{
			Name:             "Greg Gold",
			Email:            "greg@example.com",
			AnnualSpend:      "2400.50",
			LastPurchaseDate: "now() - interval '9 months'",
		},
		{
			Name:             "Sally Silver",
			Email:            "sally@example.com",
			AnnualSpend:      "800.00",
			LastPurchaseDate: "now() - interval '1 month'",
		},
		{
			Name:        "Noah Nopurchase",
			Email:       "noah@example.com",
			AnnualSpend: "50000.00",
		},
	}

	for _, c := range customers {
		if err := upsertCustomer(ctx, pool, c); err != nil {
			return fmt.Errorf("upsert customer %s: %w", c.Email, err)
		}
	}

	return nil
}

func upsertCustomer(ctx context.Context, pool *pgxpool.Pool, c customerSeed) error {
	purchase := "NULL"
	if c.LastPurchaseDate != "" {
		purchase = "(" + c.LastPurchaseDate + ")::date"
	}
	q := `
INSERT INTO customers (name, email, annual_spend, last_purchase_date)
VALUES ($1, $2, $3::numeric, ` + purchase + `)
ON CONFLICT (lower(email)) DO UPDATE
SET name = EXCLUDED.name,
    annual_spend = EXCLUDED.annual_spend,
    last_purchase_date = EXCLUDED.last_purchase_date,
    updated_at = now()
`
	_, err := pool.Exec(ctx, q, c.Name, c.Email, c.AnnualSpend)
	return err
}
