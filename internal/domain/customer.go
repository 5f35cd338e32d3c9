package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tier is the loyalty classification derived from annual spend and purchase
// recency. It is computed at read time and never persisted.
type Tier string

const (
	TierPlatinum Tier = "Platinum"
	TierGold     Tier = "Gold"
	TierSilver   Tier = "Silver"
)

// Customer is the persisted customer record. Tier is transient: empty on
// write paths, filled by the service before a record leaves a read path.
type Customer struct {
	ID               string           `json:"id,omitempty"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	AnnualSpend      *decimal.Decimal `json:"annualSpend,omitempty"`
	LastPurchaseDate *time.Time       `json:"lastPurchaseDate,omitempty"`
	Tier             Tier             `json:"tier,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
}
