package customer

import (
	"time"

	"github.com/shopspring/decimal"

	"customer-api/internal/domain"
)

var (
	platinumSpend = decimal.NewFromInt(10000)
	goldSpend     = decimal.NewFromInt(1000)
)

// ComputeTier classifies a customer from annual spend and purchase recency,
// evaluated against now. Rules apply in priority order: Platinum needs spend
// of at least 10000 and a purchase strictly after six calendar months ago,
// Gold needs at least 1000 and a purchase strictly after twelve months ago,
// everything else is Silver. A customer with no recorded purchase date stays
// Silver regardless of spend.
func ComputeTier(spend *decimal.Decimal, lastPurchase *time.Time, now time.Time) domain.Tier {
	if lastPurchase == nil {
		return domain.TierSilver
	}
	amount := decimal.Zero
	if spend != nil {
		amount = *spend
	}
	purchased := dateOnly(*lastPurchase)
	today := dateOnly(now)
	switch {
	case amount.GreaterThanOrEqual(platinumSpend) && purchased.After(minusMonths(today, 6)):
		return domain.TierPlatinum
	case amount.GreaterThanOrEqual(goldSpend) && purchased.After(minusMonths(today, 12)):
		return domain.TierGold
	default:
		return domain.TierSilver
	}
}

// minusMonths subtracts calendar months keeping the day of month, clamping
// at month end: Mar 31 minus one month is Feb 28 (29 in leap years).
// time.AddDate normalizes the overflow day into the next month instead, so
// it cannot be used here.
func minusMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	m := int(month) - months
	for m < 1 {
		m += 12
		year--
	}
	if last := daysIn(year, time.Month(m)); day > last {
		day = last
	}
	return time.Date(year, time.Month(m), day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// dateOnly strips the time-of-day and zone so comparisons are pure
// calendar-date comparisons.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
