package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"customer-api/internal/domain"
)

// CustomerWriter is the slice of the repository the importer needs.
type CustomerWriter interface {
	Save(ctx context.Context, c domain.Customer) (*domain.Customer, error)
}

// CSVImporter bulk-loads customers from a CSV export. Expected headers:
// name, email, optional id, annual_spend and last_purchase_date. Rows with
// an id update the existing record, rows without insert a new one.
type CSVImporter struct {
	reader *csv.Reader
	repo   CustomerWriter
}

func NewCSVImporter(r io.Reader, repo CustomerWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{reader: csvr, repo: repo}
}

// Run parses CSV rows and saves each customer, returning the number
// imported. It stops at the first malformed row or failed write.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return 0, errors.New("missing required header: name")
	}
	if _, ok := index["email"]; !ok {
		return 0, errors.New("missing required header: email")
	}

	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row %d: %w", line+1, err)
		}
		line++

		c, err := rowToCustomer(record, index)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", line, err)
		}
		if _, err := i.repo.Save(ctx, c); err != nil {
			return imported, fmt.Errorf("save row %d (%s): %w", line, c.Email, err)
		}
		imported++
	}

	return imported, nil
}

func rowToCustomer(record []string, index map[string]int) (domain.Customer, error) {
	c := domain.Customer{
		Name:  field(record, index, "name"),
		Email: field(record, index, "email"),
	}
	if c.Name == "" {
		return domain.Customer{}, errors.New("name is empty")
	}
	if c.Email == "" {
		return domain.Customer{}, errors.New("email is empty")
	}

	if raw := field(record, index, "id"); raw != "" {
		if _, err := uuid.Parse(raw); err != nil {
			return domain.Customer{}, fmt.Errorf("invalid id %q: %w", raw, err)
		}
		c.ID = raw
	}
	if raw := field(record, index, "annual_spend"); raw != "" {
		spend, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.Customer{}, fmt.Errorf("invalid annual_spend %q: %w", raw, err)
		}
		c.AnnualSpend = &spend
	}
	if raw := field(record, index, "last_purchase_date"); raw != "" {
		purchased, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return domain.Customer{}, fmt.Errorf("invalid last_purchase_date %q: %w", raw, err)
		}
		c.LastPurchaseDate = &purchased
	}

	return c, nil
}

func field(record []string, index map[string]int, name string) string {
	idx, ok := index[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}
