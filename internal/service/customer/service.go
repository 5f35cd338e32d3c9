package customer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"customer-api/internal/domain"
	custrepo "customer-api/internal/repository/customer"
)

// Service is the sole arbiter of the customer lifecycle. It orchestrates
// repository calls, enforces the id and uniqueness invariants, and attaches
// the derived tier on every read path. Write paths return the raw stored
// record without a tier.
type Service struct {
	repo   custrepo.Repository
	logger *log.Logger
	now    func() time.Time
}

// New creates a Service. A nil logger discards output.
func New(repo custrepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Create persists a new customer. The id must be unset: it is assigned by
// the store, never by the caller.
func (s *Service) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	if strings.TrimSpace(c.ID) != "" {
		s.logger.Printf("create rejected: caller supplied id=%s", c.ID)
		return nil, domain.ErrIDProvided
	}
	c.ID = ""
	c.Tier = ""
	saved, err := s.repo.Save(ctx, c)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("customer created id=%s", saved.ID)
	return saved, nil
}

// GetByID returns the customer with the derived tier attached, or an error
// wrapping domain.ErrNotFound when no record exists.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, notFound(id)
		}
		return nil, err
	}
	s.attachTier(c)
	return c, nil
}

// GetByName looks a customer up by its unique name. Absence is a normal
// outcome: a (nil, nil) return means no match, not a failure.
func (s *Service) GetByName(ctx context.Context, name string) (*domain.Customer, error) {
	c, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	s.attachTier(c)
	return c, nil
}

// GetByEmail is the same contract as GetByName, keyed on email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	c, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	s.attachTier(c)
	return c, nil
}

// List returns every customer in store order with tiers attached. An empty
// slice is a valid result.
func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range customers {
		customers[i].Tier = ComputeTier(customers[i].AnnualSpend, customers[i].LastPurchaseDate, now)
	}
	return customers, nil
}

// Update replaces name, email, annual spend and last purchase date on the
// existing record. This is a full overwrite: fields absent on in become
// absent on the stored record. The id is preserved.
func (s *Service) Update(ctx context.Context, id string, in domain.Customer) (*domain.Customer, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("update failed: no customer id=%s", id)
			return nil, notFound(id)
		}
		return nil, err
	}

	existing.Name = in.Name
	existing.Email = in.Email
	existing.AnnualSpend = in.AnnualSpend
	existing.LastPurchaseDate = in.LastPurchaseDate
	existing.Tier = ""

	saved, err := s.repo.Save(ctx, *existing)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("customer updated id=%s", saved.ID)
	return saved, nil
}

// Delete removes the customer. The existence probe and the delete are two
// separate store calls with no isolation guarantee between them.
func (s *Service) Delete(ctx context.Context, id string) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		s.logger.Printf("delete failed: no customer id=%s", id)
		return notFound(id)
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.logger.Printf("customer deleted id=%s", id)
	return nil
}

func (s *Service) attachTier(c *domain.Customer) {
	c.Tier = ComputeTier(c.AnnualSpend, c.LastPurchaseDate, s.now())
}

func notFound(id string) error {
	return fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
}
