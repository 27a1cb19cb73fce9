package service

import (
	"errors"
	"strings"

	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/model"
)

// CatalogService manages the catalog of reading services offered to clients.
type CatalogService struct {
	readings ReadingStore
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(readings ReadingStore) *CatalogService {
	return &CatalogService{readings: readings}
}

func validateReading(svc *model.ReadingService) error {
	if strings.TrimSpace(svc.NameEn) == "" && strings.TrimSpace(svc.NameAr) == "" {
		return errors.New("service name is required")
	}
	if svc.PriceUSD < 0 {
		return errors.New("price must not be negative")
	}
	if svc.DurationMin <= 0 {
		return errors.New("duration must be positive")
	}
	return nil
}

// CreateService adds a new reading service.
func (s *CatalogService) CreateService(svc *model.ReadingService) (*model.ReadingService, error) {
	if err := validateReading(svc); err != nil {
		return nil, err
	}
	id, err := s.readings.Create(svc)
	if err != nil {
		return nil, err
	}
	svc.ID = id
	return svc, nil
}

// UpdateService replaces an existing reading service.
func (s *CatalogService) UpdateService(svc *model.ReadingService) error {
	if err := validateReading(svc); err != nil {
		return err
	}
	if _, err := s.readings.GetByID(svc.ID); err != nil {
		return asNotFound(err)
	}
	return s.readings.Update(svc)
}

// DeleteService removes a reading service.
func (s *CatalogService) DeleteService(id int) error {
	if _, err := s.readings.GetByID(id); err != nil {
		return asNotFound(err)
	}
	return s.readings.Delete(id)
}

// GetService returns one reading service.
func (s *CatalogService) GetService(id int) (*model.ReadingService, error) {
	svc, err := s.readings.GetByID(id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return svc, nil
}

// ListServices returns the catalog; activeOnly limits it to what clients can
// book.
func (s *CatalogService) ListServices(activeOnly bool) ([]model.ReadingService, error) {
	if activeOnly {
		return s.readings.ListActive()
	}
	return s.readings.ListAll()
}
