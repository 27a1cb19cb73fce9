package repository

import (
	"fmt"

	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/model"

	"github.com/jmoiron/sqlx"
)

// ReadingRepository provides access to the catalog of reading services.
type ReadingRepository struct {
	db *sqlx.DB
}

// NewReadingRepository creates a new reading-service repository.
func NewReadingRepository(db *sqlx.DB) *ReadingRepository {
	return &ReadingRepository{db: db}
}

// Create inserts a new reading service and returns its id.
func (r *ReadingRepository) Create(svc *model.ReadingService) (int, error) {
	query := `INSERT INTO services (name_en, name_ar, description_en, description_ar, price_usd, duration_min, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	var id int
	err := r.db.QueryRow(query, svc.NameEn, svc.NameAr, svc.DescriptionEn, svc.DescriptionAr,
		svc.PriceUSD, svc.DurationMin, svc.IsActive).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create service: %w", err)
	}
	return id, nil
}

// GetByID returns a reading service by id.
func (r *ReadingRepository) GetByID(id int) (*model.ReadingService, error) {
	var svc model.ReadingService
	err := r.db.Get(&svc, "SELECT * FROM services WHERE id=$1", id)
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

// Update replaces the editable fields of a reading service.
func (r *ReadingRepository) Update(svc *model.ReadingService) error {
	_, err := r.db.Exec(`UPDATE services SET name_en=$1, name_ar=$2, description_en=$3, description_ar=$4,
	                     price_usd=$5, duration_min=$6, is_active=$7 WHERE id=$8`,
		svc.NameEn, svc.NameAr, svc.DescriptionEn, svc.DescriptionAr,
		svc.PriceUSD, svc.DurationMin, svc.IsActive, svc.ID)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	return nil
}

// Delete removes a reading service.
func (r *ReadingRepository) Delete(id int) error {
	_, err := r.db.Exec("DELETE FROM services WHERE id=$1", id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	return nil
}

// ListAll returns every reading service, active or not.
func (r *ReadingRepository) ListAll() ([]model.ReadingService, error) {
	services := []model.ReadingService{}
	err := r.db.Select(&services, "SELECT * FROM services ORDER BY id")
	if err != nil {
		return nil, err
	}
	return services, nil
}

// ListActive returns the services currently offered to clients.
func (r *ReadingRepository) ListActive() ([]model.ReadingService, error) {
	services := []model.ReadingService{}
	err := r.db.Select(&services, "SELECT * FROM services WHERE is_active=true ORDER BY id")
	if err != nil {
		return nil, err
	}
	return services, nil
}
