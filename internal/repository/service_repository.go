package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/nhatro-labs/booking-engine/internal/domain"
)

type serviceRepository struct {
	db *sqlx.DB
}

func NewServiceRepository(db *sqlx.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) ListActive(ctx context.Context) ([]domain.Service, error) {
	query := `
		SELECT id, name, category, unit_price, unit, exclusivity_group, active
		FROM services
		WHERE active = true
		ORDER BY name
	`

	var services []domain.Service
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, err
	}

	return services, nil
}
