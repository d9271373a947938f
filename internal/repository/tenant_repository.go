package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhatro-labs/booking-engine/internal/domain"
)

type tenantRepository struct {
	db *sqlx.DB
}

func NewTenantRepository(db *sqlx.DB) TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) List(ctx context.Context, unassignedOnly bool) ([]*domain.Tenant, error) {
	query := `
		SELECT id, full_name, phone, alt_phone, email, room_id, created_at
		FROM tenants
	`
	if unassignedOnly {
		query += ` WHERE room_id IS NULL`
	}
	query += ` ORDER BY full_name`

	var tenants []*domain.Tenant
	if err := r.db.SelectContext(ctx, &tenants, query); err != nil {
		return nil, err
	}

	return tenants, nil
}

func (r *tenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	query := `
		SELECT id, full_name, phone, alt_phone, email, room_id, created_at
		FROM tenants
		WHERE id = $1
	`

	var tenant domain.Tenant
	if err := r.db.GetContext(ctx, &tenant, query, id); err != nil {
		return nil, err
	}

	return &tenant, nil
}
