package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhatro-labs/booking-engine/internal/domain"
)

type roomRepository struct {
	db *sqlx.DB
}

func NewRoomRepository(db *sqlx.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) List(ctx context.Context) ([]*domain.Room, error) {
	query := `
		SELECT id, name, block, base_rate, current_rate, deposit, status, tenant_id, updated_at
		FROM rooms
		ORDER BY block, name
	`

	var rooms []*domain.Room
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, err
	}

	return rooms, nil
}

func (r *roomRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	query := `
		SELECT id, name, block, base_rate, current_rate, deposit, status, tenant_id, updated_at
		FROM rooms
		WHERE id = $1
	`

	var room domain.Room
	if err := r.db.GetContext(ctx, &room, query, id); err != nil {
		return nil, err
	}

	return &room, nil
}
