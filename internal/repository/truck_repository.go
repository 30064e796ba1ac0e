package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/andrifs/solutions-engine/internal/domain"
)

type truckRepository struct {
	db *sqlx.DB
}

func NewTruckRepository(db *sqlx.DB) TruckRepository {
	return &truckRepository{db: db}
}

func (r *truckRepository) Create(ctx context.Context, truck *domain.Truck) error {
	query := `
		INSERT INTO trucks (id, truck_number, capacity, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		truck.ID,
		truck.TruckNumber,
		truck.Capacity,
		truck.Status,
		truck.CreatedAt,
		truck.UpdatedAt,
	)

	return err
}

func (r *truckRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Truck, error) {
	query := `
		SELECT id, truck_number, capacity, status, created_at, updated_at
		FROM trucks
		WHERE id = $1
	`

	var truck domain.Truck
	if err := r.db.GetContext(ctx, &truck, query, id); err != nil {
		return nil, err
	}

	return &truck, nil
}

func (r *truckRepository) List(ctx context.Context) ([]*domain.Truck, error) {
	query := `
		SELECT id, truck_number, capacity, status, created_at, updated_at
		FROM trucks
		ORDER BY truck_number
	`

	var trucks []*domain.Truck
	if err := r.db.SelectContext(ctx, &trucks, query); err != nil {
		return nil, err
	}

	return trucks, nil
}

func (r *truckRepository) Update(ctx context.Context, truck *domain.Truck) error {
	query := `
		UPDATE trucks
		SET truck_number = $2, capacity = $3, status = $4, updated_at = $5
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		truck.ID,
		truck.TruckNumber,
		truck.Capacity,
		truck.Status,
		time.Now(),
	)

	return err
}

func (r *truckRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE truck_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM trucks WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *truckRepository) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, truck_id, customer_name, pickup_date, delivery_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.TruckID,
		booking.CustomerName,
		booking.PickupDate,
		booking.DeliveryDate,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	return err
}

func (r *truckRepository) GetBookingByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := `
		SELECT id, truck_id, customer_name, pickup_date, delivery_date, status, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var booking domain.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *truckRepository) GetBookingsByTruckID(ctx context.Context, truckID uuid.UUID) ([]*domain.Booking, error) {
	query := `
		SELECT id, truck_id, customer_name, pickup_date, delivery_date, status, created_at, updated_at
		FROM bookings
		WHERE truck_id = $1
		ORDER BY pickup_date
	`

	var bookings []*domain.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, truckID); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *truckRepository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, status, time.Now())
	return err
}
