package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/andrifs/solutions-engine/internal/domain"
	"github.com/andrifs/solutions-engine/internal/repository"
	customError "github.com/andrifs/solutions-engine/pkg/errors"
)

// LogisticsService manages the truck fleet and its bookings. Booking
// submissions are re-checked against the availability rules server-side;
// a client that skipped the check cannot double-book a truck.
type LogisticsService struct {
	TruckRepo repository.TruckRepository
	logger    *zap.Logger
}

func NewLogisticsService(truckRepo repository.TruckRepository, logger *zap.Logger) *LogisticsService {
	return &LogisticsService{
		TruckRepo: truckRepo,
		logger:    logger,
	}
}

// CreateTruck registers a truck, defaulting its status to Available.
func (s *LogisticsService) CreateTruck(ctx context.Context, request *domain.CreateTruckRequest) (*domain.Truck, error) {
	status := request.Status
	if status == "" {
		status = domain.TruckStatusAvailable
	}

	now := time.Now()
	truck := &domain.Truck{
		ID:          uuid.New(),
		TruckNumber: request.TruckNumber,
		Capacity:    request.Capacity,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.TruckRepo.Create(ctx, truck); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return truck, nil
}

// GetTruck retrieves a truck together with its bookings.
func (s *LogisticsService) GetTruck(ctx context.Context, id uuid.UUID) (*domain.TruckResponse, error) {
	truck, err := s.getTruck(ctx, id)
	if err != nil {
		return nil, err
	}

	bookings, err := s.TruckRepo.GetBookingsByTruckID(ctx, id)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.TruckResponse{Truck: truck, Bookings: bookings}, nil
}

// ListTrucks retrieves all trucks.
func (s *LogisticsService) ListTrucks(ctx context.Context) ([]*domain.Truck, error) {
	trucks, err := s.TruckRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return trucks, nil
}

// UpdateTruck replaces a truck's editable fields.
func (s *LogisticsService) UpdateTruck(ctx context.Context, id uuid.UUID, request *domain.UpdateTruckRequest) (*domain.Truck, error) {
	truck, err := s.getTruck(ctx, id)
	if err != nil {
		return nil, err
	}

	truck.TruckNumber = request.TruckNumber
	truck.Capacity = request.Capacity
	truck.Status = request.Status
	truck.UpdatedAt = time.Now()

	if err := s.TruckRepo.Update(ctx, truck); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return truck, nil
}

// DeleteTruck removes a truck and its bookings.
func (s *LogisticsService) DeleteTruck(ctx context.Context, id uuid.UUID) error {
	if _, err := s.getTruck(ctx, id); err != nil {
		return err
	}

	if err := s.TruckRepo.Delete(ctx, id); err != nil {
		return customError.WrapDatabaseError(err)
	}
	return nil
}

// CheckAvailability applies the availability rules for a truck against an
// optional pickup/delivery window.
func (s *LogisticsService) CheckAvailability(ctx context.Context, truckID uuid.UUID, pickup, delivery *time.Time) (*domain.AvailabilityResponse, error) {
	truck, err := s.getTruck(ctx, truckID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.TruckRepo.GetBookingsByTruckID(ctx, truckID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	available, reason := domain.TruckAvailability(truck, bookings, pickup, delivery)

	return &domain.AvailabilityResponse{
		TruckID:   truckID,
		Available: available,
		Reason:    reason,
	}, nil
}

// CreateBooking stores a booking after hard-validating the window ordering
// and re-running the availability check against current bookings.
func (s *LogisticsService) CreateBooking(ctx context.Context, request *domain.CreateBookingRequest) (*domain.Booking, error) {
	truckID, err := uuid.Parse(request.TruckID)
	if err != nil {
		return nil, customError.WrapTruckNotFound(request.TruckID)
	}

	pickup, delivery, err := parseDateRange(request.PickupDate, request.DeliveryDate)
	if err != nil {
		return nil, err
	}

	truck, err := s.getTruck(ctx, truckID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.TruckRepo.GetBookingsByTruckID(ctx, truckID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	available, reason := domain.TruckAvailability(truck, bookings, &pickup, &delivery)
	if !available {
		if reason == "Date conflict" {
			return nil, customError.WrapBookingConflict(reason)
		}
		return nil, customError.WrapTruckUnavailable(reason)
	}

	now := time.Now()
	booking := &domain.Booking{
		ID:           uuid.New(),
		TruckID:      truckID,
		CustomerName: request.CustomerName,
		PickupDate:   pickup,
		DeliveryDate: delivery,
		Status:       domain.BookingStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.TruckRepo.CreateBooking(ctx, booking); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.logger.Info("booking created",
		zap.String("truck_id", truckID.String()),
		zap.String("booking_id", booking.ID.String()),
	)

	return booking, nil
}

// UpdateBookingStatus sets a booking's status.
func (s *LogisticsService) UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, status string) (*domain.Booking, error) {
	if !domain.ValidBookingStatus(status) {
		return nil, customError.WrapInvalidStatus(status)
	}

	booking, err := s.TruckRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapBookingNotFound(bookingID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if err := s.TruckRepo.UpdateBookingStatus(ctx, bookingID, status); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	booking.Status = status
	booking.UpdatedAt = time.Now()
	return booking, nil
}

func (s *LogisticsService) getTruck(ctx context.Context, id uuid.UUID) (*domain.Truck, error) {
	truck, err := s.TruckRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapTruckNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return truck, nil
}
