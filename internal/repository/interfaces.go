package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andrifs/solutions-engine/internal/domain"
)

// LoanRepository defines the interface for loan data operations
type LoanRepository interface {
	// Create creates a new loan
	Create(ctx context.Context, loan *domain.Loan) error

	// GetByID retrieves a loan by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error)

	// List retrieves all loans, newest first
	List(ctx context.Context) ([]*domain.Loan, error)

	// Update updates a loan
	Update(ctx context.Context, loan *domain.Loan) error

	// Delete removes a loan and its dependents
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// Create creates a new payment record
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByID retrieves a payment by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)

	// GetByLoanID retrieves all payments for a loan
	GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.Payment, error)

	// TotalPaid sums the payments recorded for a loan
	TotalPaid(ctx context.Context, loanID uuid.UUID) (decimal.Decimal, error)

	// Delete removes a payment
	Delete(ctx context.Context, id uuid.UUID) error
}

// BillRepository defines the interface for bill data operations
type BillRepository interface {
	// Create creates a new bill
	Create(ctx context.Context, bill *domain.Bill) error

	// GetByID retrieves a bill by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error)

	// GetByLoanID retrieves a loan's bills ordered by bill number
	GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.Bill, error)

	// NextBillNumber returns the next sequential bill number for a loan
	NextBillNumber(ctx context.Context, loanID uuid.UUID) (int, error)

	// UpdateStatus sets a bill's status
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error

	// Delete removes a bill
	Delete(ctx context.Context, id uuid.UUID) error

	// MarkOverdue flips pending bills past their due date to overdue,
	// returning how many rows changed
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)

	// ListDueWithin returns pending bills due inside [from, to]
	ListDueWithin(ctx context.Context, from, to time.Time) ([]*domain.Bill, error)
}

// TruckRepository defines the interface for truck and booking data operations
type TruckRepository interface {
	// Create creates a new truck
	Create(ctx context.Context, truck *domain.Truck) error

	// GetByID retrieves a truck by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Truck, error)

	// List retrieves all trucks
	List(ctx context.Context) ([]*domain.Truck, error)

	// Update updates a truck
	Update(ctx context.Context, truck *domain.Truck) error

	// Delete removes a truck and its bookings
	Delete(ctx context.Context, id uuid.UUID) error

	// CreateBooking creates a booking for a truck
	CreateBooking(ctx context.Context, booking *domain.Booking) error

	// GetBookingByID retrieves a booking by its ID
	GetBookingByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)

	// GetBookingsByTruckID retrieves all bookings for a truck
	GetBookingsByTruckID(ctx context.Context, truckID uuid.UUID) ([]*domain.Booking, error)

	// UpdateBookingStatus sets a booking's status
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status string) error
}
