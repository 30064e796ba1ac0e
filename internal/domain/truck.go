package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TruckStatusAvailable    = "Available"
	TruckStatusInTransit    = "In Transit"
	TruckStatusMaintenance  = "Maintenance"
	TruckStatusOutOfService = "Out of Service"
)

const (
	BookingStatusPending    = "Pending"
	BookingStatusConfirmed  = "Confirmed"
	BookingStatusInProgress = "In Progress"
	BookingStatusCompleted  = "Completed"
	BookingStatusCancelled  = "Cancelled"
)

// Truck is a fleet vehicle that can carry bookings.
type Truck struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	TruckNumber string          `json:"truck_number" db:"truck_number"`
	Capacity    decimal.Decimal `json:"capacity" db:"capacity"`
	Status      string          `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// Booking reserves a truck for a pickup/delivery window. Both interval
// endpoints are inclusive.
type Booking struct {
	ID           uuid.UUID `json:"id" db:"id"`
	TruckID      uuid.UUID `json:"truck_id" db:"truck_id"`
	CustomerName string    `json:"customer_name" db:"customer_name"`
	PickupDate   time.Time `json:"pickup_date" db:"pickup_date"`
	DeliveryDate time.Time `json:"delivery_date" db:"delivery_date"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

var nonTerminalBookingStatuses = map[string]bool{
	BookingStatusPending:    true,
	BookingStatusConfirmed:  true,
	BookingStatusInProgress: true,
}

// NonTerminalBookingStatus reports whether s still blocks the truck's
// availability. Completed and Cancelled bookings do not.
func NonTerminalBookingStatus(s string) bool {
	return nonTerminalBookingStatuses[s]
}

// ValidBookingStatus reports whether s is a known booking status.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// ActiveBookings filters bookings down to those in a non-terminal status.
func ActiveBookings(bookings []*Booking) []*Booking {
	var active []*Booking
	for _, b := range bookings {
		if NonTerminalBookingStatus(b.Status) {
			active = append(active, b)
		}
	}
	return active
}

// DateRangesOverlap implements the closed-interval overlap rule: [a1,a2]
// and [b1,b2] overlap iff a1 <= b2 and b1 <= a2. A shared boundary day
// counts as overlap.
func DateRangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// TruckAvailability decides whether a truck can take a booking for the
// requested window, returning a human-readable reason when it cannot.
//
// A truck whose own status is not Available is never bookable. Otherwise,
// when no window is given, any active booking blocks the truck. When a
// window is given, only active bookings whose interval overlaps the request
// block it.
func TruckAvailability(truck *Truck, bookings []*Booking, pickup, delivery *time.Time) (bool, string) {
	if truck.Status != TruckStatusAvailable {
		switch truck.Status {
		case TruckStatusInTransit:
			return false, "Currently in use"
		case TruckStatusMaintenance:
			return false, "Under maintenance"
		default:
			return false, "Currently " + strings.ToLower(truck.Status)
		}
	}

	active := ActiveBookings(bookings)

	if pickup == nil || delivery == nil {
		switch {
		case len(active) == 0:
			return true, ""
		case len(active) == 1:
			return false, "Already booked"
		default:
			return false, "Multiple bookings"
		}
	}

	for _, b := range active {
		if DateRangesOverlap(*pickup, *delivery, b.PickupDate, b.DeliveryDate) {
			return false, "Date conflict"
		}
	}

	return true, ""
}

// DTOs for requests and responses

type CreateTruckRequest struct {
	TruckNumber string          `json:"truck_number" validate:"required"`
	Capacity    decimal.Decimal `json:"capacity" validate:"decimal_gt=0"`
	Status      string          `json:"status" validate:"omitempty,oneof='Available' 'In Transit' 'Maintenance' 'Out of Service'"`
}

type UpdateTruckRequest struct {
	TruckNumber string          `json:"truck_number" validate:"required"`
	Capacity    decimal.Decimal `json:"capacity" validate:"decimal_gt=0"`
	Status      string          `json:"status" validate:"required,oneof='Available' 'In Transit' 'Maintenance' 'Out of Service'"`
}

type CreateBookingRequest struct {
	TruckID      string `json:"truck_id" validate:"required,uuid"`
	CustomerName string `json:"customer_name" validate:"required"`
	PickupDate   string `json:"pickup_date" validate:"required,datetime=2006-01-02"`
	DeliveryDate string `json:"delivery_date" validate:"required,datetime=2006-01-02"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof='Pending' 'Confirmed' 'In Progress' 'Completed' 'Cancelled'"`
}

type TruckResponse struct {
	Truck    *Truck     `json:"truck"`
	Bookings []*Booking `json:"bookings,omitempty"`
}

type AvailabilityResponse struct {
	TruckID   uuid.UUID `json:"truck_id"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
}
