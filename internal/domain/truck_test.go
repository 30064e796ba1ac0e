package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(t time.Time) *time.Time { return &t }

func TestDateRangesOverlap(t *testing.T) {
	tests := []struct {
		name     string
		aStart   time.Time
		aEnd     time.Time
		bStart   time.Time
		bEnd     time.Time
		expected bool
	}{
		{
			name:   "disjoint ranges",
			aStart: day(2024, 3, 1), aEnd: day(2024, 3, 5),
			bStart: day(2024, 3, 6), bEnd: day(2024, 3, 10),
			expected: false,
		},
		{
			name:   "shared boundary day overlaps",
			aStart: day(2024, 3, 1), aEnd: day(2024, 3, 5),
			bStart: day(2024, 3, 5), bEnd: day(2024, 3, 10),
			expected: true,
		},
		{
			name:   "contained range",
			aStart: day(2024, 3, 1), aEnd: day(2024, 3, 10),
			bStart: day(2024, 3, 3), bEnd: day(2024, 3, 4),
			expected: true,
		},
		{
			name:   "identical single day",
			aStart: day(2024, 3, 1), aEnd: day(2024, 3, 1),
			bStart: day(2024, 3, 1), bEnd: day(2024, 3, 1),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DateRangesOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// The rule is symmetric.
			assert.Equal(t, tt.expected, DateRangesOverlap(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestTruckAvailability(t *testing.T) {
	confirmed := &Booking{
		Status:       BookingStatusConfirmed,
		PickupDate:   day(2024, 3, 1),
		DeliveryDate: day(2024, 3, 5),
	}
	cancelled := &Booking{
		Status:       BookingStatusCancelled,
		PickupDate:   day(2024, 3, 1),
		DeliveryDate: day(2024, 3, 5),
	}

	tests := []struct {
		name           string
		truck          *Truck
		bookings       []*Booking
		pickup         *time.Time
		delivery       *time.Time
		expectedOK     bool
		expectedReason string
	}{
		{
			name:           "maintenance truck always unavailable",
			truck:          &Truck{Status: TruckStatusMaintenance},
			bookings:       nil,
			pickup:         datePtr(day(2024, 6, 1)),
			delivery:       datePtr(day(2024, 6, 3)),
			expectedOK:     false,
			expectedReason: "Under maintenance",
		},
		{
			name:           "in-transit truck unavailable",
			truck:          &Truck{Status: TruckStatusInTransit},
			expectedOK:     false,
			expectedReason: "Currently in use",
		},
		{
			name:           "other status renders lowercased",
			truck:          &Truck{Status: TruckStatusOutOfService},
			expectedOK:     false,
			expectedReason: "Currently out of service",
		},
		{
			name:       "no bookings and no window",
			truck:      &Truck{Status: TruckStatusAvailable},
			expectedOK: true,
		},
		{
			name:           "one active booking blocks without a window",
			truck:          &Truck{Status: TruckStatusAvailable},
			bookings:       []*Booking{confirmed},
			expectedOK:     false,
			expectedReason: "Already booked",
		},
		{
			name:  "several active bookings without a window",
			truck: &Truck{Status: TruckStatusAvailable},
			bookings: []*Booking{
				confirmed,
				{Status: BookingStatusPending, PickupDate: day(2024, 4, 1), DeliveryDate: day(2024, 4, 3)},
			},
			expectedOK:     false,
			expectedReason: "Multiple bookings",
		},
		{
			name:       "terminal bookings never block",
			truck:      &Truck{Status: TruckStatusAvailable},
			bookings:   []*Booking{cancelled},
			expectedOK: true,
		},
		{
			name:           "shared boundary day conflicts",
			truck:          &Truck{Status: TruckStatusAvailable},
			bookings:       []*Booking{confirmed},
			pickup:         datePtr(day(2024, 3, 5)),
			delivery:       datePtr(day(2024, 3, 10)),
			expectedOK:     false,
			expectedReason: "Date conflict",
		},
		{
			name:       "window after existing booking is free",
			truck:      &Truck{Status: TruckStatusAvailable},
			bookings:   []*Booking{confirmed},
			pickup:     datePtr(day(2024, 3, 6)),
			delivery:   datePtr(day(2024, 3, 10)),
			expectedOK: true,
		},
		{
			name:       "window only dodges terminal bookings",
			truck:      &Truck{Status: TruckStatusAvailable},
			bookings:   []*Booking{cancelled},
			pickup:     datePtr(day(2024, 3, 3)),
			delivery:   datePtr(day(2024, 3, 4)),
			expectedOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := TruckAvailability(tt.truck, tt.bookings, tt.pickup, tt.delivery)

			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expectedReason, reason)
		})
	}
}

func TestActiveBookings(t *testing.T) {
	bookings := []*Booking{
		{Status: BookingStatusPending},
		{Status: BookingStatusConfirmed},
		{Status: BookingStatusInProgress},
		{Status: BookingStatusCompleted},
		{Status: BookingStatusCancelled},
	}

	active := ActiveBookings(bookings)
	assert.Len(t, active, 3)
	for _, b := range active {
		assert.True(t, NonTerminalBookingStatus(b.Status))
	}
}
