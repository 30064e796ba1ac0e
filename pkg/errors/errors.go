package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrLoanNotFound     = errors.New("loan not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrBillNotFound     = errors.New("bill not found")
	ErrTruckNotFound    = errors.New("truck not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrInvalidDateRange = errors.New("end date must not precede start date")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrTruckUnavailable = errors.New("truck is not available")
	ErrBookingConflict  = errors.New("requested window conflicts with an existing booking")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeLoanNotFound     = "LOAN_NOT_FOUND"
	ErrCodePaymentNotFound  = "PAYMENT_NOT_FOUND"
	ErrCodeBillNotFound     = "BILL_NOT_FOUND"
	ErrCodeTruckNotFound    = "TRUCK_NOT_FOUND"
	ErrCodeBookingNotFound  = "BOOKING_NOT_FOUND"
	ErrCodeInvalidDateRange = "INVALID_DATE_RANGE"
	ErrCodeInvalidStatus    = "INVALID_STATUS"
	ErrCodeTruckUnavailable = "TRUCK_UNAVAILABLE"
	ErrCodeBookingConflict  = "BOOKING_CONFLICT"
	ErrCodeDatabaseError    = "DATABASE_ERROR"
	ErrCodeCacheError       = "CACHE_ERROR"
)

// Wrap common errors with business context

func WrapLoanNotFound(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan with ID %s not found", loanID),
		ErrLoanNotFound,
	)
}

func WrapPaymentNotFound(paymentID string) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentNotFound,
		fmt.Sprintf("Payment with ID %s not found", paymentID),
		ErrPaymentNotFound,
	)
}

func WrapBillNotFound(billID string) *BusinessError {
	return NewBusinessError(
		ErrCodeBillNotFound,
		fmt.Sprintf("Bill with ID %s not found", billID),
		ErrBillNotFound,
	)
}

func WrapTruckNotFound(truckID string) *BusinessError {
	return NewBusinessError(
		ErrCodeTruckNotFound,
		fmt.Sprintf("Truck with ID %s not found", truckID),
		ErrTruckNotFound,
	)
}

func WrapBookingNotFound(bookingID string) *BusinessError {
	return NewBusinessError(
		ErrCodeBookingNotFound,
		fmt.Sprintf("Booking with ID %s not found", bookingID),
		ErrBookingNotFound,
	)
}

func WrapInvalidDateRange(start, end string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidDateRange,
		fmt.Sprintf("End date %s precedes start date %s", end, start),
		ErrInvalidDateRange,
	)
}

func WrapInvalidDate(value string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidDateRange,
		fmt.Sprintf("Date %q is not a valid YYYY-MM-DD date", value),
		ErrInvalidDateRange,
	)
}

func WrapInvalidStatus(status string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidStatus,
		fmt.Sprintf("Status %q is not valid", status),
		ErrInvalidStatus,
	)
}

func WrapTruckUnavailable(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeTruckUnavailable,
		reason,
		ErrTruckUnavailable,
	)
}

func WrapBookingConflict(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeBookingConflict,
		reason,
		ErrBookingConflict,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"cache operation failed",
		err,
	)
}
