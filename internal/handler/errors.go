package handler

import (
	"errors"
	"net/http"

	customError "github.com/andrifs/solutions-engine/pkg/errors"
	"github.com/andrifs/solutions-engine/pkg/response"
)

// writeError maps service errors onto HTTP responses, keeping the stable
// business code in the payload.
func writeError(w http.ResponseWriter, err error) {
	var be *customError.BusinessError
	if errors.As(err, &be) {
		response.ErrorWithCode(w, statusForCode(be.Code), be.Code, be.Message, be.Unwrap())
		return
	}

	response.InternalServerError(w, "unexpected error", err)
}

func statusForCode(code string) int {
	switch code {
	case customError.ErrCodeLoanNotFound,
		customError.ErrCodePaymentNotFound,
		customError.ErrCodeBillNotFound,
		customError.ErrCodeTruckNotFound,
		customError.ErrCodeBookingNotFound:
		return http.StatusNotFound
	case customError.ErrCodeInvalidDateRange,
		customError.ErrCodeInvalidStatus:
		return http.StatusBadRequest
	case customError.ErrCodeTruckUnavailable,
		customError.ErrCodeBookingConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
