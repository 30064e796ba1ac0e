package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/andrifs/solutions-engine/internal/domain"
	"github.com/andrifs/solutions-engine/internal/service"
	"github.com/andrifs/solutions-engine/pkg/response"
)

type LoanHandler struct {
	service   *service.LoanService
	validator *validator.Validate
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	return &LoanHandler{
		service:   service,
		validator: newValidator(),
	}
}

func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.UnprocessableEntity(w, "validation failed", err)
		return
	}

	loan, err := h.service.CreateLoan(r.Context(), &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, domain.NewLoanResponse(loan))
}

func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	loan, err := h.service.GetLoan(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, domain.NewLoanResponse(loan))
}

func (h *LoanHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.service.ListLoans(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	responses := make([]*domain.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		responses = append(responses, domain.NewLoanResponse(loan))
	}

	response.Success(w, responses)
}

func (h *LoanHandler) UpdateLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var request domain.UpdateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.UnprocessableEntity(w, "validation failed", err)
		return
	}

	loan, err := h.service.UpdateLoan(r.Context(), id, &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, domain.NewLoanResponse(loan))
}

func (h *LoanHandler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteLoan(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *LoanHandler) MakePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var request domain.MakePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.UnprocessableEntity(w, "validation failed", err)
		return
	}

	result, err := h.service.MakePayment(r.Context(), id, &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, result)
}

func (h *LoanHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	payments, err := h.service.ListPayments(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, payments)
}

func (h *LoanHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	loanID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	paymentID, ok := pathID(w, r, "paymentId")
	if !ok {
		return
	}

	if err := h.service.DeletePayment(r.Context(), loanID, paymentID); err != nil {
		writeError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *LoanHandler) GetScore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	score, err := h.service.Score(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, score)
}

// pathID parses a UUID path variable, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.BadRequest(w, "invalid "+name, err)
		return uuid.Nil, false
	}
	return id, true
}
