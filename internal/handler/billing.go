package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/andrifs/solutions-engine/internal/domain"
	"github.com/andrifs/solutions-engine/internal/service"
	"github.com/andrifs/solutions-engine/pkg/response"
)

type BillingHandler struct {
	service   *service.BillingService
	validator *validator.Validate
}

func NewBillingHandler(service *service.BillingService) *BillingHandler {
	return &BillingHandler{
		service:   service,
		validator: newValidator(),
	}
}

func (h *BillingHandler) CreateBill(w http.ResponseWriter, r *http.Request) {
	loanID, ok := pathID(w, r, "loanId")
	if !ok {
		return
	}

	var request domain.CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.UnprocessableEntity(w, "validation failed", err)
		return
	}

	bill, err := h.service.CreateBill(r.Context(), loanID, &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, bill)
}

func (h *BillingHandler) ListBills(w http.ResponseWriter, r *http.Request) {
	loanID, ok := pathID(w, r, "loanId")
	if !ok {
		return
	}

	bills, err := h.service.ListBills(r.Context(), loanID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, &domain.BillListResponse{LoanID: loanID, Bills: bills})
}

func (h *BillingHandler) UpdateBillStatus(w http.ResponseWriter, r *http.Request) {
	billID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var request domain.UpdateBillStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.UnprocessableEntity(w, "validation failed", err)
		return
	}

	bill, err := h.service.UpdateBillStatus(r.Context(), billID, request.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, bill)
}

func (h *BillingHandler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	billID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteBill(r.Context(), billID); err != nil {
		writeError(w, err)
		return
	}

	response.NoContent(w)
}
