package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/andrifs/solutions-engine/internal/domain"
	"github.com/andrifs/solutions-engine/internal/service"
	"github.com/andrifs/solutions-engine/pkg/response"
)

type LogisticsHandler struct {
	service   *service.LogisticsService
	validator *validator.Validate
}

func NewLogisticsHandler(service *service.LogisticsService) *LogisticsHandler {
	return &LogisticsHandler{
		service:   service,
		validator: newValidator(),
	}
}

func (h *LogisticsHandler) CreateTruck(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateTruckRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.UnprocessableEntity(w, "validation failed", err)
		return
	}

	truck, err := h.service.CreateTruck(r.Context(), &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, truck)
}

func (h *LogisticsHandler) GetTruck(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	truck, err := h.service.GetTruck(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, truck)
}

func (h *LogisticsHandler) ListTrucks(w http.ResponseWriter, r *http.Request) {
	trucks, err := h.service.ListTrucks(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, trucks)
}

func (h *LogisticsHandler) UpdateTruck(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var request domain.UpdateTruckRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.UnprocessableEntity(w, "validation failed", err)
		return
	}

	truck, err := h.service.UpdateTruck(r.Context(), id, &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, truck)
}

func (h *LogisticsHandler) DeleteTruck(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteTruck(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	response.NoContent(w)
}

// CheckAvailability reads an optional pickup_date/delivery_date window from
// the query string. Without a window, any active booking marks the truck
// unavailable.
func (h *LogisticsHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	pickup, ok := queryDate(w, r, "pickup_date")
	if !ok {
		return
	}
	delivery, ok := queryDate(w, r, "delivery_date")
	if !ok {
		return
	}

	availability, err := h.service.CheckAvailability(r.Context(), id, pickup, delivery)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, availability)
}

func (h *LogisticsHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.UnprocessableEntity(w, "validation failed", err)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, booking)
}

func (h *LogisticsHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var request domain.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.UnprocessableEntity(w, "validation failed", err)
		return
	}

	booking, err := h.service.UpdateBookingStatus(r.Context(), id, request.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, booking)
}

func queryDate(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}

	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.BadRequest(w, "invalid "+name, err)
		return nil, false
	}
	return &parsed, true
}
