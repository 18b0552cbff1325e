package handler

import (
	"errors"
	"net/http"
	"strings"

	"ceerion/internal/reservation"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservationHandler struct {
	Svc *reservation.Service
}

type reservationReq struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=5,max=50"`

	Location     string `json:"location" validate:"required,max=200"`
	Country      string `json:"country" validate:"required,min=2,max=3"`
	PropertyType string `json:"propertyType" validate:"required,oneof=single-family townhouse condo commercial multi-family farm other"`

	ProductType   string `json:"productType" validate:"required,oneof=h1 b3"`
	SolarSize     int    `json:"solarSize" validate:"required,min=4,max=50"`
	BatterySize   int    `json:"batterySize" validate:"required,min=10,max=100"`
	EVIntegration bool   `json:"evIntegration"`

	Timeline string `json:"timeline" validate:"required,oneof=asap 3-months 3-6-months 6-12-months flexible"`
	Budget   string `json:"budget" validate:"omitempty,oneof=no-preference budget-conscious moderate premium"`

	CurrentEnergyBill   *float64 `json:"currentEnergyBill" validate:"omitempty,min=0,max=10000"`
	SpecialRequirements string   `json:"specialRequirements" validate:"omitempty,max=2000"`

	PreferredContact string `json:"preferredContact" validate:"omitempty,oneof=email phone text any"`
	Newsletter       bool   `json:"newsletter"`

	TermsAccepted bool `json:"termsAccepted" validate:"required"`
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req reservationReq
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.Budget == "" {
		req.Budget = "no-preference"
	}
	if req.PreferredContact == "" {
		req.PreferredContact = "email"
	}

	res, err := h.Svc.Create(r.Context(), reservation.Input{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               strings.TrimSpace(req.Email),
		Phone:               req.Phone,
		Location:            req.Location,
		Country:             req.Country,
		PropertyType:        req.PropertyType,
		ProductType:         req.ProductType,
		SolarSizeKW:         req.SolarSize,
		BatterySizeKW:       req.BatterySize,
		EVIntegration:       req.EVIntegration,
		Timeline:            req.Timeline,
		Budget:              req.Budget,
		CurrentEnergyBill:   req.CurrentEnergyBill,
		SpecialRequirements: req.SpecialRequirements,
		PreferredContact:    req.PreferredContact,
		Newsletter:          req.Newsletter,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservation.ErrProductNotFound):
			writeError(w, http.StatusBadRequest, "Invalid Product", "Product type not found")
		case errors.Is(err, gorm.ErrDuplicatedKey):
			writeError(w, http.StatusConflict, "Conflict", "A concurrent submission for this email won; please retry")
		default:
			writeError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to create reservation")
		}
		return
	}

	writeData(w, http.StatusCreated, "Reservation created successfully", map[string]any{
		"reservationId":  res.ReservationID,
		"estimatedPrice": res.EstimatedPrice,
		"createdAt":      res.CreatedAt,
	})
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Validation Error", "invalid reservation id")
		return
	}

	detail, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, reservation.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Not Found", "Reservation not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve reservation")
		return
	}

	writeData(w, http.StatusOK, "", detail)
}

type reservationStatusReq struct {
	Status string `json:"status" validate:"required,oneof=pending contacted site-assessment-scheduled site-assessment-completed proposal-sent contract-signed installation-scheduled installed cancelled on-hold"`
	Notes  string `json:"notes" validate:"omitempty,max=2000"`
}

func (h *ReservationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Validation Error", "invalid reservation id")
		return
	}

	var req reservationStatusReq
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.Svc.UpdateStatus(r.Context(), id, req.Status, req.Notes)
	if err != nil {
		if errors.Is(err, reservation.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Not Found", "Reservation not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update reservation status")
		return
	}

	writeData(w, http.StatusOK, "Reservation status updated", res)
}
