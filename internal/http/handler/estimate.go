package handler

import (
	"errors"
	"net/http"

	"ceerion/internal/currency"
	"ceerion/internal/estimate"
	"ceerion/internal/reservation"
)

// EstimateHandler serves the configurator's instant estimates. Nothing is
// persisted; the product pricing row is the only read.
type EstimateHandler struct {
	Svc *reservation.Service
}

type estimateReq struct {
	ProductType    string  `json:"productType" validate:"required,oneof=h1 b3"`
	SolarSize      int     `json:"solarSize" validate:"required,min=4,max=50"`
	BatterySize    int     `json:"batterySize" validate:"required,min=10,max=100"`
	EVIntegration  bool    `json:"evIntegration"`
	AvgMonthlyBill float64 `json:"avgMonthlyBill" validate:"omitempty,min=0,max=10000"`
}

func (h *EstimateHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req estimateReq
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.AvgMonthlyBill == 0 {
		req.AvgMonthlyBill = 200
	}

	product, err := h.Svc.GetProduct(r.Context(), req.ProductType)
	if err != nil {
		if errors.Is(err, reservation.ErrProductNotFound) {
			writeError(w, http.StatusBadRequest, "Invalid Product", "Product type not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to compute estimate")
		return
	}

	sys := estimate.Estimate(
		product.BasePrice, product.SolarPricePerKW, product.BatteryPricePerKWh,
		req.SolarSize, req.BatterySize, req.EVIntegration, req.AvgMonthlyBill,
	)

	writeData(w, http.StatusOK, "", map[string]any{
		"product":  map[string]any{"code": product.Code, "name": product.Name},
		"estimate": sys,
		"currency": "USD",
	})
}

// Currencies exposes the static display-conversion table.
func (h *EstimateHandler) Currencies(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, "", map[string]any{
		"base":       "USD",
		"currencies": currency.All(),
	})
}
