package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ceerion/internal/reservation"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupEstimateHandler(t *testing.T) (*EstimateHandler, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	return &EstimateHandler{Svc: &reservation.Service{DB: gdb}}, mock
}

func TestEstimate(t *testing.T) {
	h, mock := setupEstimateHandler(t)

	rows := sqlmock.NewRows([]string{"code", "name", "base_price", "solar_price_per_kw", "battery_price_per_kwh"}).
		AddRow("h1", "H1 Home Essentials", 35000.0, 2500.0, 800.0)
	mock.ExpectQuery(`SELECT \* FROM "product_types"`).WillReturnRows(rows)

	req := httptest.NewRequest(http.MethodPost, "/api/estimate", strings.NewReader(
		`{"productType":"h1","solarSize":8,"batterySize":20,"evIntegration":true,"avgMonthlyBill":200}`,
	))
	rec := httptest.NewRecorder()

	h.Estimate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Estimate struct {
				SystemCost  float64 `json:"system_cost"`
				NetCost     float64 `json:"net_cost"`
				BackupHours float64 `json:"backup_hours"`
			} `json:"estimate"`
			Currency string `json:"currency"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, 71000.0, resp.Data.Estimate.SystemCost)
	assert.InDelta(t, 71000*0.70, resp.Data.Estimate.NetCost, 1e-6)
	assert.Greater(t, resp.Data.Estimate.BackupHours, 0.0)
	assert.Equal(t, "USD", resp.Data.Currency)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEstimate_ValidationRejectsOutOfRange(t *testing.T) {
	h, _ := setupEstimateHandler(t)

	// solar size below the product minimum never reaches the database
	req := httptest.NewRequest(http.MethodPost, "/api/estimate", strings.NewReader(
		`{"productType":"h1","solarSize":2,"batterySize":20}`,
	))
	rec := httptest.NewRecorder()

	h.Estimate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Validation Error")
}

func TestCurrencies(t *testing.T) {
	h, _ := setupEstimateHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/currencies", nil)
	rec := httptest.NewRecorder()

	h.Currencies(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"USD"`)
	assert.Contains(t, rec.Body.String(), `"base":"USD"`)
}
