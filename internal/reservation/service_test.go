package reservation

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	return gdb, mock
}

func TestCreate_UnknownProductRollsBack(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := &Service{DB: gdb}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "product_types"`).
		WillReturnRows(sqlmock.NewRows([]string{"code", "name", "base_price", "solar_price_per_kw", "battery_price_per_kwh"}))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), Input{
		FirstName: "J", LastName: "Doe", Email: "j@x.com",
		ProductType: "x9", SolarSizeKW: 8, BatterySizeKW: 20,
	})

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_InsertFailureRollsBackContactWrite(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := &Service{DB: gdb}

	boom := errors.New("insert failed")
	contactID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "product_types"`).
		WillReturnRows(sqlmock.NewRows([]string{"code", "name", "base_price", "solar_price_per_kw", "battery_price_per_kwh"}).
			AddRow("h1", "H1 Home Essentials", 35000.0, 2500.0, 800.0))
	// the contact is found and rewritten before the reservation insert,
	// so the insert failure must undo that write too
	mock.ExpectQuery(`SELECT \* FROM "contacts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).
			AddRow(contactID.String(), "j@x.com"))
	mock.ExpectExec(`UPDATE "contacts"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "system_reservations"`).
		WillReturnError(boom)
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), Input{
		FirstName: "J", LastName: "Doe", Email: "j@x.com",
		ProductType: "h1", SolarSizeKW: 8, BatterySizeKW: 20,
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProduct(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := &Service{DB: gdb}

	rows := sqlmock.NewRows([]string{"code", "name", "base_price", "solar_price_per_kw", "battery_price_per_kwh"}).
		AddRow("h1", "H1 Home Essentials", 35000.0, 2500.0, 800.0)
	mock.ExpectQuery(`SELECT \* FROM "product_types"`).
		WillReturnRows(rows)

	p, err := svc.GetProduct(context.Background(), "h1")

	require.NoError(t, err)
	assert.Equal(t, "H1 Home Essentials", p.Name)
	assert.Equal(t, 35000.0, p.BasePrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProduct_NotFound(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := &Service{DB: gdb}

	mock.ExpectQuery(`SELECT \* FROM "product_types"`).
		WillReturnRows(sqlmock.NewRows([]string{"code"}))

	_, err := svc.GetProduct(context.Background(), "zz")

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_NotFound(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := &Service{DB: gdb}

	mock.ExpectQuery(`update system_reservations`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "updated_at"}))

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), "contacted", "called twice")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
