package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resort-backend/models"
)

func TestPricedRoomFrom(t *testing.T) {
	room := models.Room{Title: "Deluxe Double", Price: 4200, Capacity: 2}

	full := PricedRoomFrom(room, 0)
	assert.Equal(t, 4200.0, full.Price)
	assert.Equal(t, 4200.0, full.BasePrice)
	assert.Equal(t, 0, full.DiscountPercent)

	discounted := PricedRoomFrom(room, 10)
	assert.Equal(t, 3780.0, discounted.Price)
	assert.Equal(t, 4200.0, discounted.BasePrice)
	assert.Equal(t, 10, discounted.DiscountPercent)
}

func TestListPricedAppliesSessionDiscount(t *testing.T) {
	db, mock, cleanup := setupGormTest(t)
	defer cleanup()
	svc := NewRoomService(db)

	mock.ExpectQuery("SELECT (.+) FROM `rooms`").WillReturnRows(
		sqlmock.NewRows([]string{"id", "title", "price", "capacity"}).
			AddRow(1, "Standard Single", 2500.0, 1).
			AddRow(2, "Deluxe Double", 4200.0, 2))

	out, err := svc.ListPriced(10)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 2250.0, out[0].Price)
	assert.Equal(t, 2500.0, out[0].BasePrice)
	assert.Equal(t, 3780.0, out[1].Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRoomMissingRow(t *testing.T) {
	db, mock, cleanup := setupGormTest(t)
	defer cleanup()
	svc := NewRoomService(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `rooms` SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	assert.ErrorIs(t, svc.Delete(99), ErrRoomNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
