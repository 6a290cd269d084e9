package services

import (
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resort-backend/models"
)

func TestCreateNotificationStartsUnread(t *testing.T) {
	db, mock, cleanup := setupGormTest(t)
	defer cleanup()
	svc := NewNotificationService(db, NewHub())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `notifications`").
		WithArgs(sqlmock.AnyArg(), "u1", "Stay Confirmed", "Room 204 is ready.", models.NotifBookingAccepted, false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	n, err := svc.Create("u1", "Stay Confirmed", "Room 204 is ready.", models.NotifBookingAccepted)
	require.NoError(t, err)
	assert.False(t, n.IsRead)
	assert.NotEmpty(t, n.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAllReadIsASingleUpdate(t *testing.T) {
	db, mock, cleanup := setupGormTest(t)
	defer cleanup()
	svc := NewNotificationService(db, NewHub())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `notifications` SET").
		WithArgs(true, "u1", false).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, svc.MarkAllRead("u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNotificationFeedsLiveStream(t *testing.T) {
	db, mock, cleanup := setupGormTest(t)
	defer cleanup()
	hub := NewHub()
	svc := NewNotificationService(db, hub)

	ch, cancel := hub.Subscribe(notificationTopic("u1"))
	defer cancel()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `notifications`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// snapshot reload after the insert
	mock.ExpectQuery("SELECT (.+) FROM `notifications`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "message", "type", "is_read"}).
			AddRow("n1", "u1", "Front Desk", "yes, until 2pm", models.NotifChatMessage, false))

	_, err := svc.Create("u1", "Front Desk", "yes, until 2pm", models.NotifChatMessage)
	require.NoError(t, err)

	payload := recvSnapshot(t, ch)
	var list []models.Notification
	require.NoError(t, json.Unmarshal(payload, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Front Desk", list[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}
