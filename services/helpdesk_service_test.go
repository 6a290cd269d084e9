package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resort-backend/models"
)

func newHelpdeskServiceTest(t *testing.T) (*HelpdeskService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, cleanup := setupGormTest(t)
	svc := NewHelpdeskService(db, NewNotificationService(db, NewHub()))
	return svc, mock, cleanup
}

func TestCooldownSecondsRemaining(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 60, cooldownSecondsRemaining(now, now))
	assert.Equal(t, 30, cooldownSecondsRemaining(now.Add(-30*time.Second), now))
	assert.Equal(t, 1, cooldownSecondsRemaining(now.Add(-59*time.Second), now))
	assert.Equal(t, 0, cooldownSecondsRemaining(now.Add(-60*time.Second), now))
	assert.Equal(t, 0, cooldownSecondsRemaining(now.Add(-10*time.Minute), now))
	// half-second residue rounds up so the client never retries too early
	assert.Equal(t, 30, cooldownSecondsRemaining(now.Add(-30*time.Second-400*time.Millisecond), now))
}

func TestSendRejectsEmptyMessage(t *testing.T) {
	svc, _, cleanup := newHelpdeskServiceTest(t)
	defer cleanup()

	_, err := svc.Send("u1", "Alice Rahman", models.ViewerGuest, "   \n\t ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestSendGuestThrottledInsideCooldown(t *testing.T) {
	svc, mock, cleanup := newHelpdeskServiceTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM `chat_messages`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "sender", "text", "created_at"}).
			AddRow("m1", "u1", string(models.ViewerGuest), "hello", time.Now().Add(-20*time.Second)))

	_, err := svc.Send("u1", "Alice Rahman", models.ViewerGuest, "are you there?")
	var cooldown *ChatCooldownError
	require.ErrorAs(t, err, &cooldown)
	assert.InDelta(t, 40, cooldown.SecondsRemaining, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendGuestFirstMessage(t *testing.T) {
	svc, mock, cleanup := newHelpdeskServiceTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM `chat_messages`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `chat_messages`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `active_chats`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	msg, err := svc.Send("u1", "Alice Rahman", models.ViewerGuest, "is late checkout possible?")
	require.NoError(t, err)
	assert.Equal(t, models.ViewerGuest, msg.Sender)
	assert.Equal(t, "is late checkout possible?", msg.Text)
	assert.NotEmpty(t, msg.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendGuestAfterCooldownExpires(t *testing.T) {
	svc, mock, cleanup := newHelpdeskServiceTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM `chat_messages`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "sender", "text", "created_at"}).
			AddRow("m1", "u1", string(models.ViewerGuest), "hello", time.Now().Add(-2*time.Minute)))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `chat_messages`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `active_chats`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	_, err := svc.Send("u1", "Alice Rahman", models.ViewerGuest, "following up")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendAdminBypassesCooldownAndNotifies(t *testing.T) {
	svc, mock, cleanup := newHelpdeskServiceTest(t)
	defer cleanup()

	// no throttle query for admins: straight to the write
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `chat_messages`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `active_chats`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `notifications`").
		WithArgs(sqlmock.AnyArg(), "u1", "Front Desk", "yes, until 2pm", models.NotifChatMessage, false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	msg, err := svc.Send("u1", "Front Desk", models.ViewerAdmin, "yes, until 2pm")
	require.NoError(t, err)
	assert.Equal(t, models.ViewerAdmin, msg.Sender)
	assert.NoError(t, mock.ExpectationsWereMet())
}
