package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resort-backend/models"
)

const chatCooldown = 60 * time.Second

var ErrEmptyMessage = errors.New("empty_message")

// ChatCooldownError throttles guest messages to one per minute. Admin
// replies are never throttled.
type ChatCooldownError struct {
	SecondsRemaining int
}

func (e *ChatCooldownError) Error() string {
	return fmt.Sprintf("please wait %d second(s) before sending another message", e.SecondsRemaining)
}

// HelpdeskService owns the guest<->admin chat threads (one per uid) and the
// active-chats rollup the admin console lists.
type HelpdeskService struct {
	DB       *gorm.DB
	Notifier *NotificationService
}

func NewHelpdeskService(db *gorm.DB, notifier *NotificationService) *HelpdeskService {
	return &HelpdeskService{DB: db, Notifier: notifier}
}

// cooldownSecondsRemaining computes the guest send throttle from the last
// guest message timestamp.
func cooldownSecondsRemaining(lastSent, now time.Time) int {
	remaining := chatCooldown - now.Sub(lastSent)
	if remaining <= 0 {
		return 0
	}
	return int(remaining.Seconds() + 0.5)
}

// Send appends a message to the uid's thread. The viewer capability decides
// the throttle: guests get the 60-second cooldown, admins bypass it and the
// guest is notified of the reply.
func (s *HelpdeskService) Send(uid, userName string, viewer models.Viewer, text string) (models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	if viewer == models.ViewerGuest {
		var last models.ChatMessage
		err := s.DB.Where("user_id = ? AND sender = ?", uid, models.ViewerGuest).
			Order("created_at DESC").First(&last).Error
		if err == nil {
			if remaining := cooldownSecondsRemaining(last.CreatedAt, time.Now()); remaining > 0 {
				return models.ChatMessage{}, &ChatCooldownError{SecondsRemaining: remaining}
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ChatMessage{}, err
		}
	}

	msg := models.ChatMessage{
		ID:     uuid.New().String(),
		UserID: uid,
		Sender: viewer,
		Text:   text,
	}
	rollup := models.ActiveChat{
		UserID:        uid,
		UserName:      userName,
		LastMessage:   text,
		LastTimestamp: time.Now(),
	}

	// Admin replies must not overwrite the guest's name on the rollup.
	rollupCols := []string{"user_name", "last_message", "last_timestamp"}
	if viewer == models.ViewerAdmin {
		rollupCols = []string{"last_message", "last_timestamp"}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(rollupCols),
		}).Create(&rollup).Error
	})
	if err != nil {
		return models.ChatMessage{}, fmt.Errorf("failed to send message: %w", err)
	}

	if viewer == models.ViewerAdmin {
		_, _ = s.Notifier.Create(uid, "Front Desk", text, models.NotifChatMessage)
	}
	return msg, nil
}

// Thread returns a uid's messages oldest first.
func (s *HelpdeskService) Thread(uid string) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	err := s.DB.Where("user_id = ?", uid).Order("created_at ASC").Find(&out).Error
	return out, err
}

// ActiveChats lists rollups newest activity first for the admin console.
func (s *HelpdeskService) ActiveChats() ([]models.ActiveChat, error) {
	var out []models.ActiveChat
	err := s.DB.Order("last_timestamp DESC").Find(&out).Error
	return out, err
}
