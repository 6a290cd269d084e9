package services

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"resort-backend/models"
)

// NotificationService owns per-user notification rows and their live stream.
type NotificationService struct {
	DB  *gorm.DB
	Hub *Hub
}

func NewNotificationService(db *gorm.DB, hub *Hub) *NotificationService {
	return &NotificationService{DB: db, Hub: hub}
}

func notificationTopic(userID string) string {
	return fmt.Sprintf("notifications/%s", userID)
}

// Create persists a notification and refreshes the recipient's snapshot.
func (s *NotificationService) Create(userID, title, message, typ string) (models.Notification, error) {
	n := models.Notification{
		ID:      uuid.New().String(),
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    typ,
	}
	if err := s.DB.Create(&n).Error; err != nil {
		return models.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}
	s.publishSnapshot(userID)
	return n, nil
}

// List returns the user's notifications newest first.
func (s *NotificationService) List(userID string) ([]models.Notification, error) {
	var out []models.Notification
	err := s.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error
	return out, err
}

// MarkAllRead bulk-sets is_read for the user in a single UPDATE. Triggered
// whenever the notification panel opens; there is no per-item read action.
func (s *NotificationService) MarkAllRead(userID string) error {
	err := s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	if err != nil {
		return err
	}
	s.publishSnapshot(userID)
	return nil
}

// publishSnapshot pushes the full current list to live subscribers. Stream
// consumers always replace, so failures here only delay the next repaint.
func (s *NotificationService) publishSnapshot(userID string) {
	topic := notificationTopic(userID)
	if !s.Hub.HasSubscribers(topic) {
		return
	}
	list, err := s.List(userID)
	if err != nil {
		logrus.WithError(err).Warn("notification snapshot load failed")
		return
	}
	payload, err := json.Marshal(list)
	if err != nil {
		logrus.WithError(err).Warn("notification snapshot marshal failed")
		return
	}
	s.Hub.Publish(topic, payload)
}
