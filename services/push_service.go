package services

import (
	"github.com/sirupsen/logrus"
)

// PushService records outgoing push notifications. Delivery is fire-and-
// forget and log-only until a device push provider is chosen; callers never
// see a delivery error.
type PushService struct{}

func NewPushService() *PushService {
	return &PushService{}
}

func (p *PushService) Send(userID, title, body string) {
	logrus.WithFields(logrus.Fields{
		"userId": userID,
		"title":  title,
	}).Infof("push notification queued: %s", body)
}
