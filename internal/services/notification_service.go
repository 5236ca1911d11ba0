package services

import (
	"context"

	"firebase.google.com/go/v4/messaging"
	"github.com/zikrhub/backend/internal/models"
	"github.com/zikrhub/backend/pkg/logger"
)

// NotificationSink delivers a push notification to a user. Delivery is fire
// and forget: failures are logged and never fail the calling operation.
type NotificationSink interface {
	Notify(ctx context.Context, user *models.User, title, body string)
}

// FCMNotificationSink implements NotificationSink over Firebase Cloud
// Messaging
type FCMNotificationSink struct {
	client *messaging.Client
	log    *logger.Logger
}

// NewFCMNotificationSink creates a new FCMNotificationSink. A nil client
// turns the sink into a no-op, which keeps local runs without Firebase
// credentials working.
func NewFCMNotificationSink(client *messaging.Client, log *logger.Logger) *FCMNotificationSink {
	return &FCMNotificationSink{client: client, log: log}
}

// Notify sends one push message to the user's registered device token
func (s *FCMNotificationSink) Notify(ctx context.Context, user *models.User, title, body string) {
	if s.client == nil || user.NotificationToken == "" {
		return
	}

	msg := &messaging.Message{
		Token: user.NotificationToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}
	if _, err := s.client.Send(ctx, msg); err != nil {
		s.log.WithUserID(user.ID).WithError(err).Warn("failed to send push notification")
	}
}
