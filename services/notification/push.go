package notification

import (
	"context"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"

	"haven/utils"
)

// pushToUser sends a push notification to the user's registered device.
// Push is strictly best effort on top of email; failures are logged only.
func (s *Service) pushToUser(ctx context.Context, userID, title, body string) {
	if utils.FCMClient == nil {
		return
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil || user.FCMToken == "" {
		return
	}

	msg := &messaging.Message{
		Token: user.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		utils.GetLogger().Warn("Failed to send push notification",
			zap.String("userID", userID),
			zap.Error(err))
	}
}
