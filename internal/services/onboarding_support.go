package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/mindpage/app-journal/internal/logging"
)

// ClientPermissionService reports the notification permission outcome the
// mobile client observed from the OS dialog. The dialog itself lives on the
// device; the backend only records what the client saw.
type ClientPermissionService struct {
	Granted bool
}

// RequestNotificationPermission returns the client-reported grant. Denial is
// a valid outcome, never an error.
func (s ClientPermissionService) RequestNotificationPermission(ctx context.Context, userID string) (bool, error) {
	return s.Granted, nil
}

// ScreenNavigator records the forward navigation issued at the end of the
// completion flow. The actual screen transition happens on the device using
// the screen name carried in the response.
type ScreenNavigator struct {
	logger *logging.SafeLogger
}

// NewScreenNavigator creates a navigator logging each transition
func NewScreenNavigator(logger *logging.SafeLogger) *ScreenNavigator {
	return &ScreenNavigator{logger: logger}
}

// Navigate logs the screen the client is being sent to
func (n *ScreenNavigator) Navigate(screen string) {
	n.logger.Debug("advancing client", zap.String("screen", screen))
}
