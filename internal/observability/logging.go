package observability

import (
	"github.com/mindpage/app-journal/internal/logging"
)

// Logger returns the global safe logger instance
func Logger() *logging.SafeLogger {
	return logging.Logger
}

// MaskUserID masks a user identifier for logging
func MaskUserID(userID string) string {
	if len(userID) <= 8 {
		return "********"
	}
	return userID[:4] + "****" + userID[len(userID)-4:]
}
