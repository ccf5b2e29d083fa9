package models

import "time"

// Default daily reminder time applied when onboarding enables reminders
const (
	DefaultReminderHour   = 20
	DefaultReminderMinute = 0
)

// ReminderSettings represents a user's daily journaling reminder configuration
type ReminderSettings struct {
	UserID    string    `bson:"user_id" json:"user_id"`
	Enabled   bool      `bson:"enabled" json:"enabled"`
	Hour      int       `bson:"hour" json:"hour"`
	Minute    int       `bson:"minute" json:"minute"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ReminderSettingsResponse represents the response format for reminder endpoints
type ReminderSettingsResponse struct {
	Enabled bool `json:"enabled"`
	Hour    int  `json:"hour"`
	Minute  int  `json:"minute"`
}

// UpdateReminderRequest is the body for reminder settings updates
type UpdateReminderRequest struct {
	Enabled bool `json:"enabled"`
	Hour    int  `json:"hour" binding:"min=0,max=23"`
	Minute  int  `json:"minute" binding:"min=0,max=59"`
}
