package models

import "time"

// UserConfig represents per-user onboarding state and preferences
type UserConfig struct {
	UserID                 string    `bson:"user_id" json:"user_id"`
	HasCompletedOnboarding bool      `bson:"has_completed_onboarding" json:"has_completed_onboarding"`
	ReminderAutoPrompted   bool      `bson:"reminder_auto_prompted" json:"reminder_auto_prompted"`
	Version                int32     `bson:"version,omitempty" json:"version,omitempty"`
	UpdatedAt              time.Time `bson:"updated_at" json:"updated_at"`
}

// OnboardingStateResponse represents the response format for onboarding state endpoints
type OnboardingStateResponse struct {
	HasCompletedOnboarding bool `json:"has_completed_onboarding"`
	ReminderAutoPrompted   bool `json:"reminder_auto_prompted"`
}
