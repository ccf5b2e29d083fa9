package models

// OnboardingChoice is the decision taken on the reminder permission dialog
type OnboardingChoice string

const (
	// OnboardingChoiceSkip completes onboarding without requesting the
	// notification permission
	OnboardingChoiceSkip OnboardingChoice = "skip"
	// OnboardingChoiceAllow requests the notification permission and enables
	// the daily reminder when granted
	OnboardingChoiceAllow OnboardingChoice = "allow"
)

// Valid reports whether the choice is one of the two dialog options
func (c OnboardingChoice) Valid() bool {
	return c == OnboardingChoiceSkip || c == OnboardingChoiceAllow
}

// CompleteOnboardingRequest is the body for the onboarding completion endpoint.
// PermissionGranted carries the outcome of the OS notification permission
// dialog as observed by the client; it is ignored for the skip choice.
type CompleteOnboardingRequest struct {
	Choice            OnboardingChoice `json:"choice" binding:"required"`
	PermissionGranted bool             `json:"permission_granted"`
}

// CompleteOnboardingResponse reports the effects of the completion flow
type CompleteOnboardingResponse struct {
	HasCompletedOnboarding bool   `json:"has_completed_onboarding"`
	ReminderEnabled        bool   `json:"reminder_enabled"`
	NextScreen             string `json:"next_screen"`
}
