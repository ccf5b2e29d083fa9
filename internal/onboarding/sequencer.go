package onboarding

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mindpage/app-journal/internal/models"
	"github.com/mindpage/app-journal/internal/observability"
)

// ScreenAfterOnboarding is the screen the client lands on once the completion
// sequence finishes.
const ScreenAfterOnboarding = "journal_home"

// FlagStore persists the per-user completion flag.
type FlagStore interface {
	MarkOnboardingCompleted(ctx context.Context, userID string) error
}

// ReminderService persists reminder state for a user.
type ReminderService interface {
	MarkReminderAutoPrompted(ctx context.Context, userID string) error
	ApplyReminderSettings(ctx context.Context, settings models.ReminderSettings) error
}

// PermissionService reports the outcome of the notification permission
// request. Denial is a valid result, not an error.
type PermissionService interface {
	RequestNotificationPermission(ctx context.Context, userID string) (bool, error)
}

// Navigator advances the client to the next screen.
type Navigator interface {
	Navigate(screen string)
}

// Result reports the effects of a completed onboarding sequence.
type Result struct {
	ReminderEnabled bool
	NextScreen      string
}

// Sequencer runs the onboarding completion flow. Steps are strictly
// sequential and each step's completion gates the next, so a client killed
// mid-sequence always observes a consistent persisted state.
type Sequencer struct {
	flags      FlagStore
	reminders  ReminderService
	permission PermissionService
	navigator  Navigator
}

// NewSequencer wires the completion flow's collaborators.
func NewSequencer(flags FlagStore, reminders ReminderService, permission PermissionService, navigator Navigator) *Sequencer {
	return &Sequencer{
		flags:      flags,
		reminders:  reminders,
		permission: permission,
		navigator:  navigator,
	}
}

// Complete runs the two-branch completion state machine.
//
// Skip: mark auto-prompted, persist the completion flag, navigate.
//
// Allow: mark auto-prompted, request the notification permission, apply
// reminder settings with the default time, persist the completion flag,
// navigate. The auto-prompted flag is written before the permission request
// so a restart between the two steps never re-triggers the prompt. A reminder
// settings write failure is logged and swallowed; navigation is never blocked
// by that write.
func (s *Sequencer) Complete(ctx context.Context, userID string, choice models.OnboardingChoice) (*Result, error) {
	if !choice.Valid() {
		return nil, fmt.Errorf("choice %q: %w", choice, models.ErrInvalidChoice)
	}

	logger := observability.Logger().With(
		zap.String("user_id", observability.MaskUserID(userID)),
		zap.String("choice", string(choice)),
	)

	if err := s.reminders.MarkReminderAutoPrompted(ctx, userID); err != nil {
		return nil, fmt.Errorf("marking reminder auto-prompted: %w", err)
	}

	reminderEnabled := false
	if choice == models.OnboardingChoiceAllow {
		granted, err := s.permission.RequestNotificationPermission(ctx, userID)
		if err != nil {
			logger.Warn("notification permission request failed, treating as denied", zap.Error(err))
			granted = false
		}
		reminderEnabled = granted

		settings := models.ReminderSettings{
			UserID:  userID,
			Enabled: granted,
			Hour:    models.DefaultReminderHour,
			Minute:  models.DefaultReminderMinute,
		}
		if err := s.reminders.ApplyReminderSettings(ctx, settings); err != nil {
			logger.Error("failed to persist reminder settings, continuing", zap.Error(err))
		}
	}

	if err := s.flags.MarkOnboardingCompleted(ctx, userID); err != nil {
		return nil, fmt.Errorf("persisting completion flag: %w", err)
	}

	s.navigator.Navigate(ScreenAfterOnboarding)

	return &Result{
		ReminderEnabled: reminderEnabled,
		NextScreen:      ScreenAfterOnboarding,
	}, nil
}
