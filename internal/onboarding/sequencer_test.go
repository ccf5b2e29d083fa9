package onboarding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindpage/app-journal/internal/models"
)

// recorder captures the relative order of collaborator calls so the sequence
// invariants can be asserted directly.
type recorder struct {
	calls []string
}

func (r *recorder) record(name string) {
	r.calls = append(r.calls, name)
}

func (r *recorder) count(name string) int {
	n := 0
	for _, c := range r.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (r *recorder) indexOf(name string) int {
	for i, c := range r.calls {
		if c == name {
			return i
		}
	}
	return -1
}

type fakeFlags struct {
	rec *recorder
	err error
}

func (f *fakeFlags) MarkOnboardingCompleted(ctx context.Context, userID string) error {
	f.rec.record("complete_flag")
	return f.err
}

type fakeReminders struct {
	rec      *recorder
	markErr  error
	applyErr error
	applied  []models.ReminderSettings
}

func (f *fakeReminders) MarkReminderAutoPrompted(ctx context.Context, userID string) error {
	f.rec.record("auto_prompted")
	return f.markErr
}

func (f *fakeReminders) ApplyReminderSettings(ctx context.Context, settings models.ReminderSettings) error {
	f.rec.record("apply_settings")
	f.applied = append(f.applied, settings)
	return f.applyErr
}

type fakePermission struct {
	rec     *recorder
	granted bool
	err     error
}

func (f *fakePermission) RequestNotificationPermission(ctx context.Context, userID string) (bool, error) {
	f.rec.record("request_permission")
	return f.granted, f.err
}

type fakeNavigator struct {
	rec     *recorder
	screens []string
}

func (f *fakeNavigator) Navigate(screen string) {
	f.rec.record("navigate")
	f.screens = append(f.screens, screen)
}

type harness struct {
	rec        *recorder
	flags      *fakeFlags
	reminders  *fakeReminders
	permission *fakePermission
	navigator  *fakeNavigator
	sequencer  *Sequencer
}

func newHarness(granted bool) *harness {
	rec := &recorder{}
	h := &harness{
		rec:        rec,
		flags:      &fakeFlags{rec: rec},
		reminders:  &fakeReminders{rec: rec},
		permission: &fakePermission{rec: rec, granted: granted},
		navigator:  &fakeNavigator{rec: rec},
	}
	h.sequencer = NewSequencer(h.flags, h.reminders, h.permission, h.navigator)
	return h
}

func TestCompleteSkip(t *testing.T) {
	h := newHarness(true)

	result, err := h.sequencer.Complete(context.Background(), "user-1", models.OnboardingChoiceSkip)
	require.NoError(t, err)

	assert.Equal(t, []string{"auto_prompted", "complete_flag", "navigate"}, h.rec.calls)
	assert.Equal(t, []string{ScreenAfterOnboarding}, h.navigator.screens)
	assert.False(t, result.ReminderEnabled)
	assert.Equal(t, ScreenAfterOnboarding, result.NextScreen)
}

func TestCompleteAllowGranted(t *testing.T) {
	h := newHarness(true)

	result, err := h.sequencer.Complete(context.Background(), "user-1", models.OnboardingChoiceAllow)
	require.NoError(t, err)

	// auto-prompted flag must be persisted before the permission request
	assert.Less(t, h.rec.indexOf("auto_prompted"), h.rec.indexOf("request_permission"))
	assert.Equal(t,
		[]string{"auto_prompted", "request_permission", "apply_settings", "complete_flag", "navigate"},
		h.rec.calls)

	require.Len(t, h.reminders.applied, 1)
	applied := h.reminders.applied[0]
	assert.Equal(t, "user-1", applied.UserID)
	assert.True(t, applied.Enabled)
	assert.Equal(t, models.DefaultReminderHour, applied.Hour)
	assert.Equal(t, models.DefaultReminderMinute, applied.Minute)

	assert.True(t, result.ReminderEnabled)
}

func TestCompleteAllowDenied(t *testing.T) {
	h := newHarness(false)

	result, err := h.sequencer.Complete(context.Background(), "user-1", models.OnboardingChoiceAllow)
	require.NoError(t, err)

	require.Len(t, h.reminders.applied, 1)
	assert.False(t, h.reminders.applied[0].Enabled)
	assert.False(t, result.ReminderEnabled)
	assert.Equal(t, 1, h.rec.count("navigate"))
}

func TestCompleteAllowPermissionErrorTreatedAsDenied(t *testing.T) {
	h := newHarness(true)
	h.permission.err = errors.New("permission channel unavailable")

	result, err := h.sequencer.Complete(context.Background(), "user-1", models.OnboardingChoiceAllow)
	require.NoError(t, err)

	require.Len(t, h.reminders.applied, 1)
	assert.False(t, h.reminders.applied[0].Enabled)
	assert.False(t, result.ReminderEnabled)
}

func TestCompleteAllowSettingsFailureDoesNotAbort(t *testing.T) {
	h := newHarness(true)
	h.reminders.applyErr = errors.New("write timeout")

	result, err := h.sequencer.Complete(context.Background(), "user-1", models.OnboardingChoiceAllow)
	require.NoError(t, err)

	// completion flag still persisted and navigation still happened once
	assert.Equal(t, 1, h.rec.count("complete_flag"))
	assert.Equal(t, 1, h.rec.count("navigate"))
	assert.True(t, result.ReminderEnabled)
}

func TestCompleteInvalidChoice(t *testing.T) {
	h := newHarness(true)

	_, err := h.sequencer.Complete(context.Background(), "user-1", models.OnboardingChoice("maybe"))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidChoice)
	assert.Empty(t, h.rec.calls)
}

func TestCompleteAutoPromptFailureAborts(t *testing.T) {
	h := newHarness(true)
	h.reminders.markErr = errors.New("connection reset")

	_, err := h.sequencer.Complete(context.Background(), "user-1", models.OnboardingChoiceAllow)
	require.Error(t, err)

	assert.Equal(t, 0, h.rec.count("request_permission"))
	assert.Equal(t, 0, h.rec.count("complete_flag"))
	assert.Equal(t, 0, h.rec.count("navigate"))
}

func TestCompleteFlagFailureBlocksNavigation(t *testing.T) {
	h := newHarness(true)
	h.flags.err = errors.New("write concern timeout")

	_, err := h.sequencer.Complete(context.Background(), "user-1", models.OnboardingChoiceSkip)
	require.Error(t, err)
	assert.Equal(t, 0, h.rec.count("navigate"))
}
