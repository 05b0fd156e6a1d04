package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadready/dsm-admin-gateway/internal/dto"
	"github.com/roadready/dsm-admin-gateway/internal/models"
	appErrors "github.com/roadready/dsm-admin-gateway/pkg/errors"
)

type fakePlatform struct {
	course       *models.Course
	courseErr    error
	schedule     models.EnrollmentSchedule
	scheduleErr  error
	slots        []models.AvailableSlot
	slotsErr     error
	submitErr    error
	submitted    [][]string
	submittedFor []string
	enrollments  []models.EnrollmentSummary
	pagination   *models.Pagination
	lastToken    string
}

func (f *fakePlatform) GetCourse(_ context.Context, token, _ string) (*models.Course, error) {
	f.lastToken = token
	return f.course, f.courseErr
}

func (f *fakePlatform) GetEnrollmentSchedules(context.Context, string, string) (models.EnrollmentSchedule, error) {
	return f.schedule, f.scheduleErr
}

func (f *fakePlatform) ListAvailableSlots(context.Context, string, string, models.CourseModality) ([]models.AvailableSlot, error) {
	return f.slots, f.slotsErr
}

func (f *fakePlatform) SubmitReschedule(_ context.Context, _, enrollmentID string, scheduleIDs []string) error {
	f.submitted = append(f.submitted, scheduleIDs)
	f.submittedFor = append(f.submittedFor, enrollmentID)
	return f.submitErr
}

func (f *fakePlatform) ListEnrollments(context.Context, string, models.EnrollmentFilter) ([]models.EnrollmentSummary, *models.Pagination, error) {
	return f.enrollments, f.pagination, nil
}

type fakeMetrics struct {
	started  int
	outcomes []string
}

func (f *fakeMetrics) SessionStarted() { f.started++ }

func (f *fakeMetrics) SessionFinished(outcome string) { f.outcomes = append(f.outcomes, outcome) }

var testOperator = &models.OperatorClaims{UserID: "op-1", Role: models.RoleAdmin, BranchID: "branch-1"}

func fixedClock() time.Time {
	return time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
}

func newTestPlatform() *fakePlatform {
	return &fakePlatform{
		course: &models.Course{ID: "course-1", Name: "Category B", Modality: models.ModalityPractical},
		schedule: models.EnrollmentSchedule{
			{ScheduleID: "orig-0", StartDate: sep1},
			{ScheduleID: "orig-1", StartDate: sep2},
		},
		slots: []models.AvailableSlot{
			slotOn("s1", sep1, "08:00", "12:00", 2),
			slotOn("s2", sep2, "08:00", "12:00", 2),
			slotOn("s3", sep3, "08:00", "12:00", 2),
		},
	}
}

func newTestService(platform *fakePlatform, metrics *fakeMetrics) *RescheduleService {
	var recorder sessionMetrics
	if metrics != nil {
		recorder = metrics
	}
	svc := NewRescheduleService(platform, NewMemorySessionStore(), recorder, nil, nil, time.Minute)
	svc.now = fixedClock
	return svc
}

func startRequest() dto.StartRescheduleRequest {
	return dto.StartRescheduleRequest{CourseID: "course-1", Days: []int{0, 1}}
}

func TestStartPresentsFirstDay(t *testing.T) {
	platform := newTestPlatform()
	metrics := &fakeMetrics{}
	svc := newTestService(platform, metrics)

	view, err := svc.Start(context.Background(), "token-1", testOperator, "enr-1", startRequest())

	require.NoError(t, err)
	assert.Equal(t, string(models.WizardStateAwaitingPick), view.State)
	assert.Equal(t, 1, view.Step)
	assert.Equal(t, 2, view.TotalSteps)
	require.NotNil(t, view.Day)
	assert.NotEmpty(t, view.Candidates)
	assert.Equal(t, "token-1", platform.lastToken)
	assert.Equal(t, 1, metrics.started)
}

func TestStartCandidatesCarryCapacityUnit(t *testing.T) {
	platform := newTestPlatform()
	svc := newTestService(platform, nil)

	view, err := svc.Start(context.Background(), "token-1", testOperator, "enr-1", startRequest())

	require.NoError(t, err)
	require.NotEmpty(t, view.Candidates)
	require.NotEmpty(t, view.Candidates[0].Slots)
	assert.Equal(t, "vehicles", view.Candidates[0].Slots[0].CapacityUnit)
}

func TestStartNoSchedules(t *testing.T) {
	platform := newTestPlatform()
	platform.schedule = nil
	svc := newTestService(platform, nil)

	_, err := svc.Start(context.Background(), "token-1", testOperator, "enr-1", startRequest())

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoSchedules.Code, appErrors.FromError(err).Code)
}

func TestStartRejectsBadDays(t *testing.T) {
	platform := newTestPlatform()
	svc := newTestService(platform, nil)

	_, err := svc.Start(context.Background(), "token-1", testOperator, "enr-1",
		dto.StartRescheduleRequest{CourseID: "course-1", Days: []int{0, 7}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Start(context.Background(), "token-1", testOperator, "enr-1",
		dto.StartRescheduleRequest{CourseID: "course-1", Days: []int{0, 0}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestStartEmptyFirstDayDoesNotPersist(t *testing.T) {
	platform := newTestPlatform()
	platform.slots = nil
	metrics := &fakeMetrics{}
	svc := newTestService(platform, metrics)

	_, err := svc.Start(context.Background(), "token-1", testOperator, "enr-1", startRequest())

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoCandidates.Code, appErrors.FromError(err).Code)
	assert.Equal(t, []string{OutcomeNoCandidates}, metrics.outcomes)
}

func TestStartPrunesPastSlots(t *testing.T) {
	platform := newTestPlatform()
	platform.slots = append(platform.slots,
		slotOn("stale", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), "08:00", "12:00", 2))
	svc := newTestService(platform, nil)

	view, err := svc.Start(context.Background(), "token-1", testOperator, "enr-1", startRequest())

	require.NoError(t, err)
	for _, group := range view.Candidates {
		for _, slot := range group.Slots {
			assert.NotEqual(t, "stale", slot.ScheduleID)
		}
	}
}

func TestFullRunConfirmSubmitsMergedSchedule(t *testing.T) {
	platform := newTestPlatform()
	metrics := &fakeMetrics{}
	svc := newTestService(platform, metrics)

	view, err := svc.Start(context.Background(), "token-1", testOperator, "enr-1", startRequest())
	require.NoError(t, err)

	view, err = svc.Pick(context.Background(), testOperator, view.SessionID, dto.PickRequest{ScheduleID: "s1"})
	require.NoError(t, err)
	view, err = svc.Pick(context.Background(), testOperator, view.SessionID, dto.PickRequest{ScheduleID: "s2"})
	require.NoError(t, err)
	assert.Equal(t, string(models.WizardStateCompleted), view.State)
	require.NotNil(t, view.Summary)
	assert.Equal(t, []string{"s1", "s2"}, view.Summary.ScheduleIDs)

	result, err := svc.Confirm(context.Background(), "token-1", testOperator, view.SessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, result.ScheduleIDs)
	require.Len(t, platform.submitted, 1)
	assert.Equal(t, []string{"s1", "s2"}, platform.submitted[0])
	assert.Equal(t, "enr-1", platform.submittedFor[0])
	assert.Contains(t, metrics.outcomes, OutcomeConfirmed)

	// The session is consumed.
	_, err = svc.Get(context.Background(), testOperator, view.SessionID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSessionNotFound.Code, appErrors.FromError(err).Code)
}

func TestConfirmPartialRunRejected(t *testing.T) {
	platform := newTestPlatform()
	svc := newTestService(platform, nil)

	view, err := svc.Start(context.Background(), "token-1", testOperator, "enr-1", startRequest())
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), "token-1", testOperator, view.SessionID)

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSessionState.Code, appErrors.FromError(err).Code)
	assert.Empty(t, platform.submitted)
}

func TestConfirmSubmissionFailureDiscardsPlan(t *testing.T) {
	platform := newTestPlatform()
	platform.submitErr = appErrors.ErrSubmissionFailed
	metrics := &fakeMetrics{}
	svc := newTestService(platform, metrics)

	view, err := svc.Start(context.Background(), "token-1", testOperator, "enr-1", startRequest())
	require.NoError(t, err)
	view, err = svc.Pick(context.Background(), testOperator, view.SessionID, dto.PickRequest{ScheduleID: "s1"})
	require.NoError(t, err)
	view, err = svc.Pick(context.Background(), testOperator, view.SessionID, dto.PickRequest{ScheduleID: "s2"})
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), "token-1", testOperator, view.SessionID)

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSubmissionFailed.Code, appErrors.FromError(err).Code)
	assert.Contains(t, metrics.outcomes, OutcomeFailed)

	// The failed plan is gone; the operator starts over.
	_, err = svc.Get(context.Background(), testOperator, view.SessionID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSessionNotFound.Code, appErrors.FromError(err).Code)
}

func TestSessionScopedToOperator(t *testing.T) {
	platform := newTestPlatform()
	svc := newTestService(platform, nil)

	view, err := svc.Start(context.Background(), "token-1", testOperator, "enr-1", startRequest())
	require.NoError(t, err)

	other := &models.OperatorClaims{UserID: "op-2", Role: models.RoleAdmin}
	_, err = svc.Get(context.Background(), other, view.SessionID)

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestCancelDiscardsSession(t *testing.T) {
	platform := newTestPlatform()
	metrics := &fakeMetrics{}
	svc := newTestService(platform, metrics)

	view, err := svc.Start(context.Background(), "token-1", testOperator, "enr-1", startRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), testOperator, view.SessionID))

	assert.Contains(t, metrics.outcomes, OutcomeCancelled)
	_, err = svc.Get(context.Background(), testOperator, view.SessionID)
	require.Error(t, err)
	assert.Empty(t, platform.submitted)
}

func TestBackThroughServiceCancelsOnFirstDay(t *testing.T) {
	platform := newTestPlatform()
	metrics := &fakeMetrics{}
	svc := newTestService(platform, metrics)

	view, err := svc.Start(context.Background(), "token-1", testOperator, "enr-1", startRequest())
	require.NoError(t, err)

	view, err = svc.Back(context.Background(), testOperator, view.SessionID)

	require.NoError(t, err)
	assert.Equal(t, string(models.WizardStateCancelled), view.State)
	assert.Contains(t, metrics.outcomes, OutcomeCancelled)
}

func TestSummaryMapsDaysToPicks(t *testing.T) {
	platform := newTestPlatform()
	svc := newTestService(platform, nil)

	view, err := svc.Start(context.Background(), "token-1", testOperator, "enr-1",
		dto.StartRescheduleRequest{CourseID: "course-1", Days: []int{1}})
	require.NoError(t, err)
	view, err = svc.Pick(context.Background(), testOperator, view.SessionID, dto.PickRequest{ScheduleID: "s3"})
	require.NoError(t, err)

	summary, err := svc.Summary(context.Background(), testOperator, view.SessionID)

	require.NoError(t, err)
	assert.Equal(t, "Category B", summary.CourseName)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 1, summary.Items[0].DayIndex)
	assert.Equal(t, "s3", summary.Items[0].ScheduleID)
	// Day 0 keeps its original slot.
	assert.Equal(t, []string{"orig-0", "s3"}, summary.ScheduleIDs)
}
