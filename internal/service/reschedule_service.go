package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roadready/dsm-admin-gateway/internal/dto"
	"github.com/roadready/dsm-admin-gateway/internal/models"
	appErrors "github.com/roadready/dsm-admin-gateway/pkg/errors"
)

const displayDateLayout = "2006-01-02"

// Wizard run outcomes recorded against metrics.
const (
	OutcomeConfirmed    = "confirmed"
	OutcomeCancelled    = "cancelled"
	OutcomeNoCandidates = "no_candidates"
	OutcomeFailed       = "failed"
)

// platformClient is the subset of the platform API the wizard consumes.
type platformClient interface {
	GetCourse(ctx context.Context, token, courseID string) (*models.Course, error)
	GetEnrollmentSchedules(ctx context.Context, token, enrollmentID string) (models.EnrollmentSchedule, error)
	ListAvailableSlots(ctx context.Context, token, courseID string, modality models.CourseModality) ([]models.AvailableSlot, error)
	SubmitReschedule(ctx context.Context, token, enrollmentID string, scheduleIDs []string) error
	ListEnrollments(ctx context.Context, token string, filter models.EnrollmentFilter) ([]models.EnrollmentSummary, *models.Pagination, error)
}

// sessionMetrics records wizard lifecycle events.
type sessionMetrics interface {
	SessionStarted()
	SessionFinished(outcome string)
}

// RescheduleService orchestrates wizard runs: it loads the working set from
// the platform, drives the state machine, and submits the final assignment.
type RescheduleService struct {
	client   platformClient
	store    SessionStore
	metrics  sessionMetrics
	validate *validator.Validate
	logger   *zap.Logger
	ttl      time.Duration
	now      func() time.Time
}

// NewRescheduleService wires the orchestrator.
func NewRescheduleService(client platformClient, store SessionStore, metrics sessionMetrics, validate *validator.Validate, logger *zap.Logger, ttl time.Duration) *RescheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RescheduleService{
		client:   client,
		store:    store,
		metrics:  metrics,
		validate: validate,
		logger:   logger,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Start opens a wizard run for the enrollment. It fetches the course, the
// current schedule, and the availability snapshot up front; the snapshot
// stays frozen for the whole run. Starting again for the same enrollment
// replaces any previous run.
func (s *RescheduleService) Start(ctx context.Context, token string, operator *models.OperatorClaims, enrollmentID string, req dto.StartRescheduleRequest) (*dto.SessionView, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reschedule request")
	}

	course, err := s.client.GetCourse(ctx, token, req.CourseID)
	if err != nil {
		return nil, err
	}
	schedule, err := s.client.GetEnrollmentSchedules(ctx, token, enrollmentID)
	if err != nil {
		return nil, err
	}
	if len(schedule) == 0 {
		return nil, appErrors.ErrNoSchedules
	}

	pattern, _ := InterpretPattern(course.SchedulePatternConfig, schedule)
	if err := validateDays(req.Days, len(pattern)); err != nil {
		return nil, err
	}

	slots, err := s.client.ListAvailableSlots(ctx, token, course.ID, course.Modality)
	if err != nil {
		return nil, err
	}
	snapshot := PruneSnapshot(slots, s.now())

	session := &models.RescheduleSession{
		ID:           uuid.NewString(),
		EnrollmentID: enrollmentID,
		CourseID:     course.ID,
		CourseName:   course.Name,
		Modality:     course.Modality,
		Pattern:      pattern,
		Original:     schedule,
		Days:         append([]int(nil), req.Days...),
		State:        models.WizardStateIdle,
		Snapshot:     snapshot,
		OperatorID:   operator.UserID,
		BranchID:     operator.BranchID,
		CreatedAt:    s.now(),
	}

	if s.metrics != nil {
		s.metrics.SessionStarted()
	}
	if err := startTraversal(session); err != nil {
		// Nothing qualifies for the first day; the run never persists.
		s.finish(OutcomeNoCandidates)
		return nil, err
	}
	if err := s.store.Save(ctx, session, s.ttl); err != nil {
		s.finish(OutcomeFailed)
		return nil, err
	}
	s.logger.Info("reschedule session started",
		zap.String("session_id", session.ID),
		zap.String("enrollment_id", enrollmentID),
		zap.String("course_id", course.ID),
		zap.Int("days", len(session.Days)))

	return s.view(session), nil
}

// Get reloads the session view for the operator.
func (s *RescheduleService) Get(ctx context.Context, operator *models.OperatorClaims, sessionID string) (*dto.SessionView, error) {
	session, err := s.load(ctx, operator, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// Pick records the operator's slot choice for the current day. When the
// next day has no eligible slots the run cancels and the session is gone.
func (s *RescheduleService) Pick(ctx context.Context, operator *models.OperatorClaims, sessionID string, req dto.PickRequest) (*dto.SessionView, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid pick request")
	}

	session, err := s.load(ctx, operator, sessionID)
	if err != nil {
		return nil, err
	}

	if err := pickSlot(session, req.ScheduleID); err != nil {
		if session.State == models.WizardStateCancelled {
			_ = s.store.Delete(ctx, session.ID)
			s.finish(OutcomeNoCandidates)
		}
		return nil, err
	}

	if err := s.store.Save(ctx, session, s.ttl); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// Back pops the last pick and re-presents the previous traversal day. On
// the first day there is nothing to revise, so the run cancels.
func (s *RescheduleService) Back(ctx context.Context, operator *models.OperatorClaims, sessionID string) (*dto.SessionView, error) {
	session, err := s.load(ctx, operator, sessionID)
	if err != nil {
		return nil, err
	}

	if err := stepBack(session); err != nil {
		if session.State == models.WizardStateCancelled {
			_ = s.store.Delete(ctx, session.ID)
			s.finish(OutcomeNoCandidates)
		}
		return nil, err
	}

	if session.State == models.WizardStateCancelled {
		_ = s.store.Delete(ctx, session.ID)
		s.finish(OutcomeCancelled)
		return s.view(session), nil
	}

	if err := s.store.Save(ctx, session, s.ttl); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// Cancel discards the run. Safe at any point; the platform never saw it.
func (s *RescheduleService) Cancel(ctx context.Context, operator *models.OperatorClaims, sessionID string) error {
	session, err := s.load(ctx, operator, sessionID)
	if err != nil {
		return err
	}
	cancelRun(session)
	if err := s.store.Delete(ctx, session.ID); err != nil {
		return err
	}
	s.finish(OutcomeCancelled)
	s.logger.Info("reschedule session cancelled",
		zap.String("session_id", session.ID),
		zap.String("enrollment_id", session.EnrollmentID))
	return nil
}

// Summary builds the confirmation summary for a completed run.
func (s *RescheduleService) Summary(ctx context.Context, operator *models.OperatorClaims, sessionID string) (*dto.SummaryView, error) {
	session, err := s.load(ctx, operator, sessionID)
	if err != nil {
		return nil, err
	}
	return s.summary(session)
}

// Confirm submits the completed plan to the platform. Whatever the
// platform answers, the session is consumed: success commits the new
// schedule, failure discards the plan and the operator starts over.
func (s *RescheduleService) Confirm(ctx context.Context, token string, operator *models.OperatorClaims, sessionID string) (*dto.ConfirmResponse, error) {
	session, err := s.load(ctx, operator, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != models.WizardStateCompleted {
		return nil, appErrors.Clone(appErrors.ErrSessionState, "session has picks outstanding")
	}
	if err := replayPicks(session); err != nil {
		_ = s.store.Delete(ctx, session.ID)
		s.finish(OutcomeFailed)
		return nil, err
	}

	scheduleIDs, err := BuildAssignment(session.Original, session.Days, session.Picks)
	if err != nil {
		return nil, err
	}

	if err := s.client.SubmitReschedule(ctx, token, session.EnrollmentID, scheduleIDs); err != nil {
		_ = s.store.Delete(ctx, session.ID)
		s.finish(OutcomeFailed)
		s.logger.Warn("reschedule submission failed",
			zap.String("session_id", session.ID),
			zap.String("enrollment_id", session.EnrollmentID),
			zap.Error(err))
		return nil, err
	}

	_ = s.store.Delete(ctx, session.ID)
	s.finish(OutcomeConfirmed)
	s.logger.Info("reschedule confirmed",
		zap.String("session_id", session.ID),
		zap.String("enrollment_id", session.EnrollmentID),
		zap.Int("schedules", len(scheduleIDs)))

	return &dto.ConfirmResponse{EnrollmentID: session.EnrollmentID, ScheduleIDs: scheduleIDs}, nil
}

// ListEnrollments passes the host page's listing through to the platform.
func (s *RescheduleService) ListEnrollments(ctx context.Context, token string, query dto.EnrollmentQuery) ([]models.EnrollmentSummary, *models.Pagination, error) {
	filter := models.EnrollmentFilter{
		Search:   query.Search,
		CourseID: query.CourseID,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	return s.client.ListEnrollments(ctx, token, filter)
}

func (s *RescheduleService) load(ctx context.Context, operator *models.OperatorClaims, sessionID string) (*models.RescheduleSession, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if operator == nil || session.OperatorID != operator.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "session belongs to another operator")
	}
	return session, nil
}

// replayPicks re-checks every recorded pick against the filter rules before
// submission, guarding against a session mutated by an older gateway build
// or a corrupted store entry.
func replayPicks(session *models.RescheduleSession) error {
	picks := make([]models.AvailableSlot, 0, len(session.Picks))
	for i, day := range session.Days {
		if i >= len(session.Picks) {
			return appErrors.Clone(appErrors.ErrSessionState, "session has picks outstanding")
		}
		if day < 0 || day >= len(session.Pattern) {
			return appErrors.Clone(appErrors.ErrSessionState, "session references an unknown pattern day")
		}
		eligible := FilterCandidates(session.Snapshot, session.Pattern[day], picks)
		valid := false
		for _, slot := range eligible {
			if slot.ScheduleID == session.Picks[i].ScheduleID {
				valid = true
				break
			}
		}
		if !valid {
			return appErrors.Clone(appErrors.ErrSessionState,
				fmt.Sprintf("recorded pick for day %d is no longer valid", day))
		}
		picks = append(picks, session.Picks[i])
	}
	return nil
}

func validateDays(days []int, patternLen int) error {
	seen := make(map[int]struct{}, len(days))
	for _, day := range days {
		if day < 0 || day >= patternLen {
			return appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("day index %d outside the course pattern of %d days", day, patternLen))
		}
		if _, dup := seen[day]; dup {
			return appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("day index %d listed twice", day))
		}
		seen[day] = struct{}{}
	}
	return nil
}

func (s *RescheduleService) finish(outcome string) {
	if s.metrics != nil {
		s.metrics.SessionFinished(outcome)
	}
}

// view renders the session for the UI shell: the day under the cursor with
// its date-grouped candidates while picks are outstanding, the summary once
// the run completes.
func (s *RescheduleService) view(session *models.RescheduleSession) *dto.SessionView {
	view := &dto.SessionView{
		SessionID:    session.ID,
		EnrollmentID: session.EnrollmentID,
		State:        string(session.State),
		Step:         session.Cursor + 1,
		TotalSteps:   len(session.Days),
	}

	switch session.State {
	case models.WizardStateAwaitingPick:
		if requirement, ok := session.CurrentRequirement(); ok {
			view.Day = &dto.DayView{
				DayIndex:      requirement.DayIndex,
				DurationHours: requirement.DurationHours,
				TimeClass:     string(requirement.TimeClass),
			}
		}
		view.Candidates = s.groupCandidates(session, currentCandidates(session))
	case models.WizardStateCompleted:
		view.Step = len(session.Days)
		if summary, err := s.summary(session); err == nil {
			view.Summary = summary
		}
	}
	return view
}

func (s *RescheduleService) groupCandidates(session *models.RescheduleSession, slots []models.AvailableSlot) []dto.CandidateGroup {
	unit := session.Modality.CapacityUnit()
	groups := make([]dto.CandidateGroup, 0)
	for _, slot := range slots {
		date := slot.StartDate.Format(displayDateLayout)
		candidate := dto.CandidateSlot{
			ScheduleID:        slot.ScheduleID,
			Date:              date,
			StartTime:         slot.StartTime,
			EndTime:           slot.EndTime,
			DurationHours:     slot.DurationHours(),
			RemainingCapacity: slot.RemainingCapacity,
			CapacityUnit:      unit,
		}
		if len(groups) > 0 && groups[len(groups)-1].Date == date {
			groups[len(groups)-1].Slots = append(groups[len(groups)-1].Slots, candidate)
			continue
		}
		groups = append(groups, dto.CandidateGroup{Date: date, Slots: []dto.CandidateSlot{candidate}})
	}
	return groups
}

func (s *RescheduleService) summary(session *models.RescheduleSession) (*dto.SummaryView, error) {
	if session.State != models.WizardStateCompleted {
		return nil, appErrors.Clone(appErrors.ErrSessionState, "session has picks outstanding")
	}
	scheduleIDs, err := BuildAssignment(session.Original, session.Days, session.Picks)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SummaryItem, len(session.Days))
	for i, day := range session.Days {
		pick := session.Picks[i]
		items[i] = dto.SummaryItem{
			DayIndex:   day,
			ScheduleID: pick.ScheduleID,
			Date:       pick.StartDate.Format(displayDateLayout),
			StartTime:  pick.StartTime,
			EndTime:    pick.EndTime,
		}
	}
	return &dto.SummaryView{
		EnrollmentID: session.EnrollmentID,
		CourseName:   session.CourseName,
		Items:        items,
		ScheduleIDs:  scheduleIDs,
	}, nil
}
