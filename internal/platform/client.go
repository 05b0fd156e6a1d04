package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/roadready/dsm-admin-gateway/internal/models"
	"github.com/roadready/dsm-admin-gateway/pkg/config"
	appErrors "github.com/roadready/dsm-admin-gateway/pkg/errors"
)

const dateLayout = "2006-01-02"

// CallObserver receives timing for platform round trips.
type CallObserver interface {
	ObservePlatformCall(operation string, status int, duration time.Duration)
}

// Client talks to the school-management platform, the system of record for
// courses, enrollments, and slot availability. The operator's bearer token
// is forwarded explicitly on every call; the gateway holds no credentials
// of its own.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *zap.Logger
	observer CallObserver
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithObserver attaches a call-duration observer.
func WithObserver(observer CallObserver) ClientOption {
	return func(c *Client) {
		c.observer = observer
	}
}

// NewClient builds a platform client from config.
func NewClient(cfg config.PlatformConfig, logger *zap.Logger, opts ...ClientOption) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

type envelope struct {
	Data       json.RawMessage    `json:"data"`
	Error      *wireError         `json:"error"`
	Pagination *models.Pagination `json:"pagination"`
}

type wireError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type courseWire struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	IsTheoretical  bool            `json:"is_theoretical"`
	ScheduleConfig json.RawMessage `json:"schedule_config"`
}

type scheduleRefWire struct {
	ScheduleID string `json:"schedule_id"`
	StartDate  string `json:"start_date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

type slotWire struct {
	ScheduleID        string `json:"schedule_id"`
	StartDate         string `json:"start_date"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	RemainingCapacity int    `json:"remaining_capacity"`
}

// GetCourse loads the course identity, modality, and stored pattern config.
func (c *Client) GetCourse(ctx context.Context, token, courseID string) (*models.Course, error) {
	var wire courseWire
	if _, err := c.get(ctx, "get_course", token, "/courses/"+url.PathEscape(courseID), nil, &wire); err != nil {
		return nil, err
	}
	return &models.Course{
		ID:                    wire.ID,
		Name:                  wire.Name,
		Modality:              models.ModalityFromTheoretical(wire.IsTheoretical),
		SchedulePatternConfig: wire.ScheduleConfig,
	}, nil
}

// GetEnrollmentSchedules loads the enrollment's currently bound sessions in
// day order.
func (c *Client) GetEnrollmentSchedules(ctx context.Context, token, enrollmentID string) (models.EnrollmentSchedule, error) {
	var wires []scheduleRefWire
	path := "/enrollments/" + url.PathEscape(enrollmentID) + "/schedules"
	if _, err := c.get(ctx, "get_enrollment_schedules", token, path, nil, &wires); err != nil {
		return nil, err
	}
	schedule := make(models.EnrollmentSchedule, 0, len(wires))
	for _, wire := range wires {
		date, err := time.Parse(dateLayout, wire.StartDate)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrFetchFailed.Code, appErrors.ErrFetchFailed.Status, "platform returned a malformed schedule date")
		}
		schedule = append(schedule, models.ScheduleRef{
			ScheduleID: wire.ScheduleID,
			StartDate:  date,
			StartTime:  wire.StartTime,
			EndTime:    wire.EndTime,
		})
	}
	return schedule, nil
}

// ListAvailableSlots fetches the availability snapshot for the course. The
// platform filters by modality server-side; the query restates it for
// clarity in access logs.
func (c *Client) ListAvailableSlots(ctx context.Context, token, courseID string, modality models.CourseModality) ([]models.AvailableSlot, error) {
	var wires []slotWire
	path := "/courses/" + url.PathEscape(courseID) + "/available-slots"
	query := url.Values{"modality": []string{string(modality)}}
	if _, err := c.get(ctx, "list_available_slots", token, path, query, &wires); err != nil {
		return nil, err
	}
	slots := make([]models.AvailableSlot, 0, len(wires))
	for _, wire := range wires {
		date, err := time.Parse(dateLayout, wire.StartDate)
		if err != nil {
			c.logger.Warn("skipping slot with malformed date",
				zap.String("schedule_id", wire.ScheduleID),
				zap.String("start_date", wire.StartDate))
			continue
		}
		slots = append(slots, models.AvailableSlot{
			ScheduleID:        wire.ScheduleID,
			StartDate:         date,
			StartTime:         wire.StartTime,
			EndTime:           wire.EndTime,
			RemainingCapacity: wire.RemainingCapacity,
		})
	}
	return slots, nil
}

// SubmitReschedule replaces the enrollment's full schedule-ID list in one
// atomic platform update. Failures are terminal; the caller discards the
// plan and never retries automatically.
func (c *Client) SubmitReschedule(ctx context.Context, token, enrollmentID string, scheduleIDs []string) error {
	payload := map[string]interface{}{"scheduleIds": scheduleIDs}
	path := "/enrollments/" + url.PathEscape(enrollmentID) + "/schedules"
	return c.send(ctx, "submit_reschedule", token, http.MethodPut, path, payload)
}

// ListEnrollments passes the host page's enrollment listing through.
func (c *Client) ListEnrollments(ctx context.Context, token string, filter models.EnrollmentFilter) ([]models.EnrollmentSummary, *models.Pagination, error) {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.CourseID != "" {
		query.Set("courseId", filter.CourseID)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PageSize > 0 {
		query.Set("limit", strconv.Itoa(filter.PageSize))
	}

	var enrollments []models.EnrollmentSummary
	pagination, err := c.get(ctx, "list_enrollments", token, "/enrollments", query, &enrollments)
	if err != nil {
		return nil, nil, err
	}
	return enrollments, pagination, nil
}

func (c *Client) get(ctx context.Context, operation, token, path string, query url.Values, out interface{}) (*models.Pagination, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrFetchFailed.Code, appErrors.ErrFetchFailed.Status, appErrors.ErrFetchFailed.Message)
	}
	return c.do(req, operation, token, out, appErrors.ErrFetchFailed)
}

func (c *Client) send(ctx context.Context, operation, token, method, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrSubmissionFailed.Code, appErrors.ErrSubmissionFailed.Status, appErrors.ErrSubmissionFailed.Message)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrSubmissionFailed.Code, appErrors.ErrSubmissionFailed.Status, appErrors.ErrSubmissionFailed.Message)
	}
	req.Header.Set("Content-Type", "application/json")
	_, err = c.do(req, operation, token, nil, appErrors.ErrSubmissionFailed)
	return err
}

func (c *Client) do(req *http.Request, operation, token string, out interface{}, failure *appErrors.Error) (*models.Pagination, error) {
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.observe(operation, 0, duration)
		c.logger.Warn("platform call failed",
			zap.String("operation", operation),
			zap.Error(err))
		return nil, appErrors.Wrap(err, failure.Code, failure.Status, failure.Message)
	}
	defer resp.Body.Close()
	c.observe(operation, resp.StatusCode, duration)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.Wrap(err, failure.Code, failure.Status, failure.Message)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, appErrors.Wrap(err, failure.Code, failure.Status, "platform returned a malformed response")
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := failure.Message
		if env.Error != nil && env.Error.Message != "" {
			message = env.Error.Message
		}
		return nil, appErrors.Wrap(
			fmt.Errorf("platform responded %d", resp.StatusCode),
			failure.Code, failure.Status, message)
	}

	if out != nil {
		if len(env.Data) == 0 {
			return nil, appErrors.Clone(failure, "platform response missing data")
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, appErrors.Wrap(err, failure.Code, failure.Status, "platform returned a malformed payload")
		}
	}
	return env.Pagination, nil
}

func (c *Client) observe(operation string, status int, duration time.Duration) {
	if c.observer != nil {
		c.observer.ObservePlatformCall(operation, status, duration)
	}
}
