package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"syllabus-builder/internal/dashboard"
	"syllabus-builder/internal/domain"
	"syllabus-builder/internal/dto"
	"syllabus-builder/internal/handler"
	"syllabus-builder/internal/middleware"
	"syllabus-builder/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPIApp(svc *MockCourseService) *fiber.App {
	h := handler.NewCourseHandler(svc)
	vm := middleware.NewValidationMiddleware(validation.NewValidator(4, 16))

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	api := app.Group("/api", withSession)
	api.Post("/courses", h.GenerateCourse)
	api.Get("/courses/current", h.GetCurrentCourse)
	api.Delete("/courses/current", h.DeleteCurrentCourse)
	api.Get("/courses/current/export", h.ExportCourse)
	api.Get("/courses/current/weeks/:week/:tab", vm.ValidateSelection(), h.GetWeekView)
	api.Get("/status", h.GetStatus)
	api.Get("/sample", h.GetSample)
	app.Get("/healthz", h.Health)
	return app
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCourseHandler_GenerateCourse(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &MockCourseService{
			GenerateFunc: func(ctx context.Context, sessionID string, req dto.GenerateCourseRequest) (*dto.GenerateCourseResponse, error) {
				assert.Equal(t, testSessionID, sessionID)
				assert.Equal(t, "Intro to PM", req.Text)
				assert.Equal(t, 6, req.Weeks)
				return &dto.GenerateCourseResponse{
					Course:   testCourse(),
					Warnings: []domain.Issue{{Path: "modules", Message: "got 1 modules for 6 weeks"}},
				}, nil
			},
		}
		resp, err := newAPIApp(svc).Test(jsonRequest(http.MethodPost, "/api/courses", dto.GenerateCourseRequest{Text: "Intro to PM", Weeks: 6}), -1)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var body dto.GenerateCourseResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Intro to Product Management", body.Course.Title)
		assert.Len(t, body.Warnings, 1)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/courses", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")
		resp, err := newAPIApp(&MockCourseService{}).Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	errCases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "validation", err: domain.ValidationErrors{{Field: "text", Code: domain.CodeMissingField, Message: validation.EmptySourceMessage}}, wantStatus: http.StatusBadRequest},
		{name: "in progress", err: domain.NewGenerationInProgressError(), wantStatus: http.StatusConflict},
		{name: "missing key", err: domain.NewConfigError("API_KEY is missing from environment variables"), wantStatus: http.StatusInternalServerError, wantMsg: domain.GenerationFailedMessage},
		{name: "bad output", err: domain.NewParseError("No response from AI", nil), wantStatus: http.StatusBadGateway, wantMsg: domain.GenerationFailedMessage},
		{name: "service down", err: domain.NewLLMServiceError(io.ErrUnexpectedEOF), wantStatus: http.StatusServiceUnavailable, wantMsg: domain.GenerationFailedMessage},
	}
	for _, tc := range errCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &MockCourseService{
				GenerateFunc: func(ctx context.Context, sessionID string, req dto.GenerateCourseRequest) (*dto.GenerateCourseResponse, error) {
					return nil, tc.err
				},
			}
			resp, err := newAPIApp(svc).Test(jsonRequest(http.MethodPost, "/api/courses", dto.GenerateCourseRequest{Text: "x"}))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			if tc.wantMsg != "" {
				var body middleware.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tc.wantMsg, body.Message)
			}
		})
	}
}

func TestCourseHandler_GetCurrentCourse(t *testing.T) {
	svc := &MockCourseService{
		CurrentCourseFunc: func(ctx context.Context, sessionID string) (*dto.CourseResponse, error) {
			return nil, domain.NewCourseNotFoundError()
		},
	}
	resp, err := newAPIApp(svc).Test(httptest.NewRequest(http.MethodGet, "/api/courses/current", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	svc.CurrentCourseFunc = func(ctx context.Context, sessionID string) (*dto.CourseResponse, error) {
		return &dto.CourseResponse{Course: testCourse()}, nil
	}
	resp, err = newAPIApp(svc).Test(httptest.NewRequest(http.MethodGet, "/api/courses/current", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.CourseResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "01J0000000000000000000TEST", body.Course.ID)
}

func TestCourseHandler_DeleteCurrentCourse(t *testing.T) {
	var resetFor string
	svc := &MockCourseService{
		ResetFunc: func(ctx context.Context, sessionID string) error {
			resetFor = sessionID
			return nil
		},
	}
	resp, err := newAPIApp(svc).Test(httptest.NewRequest(http.MethodDelete, "/api/courses/current", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, testSessionID, resetFor)
}

func TestCourseHandler_GetWeekView(t *testing.T) {
	svc := &MockCourseService{
		ViewFunc: func(ctx context.Context, sessionID string, weekIndex int, tab dashboard.Tab) (*dashboard.Page, error) {
			assert.Equal(t, 0, weekIndex)
			assert.Equal(t, dashboard.TabOverview, tab)
			return dashboard.Render(testCourse(), dashboard.Selection{WeekIndex: weekIndex, Tab: tab})
		},
	}
	resp, err := newAPIApp(svc).Test(httptest.NewRequest(http.MethodGet, "/api/courses/current/weeks/1/overview", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var page dashboard.Page
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	require.NotNil(t, page.Overview)
	assert.Equal(t, "Strategy", page.Overview.Focus)
	assert.Equal(t, "Blueprint", page.Tabs[0].Label)

	resp, err = newAPIApp(svc).Test(httptest.NewRequest(http.MethodGet, "/api/courses/current/weeks/1/gradebook", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCourseHandler_ExportCourse(t *testing.T) {
	svc := &MockCourseService{
		ExportFunc: func(ctx context.Context, sessionID string) (string, []byte, error) {
			return "intro-to-product-management.json", []byte(`{"id":"x"}`), nil
		},
	}
	resp, err := newAPIApp(svc).Test(httptest.NewRequest(http.MethodGet, "/api/courses/current/export", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="intro-to-product-management.json"`, resp.Header.Get("Content-Disposition"))
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"id":"x"}`, string(body))
}

func TestCourseHandler_GetStatus(t *testing.T) {
	svc := &MockCourseService{
		WorkspaceFunc: func(ctx context.Context, sessionID string) (*domain.Workspace, error) {
			ws := domain.NewWorkspace(sessionID)
			ws.Status = domain.StatusError
			ws.Error = domain.GenerationFailedMessage
			ws.Course = testCourse()
			return ws, nil
		},
	}
	resp, err := newAPIApp(svc).Test(httptest.NewRequest(http.MethodGet, "/api/status", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.StatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, domain.StatusError, body.Status)
	assert.True(t, body.HasCourse)
	assert.Equal(t, domain.GenerationFailedMessage, body.Error)
}

func TestCourseHandler_SampleAndHealth(t *testing.T) {
	svc := &MockCourseService{}
	app := newAPIApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/sample", nil))
	require.NoError(t, err)
	var sample dto.SampleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sample))
	assert.Equal(t, 4, sample.Weeks)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	svc.PingFunc = func(ctx context.Context) error { return io.EOF }
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
