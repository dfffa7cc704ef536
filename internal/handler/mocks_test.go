package handler_test

import (
	"context"

	"syllabus-builder/internal/dashboard"
	"syllabus-builder/internal/domain"
	"syllabus-builder/internal/dto"
	"syllabus-builder/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// MockCourseService
type MockCourseService struct {
	GenerateFunc      func(ctx context.Context, sessionID string, req dto.GenerateCourseRequest) (*dto.GenerateCourseResponse, error)
	WorkspaceFunc     func(ctx context.Context, sessionID string) (*domain.Workspace, error)
	CurrentCourseFunc func(ctx context.Context, sessionID string) (*dto.CourseResponse, error)
	ViewFunc          func(ctx context.Context, sessionID string, weekIndex int, tab dashboard.Tab) (*dashboard.Page, error)
	ExportFunc        func(ctx context.Context, sessionID string) (string, []byte, error)
	ResetFunc         func(ctx context.Context, sessionID string) error
	PingFunc          func(ctx context.Context) error
}

func (m *MockCourseService) Generate(ctx context.Context, sessionID string, req dto.GenerateCourseRequest) (*dto.GenerateCourseResponse, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, sessionID, req)
	}
	panic("MockCourseService.GenerateFunc not implemented")
}

func (m *MockCourseService) Workspace(ctx context.Context, sessionID string) (*domain.Workspace, error) {
	if m.WorkspaceFunc != nil {
		return m.WorkspaceFunc(ctx, sessionID)
	}
	panic("MockCourseService.WorkspaceFunc not implemented")
}

func (m *MockCourseService) CurrentCourse(ctx context.Context, sessionID string) (*dto.CourseResponse, error) {
	if m.CurrentCourseFunc != nil {
		return m.CurrentCourseFunc(ctx, sessionID)
	}
	panic("MockCourseService.CurrentCourseFunc not implemented")
}

func (m *MockCourseService) View(ctx context.Context, sessionID string, weekIndex int, tab dashboard.Tab) (*dashboard.Page, error) {
	if m.ViewFunc != nil {
		return m.ViewFunc(ctx, sessionID, weekIndex, tab)
	}
	panic("MockCourseService.ViewFunc not implemented")
}

func (m *MockCourseService) Export(ctx context.Context, sessionID string) (string, []byte, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx, sessionID)
	}
	panic("MockCourseService.ExportFunc not implemented")
}

func (m *MockCourseService) Reset(ctx context.Context, sessionID string) error {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, sessionID)
	}
	panic("MockCourseService.ResetFunc not implemented")
}

func (m *MockCourseService) Sample() dto.SampleResponse {
	return dto.SampleResponse{Text: "Course: Sample", Weeks: 4}
}

func (m *MockCourseService) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

const testSessionID = "0b5c5d0e-7f6a-4a53-9a55-0d3f2b1c9e11"

// withSession stands in for middleware.Session.
func withSession(c *fiber.Ctx) error {
	c.Locals(middleware.SessionIDKey, testSessionID)
	return c.Next()
}

func testCourse() *domain.Course {
	return &domain.Course{
		ID:         "01J0000000000000000000TEST",
		Title:      "Intro to Product Management",
		TotalWeeks: 1,
		Modules: []domain.WeeklyModule{{
			WeekNumber:         1,
			Title:              "Lifecycle",
			Focus:              "Strategy",
			LearningObjectives: []string{"Explain the lifecycle"},
			DeliveryMode:       domain.DeliveryLecture,
		}},
	}
}
