package handler

import (
	"fmt"

	"syllabus-builder/internal/domain"
	"syllabus-builder/internal/dto"
	"syllabus-builder/internal/logger"
	"syllabus-builder/internal/middleware"
	"syllabus-builder/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CourseHandler serves the JSON API.
type CourseHandler struct {
	service service.CourseService
}

// NewCourseHandler creates a new CourseHandler instance
func NewCourseHandler(service service.CourseService) *CourseHandler {
	return &CourseHandler{
		service: service,
	}
}

// GenerateCourse godoc
// @Summary Generate a course
// @Description Sends the syllabus text to the generative service and replaces the session's current course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.GenerateCourseRequest true "Syllabus text and week count"
// @Success 201 {object} dto.GenerateCourseResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /courses [post]
func (h *CourseHandler) GenerateCourse(c *fiber.Ctx) error {
	var req dto.GenerateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Warn("Failed to parse generate request body", zap.Error(err))
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.service.Generate(c.UserContext(), middleware.SessionID(c), req)
	if err != nil {
		return err // Handled by ErrorHandler
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetCurrentCourse godoc
// @Summary Get the current course
// @Tags courses
// @Produce json
// @Success 200 {object} dto.CourseResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /courses/current [get]
func (h *CourseHandler) GetCurrentCourse(c *fiber.Ctx) error {
	resp, err := h.service.CurrentCourse(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteCurrentCourse godoc
// @Summary Discard the current course
// @Tags courses
// @Success 204
// @Failure 409 {object} middleware.ErrorResponse
// @Router /courses/current [delete]
func (h *CourseHandler) DeleteCurrentCourse(c *fiber.Ctx) error {
	if err := h.service.Reset(c.UserContext(), middleware.SessionID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetWeekView godoc
// @Summary Get the dashboard view of one week and tab
// @Tags courses
// @Produce json
// @Param week path int true "Week number, starting at 1"
// @Param tab path string true "overview, lecture, slides, assessments or resources"
// @Success 200 {object} dashboard.Page
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /courses/current/weeks/{week}/{tab} [get]
func (h *CourseHandler) GetWeekView(c *fiber.Ctx) error {
	weekIndex, tab := middleware.Selection(c)
	page, err := h.service.View(c.UserContext(), middleware.SessionID(c), weekIndex, tab)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// ExportCourse godoc
// @Summary Download the current course as a JSON file
// @Tags courses
// @Produce json
// @Success 200 {object} domain.Course
// @Failure 404 {object} middleware.ErrorResponse
// @Router /courses/current/export [get]
func (h *CourseHandler) ExportCourse(c *fiber.Ctx) error {
	filename, data, err := h.service.Export(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(data)
}

// GetStatus godoc
// @Summary Get the generation status of the session
// @Tags courses
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Router /status [get]
func (h *CourseHandler) GetStatus(c *fiber.Ctx) error {
	ws, err := h.service.Workspace(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.StatusResponse{
		Status:    ws.Status,
		HasCourse: ws.Course != nil,
		Error:     ws.Error,
	})
}

// GetSample godoc
// @Summary Get the sample syllabus
// @Tags courses
// @Produce json
// @Success 200 {object} dto.SampleResponse
// @Router /sample [get]
func (h *CourseHandler) GetSample(c *fiber.Ctx) error {
	return c.JSON(h.service.Sample())
}

// Health reports whether the workspace store is reachable.
func (h *CourseHandler) Health(c *fiber.Ctx) error {
	if err := h.service.Ping(c.UserContext()); err != nil {
		logger.Get().Error("Health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{Status: "unavailable", Store: err.Error()})
	}
	return c.JSON(dto.HealthResponse{Status: "ok", Store: "ok"})
}
