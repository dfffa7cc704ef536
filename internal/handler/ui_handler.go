package handler

import (
	"bytes"
	"errors"
	"strings"

	"syllabus-builder/internal/domain"
	"syllabus-builder/internal/dto"
	"syllabus-builder/internal/logger"
	"syllabus-builder/internal/middleware"
	"syllabus-builder/internal/service"
	"syllabus-builder/internal/validation"
	"syllabus-builder/internal/web"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UIHandler serves the HTML input screen and dashboard.
type UIHandler struct {
	service   service.CourseService
	renderer  *web.Renderer
	validator *validation.Validator
	maxWeeks  int
}

// NewUIHandler creates a new UIHandler instance
func NewUIHandler(service service.CourseService, renderer *web.Renderer, validator *validation.Validator, maxWeeks int) *UIHandler {
	return &UIHandler{
		service:   service,
		renderer:  renderer,
		validator: validator,
		maxWeeks:  maxWeeks,
	}
}

func (h *UIHandler) html(c *fiber.Ctx, status int, render func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		logger.Get().Error("Failed to render page", zap.Error(err))
		return domain.NewInternalError("failed to render page", err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

func (h *UIHandler) home(c *fiber.Ctx, status int, v web.HomeView) error {
	if v.Weeks == 0 {
		v.Weeks = h.validator.DefaultWeeks()
	}
	v.MaxWeeks = h.maxWeeks
	return h.html(c, status, func(buf *bytes.Buffer) error { return h.renderer.Home(buf, v) })
}

// Index shows the dashboard when the session has a course and the input screen otherwise.
func (h *UIHandler) Index(c *fiber.Ctx) error {
	ctx := c.UserContext()
	sessionID := middleware.SessionID(c)

	ws, err := h.service.Workspace(ctx, sessionID)
	if err != nil {
		return err
	}
	if ws.Course == nil {
		return h.home(c, fiber.StatusOK, web.HomeView{Status: ws.Status, Error: ws.Error})
	}

	weekIndex, tab := middleware.Selection(c)
	page, err := h.service.View(ctx, sessionID, weekIndex, tab)
	if err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			// Stale links from a previous course land on the first week.
			return c.Redirect("/", fiber.StatusSeeOther)
		}
		if domain.CodeOf(err) == domain.CodeOutOfRange {
			return h.home(c, fiber.StatusOK, web.HomeView{Error: "The generated course has no weekly modules. Please try again."})
		}
		return err
	}

	view := web.DashboardView{Page: page, Warnings: ws.Warnings}
	return h.html(c, fiber.StatusOK, func(buf *bytes.Buffer) error { return h.renderer.Dashboard(buf, view) })
}

// Generate handles the input form. On success the browser is sent to the first week's overview.
func (h *UIHandler) Generate(c *fiber.Ctx) error {
	text := c.FormValue("text")
	weeks, verrs := h.validator.ParseWeeks(c.FormValue("weeks"))
	if len(verrs) > 0 {
		return h.home(c, fiber.StatusBadRequest, web.HomeView{Text: text, Error: verrs.Error()})
	}

	_, err := h.service.Generate(c.UserContext(), middleware.SessionID(c), dto.GenerateCourseRequest{Text: text, Weeks: weeks})
	if err != nil {
		hasCourse := false
		if ws, wsErr := h.service.Workspace(c.UserContext(), middleware.SessionID(c)); wsErr == nil {
			hasCourse = ws.Course != nil
		}
		status := domain.StatusError
		if domain.CodeOf(err) == domain.CodeGenerationInProgress {
			status = domain.StatusGenerating
		}
		return h.home(c, middleware.StatusFor(err), web.HomeView{
			Text:      text,
			Weeks:     weeks,
			Status:    status,
			Error:     middleware.UserMessage(err),
			HasCourse: hasCourse,
		})
	}
	return c.Redirect("/?week=1&tab=overview", fiber.StatusSeeOther)
}

// Reset discards the course and returns to the input screen.
func (h *UIHandler) Reset(c *fiber.Ctx) error {
	if err := h.service.Reset(c.UserContext(), middleware.SessionID(c)); err != nil {
		return h.home(c, middleware.StatusFor(err), web.HomeView{Status: domain.StatusGenerating, Error: middleware.UserMessage(err)})
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Sample fills the input screen with the built-in syllabus.
func (h *UIHandler) Sample(c *fiber.Ctx) error {
	sample := h.service.Sample()
	return h.home(c, fiber.StatusOK, web.HomeView{Text: strings.TrimSpace(sample.Text), Weeks: sample.Weeks})
}
