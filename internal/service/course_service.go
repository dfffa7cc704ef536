package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"syllabus-builder/internal/config"
	"syllabus-builder/internal/dashboard"
	"syllabus-builder/internal/domain"
	"syllabus-builder/internal/dto"
	"syllabus-builder/internal/logger"
	"syllabus-builder/internal/validation"

	"go.uber.org/zap"
)

// SampleSyllabus is the built-in example offered by "Load Sample Data".
const SampleSyllabus = `Course: Introduction to Product Management

Description:
This course covers the fundamentals of digital product management. Students will learn how to identify user needs, build product roadmaps, and work with engineering teams.

Topics to cover:
1. Product Lifecycle & Strategy
2. User Research & Personas
3. Agile Methodologies & Scrum
4. Go-to-Market Strategy & Launch`

// CourseService owns the per-session workspace: generating, viewing, exporting and
// discarding the current course.
type CourseService interface {
	Generate(ctx context.Context, sessionID string, req dto.GenerateCourseRequest) (*dto.GenerateCourseResponse, error)
	Workspace(ctx context.Context, sessionID string) (*domain.Workspace, error)
	CurrentCourse(ctx context.Context, sessionID string) (*dto.CourseResponse, error)
	View(ctx context.Context, sessionID string, weekIndex int, tab dashboard.Tab) (*dashboard.Page, error)
	Export(ctx context.Context, sessionID string) (filename string, data []byte, err error)
	Reset(ctx context.Context, sessionID string) error
	Sample() dto.SampleResponse
	Ping(ctx context.Context) error
}

type courseService struct {
	generator domain.CourseGenerationService
	store     domain.WorkspaceStore
	validator *validation.Validator

	mu       sync.Mutex
	inFlight map[string]struct{}
	now      func() time.Time
}

// NewCourseService creates a CourseService.
func NewCourseService(generator domain.CourseGenerationService, store domain.WorkspaceStore, cfg config.GenerationConfig) (CourseService, error) {
	if generator == nil {
		return nil, errors.New("course service requires a generator")
	}
	if store == nil {
		return nil, errors.New("course service requires a workspace store")
	}
	return &courseService{
		generator: generator,
		store:     store,
		validator: validation.NewValidator(cfg.DefaultWeeks, cfg.MaxWeeks),
		inFlight:  make(map[string]struct{}),
		now:       time.Now,
	}, nil
}

// begin marks a generation as running for the session. Only one may run at a time.
func (s *courseService) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[sessionID]; busy {
		return false
	}
	s.inFlight[sessionID] = struct{}{}
	return true
}

func (s *courseService) end(sessionID string) {
	s.mu.Lock()
	delete(s.inFlight, sessionID)
	s.mu.Unlock()
}

// Generate runs one generation request. On failure the previous course, if any, is kept
// and the workspace records the generic failure message.
func (s *courseService) Generate(ctx context.Context, sessionID string, req dto.GenerateCourseRequest) (*dto.GenerateCourseResponse, error) {
	if errs := s.validator.ValidateGenerateRequest(req.Text, &req.Weeks); len(errs) > 0 {
		return nil, errs
	}
	if !s.begin(sessionID) {
		logger.Get().Warn("Generation rejected, another request is running", zap.String("session_id", sessionID))
		return nil, domain.NewGenerationInProgressError()
	}
	defer s.end(sessionID)

	ws, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ws.Status = domain.StatusGenerating
	ws.Error = ""
	ws.UpdatedAt = s.now()
	if err := s.store.Save(ctx, ws); err != nil {
		return nil, err
	}

	course, genErr := s.generator.GenerateCourse(ctx, req.Text, req.Weeks)
	if genErr != nil {
		logger.Get().Error("Course generation failed",
			zap.String("session_id", sessionID),
			zap.String("code", string(domain.CodeOf(genErr))),
			zap.Error(genErr),
		)
		ws.Status = domain.StatusError
		ws.Error = domain.GenerationFailedMessage
		ws.UpdatedAt = s.now()
		if err := s.store.Save(ctx, ws); err != nil {
			logger.Get().Error("Failed to record generation failure", zap.Error(err))
		}
		return nil, genErr
	}

	warnings := course.Check()
	for _, w := range warnings {
		logger.Get().Warn("Generated course inconsistency",
			zap.String("course_id", course.ID),
			zap.String("path", w.Path),
			zap.String("issue", w.Message),
		)
	}

	ws.Course = course
	ws.Warnings = warnings
	ws.Status = domain.StatusSuccess
	ws.UpdatedAt = s.now()
	if err := s.store.Save(ctx, ws); err != nil {
		return nil, err
	}

	return &dto.GenerateCourseResponse{Course: course, Warnings: warnings}, nil
}

func (s *courseService) load(ctx context.Context, sessionID string) (*domain.Workspace, error) {
	ws, err := s.store.Load(ctx, sessionID)
	if errors.Is(err, domain.ErrWorkspaceNotFound) {
		return domain.NewWorkspace(sessionID), nil
	}
	if err != nil {
		return nil, err
	}
	return ws, nil
}

// Workspace returns the session's workspace, or an idle one if it has none.
func (s *courseService) Workspace(ctx context.Context, sessionID string) (*domain.Workspace, error) {
	ws, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	// A stored "generating" status outlives its request if the process restarted.
	if ws.Status == domain.StatusGenerating && !s.running(sessionID) {
		ws.Status = domain.StatusIdle
	}
	return ws, nil
}

func (s *courseService) running(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inFlight[sessionID]
	return ok
}

func (s *courseService) CurrentCourse(ctx context.Context, sessionID string) (*dto.CourseResponse, error) {
	ws, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if ws.Course == nil {
		return nil, domain.NewCourseNotFoundError()
	}
	return &dto.CourseResponse{Course: ws.Course, Warnings: ws.Warnings}, nil
}

func (s *courseService) View(ctx context.Context, sessionID string, weekIndex int, tab dashboard.Tab) (*dashboard.Page, error) {
	ws, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if ws.Course == nil {
		return nil, domain.NewCourseNotFoundError()
	}
	sel, err := dashboard.Select(ws.Course, weekIndex, tab)
	if err != nil {
		return nil, err
	}
	return dashboard.Render(ws.Course, sel)
}

// Export returns the current course as an indented JSON document and a filename for it.
func (s *courseService) Export(ctx context.Context, sessionID string) (string, []byte, error) {
	resp, err := s.CurrentCourse(ctx, sessionID)
	if err != nil {
		return "", nil, err
	}
	data, err := json.MarshalIndent(resp.Course, "", "  ")
	if err != nil {
		return "", nil, domain.NewInternalError("failed to encode course", err)
	}
	logger.Get().Info("Course exported", zap.String("course_id", resp.Course.ID), zap.Int("bytes", len(data)))
	return ExportFilename(resp.Course), data, nil
}

// ExportFilename derives a file name from the course title, falling back to its id.
func ExportFilename(course *domain.Course) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(course.Title) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "course-" + strings.ToLower(course.ID)
	}
	return fmt.Sprintf("%s.json", slug)
}

// Reset discards the session's course and returns it to the input screen.
func (s *courseService) Reset(ctx context.Context, sessionID string) error {
	if s.running(sessionID) {
		return domain.NewGenerationInProgressError()
	}
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	logger.Get().Info("Workspace reset", zap.String("session_id", sessionID))
	return nil
}

func (s *courseService) Sample() dto.SampleResponse {
	return dto.SampleResponse{Text: SampleSyllabus, Weeks: s.validator.DefaultWeeks()}
}

func (s *courseService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
