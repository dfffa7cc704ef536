package coursegen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"syllabus-builder/internal/domain"
	"syllabus-builder/internal/util"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// DefaultTemperature keeps the structure stable between runs.
const DefaultTemperature = 0.2

// ModelFactory builds a model client for one generation call.
type ModelFactory func(ctx context.Context, apiKey string) (llms.Model, error)

// Settings controls a LLMCourseGenerator.
type Settings struct {
	// APIKeyEnv names the environment variable holding the credential.
	APIKeyEnv string
	// RequiresKey is false for providers that run without a credential (ollama).
	RequiresKey bool
	Temperature float64
}

// LLMCourseGenerator implements domain.CourseGenerationService on top of a langchaingo model.
type LLMCourseGenerator struct {
	newModel ModelFactory
	settings Settings
	logger   *zap.Logger

	lookupEnv func(string) (string, bool)
	now       func() time.Time
	newID     func() string
}

// NewLLMCourseGenerator creates a generator. The credential is not read here; it is
// looked up on every GenerateCourse call.
func NewLLMCourseGenerator(newModel ModelFactory, settings Settings, logger *zap.Logger) (*LLMCourseGenerator, error) {
	if newModel == nil {
		return nil, fmt.Errorf("model factory cannot be nil")
	}
	if settings.RequiresKey && settings.APIKeyEnv == "" {
		return nil, fmt.Errorf("API key environment variable name cannot be empty")
	}
	if settings.Temperature < 0 {
		return nil, fmt.Errorf("temperature cannot be negative")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMCourseGenerator{
		newModel:  newModel,
		settings:  settings,
		logger:    logger,
		lookupEnv: os.LookupEnv,
		now:       time.Now,
		newID:     util.NewULID,
	}, nil
}

// GenerateCourse builds the prompt, calls the model once and parses its JSON answer.
func (g *LLMCourseGenerator) GenerateCourse(ctx context.Context, rawText string, weekCount int) (*domain.Course, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, domain.NewInvalidInputError("Please enter some course topics or syllabus content.")
	}
	if weekCount < 1 {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("week count must be at least 1, got %d", weekCount))
	}

	apiKey, err := g.credential()
	if err != nil {
		g.logger.Error("Course generation blocked by configuration", zap.Error(err))
		return nil, err
	}

	prompt, err := BuildPrompt(rawText, weekCount)
	if err != nil {
		return nil, domain.NewInternalError("failed to build prompt", err)
	}

	model, err := g.newModel(ctx, apiKey)
	if err != nil {
		g.logger.Error("Failed to create LLM client", zap.Error(err))
		return nil, domain.NewLLMServiceError(fmt.Errorf("failed to create LLM client: %w", err))
	}

	g.logger.Info("Requesting course generation",
		zap.Int("weeks", weekCount),
		zap.Int("source_chars", len([]rune(TruncateSource(rawText)))),
		zap.Float64("temperature", g.settings.Temperature),
	)

	start := time.Now()
	resp, err := model.GenerateContent(ctx,
		[]llms.MessageContent{llms.TextParts(schema.ChatMessageTypeHuman, prompt)},
		llms.WithTemperature(g.settings.Temperature),
		llms.WithJSONMode(),
	)
	if err != nil {
		g.logger.Error("LLM call failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, domain.NewLLMServiceError(err)
	}

	var text string
	if resp != nil && len(resp.Choices) > 0 && resp.Choices[0] != nil {
		text = resp.Choices[0].Content
	}
	g.logger.Debug("Raw LLM response received", zap.Int("length", len(text)), zap.Duration("elapsed", time.Since(start)))

	course, err := ParseCourse(text)
	if err != nil {
		g.logger.Error("Failed to parse LLM response", zap.Error(err))
		return nil, err
	}

	course.ID = g.newID()
	course.CreatedAt = g.now().UTC()

	g.logger.Info("Course generated",
		zap.String("course_id", course.ID),
		zap.String("title", course.Title),
		zap.Int("total_weeks", course.TotalWeeks),
		zap.Int("modules", len(course.Modules)),
	)
	return course, nil
}

func (g *LLMCourseGenerator) credential() (string, error) {
	if !g.settings.RequiresKey {
		return "", nil
	}
	key, ok := g.lookupEnv(g.settings.APIKeyEnv)
	if !ok || strings.TrimSpace(key) == "" {
		return "", domain.NewConfigError(fmt.Sprintf("%s is missing from environment variables", g.settings.APIKeyEnv))
	}
	return key, nil
}

// wireCourse shadows the locally assigned fields so whatever the model puts there is ignored.
type wireCourse struct {
	domain.Course
	ID        json.RawMessage `json:"id,omitempty"`
	CreatedAt json.RawMessage `json:"createdAt,omitempty"`
}

// ParseCourse decodes the model output. Markdown code fences around the object are tolerated.
func ParseCourse(raw string) (*domain.Course, error) {
	text := stripCodeFences(strings.TrimSpace(raw))
	if text == "" {
		return nil, domain.NewParseError("No response from AI", nil)
	}
	if !strings.HasPrefix(text, "{") {
		return nil, domain.NewParseError("LLM response is not a JSON object", nil)
	}

	var wc wireCourse
	if err := json.Unmarshal([]byte(text), &wc); err != nil {
		return nil, domain.NewParseError("LLM response is not valid course JSON", err)
	}
	course := wc.Course
	return &course, nil
}

func stripCodeFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

var _ domain.CourseGenerationService = (*LLMCourseGenerator)(nil)
