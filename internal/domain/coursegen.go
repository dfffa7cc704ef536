package domain

import "context"

// MaxSourceChars caps the syllabus text sent to the generative service. Longer input
// is cut at this many characters without error.
const MaxSourceChars = 10000

// CourseGenerationService turns raw syllabus text into a Course.
type CourseGenerationService interface {
	// GenerateCourse asks the generative service for a course of weekCount weeks.
	// Failures carry CodeConfig, CodeLLMServiceError or CodeParse.
	GenerateCourse(ctx context.Context, rawText string, weekCount int) (*Course, error)
}
