package coursegen

import (
	"fmt"
	"unicode/utf8"

	"syllabus-builder/internal/courseschema"
	"syllabus-builder/internal/domain"
)

const promptTemplate = `
You are an expert Curriculum Designer and Instructional Designer.
Analyze the following Syllabus/Text/Topic content and generate a structured course.

Content: "%s"

Constraints:
- Generate exactly %d weeks of content.
- The output MUST be valid JSON matching the schema below. Respond with the JSON object only.
- Create a coherent narrative flow from basic to advanced concepts.
- Ensure 'lectureSummary' is substantial and academic in tone.
- Ensure 'slides' covers the key lecture points (approx 3-5 slides per week).
- Ensure 'rubric' is detailed for assignments.
- Assign an appropriate difficulty level ('Beginner', 'Intermediate', 'Advanced') to each assignment based on the task complexity.

Schema:
%s
`

// TruncateSource keeps the first domain.MaxSourceChars characters of text.
func TruncateSource(text string) string {
	if utf8.RuneCountInString(text) <= domain.MaxSourceChars {
		return text
	}
	n := 0
	for i := range text {
		if n == domain.MaxSourceChars {
			return text[:i]
		}
		n++
	}
	return text
}

// BuildPrompt embeds the truncated source and the week count in the generation prompt.
func BuildPrompt(rawText string, weekCount int) (string, error) {
	schema, err := courseschema.JSON()
	if err != nil {
		return "", fmt.Errorf("failed to render course schema: %w", err)
	}
	return fmt.Sprintf(promptTemplate, TruncateSource(rawText), weekCount, schema), nil
}
