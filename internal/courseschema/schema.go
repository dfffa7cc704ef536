// Package courseschema holds the output shape the generative service must follow.
// The same declaration is rendered into the prompt and checked against domain.Course
// in tests, so the request and the response type cannot drift apart.
package courseschema

import (
	"encoding/json"
	"sort"

	"syllabus-builder/internal/domain"
)

// Type is a JSON value type understood by the generative service.
type Type string

const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
)

// Field describes one value of the output shape.
type Field struct {
	Type        Type              `json:"type"`
	Description string            `json:"description,omitempty"`
	Enum        []string          `json:"enum,omitempty"`
	Items       *Field            `json:"items,omitempty"`
	Properties  map[string]*Field `json:"properties,omitempty"`
	Required    []string          `json:"required,omitempty"`
}

// LocalFields are Course fields assigned by this system and never requested from the model.
var LocalFields = []string{"id", "createdAt"}

func str(desc string) *Field { return &Field{Type: TypeString, Description: desc} }

func strList() *Field { return &Field{Type: TypeArray, Items: &Field{Type: TypeString}} }

func object(props map[string]*Field, required ...string) *Field {
	return &Field{Type: TypeObject, Properties: props, Required: required}
}

func listOf(item *Field) *Field { return &Field{Type: TypeArray, Items: item} }

func enumOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// Course returns the output shape of a generated course.
func Course() *Field {
	reading := object(map[string]*Field{
		"title":     str(""),
		"author":    str(""),
		"type":      {Type: TypeString, Enum: enumOf(domain.ReadingTypes())},
		"relevance": str("Why this resource matters for the week."),
		"link":      str("Optional URL of the resource."),
	})

	rubric := object(map[string]*Field{
		"criteriaName": str(""),
		"description":  str(""),
		"weight":       {Type: TypeNumber, Description: "Percentage weight of this criterion."},
		"bands": object(map[string]*Field{
			"excellent": str(""),
			"good":      str(""),
			"fair":      str(""),
			"poor":      str(""),
		}),
	})

	assignment := object(map[string]*Field{
		"title":          str(""),
		"description":    str(""),
		"type":           str(""),
		"estimatedHours": {Type: TypeNumber},
		"difficulty":     {Type: TypeString, Enum: enumOf(domain.Difficulties())},
		"rubric":         listOf(rubric),
	})

	question := object(map[string]*Field{
		"question":      str(""),
		"options":       strList(),
		"correctAnswer": str(""),
		"explanation":   str(""),
	})

	slide := object(map[string]*Field{
		"title":        str(""),
		"bullets":      strList(),
		"visualHint":   str("A suggestion for an image, chart, or diagram."),
		"speakerNotes": str(""),
	})

	module := object(map[string]*Field{
		"weekNumber":         {Type: TypeInteger},
		"title":              str(""),
		"focus":              str(""),
		"learningObjectives": strList(),
		"keyConcepts":        strList(),
		"deliveryMode":       {Type: TypeString, Enum: enumOf(domain.DeliveryModes())},
		"lectureSummary":     str("Detailed 300-500 word summary of the lecture content for this week."),
		"lectureOutline":     strList(),
		"discussionPrompts":  strList(),
		"readings":           listOf(reading),
		"assignments":        listOf(assignment),
		"quiz":               listOf(question),
		"slides":             listOf(slide),
	})

	return object(map[string]*Field{
		"title":          str("The name of the course"),
		"description":    str("A comprehensive description of the course"),
		"targetAudience": str(""),
		"level":          str("e.g., Undergraduate, Graduate, Professional"),
		"totalWeeks":     {Type: TypeInteger},
		"modules":        listOf(module),
	}, "title", "description", "modules", "totalWeeks")
}

// JSON renders the course shape as indented JSON. Object keys come out sorted.
func JSON() (string, error) {
	b, err := json.MarshalIndent(Course(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// PropertyNames returns the sorted property names of an object field.
func (f *Field) PropertyNames() []string {
	names := make([]string, 0, len(f.Properties))
	for name := range f.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
