package domain

import (
	"fmt"
	"math"
	"time"
)

// DeliveryMode is how a week's content is delivered.
type DeliveryMode string

const (
	DeliveryLecture DeliveryMode = "Lecture"
	DeliverySeminar DeliveryMode = "Seminar"
	DeliveryLab     DeliveryMode = "Lab"
	DeliveryProject DeliveryMode = "Project"
)

// DeliveryModes returns every supported delivery mode in display order.
func DeliveryModes() []DeliveryMode {
	return []DeliveryMode{DeliveryLecture, DeliverySeminar, DeliveryLab, DeliveryProject}
}

// ReadingType classifies a reading resource.
type ReadingType string

const (
	ReadingTextbook ReadingType = "Textbook"
	ReadingPaper    ReadingType = "Paper"
	ReadingVideo    ReadingType = "Video"
	ReadingArticle  ReadingType = "Article"
)

// ReadingTypes returns every supported reading type.
func ReadingTypes() []ReadingType {
	return []ReadingType{ReadingTextbook, ReadingPaper, ReadingVideo, ReadingArticle}
}

// Difficulty is the perceived complexity of an assignment.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// Difficulties returns every supported assignment difficulty, easiest first.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
}

// Course is a generated curriculum. ID and CreatedAt are always assigned locally;
// everything else comes from the generative service.
type Course struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	TargetAudience string         `json:"targetAudience"`
	Level          string         `json:"level"`
	TotalWeeks     int            `json:"totalWeeks"`
	Modules        []WeeklyModule `json:"modules"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// WeeklyModule holds one week of content.
type WeeklyModule struct {
	WeekNumber         int               `json:"weekNumber"`
	Title              string            `json:"title"`
	Focus              string            `json:"focus"`
	LearningObjectives []string          `json:"learningObjectives"`
	KeyConcepts        []string          `json:"keyConcepts"`
	DeliveryMode       DeliveryMode      `json:"deliveryMode"`
	LectureSummary     string            `json:"lectureSummary"`
	LectureOutline     []string          `json:"lectureOutline"`
	DiscussionPrompts  []string          `json:"discussionPrompts"`
	Readings           []ReadingResource `json:"readings"`
	Assignments        []Assignment      `json:"assignments"`
	Quiz               []QuizQuestion    `json:"quiz"`
	Slides             []Slide           `json:"slides"`
}

// ReadingResource is a reading, video or article recommended for a week.
type ReadingResource struct {
	Title     string      `json:"title"`
	Author    string      `json:"author"`
	Type      ReadingType `json:"type"`
	Relevance string      `json:"relevance"`
	Link      string      `json:"link,omitempty"`
}

// Assignment is a graded task with a rubric.
type Assignment struct {
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Type           string           `json:"type"`
	EstimatedHours float64          `json:"estimatedHours"`
	Difficulty     Difficulty       `json:"difficulty"`
	Rubric         []RubricCriteria `json:"rubric"`
}

// TotalRubricWeight sums the rubric weights. Nothing guarantees the result is 100.
func (a Assignment) TotalRubricWeight() float64 {
	var total float64
	for _, c := range a.Rubric {
		total += c.Weight
	}
	return total
}

// RubricCriteria is a single rubric row.
type RubricCriteria struct {
	CriteriaName string      `json:"criteriaName"`
	Description  string      `json:"description"`
	Weight       float64     `json:"weight"`
	Bands        RubricBands `json:"bands"`
}

// RubricBands describes the four performance bands of a criterion.
type RubricBands struct {
	Excellent string `json:"excellent"`
	Good      string `json:"good"`
	Fair      string `json:"fair"`
	Poor      string `json:"poor"`
}

// QuizQuestion is a multiple-choice question.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// HasCorrectOption reports whether CorrectAnswer matches one of the options verbatim.
func (q QuizQuestion) HasCorrectOption() bool {
	for _, o := range q.Options {
		if o == q.CorrectAnswer {
			return true
		}
	}
	return false
}

// Slide is one presentation slide.
type Slide struct {
	Title        string   `json:"title"`
	Bullets      []string `json:"bullets"`
	VisualHint   string   `json:"visualHint"`
	SpeakerNotes string   `json:"speakerNotes"`
}

// Issue is an advisory finding about generated content. Issues never reject a course.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return i.Path + ": " + i.Message
}

// Check reports assumptions about the service output that do not hold: module count
// against totalWeeks, week numbering, enumerated values, rubric weights and quiz answers.
func (c *Course) Check() []Issue {
	var issues []Issue
	if c.TotalWeeks < 1 {
		issues = append(issues, Issue{Path: "totalWeeks", Message: fmt.Sprintf("expected at least 1, got %d", c.TotalWeeks)})
	}
	if len(c.Modules) != c.TotalWeeks {
		issues = append(issues, Issue{Path: "modules", Message: fmt.Sprintf("got %d modules for %d weeks", len(c.Modules), c.TotalWeeks)})
	}

	for i, m := range c.Modules {
		path := fmt.Sprintf("modules[%d]", i)
		if m.WeekNumber != i+1 {
			issues = append(issues, Issue{Path: path + ".weekNumber", Message: fmt.Sprintf("expected %d, got %d", i+1, m.WeekNumber)})
		}
		if !m.DeliveryMode.Valid() {
			issues = append(issues, Issue{Path: path + ".deliveryMode", Message: fmt.Sprintf("unknown value %q", m.DeliveryMode)})
		}
		for j, r := range m.Readings {
			if !r.Type.Valid() {
				issues = append(issues, Issue{Path: fmt.Sprintf("%s.readings[%d].type", path, j), Message: fmt.Sprintf("unknown value %q", r.Type)})
			}
		}
		for j, a := range m.Assignments {
			apath := fmt.Sprintf("%s.assignments[%d]", path, j)
			if !a.Difficulty.Valid() {
				issues = append(issues, Issue{Path: apath + ".difficulty", Message: fmt.Sprintf("unknown value %q", a.Difficulty)})
			}
			if len(a.Rubric) > 0 {
				if w := a.TotalRubricWeight(); math.Abs(w-100) > 0.5 {
					issues = append(issues, Issue{Path: apath + ".rubric", Message: fmt.Sprintf("weights sum to %g, not 100", w)})
				}
			}
		}
		for j, q := range m.Quiz {
			if !q.HasCorrectOption() {
				issues = append(issues, Issue{Path: fmt.Sprintf("%s.quiz[%d].correctAnswer", path, j), Message: "does not match any option"})
			}
		}
	}
	return issues
}

// Valid reports whether m is one of DeliveryModes.
func (m DeliveryMode) Valid() bool {
	for _, v := range DeliveryModes() {
		if m == v {
			return true
		}
	}
	return false
}

// Valid reports whether t is one of ReadingTypes.
func (t ReadingType) Valid() bool {
	for _, v := range ReadingTypes() {
		if t == v {
			return true
		}
	}
	return false
}

// Valid reports whether d is one of Difficulties.
func (d Difficulty) Valid() bool {
	for _, v := range Difficulties() {
		if d == v {
			return true
		}
	}
	return false
}
