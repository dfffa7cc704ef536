// Package dashboard derives what the course dashboard shows for a selected week and tab.
// It holds no state of its own; every view is computed from the Course.
package dashboard

import (
	"fmt"
	"strings"

	"syllabus-builder/internal/domain"
)

// Tab identifies one of the fixed dashboard views.
type Tab string

const (
	TabOverview    Tab = "overview"
	TabLecture     Tab = "lecture"
	TabSlides      Tab = "slides"
	TabAssessments Tab = "assessments"
	TabResources   Tab = "resources"
)

var tabLabels = map[Tab]string{
	TabOverview:    "Blueprint",
	TabLecture:     "Lecture",
	TabSlides:      "Slides",
	TabAssessments: "Assessments",
	TabResources:   "Resources",
}

// Tabs returns the tabs in display order.
func Tabs() []Tab {
	return []Tab{TabOverview, TabLecture, TabSlides, TabAssessments, TabResources}
}

// Label is the text shown on the tab button.
func (t Tab) Label() string {
	return tabLabels[t]
}

// ParseTab accepts a tab identifier case-insensitively. An empty string selects the overview.
func ParseTab(s string) (Tab, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TabOverview, nil
	}
	t := Tab(s)
	if _, ok := tabLabels[t]; !ok {
		return "", domain.ValidationErrors{domain.NewInvalidFormatError("tab", s)}
	}
	return t, nil
}

// Selection is the only navigation state: a zero-based week index and a tab.
type Selection struct {
	WeekIndex int `json:"weekIndex"`
	Tab       Tab `json:"tab"`
}

// Select validates a selection against the course.
func Select(course *domain.Course, weekIndex int, tab Tab) (Selection, error) {
	if course == nil {
		return Selection{}, domain.NewCourseNotFoundError()
	}
	if _, ok := tabLabels[tab]; !ok {
		return Selection{}, domain.ValidationErrors{domain.NewInvalidFormatError("tab", string(tab))}
	}
	if weekIndex < 0 || weekIndex >= len(course.Modules) {
		if len(course.Modules) == 0 {
			return Selection{}, domain.NewError(domain.CodeOutOfRange, "The course has no weekly modules", nil)
		}
		return Selection{}, domain.ValidationErrors{domain.NewOutOfRangeError("week", weekIndex+1, 1, len(course.Modules))}
	}
	return Selection{WeekIndex: weekIndex, Tab: tab}, nil
}

// WeekLink is a sidebar entry.
type WeekLink struct {
	Index        int                 `json:"index"`
	WeekNumber   int                 `json:"weekNumber"`
	Title        string              `json:"title"`
	DeliveryMode domain.DeliveryMode `json:"deliveryMode"`
	Active       bool                `json:"active"`
}

// TabLink is a tab button.
type TabLink struct {
	Tab    Tab    `json:"tab"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// Header summarises the course above the sidebar.
type Header struct {
	CourseID    string `json:"courseId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Audience    string `json:"targetAudience"`
	Level       string `json:"level"`
	TotalWeeks  int    `json:"totalWeeks"`
	Breadcrumb  string `json:"breadcrumb"`
}

type OverviewView struct {
	Focus              string              `json:"focus"`
	LearningObjectives []string            `json:"learningObjectives"`
	KeyConcepts        []string            `json:"keyConcepts"`
	DeliveryMode       domain.DeliveryMode `json:"deliveryMode"`
	DiscussionPrompts  []string            `json:"discussionPrompts"`
}

type LectureView struct {
	Summary  string   `json:"summary"`
	Outline  []string `json:"outline"`
	Concepts []string `json:"keyConcepts"`
}

type SlidesView struct {
	Slides []domain.Slide `json:"slides"`
}

// AssignmentView adds the rubric total, which nothing guarantees to be 100.
type AssignmentView struct {
	domain.Assignment
	TotalWeight float64 `json:"totalWeight"`
	Balanced    bool    `json:"balanced"`
}

type AssessmentsView struct {
	Assignments []AssignmentView      `json:"assignments"`
	Quiz        []domain.QuizQuestion `json:"quiz"`
}

type ResourcesView struct {
	Readings []domain.ReadingResource `json:"readings"`
}

// Page is everything the dashboard renders for one selection. Exactly one of the
// tab views is set.
type Page struct {
	Header    Header     `json:"header"`
	Weeks     []WeekLink `json:"weeks"`
	Tabs      []TabLink  `json:"tabs"`
	Selection Selection  `json:"selection"`

	Overview    *OverviewView    `json:"overview,omitempty"`
	Lecture     *LectureView     `json:"lecture,omitempty"`
	Slides      *SlidesView      `json:"slides,omitempty"`
	Assessments *AssessmentsView `json:"assessments,omitempty"`
	Resources   *ResourcesView   `json:"resources,omitempty"`
}

// Render builds the page for a selection previously returned by Select.
func Render(course *domain.Course, sel Selection) (*Page, error) {
	sel, err := Select(course, sel.WeekIndex, sel.Tab)
	if err != nil {
		return nil, err
	}
	module := course.Modules[sel.WeekIndex]

	page := &Page{
		Header: Header{
			CourseID:    course.ID,
			Title:       course.Title,
			Description: course.Description,
			Audience:    course.TargetAudience,
			Level:       course.Level,
			TotalWeeks:  course.TotalWeeks,
			Breadcrumb:  fmt.Sprintf("Week %d › %s", module.WeekNumber, module.Title),
		},
		Selection: sel,
	}

	for i, m := range course.Modules {
		page.Weeks = append(page.Weeks, WeekLink{
			Index:        i,
			WeekNumber:   m.WeekNumber,
			Title:        m.Title,
			DeliveryMode: m.DeliveryMode,
			Active:       i == sel.WeekIndex,
		})
	}
	for _, t := range Tabs() {
		page.Tabs = append(page.Tabs, TabLink{Tab: t, Label: t.Label(), Active: t == sel.Tab})
	}

	switch sel.Tab {
	case TabOverview:
		page.Overview = &OverviewView{
			Focus:              module.Focus,
			LearningObjectives: module.LearningObjectives,
			KeyConcepts:        module.KeyConcepts,
			DeliveryMode:       module.DeliveryMode,
			DiscussionPrompts:  module.DiscussionPrompts,
		}
	case TabLecture:
		page.Lecture = &LectureView{
			Summary:  module.LectureSummary,
			Outline:  module.LectureOutline,
			Concepts: module.KeyConcepts,
		}
	case TabSlides:
		page.Slides = &SlidesView{Slides: module.Slides}
	case TabAssessments:
		view := &AssessmentsView{Quiz: module.Quiz}
		for _, a := range module.Assignments {
			total := a.TotalRubricWeight()
			view.Assignments = append(view.Assignments, AssignmentView{
				Assignment:  a,
				TotalWeight: total,
				Balanced:    len(a.Rubric) > 0 && total > 99.5 && total < 100.5,
			})
		}
		page.Assessments = view
	case TabResources:
		page.Resources = &ResourcesView{Readings: module.Readings}
	}
	return page, nil
}
