package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func consistentCourse() *Course {
	return &Course{
		Title:      "Intro",
		TotalWeeks: 2,
		Modules: []WeeklyModule{
			{
				WeekNumber:   1,
				DeliveryMode: DeliveryLecture,
				Readings:     []ReadingResource{{Type: ReadingPaper}},
				Assignments: []Assignment{{
					Difficulty: DifficultyAdvanced,
					Rubric:     []RubricCriteria{{Weight: 33.3}, {Weight: 33.3}, {Weight: 33.4}},
				}},
				Quiz: []QuizQuestion{{Options: []string{"a", "b"}, CorrectAnswer: "b"}},
			},
			{WeekNumber: 2, DeliveryMode: DeliveryProject},
		},
	}
}

func TestCheck_Consistent(t *testing.T) {
	assert.Empty(t, consistentCourse().Check())
}

func TestCheck_ReportsEveryIssue(t *testing.T) {
	c := consistentCourse()
	c.TotalWeeks = 3
	c.Modules[0].WeekNumber = 7
	c.Modules[0].DeliveryMode = "Workshop"
	c.Modules[0].Readings[0].Type = "Podcast"
	c.Modules[0].Assignments[0].Difficulty = "Expert"
	c.Modules[0].Assignments[0].Rubric[0].Weight = 10
	c.Modules[0].Quiz[0].CorrectAnswer = "B"

	var paths []string
	for _, issue := range c.Check() {
		paths = append(paths, issue.Path)
	}
	assert.ElementsMatch(t, []string{
		"modules",
		"modules[0].weekNumber",
		"modules[0].deliveryMode",
		"modules[0].readings[0].type",
		"modules[0].assignments[0].difficulty",
		"modules[0].assignments[0].rubric",
		"modules[0].quiz[0].correctAnswer",
	}, paths)
}

func TestCheck_ZeroWeeks(t *testing.T) {
	issues := (&Course{}).Check()
	require.Len(t, issues, 1)
	assert.Equal(t, "totalWeeks", issues[0].Path)
	assert.Equal(t, "totalWeeks: expected at least 1, got 0", issues[0].String())
}

func TestAssignmentTotalRubricWeight(t *testing.T) {
	assert.Equal(t, 0.0, Assignment{}.TotalRubricWeight())
	assert.InDelta(t, 100.0, consistentCourse().Modules[0].Assignments[0].TotalRubricWeight(), 1e-9)
}

func TestEnumValidity(t *testing.T) {
	for _, m := range DeliveryModes() {
		assert.True(t, m.Valid())
	}
	for _, r := range ReadingTypes() {
		assert.True(t, r.Valid())
	}
	for _, d := range Difficulties() {
		assert.True(t, d.Valid())
	}
	assert.False(t, DeliveryMode("lecture").Valid())
	assert.False(t, ReadingType("").Valid())
	assert.False(t, Difficulty("Hard").Valid())
}

func TestCourseJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(consistentCourse())
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"id", "title", "description", "targetAudience", "level", "totalWeeks", "modules", "createdAt"} {
		assert.Contains(t, raw, key)
	}
	module := raw["modules"].([]interface{})[0].(map[string]interface{})
	reading := module["readings"].([]interface{})[0].(map[string]interface{})
	assert.NotContains(t, reading, "link", "empty links are omitted")
}
