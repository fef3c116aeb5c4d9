package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/skillsage/internal/types"
)

func TestPrintQuestions(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	questions := []types.Question{
		{ID: 1, Question: "How do you approach a new problem?", Options: []string{"Research first", "Dive in"}},
		{ID: 2, Question: "Preferred work style?", Options: []string{"Alone", "In a team"}},
	}

	p.PrintQuestions(questions, map[int]string{2: "In a team"})
	output := buf.String()

	assert.Contains(t, output, "ASSESSMENT QUESTIONS")
	assert.Contains(t, output, "Q1. How do you approach a new problem?")
	assert.Contains(t, output, "a) Research first")
	assert.Contains(t, output, "✓ b) In a team")
	assert.NotContains(t, output, "✓ a) Research first")
}

func TestPrintQuestions_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintQuestions(nil, nil)
	assert.Empty(t, buf.String())
}

func TestPrintDashboard(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	d := &types.DashboardData{
		ReadinessScore:   72,
		ReadinessLabel:   types.ReadinessHigh,
		TargetRole:       "Data Scientist",
		SkillMatch:       72,
		TimeToReady:      "4 months",
		WeeklyStudyHours: 10,
		Roadmap: []types.RoadmapStep{
			{Step: "Phase 1", Description: "Statistics", Status: types.StepCompleted},
			{Step: "Phase 2", Description: "Machine Learning", Status: types.StepInProgress},
			{Step: "Phase 3", Description: "Deployment", Status: types.StepLocked},
		},
		ExistingSkills:  []string{"Python"},
		MissingSkills:   []string{"SQL", "Spark", "Docker", "Airflow", "dbt", "Kafka", "Tableau"},
		ProgressionData: []types.ProgressPoint{{Week: "Week 1", Score: 20}, {Week: "Week 5", Score: 72}},
		AISuggestions:   []string{"Build a portfolio project"},
	}

	p.PrintDashboard(d)
	output := buf.String()

	assert.Contains(t, output, "CAREER READINESS DASHBOARD")
	assert.Contains(t, output, "Data Scientist")
	assert.Contains(t, output, "72/100 (High)")
	assert.Contains(t, output, "10/week")
	assert.Contains(t, output, "✓ Phase 1: Statistics")
	assert.Contains(t, output, "▶ Phase 2: Machine Learning")
	assert.Contains(t, output, "... and 2 more")
	assert.Contains(t, output, "20 → 72")
	assert.Contains(t, output, "Build a portfolio project")
}

func TestPrintDashboard_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDashboard(nil)
	assert.Empty(t, buf.String())
}

func TestPrintCourses(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	courses := make([]types.Course, 7)
	for i := range courses {
		courses[i] = types.Course{
			Platform:   "Coursera",
			Title:      "Course " + string(rune('A'+i)),
			Duration:   "4 weeks",
			Difficulty: types.DifficultyBeginner,
			Rating:     4.6,
		}
	}

	p.PrintCourses("FREE COURSES", courses)
	output := buf.String()

	assert.Contains(t, output, "FREE COURSES")
	assert.Contains(t, output, "• Course A (Coursera)")
	assert.Contains(t, output, "★ 4.6")
	assert.NotContains(t, output, "Course F")
	assert.Contains(t, output, "... and 2 more courses")
}

func TestPrintBranchOptions(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBranchOptions("Civil", types.OptionsForBranch("Civil"))
	output := buf.String()

	assert.Contains(t, output, "CIVIL")
	assert.Contains(t, output, "• Revit")
	assert.Contains(t, output, "• Urban Planning")
}

func TestPrintCatalog(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCatalog(types.NewCatalogResponse())
	output := buf.String()

	assert.Contains(t, output, "CATALOG")
	assert.Contains(t, output, "• Business/MBA")
	assert.Contains(t, output, "• Graduate")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 200))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ééééééé...", truncate(strings.Repeat("é", 20), 10))
}
