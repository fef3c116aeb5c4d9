package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/skillsage/internal/types"
)

func TestFilterCourses_Query(t *testing.T) {
	free := DemoDashboard().Courses.Free

	got := FilterCourses(free, DifficultyAll, "react")
	if assert.Len(t, got, 1) {
		assert.Equal(t, "React JS Full Course 2024", got[0].Title)
	}

	tests := []struct {
		name   string
		query  string
		titles []string
	}{
		{name: "empty query", query: "", titles: []string{"React JS Full Course 2024", "JavaScript Algorithms and Data Structures", "Web Docs - Accessibility"}},
		{name: "short words ignored", query: "js a", titles: []string{"React JS Full Course 2024", "JavaScript Algorithms and Data Structures", "Web Docs - Accessibility"}},
		{name: "short non-ASCII words ignored", query: "日本 ñu", titles: []string{"React JS Full Course 2024", "JavaScript Algorithms and Data Structures", "Web Docs - Accessibility"}},
		{name: "platform match", query: "mdn", titles: []string{"Web Docs - Accessibility"}},
		{name: "any word matches", query: "Docker React", titles: []string{"React JS Full Course 2024"}},
		{name: "case insensitive", query: "ALGORITHMS", titles: []string{"JavaScript Algorithms and Data Structures"}},
		{name: "no match", query: "kubernetes", titles: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterCourses(free, "", tt.query)
			titles := make([]string, 0, len(got))
			for _, c := range got {
				titles = append(titles, c.Title)
			}
			assert.Equal(t, tt.titles, titles)
		})
	}
}

func TestFilterCourses_Difficulty(t *testing.T) {
	courses := []types.Course{
		{Title: "A", Difficulty: types.DifficultyBeginner},
		{Title: "B", Difficulty: types.DifficultyAdvanced},
		{Title: "C", Difficulty: types.DifficultyBeginner},
		{Title: "D", Difficulty: types.DifficultyIntermediate},
	}

	got := FilterCourses(courses, "Beginner", "")
	assert.Equal(t, []types.Course{courses[0], courses[2]}, got)

	assert.Len(t, FilterCourses(courses, DifficultyAll, ""), 4)
	assert.Empty(t, FilterCourses(courses, "Expert", ""))
}

func TestFilterCourses_Idempotent(t *testing.T) {
	paid := DemoDashboard().Courses.Paid
	original := append([]types.Course{}, paid...)

	first := FilterCourses(paid, "Beginner", "web")
	second := FilterCourses(paid, "Beginner", "web")

	if assert.Len(t, first, 1) {
		assert.Equal(t, "The Complete 2024 Web Development Bootcamp", first[0].Title)
	}
	assert.Equal(t, first, second)
	assert.Equal(t, original, paid)
}

func TestSearchSkills(t *testing.T) {
	d := DemoDashboard()

	got := SearchSkills(&d, "script")
	assert.Equal(t, []string{"JavaScript"}, got.Existing)
	assert.Equal(t, []string{"TypeScript"}, got.Missing)

	all := SearchSkills(&d, "")
	assert.Equal(t, d.ExistingSkills, all.Existing)
	assert.Equal(t, d.MissingSkills, all.Missing)

	none := SearchSkills(nil, "go")
	assert.Empty(t, none.Existing)
	assert.Empty(t, none.Missing)
}

func TestRoadmapKeywords(t *testing.T) {
	tests := []struct {
		name string
		step types.RoadmapStep
		want string
	}{
		{name: "drops short words", step: types.RoadmapStep{Step: "Phase 1", Description: "CS Basics, Algorithms, Git"}, want: "Basics Algorithms"},
		{name: "drops filler words", step: types.RoadmapStep{Step: "Phase 2", Description: "Learn Advanced JavaScript, React Patterns"}, want: "JavaScript React Patterns"},
		{name: "first three only", step: types.RoadmapStep{Step: "Phase 3", Description: "Docker Kubernetes Terraform Ansible"}, want: "Docker Kubernetes Terraform"},
		{name: "counts characters not bytes", step: types.RoadmapStep{Step: "Phase 4", Description: "Çay Docker Über"}, want: "Docker Über"},
		{name: "falls back to label", step: types.RoadmapStep{Step: "Interview Prep", Description: "Do it. Now"}, want: "Interview Prep"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoadmapKeywords(tt.step))
		})
	}
}
