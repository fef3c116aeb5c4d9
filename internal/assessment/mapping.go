package assessment

import (
	"fmt"
	"math"
	"net/url"

	"github.com/jonathan/skillsage/internal/types"
)

// Course defaults applied when the provider leaves a field empty.
const (
	DefaultCourseDescription = "Recommended for your learning path"
	DefaultCourseDuration    = "Flexible"
	DefaultCourseRating      = 4.5
	MinCourseRating          = 4.0
	MaxCourseRating          = 5.0
)

// CourseURL builds the search link shown for a course. Links are never taken
// from the provider.
func CourseURL(platform, title string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(platform+" "+title+" course")
}

// MapDashboard converts a provider assessment into a dashboard snapshot. The
// only impurity is the noise in the synthesized progression curve.
func MapDashboard(resp *ProviderAssessment, random func() float64) types.DashboardData {
	score := clampPercent(resp.Summary.OverallReadinessPercent)

	label := types.ReadinessLabel(resp.Summary.ReadinessLevel)
	if !label.Valid() {
		label = types.LabelForScore(score)
	}

	var primary ProviderRole
	if len(resp.Roles) > 0 {
		primary = resp.Roles[0]
	}

	roadmap := mapRoadmap(primary.RoadmapSteps)
	if len(roadmap) == 0 {
		roadmap = demoRoadmap()
	}

	mastery := make([]types.SkillScore, 0, len(resp.Analytics.SkillMastery))
	for _, m := range resp.Analytics.SkillMastery {
		mastery = append(mastery, types.SkillScore{Name: m.Skill, Score: clampPercent(m.Percent)})
	}

	hours := int(math.Round(resp.Analytics.WeeklyStudyHoursSuggestion))
	if hours < 0 {
		hours = 0
	}

	return types.DashboardData{
		ReadinessScore:   score,
		ReadinessLabel:   label,
		TargetRole:       resp.Summary.TargetPrimaryRole,
		WhyFit:           primary.WhyFit,
		SkillMatch:       score,
		TimeToReady:      resp.Summary.EstTimeToBecomeJobReady,
		Roadmap:          roadmap,
		ExistingSkills:   nonNil(primary.ExistingSkills),
		MissingSkills:    nonNil(primary.MissingSkills),
		SkillMastery:     mastery,
		ProgressionData:  GenerateProgression(score, random),
		Courses:          types.CourseLists{Free: mapCourses(resp.Courses.Free), Paid: mapCourses(resp.Courses.Paid)},
		ProjectIdeas:     nonNil(primary.ProjectIdeas),
		WeeklyStudyHours: hours,
		AISuggestions:    nonNil(resp.AISuggestions),
	}
}

func mapRoadmap(steps []string) []types.RoadmapStep {
	out := make([]types.RoadmapStep, 0, len(steps))
	for i, step := range steps {
		out = append(out, types.RoadmapStep{
			Step:        fmt.Sprintf("Phase %d", i+1),
			Description: step,
			Status:      types.StatusForPosition(i),
		})
	}
	return out
}

func mapCourses(courses []ProviderCourse) []types.Course {
	out := make([]types.Course, 0, len(courses))
	for _, c := range courses {
		out = append(out, mapCourse(c))
	}
	return out
}

func mapCourse(c ProviderCourse) types.Course {
	course := types.Course{
		Platform:    c.Platform,
		Title:       c.Title,
		URL:         CourseURL(c.Platform, c.Title),
		Description: c.ShortReason,
		Duration:    c.Duration,
		Difficulty:  types.Difficulty(c.Difficulty),
		Rating:      c.Rating,
	}
	if course.Description == "" {
		course.Description = DefaultCourseDescription
	}
	if course.Duration == "" {
		course.Duration = DefaultCourseDuration
	}
	if !course.Difficulty.Valid() {
		course.Difficulty = types.DifficultyBeginner
	}
	switch {
	case course.Rating <= 0:
		course.Rating = DefaultCourseRating
	case course.Rating < MinCourseRating:
		course.Rating = MinCourseRating
	case course.Rating > MaxCourseRating:
		course.Rating = MaxCourseRating
	}
	return course
}

func clampPercent(v float64) int {
	n := int(math.Round(v))
	return max(0, min(100, n))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
