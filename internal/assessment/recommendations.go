package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonathan/skillsage/internal/llm"
	"github.com/jonathan/skillsage/internal/prompts"
	"github.com/jonathan/skillsage/internal/schemas"
	"github.com/jonathan/skillsage/internal/types"
)

type personalInfo struct {
	Name          string   `json:"name"`
	Branch        string   `json:"branch"`
	Year          string   `json:"year"`
	CurrentSkills []string `json:"currentSkills"`
	Interests     []string `json:"interests"`
	CareerGoal    string   `json:"careerGoal"`
	ExtraInfo     string   `json:"extraInfo"`
}

// recommendationInput is the full profile snapshot sent for assessment.
type recommendationInput struct {
	Personal     personalInfo   `json:"personal"`
	ResumeText   string         `json:"resumeText"`
	Psychometric map[int]string `json:"psychometric"`
}

func newRecommendationInput(p types.Profile) recommendationInput {
	orEmpty := func(s []string) []string {
		if s == nil {
			return []string{}
		}
		return s
	}
	answers := p.PsychometricAnswers
	if answers == nil {
		answers = map[int]string{}
	}
	return recommendationInput{
		Personal: personalInfo{
			Name:          p.Name,
			Branch:        p.Branch,
			Year:          p.Year,
			CurrentSkills: orEmpty(p.CurrentSkills),
			Interests:     orEmpty(p.Interests),
			CareerGoal:    p.CareerGoal,
			ExtraInfo:     p.ExtraInfo,
		},
		ResumeText:   p.ResumeText,
		Psychometric: answers,
	}
}

// ProviderAssessment is the provider's response shape. Everything outside
// Summary is optional and defaulted during mapping.
type ProviderAssessment struct {
	Summary       ProviderSummary   `json:"summary"`
	Roles         []ProviderRole    `json:"roles"`
	Analytics     ProviderAnalytics `json:"analytics"`
	Courses       ProviderCourses   `json:"courses"`
	AISuggestions []string          `json:"aiSuggestions"`
}

type ProviderSummary struct {
	OverallReadinessPercent float64 `json:"overallReadinessPercent"`
	ReadinessLevel          string  `json:"readinessLevel"`
	TargetPrimaryRole       string  `json:"targetPrimaryRole"`
	EstTimeToBecomeJobReady string  `json:"estTimeToBecomeJobReady"`
}

type ProviderRole struct {
	Title          string   `json:"title"`
	WhyFit         string   `json:"whyFit"`
	RequiredSkills []string `json:"requiredSkills"`
	ExistingSkills []string `json:"existingSkills"`
	MissingSkills  []string `json:"missingSkills"`
	RoadmapSteps   []string `json:"roadmapSteps"`
	ProjectIdeas   []string `json:"projectIdeas"`
}

type ProviderAnalytics struct {
	SkillMastery []struct {
		Skill   string  `json:"skill"`
		Percent float64 `json:"percent"`
	} `json:"skillMastery"`
	WeeklyStudyHoursSuggestion float64 `json:"weeklyStudyHoursSuggestion"`
}

type ProviderCourses struct {
	Free []ProviderCourse `json:"free"`
	Paid []ProviderCourse `json:"paid"`
}

type ProviderCourse struct {
	Platform    string  `json:"platform"`
	Title       string  `json:"title"`
	ShortReason string  `json:"shortReason"`
	Duration    string  `json:"duration"`
	Difficulty  string  `json:"difficulty"`
	Rating      float64 `json:"rating"`
}

// GenerateRecommendations assesses the profile and returns a dashboard
// snapshot. On any failure it returns the demo dashboard, personalized with
// the profile's career goal and flagged in the suggestions.
func (g *Generator) GenerateRecommendations(ctx context.Context, profile types.Profile) types.DashboardData {
	ctx, span := g.tracer.Start(ctx, "assessment.generate_recommendations")
	defer span.End()

	resp, err := g.requestRecommendations(ctx, profile)
	g.finish(span, AdapterRecommendations, err)
	if err != nil {
		return FallbackDashboard(profile.CareerGoal, g.random)
	}
	return MapDashboard(resp, g.random)
}

func (g *Generator) requestRecommendations(ctx context.Context, profile types.Profile) (*ProviderAssessment, error) {
	input, err := json.Marshal(newRecommendationInput(profile))
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}
	prompt, err := prompts.Render(prompts.KeyGenerateAssessment, string(input))
	if err != nil {
		return nil, err
	}

	text, err := g.callJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, err
	}
	return parseAssessment(text)
}

func parseAssessment(text string) (*ProviderAssessment, error) {
	text = llm.CleanJSONBlock(text)
	if !json.Valid([]byte(text)) {
		return nil, &ParseError{Message: "response is not valid JSON"}
	}
	if err := schemas.Validate(schemas.Recommendation, text); err != nil {
		return nil, &ValidationError{Field: schemaField(err), Message: "assessment does not match schema", Cause: err}
	}

	var resp ProviderAssessment
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, &ParseError{Message: "failed to decode assessment", Cause: err}
	}
	return &resp, nil
}

// schemaField names the first field a schema violation points at.
func schemaField(err error) string {
	var vErr *schemas.ValidationError
	if errors.As(err, &vErr) && len(vErr.Errors) > 0 {
		return vErr.Errors[0].Field
	}
	return "(root)"
}
