package assessment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/skillsage/internal/llm"
	"github.com/jonathan/skillsage/internal/prompts"
	"github.com/jonathan/skillsage/internal/schemas"
	"github.com/jonathan/skillsage/internal/types"
)

// questionsInput is the only profile data the question adapter forwards.
type questionsInput struct {
	Branch        string   `json:"branch"`
	CareerGoal    string   `json:"careerGoal"`
	ResumeSummary string   `json:"resumeSummary"`
	Interests     []string `json:"interests"`
}

func newQuestionsInput(p types.Profile) questionsInput {
	summary := "No resume"
	if p.HasResume() {
		summary = "Has resume"
	}
	interests := p.Interests
	if interests == nil {
		interests = []string{}
	}
	return questionsInput{
		Branch:        p.Branch,
		CareerGoal:    p.CareerGoal,
		ResumeSummary: summary,
		Interests:     interests,
	}
}

// GenerateQuestions returns six questions tailored to the profile, or the
// fixed fallback set if anything about the provider call goes wrong. It never
// mixes provider and fallback questions and never modifies the profile.
func (g *Generator) GenerateQuestions(ctx context.Context, profile types.Profile) []types.Question {
	ctx, span := g.tracer.Start(ctx, "assessment.generate_questions")
	defer span.End()

	questions, err := g.requestQuestions(ctx, profile)
	g.finish(span, AdapterQuestions, err)
	if err != nil {
		return FallbackQuestions()
	}
	return questions
}

func (g *Generator) requestQuestions(ctx context.Context, profile types.Profile) ([]types.Question, error) {
	input, err := json.Marshal(newQuestionsInput(profile))
	if err != nil {
		return nil, fmt.Errorf("failed to encode question input: %w", err)
	}
	prompt, err := prompts.Render(prompts.KeyGenerateQuestions, string(input))
	if err != nil {
		return nil, err
	}

	text, err := g.callJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, err
	}
	return parseQuestions(text)
}

// parseQuestions decodes and checks a provider question batch. Only the first
// six questions are kept, and only those are checked.
func parseQuestions(text string) ([]types.Question, error) {
	text = llm.CleanJSONBlock(text)
	if !json.Valid([]byte(text)) {
		return nil, &ParseError{Message: "response is not valid JSON"}
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, &ValidationError{Field: "(root)", Message: "question batch is not a list", Cause: err}
	}
	if len(items) < types.QuestionBatchSize {
		return nil, &ValidationError{Field: "questions", Message: fmt.Sprintf("got %d questions, need %d", len(items), types.QuestionBatchSize)}
	}
	batch, err := json.Marshal(items[:types.QuestionBatchSize])
	if err != nil {
		return nil, &ParseError{Message: "failed to encode question batch", Cause: err}
	}
	if err := schemas.Validate(schemas.Questions, string(batch)); err != nil {
		return nil, &ValidationError{Field: schemaField(err), Message: "question batch does not match schema", Cause: err}
	}

	var questions []types.Question
	if err := json.Unmarshal(batch, &questions); err != nil {
		return nil, &ParseError{Message: "failed to decode questions", Cause: err}
	}

	seen := make(map[int]bool, len(questions))
	for _, q := range questions {
		if seen[q.ID] {
			return nil, &ValidationError{Field: "id", Message: fmt.Sprintf("duplicate question id %d", q.ID)}
		}
		seen[q.ID] = true
		if len(q.Options) < 2 {
			return nil, &ValidationError{Field: "options", Message: fmt.Sprintf("question %d has fewer than two options", q.ID)}
		}
	}
	return questions, nil
}
