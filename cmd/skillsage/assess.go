package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/skillsage/internal/assessment"
	"github.com/jonathan/skillsage/internal/ingestion"
	"github.com/jonathan/skillsage/internal/llm"
	"github.com/jonathan/skillsage/internal/observability"
	"github.com/jonathan/skillsage/internal/schemas"
	"github.com/jonathan/skillsage/internal/session"
	"github.com/jonathan/skillsage/internal/types"
)

var (
	assessProfilePath string
	assessResumePath  string
	assessAnswersPath string
	assessJSON        bool
	assessOffline     bool
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Run an assessment for a profile file",
	Long: `Run the full assessment flow without the HTTP server: generate a question batch for the
profile, answer it (from --answers, otherwise with the first option of every open question),
then build and print the readiness dashboard.`,
	RunE: runAssess,
}

func init() {
	assessCmd.Flags().StringVarP(&assessProfilePath, "profile", "p", "", "Path to a profile JSON file (required)")
	assessCmd.Flags().StringVarP(&assessResumePath, "resume", "r", "", "Path to a resume (.pdf, .docx, .txt, .md)")
	assessCmd.Flags().StringVarP(&assessAnswersPath, "answers", "a", "", "Path to a JSON object of question id to chosen option")
	assessCmd.Flags().BoolVar(&assessJSON, "json", false, "Print the result as JSON")
	assessCmd.Flags().BoolVar(&assessOffline, "offline", false, "Skip the AI provider and use the built-in fallback data")

	if err := assessCmd.MarkFlagRequired("profile"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(assessCmd)
}

// AssessResult is the --json output of the assess command.
type AssessResult struct {
	Profile   types.Profile       `json:"profile"`
	Questions []types.Question    `json:"questions"`
	Dashboard types.DashboardData `json:"dashboard"`
}

func runAssess(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	profile, err := loadProfile(assessProfilePath)
	if err != nil {
		return err
	}
	if assessResumePath != "" {
		doc, err := ingestion.IngestFromFile(assessResumePath)
		if err != nil {
			return fmt.Errorf("failed to read resume: %w", err)
		}
		profile.ResumeText = doc.Text
	}
	if missing := profile.MissingForAssessment(); len(missing) > 0 {
		return fmt.Errorf("profile incomplete: missing %s", strings.Join(missing, ", "))
	}

	var answers map[int]string
	if assessAnswersPath != "" {
		if answers, err = loadAnswers(assessAnswersPath); err != nil {
			return err
		}
	}

	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}
	defer log.Sync()

	var client llm.Client
	switch {
	case assessOffline:
	case cfg.LLM.APIKey == "":
		log.Warn("GEMINI_API_KEY not set, using fallback data")
	default:
		llmCfg := llm.DefaultGeminiConfig()
		if cfg.LLM.Model != "" {
			llmCfg = llmCfg.WithModel(llm.TierStandard, cfg.LLM.Model)
		}
		client, err = llm.NewClient(ctx, llmCfg, cfg.LLM.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create AI client: %w", err)
		}
		defer func() { _ = client.Close() }()
	}
	generator := assessment.NewGenerator(client, log.With("component", "assessment"),
		assessment.WithTimeout(cfg.LLM.Timeout))

	sess := session.New(uuid.New())
	sess.Profile = profile

	ticket := sess.BeginQuestions()
	sess.AssignQuestions(ticket, generator.GenerateQuestions(ctx, sess.Profile.Clone()))

	if len(answers) > 0 {
		if err := sess.RecordAnswers(answers); err != nil {
			return fmt.Errorf("invalid answers file: %w", err)
		}
	}
	if err := autoAnswer(sess); err != nil {
		return err
	}

	ticket = sess.BeginDashboard()
	sess.AssignDashboard(ticket, generator.GenerateRecommendations(ctx, sess.Profile.Clone()))

	out := cmd.OutOrStdout()
	if assessJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(AssessResult{
			Profile:   sess.Profile,
			Questions: sess.Questions,
			Dashboard: *sess.Dashboard,
		})
	}

	printer := observability.NewPrinter(out)
	printer.PrintQuestions(sess.Questions, sess.Profile.PsychometricAnswers)
	printer.PrintDashboard(sess.Dashboard)
	return nil
}

// loadProfile validates a profile document against the embedded schema before
// decoding it.
func loadProfile(path string) (types.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}
	if err := schemas.Validate(schemas.Profile, string(data)); err != nil {
		return types.Profile{}, fmt.Errorf("invalid profile %s: %w", path, err)
	}

	profile := types.NewProfile()
	if err := json.Unmarshal(data, &profile); err != nil {
		return types.Profile{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	profile.Branch = strings.TrimSpace(profile.Branch)
	profile.Year = strings.TrimSpace(profile.Year)
	profile.CareerGoal = strings.TrimSpace(profile.CareerGoal)
	return profile, nil
}

func loadAnswers(path string) (map[int]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers: %w", err)
	}
	var answers map[int]string
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("failed to decode answers: %w", err)
	}
	return answers, nil
}

// autoAnswer picks the first option for every question still unanswered.
func autoAnswer(sess *session.Session) error {
	open := make(map[int]bool)
	for _, id := range sess.Unanswered() {
		open[id] = true
	}
	picks := make(map[int]string, len(open))
	for _, q := range sess.Questions {
		if open[q.ID] && len(q.Options) > 0 {
			picks[q.ID] = q.Options[0]
		}
	}
	return sess.RecordAnswers(picks)
}
