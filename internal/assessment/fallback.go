package assessment

import (
	"github.com/jonathan/skillsage/internal/types"
)

// FallbackNotice is prepended to the suggestions of a demo dashboard.
const FallbackNotice = "AI Service Unavailable - Showing Demo Data"

var fallbackQuestions = []types.Question{
	{ID: 1, Question: "How do you prefer to tackle a new problem?", Options: []string{"Research first", "Experiment immediately", "Ask for help"}},
	{ID: 2, Question: "What motivates you most?", Options: []string{"Recognition", "Learning new things", "Financial reward"}},
	{ID: 3, Question: "Preferred work environment?", Options: []string{"Structured corporate", "Fast-paced startup", "Freelance/Remote"}},
	{ID: 4, Question: "When stuck on a bug, you:", Options: []string{"Keep trying", "Take a break", "Consult documentation"}},
	{ID: 5, Question: "Ideal team role?", Options: []string{"Leader", "Contributor", "Specialist"}},
	{ID: 6, Question: "Career priority?", Options: []string{"Stability", "Growth", "Impact"}},
}

// FallbackQuestions returns a fresh copy of the fixed six-question set.
func FallbackQuestions() []types.Question {
	return types.CloneQuestions(fallbackQuestions)
}

func demoRoadmap() []types.RoadmapStep {
	steps := []struct{ step, description string }{
		{"Fundamentals", "CS Basics, Algorithms, Git"},
		{"Core Skills", "Advanced JavaScript, React Patterns"},
		{"Backend & DB", "Node.js APIs, PostgreSQL Schema"},
		{"Tools & DevOps", "Docker, CI/CD Pipelines"},
		{"Interview Prep", "System Design, Mock Interviews"},
	}
	out := make([]types.RoadmapStep, len(steps))
	for i, s := range steps {
		out[i] = types.RoadmapStep{Step: s.step, Description: s.description, Status: types.StatusForPosition(i)}
	}
	return out
}

func demoCourse(platform, title, description, duration string, difficulty types.Difficulty, rating float64) types.Course {
	return types.Course{
		Platform:    platform,
		Title:       title,
		URL:         CourseURL(platform, title),
		Description: description,
		Duration:    duration,
		Difficulty:  difficulty,
		Rating:      rating,
	}
}

const demoScore = 68

// DemoDashboard returns the static demo snapshot. Every call builds new
// slices so callers may keep or modify the result.
func DemoDashboard() types.DashboardData {
	return types.DashboardData{
		ReadinessScore: demoScore,
		ReadinessLabel: types.ReadinessMedium,
		TargetRole:     "Full Stack Developer",
		WhyFit:         "Your web fundamentals and interest in building products map well to full stack work.",
		SkillMatch:     72,
		TimeToReady:    "5 Months",
		Roadmap:        demoRoadmap(),
		ExistingSkills: []string{"HTML/CSS", "JavaScript", "React Basics", "Git"},
		MissingSkills:  []string{"TypeScript", "GraphQL", "Docker", "AWS Lambda"},
		SkillMastery: []types.SkillScore{
			{Name: "Frontend", Score: 85},
			{Name: "Backend", Score: 40},
			{Name: "Database", Score: 55},
			{Name: "DevOps", Score: 20},
			{Name: "Soft Skills", Score: 70},
		},
		ProgressionData: []types.ProgressPoint{
			{Week: "Week 1", Score: 10},
			{Week: "Week 2", Score: 25},
			{Week: "Week 3", Score: 45},
			{Week: "Week 4", Score: 55},
			{Week: "Week 5", Score: demoScore},
		},
		Courses: types.CourseLists{
			Free: []types.Course{
				demoCourse("YouTube", "React JS Full Course 2024", "Comprehensive guide to modern React hooks and patterns.", "12h", types.DifficultyBeginner, 4.8),
				demoCourse("FreeCodeCamp", "JavaScript Algorithms and Data Structures", "Interactive coding challenges to master JS fundamentals.", "300h", types.DifficultyIntermediate, 4.9),
				demoCourse("MDN", "Web Docs - Accessibility", "Official documentation for building accessible web apps.", "Reading", types.DifficultyIntermediate, 4.7),
			},
			Paid: []types.Course{
				demoCourse("Udemy", "The Complete 2024 Web Development Bootcamp", "Full stack mastery from HTML to React and Node.", "60h", types.DifficultyBeginner, 4.7),
				demoCourse("Coursera", "Meta Front-End Developer Professional Certificate", "Professional certification designed by Meta engineers.", "7 months", types.DifficultyBeginner, 4.8),
			},
		},
		ProjectIdeas: []string{
			"E-commerce storefront with cart, checkout and an admin panel",
			"Real-time chat app with WebSockets and PostgreSQL persistence",
		},
		WeeklyStudyHours: 10,
		AISuggestions: []string{
			"Focus on building a full-stack project (e.g., E-commerce) to improve your Backend score.",
			"Learn TypeScript immediately; it is highly requested for your target role.",
			"Allocate 30 mins daily for Data Structures & Algorithms to prepare for interviews.",
		},
	}
}

// FallbackDashboard is the demo snapshot personalized for a failed assessment:
// the career goal replaces the target role when set, the suggestions start
// with FallbackNotice and the progression curve is regenerated.
func FallbackDashboard(careerGoal string, random func() float64) types.DashboardData {
	d := DemoDashboard()
	if careerGoal != "" {
		d.TargetRole = careerGoal
	}
	d.AISuggestions = append([]string{FallbackNotice}, d.AISuggestions...)
	d.ProgressionData = GenerateProgression(d.ReadinessScore, random)
	return d
}
