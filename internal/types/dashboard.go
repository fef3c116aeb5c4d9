package types

// ReadinessLabel is the ordered four-level readiness scale.
type ReadinessLabel string

// Readiness labels, lowest first.
const (
	ReadinessPoor      ReadinessLabel = "Poor"
	ReadinessMedium    ReadinessLabel = "Medium"
	ReadinessHigh      ReadinessLabel = "High"
	ReadinessExcellent ReadinessLabel = "Excellent"
)

// Valid reports whether the label is one of the four levels.
func (l ReadinessLabel) Valid() bool {
	switch l {
	case ReadinessPoor, ReadinessMedium, ReadinessHigh, ReadinessExcellent:
		return true
	}
	return false
}

// LabelForScore derives a readiness label from a 0-100 score.
func LabelForScore(score int) ReadinessLabel {
	switch {
	case score >= 85:
		return ReadinessExcellent
	case score >= 65:
		return ReadinessHigh
	case score >= 40:
		return ReadinessMedium
	default:
		return ReadinessPoor
	}
}

// StepStatus is the display status of a roadmap step.
type StepStatus string

// Roadmap step statuses.
const (
	StepCompleted  StepStatus = "completed"
	StepInProgress StepStatus = "in-progress"
	StepLocked     StepStatus = "locked"
)

// StatusForPosition returns the fixed positional status: the first step is
// completed, the second in progress, everything after is locked.
func StatusForPosition(index int) StepStatus {
	switch index {
	case 0:
		return StepCompleted
	case 1:
		return StepInProgress
	default:
		return StepLocked
	}
}

// Difficulty is the three-level course difficulty.
type Difficulty string

// Course difficulties.
const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// Valid reports whether d is one of the three difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// RoadmapStep is one phase of the learning plan.
type RoadmapStep struct {
	Step        string     `json:"step"`
	Description string     `json:"description"`
	Status      StepStatus `json:"status"`
}

// SkillScore is a named 0-100 mastery score.
type SkillScore struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// ProgressPoint is one point of the readiness progression series.
type ProgressPoint struct {
	Week  string `json:"week"`
	Score int    `json:"score"`
}

// Course is a read-only course recommendation. URL is always derived from
// Platform and Title, never supplied by the provider.
type Course struct {
	Platform    string     `json:"platform"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Description string     `json:"description"`
	Duration    string     `json:"duration"`
	Difficulty  Difficulty `json:"difficulty"`
	Rating      float64    `json:"rating"`
}

// CourseLists groups free and paid recommendations.
type CourseLists struct {
	Free []Course `json:"free"`
	Paid []Course `json:"paid"`
}

// CourseTab selects one of the course lists.
type CourseTab string

// Course tabs.
const (
	CourseTabFree CourseTab = "free"
	CourseTabPaid CourseTab = "paid"
)

// DashboardData is an immutable readiness snapshot. A new assessment always
// produces a new value; it is never patched in place.
type DashboardData struct {
	ReadinessScore   int             `json:"readinessScore"`
	ReadinessLabel   ReadinessLabel  `json:"readinessLabel"`
	TargetRole       string          `json:"targetRole"`
	WhyFit           string          `json:"whyFit,omitempty"`
	SkillMatch       int             `json:"skillMatch"`
	TimeToReady      string          `json:"timeToReady"`
	Roadmap          []RoadmapStep   `json:"roadmap"`
	ExistingSkills   []string        `json:"existingSkills"`
	MissingSkills    []string        `json:"missingSkills"`
	SkillMastery     []SkillScore    `json:"skillMastery"`
	ProgressionData  []ProgressPoint `json:"progressionData"`
	Courses          CourseLists     `json:"courses"`
	ProjectIdeas     []string        `json:"projectIdeas"`
	WeeklyStudyHours int             `json:"weeklyStudyHours,omitempty"`
	AISuggestions    []string        `json:"aiSuggestions"`
}

// CoursesFor returns the course list for a tab. Unknown tabs select free courses.
func (d *DashboardData) CoursesFor(tab CourseTab) []Course {
	if tab == CourseTabPaid {
		return d.Courses.Paid
	}
	return d.Courses.Free
}
