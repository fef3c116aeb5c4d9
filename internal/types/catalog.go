package types

// Branches lists the academic branches a student can pick, in display order.
var Branches = []string{
	"Computer Science",
	"Information Technology",
	"Electronics",
	"Mechanical",
	"Civil",
	"Business/MBA",
}

// Years lists the academic years a student can pick, in display order.
var Years = []string{"1st Year", "2nd Year", "3rd Year", "4th Year", "Graduate"}

// DefaultBranch is the branch whose news feed is shown when none is selected.
const DefaultBranch = "Computer Science"

// BranchOptions holds the candidate skills and interests offered for a branch.
type BranchOptions struct {
	Skills    []string `json:"skills"`
	Interests []string `json:"interests"`
}

// NewsType classifies a notification item.
type NewsType string

// Notification item kinds.
const (
	NewsTypeNews  NewsType = "news"
	NewsTypeAlert NewsType = "alert"
)

// NewsItem is one entry of a branch notification feed.
type NewsItem struct {
	Title string   `json:"title"`
	Time  string   `json:"time"`
	Type  NewsType `json:"type"`
}

// DefaultSkills and DefaultInterests are offered when the branch is unknown or unset.
var (
	DefaultSkills    = []string{"Communication", "Teamwork", "Problem Solving", "Leadership", "Time Management"}
	DefaultInterests = []string{"Technology", "Management", "Design", "Research", "Entrepreneurship"}
)

var branchOptions = map[string]BranchOptions{
	"Computer Science": {
		Skills:    []string{"Python", "Java", "C++", "Data Structures", "Algorithms", "Web Dev", "Git", "SQL"},
		Interests: []string{"Software Engineering", "AI/ML", "Cybersecurity", "Game Dev", "Cloud Computing"},
	},
	"Information Technology": {
		Skills:    []string{"Java", "HTML/CSS", "JavaScript", "Networking", "DBMS", "OS", "System Design"},
		Interests: []string{"Web Development", "System Admin", "Cloud", "Data Analytics", "IoT"},
	},
	"Electronics": {
		Skills:    []string{"C", "Matlab", "Verilog", "Embedded Systems", "Circuit Design", "IoT", "Signal Processing"},
		Interests: []string{"VLSI", "Embedded Systems", "Robotics", "Communication Systems", "Consumer Electronics"},
	},
	"Mechanical": {
		Skills:    []string{"AutoCAD", "SolidWorks", "ANSYS", "Thermodynamics", "Mechanics", "Matlab"},
		Interests: []string{"Automotive", "Robotics", "Manufacturing", "Aerospace", "Thermal Engineering"},
	},
	"Civil": {
		Skills:    []string{"AutoCAD", "Revit", "STAAD Pro", "Surveying", "Structural Analysis"},
		Interests: []string{"Structural Eng", "Urban Planning", "Construction Mgmt", "Environmental Eng"},
	},
	"Business/MBA": {
		Skills:    []string{"Excel", "Data Analysis", "Project Management", "Marketing", "Finance", "Communication"},
		Interests: []string{"Product Management", "Digital Marketing", "Finance", "Consulting", "HR"},
	},
}

var branchNews = map[string][]NewsItem{
	"Computer Science": {
		{Title: "AI agents are reshaping entry-level software roles", Time: "2h ago", Type: NewsTypeNews},
		{Title: "GitHub Copilot Workspace is now available for preview", Time: "5h ago", Type: NewsTypeNews},
		{Title: "Hiring Alert: Demand for Rust developers up by 40%", Time: "1d ago", Type: NewsTypeAlert},
	},
	"Information Technology": {
		{Title: "Cloud Security certifications are top priority for 2025", Time: "3h ago", Type: NewsTypeNews},
		{Title: "New vulnerability found in popular open-source libs", Time: "6h ago", Type: NewsTypeAlert},
		{Title: "Google updates Data Analytics professional certificate", Time: "1d ago", Type: NewsTypeNews},
	},
	"Electronics": {
		{Title: "Semiconductor industry sees 15% growth in Q3", Time: "4h ago", Type: NewsTypeNews},
		{Title: "New Embedded Rust framework gains popularity", Time: "1d ago", Type: NewsTypeNews},
		{Title: "Internship season opening for VLSI design roles", Time: "2d ago", Type: NewsTypeAlert},
	},
	"Mechanical": {
		{Title: "Tesla announces new automation engineering roles", Time: "5h ago", Type: NewsTypeNews},
		{Title: "Sustainable manufacturing trends for 2025", Time: "1d ago", Type: NewsTypeNews},
		{Title: "SolidWorks 2025 features leaked", Time: "2d ago", Type: NewsTypeNews},
	},
	"Civil": {
		{Title: "Green Building certification requirements updated", Time: "6h ago", Type: NewsTypeAlert},
		{Title: "Smart City projects approved in 5 major metros", Time: "1d ago", Type: NewsTypeNews},
		{Title: "BIM adoption rate increases in public sector", Time: "2d ago", Type: NewsTypeNews},
	},
	"Business/MBA": {
		{Title: "Fintech startups raising record seed rounds", Time: "3h ago", Type: NewsTypeNews},
		{Title: "Marketing trends shifting towards AI-generated content", Time: "1d ago", Type: NewsTypeNews},
		{Title: "Remote project management tools comparison 2025", Time: "2d ago", Type: NewsTypeNews},
	},
}

// IsBranch reports whether b is a known branch.
func IsBranch(b string) bool {
	_, ok := branchOptions[b]
	return ok
}

// IsYear reports whether y is a known academic year.
func IsYear(y string) bool {
	for _, known := range Years {
		if known == y {
			return true
		}
	}
	return false
}

// OptionsForBranch returns the candidate skills and interests for a branch,
// falling back to the defaults for an unknown or empty branch. The returned
// slices are copies.
func OptionsForBranch(branch string) BranchOptions {
	opts, ok := branchOptions[branch]
	if !ok {
		opts = BranchOptions{Skills: DefaultSkills, Interests: DefaultInterests}
	}
	return BranchOptions{
		Skills:    append([]string{}, opts.Skills...),
		Interests: append([]string{}, opts.Interests...),
	}
}

// NewsForBranch returns the notification feed for a branch, defaulting to the
// Computer Science feed.
func NewsForBranch(branch string) []NewsItem {
	items, ok := branchNews[branch]
	if !ok {
		items = branchNews[DefaultBranch]
	}
	return append([]NewsItem{}, items...)
}
