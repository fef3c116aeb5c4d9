package assessment

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/skillsage/internal/types"
)

// DifficultyAll disables difficulty filtering.
const DifficultyAll = "All"

// SkillMatches is the result of a skill search.
type SkillMatches struct {
	Existing []string `json:"existing"`
	Missing  []string `json:"missing"`
}

// SearchSkills filters the existing and missing skill lists independently by
// case-insensitive substring. An empty query matches everything.
func SearchSkills(d *types.DashboardData, query string) SkillMatches {
	if d == nil {
		return SkillMatches{Existing: []string{}, Missing: []string{}}
	}
	q := strings.ToLower(query)
	return SkillMatches{
		Existing: filterStrings(d.ExistingSkills, q),
		Missing:  filterStrings(d.MissingSkills, q),
	}
}

func filterStrings(in []string, lowerQuery string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.Contains(strings.ToLower(s), lowerQuery) {
			out = append(out, s)
		}
	}
	return out
}

// FilterCourses narrows a course list by difficulty ("All" or empty keeps
// every level) and then by query. The query is split on whitespace and words
// of three or more characters are kept; a course matches when any of them
// occurs in its title or platform. A query with no usable words matches
// everything. The input slice is never modified.
func FilterCourses(courses []types.Course, difficulty, query string) []types.Course {
	out := make([]types.Course, 0, len(courses))
	for _, c := range courses {
		if difficulty != "" && difficulty != DifficultyAll && string(c.Difficulty) != difficulty {
			continue
		}
		out = append(out, c)
	}

	words := queryWords(query)
	if len(words) == 0 {
		return out
	}

	matched := out[:0]
	for _, c := range out {
		title := strings.ToLower(c.Title)
		platform := strings.ToLower(c.Platform)
		if slices.ContainsFunc(words, func(w string) bool {
			return strings.Contains(title, w) || strings.Contains(platform, w)
		}) {
			matched = append(matched, c)
		}
	}
	return matched
}

func queryWords(query string) []string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if utf8.RuneCountInString(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}

var (
	keywordSeparators = regexp.MustCompile(`[,. ]`)
	fillerWords       = []string{"Learn", "Understand", "Basic", "Advanced", "Introduction"}
)

// RoadmapKeywords derives a course search query from a roadmap step: the first
// three words of its description longer than three characters, skipping
// filler words. It falls back to the step label.
func RoadmapKeywords(step types.RoadmapStep) string {
	var keywords []string
	for _, w := range keywordSeparators.Split(step.Description, -1) {
		if utf8.RuneCountInString(w) <= 3 || slices.Contains(fillerWords, w) {
			continue
		}
		keywords = append(keywords, w)
		if len(keywords) == 3 {
			break
		}
	}
	if len(keywords) == 0 {
		return step.Step
	}
	return strings.Join(keywords, " ")
}
