package types

// CatalogResponse lists the selectable academic options.
type CatalogResponse struct {
	Branches         []string `json:"branches"`
	Years            []string `json:"years"`
	DefaultSkills    []string `json:"defaultSkills"`
	DefaultInterests []string `json:"defaultInterests"`
}

// NewCatalogResponse returns copies of the catalog lists.
func NewCatalogResponse() CatalogResponse {
	return CatalogResponse{
		Branches:         append([]string{}, Branches...),
		Years:            append([]string{}, Years...),
		DefaultSkills:    append([]string{}, DefaultSkills...),
		DefaultInterests: append([]string{}, DefaultInterests...),
	}
}

// NotificationsResponse is a branch news feed.
type NotificationsResponse struct {
	Branch string     `json:"branch"`
	Items  []NewsItem `json:"items"`
}

// ResumeRequest supplies a resume as pasted text or a public URL. Exactly one
// of the two must be set.
type ResumeRequest struct {
	Text string `json:"text" validate:"required_without=URL,excluded_with=URL"`
	URL  string `json:"url" validate:"required_without=Text,excluded_with=Text,omitempty,http_url"`
}

// QuestionsResponse is the current question batch with the answers recorded so far.
type QuestionsResponse struct {
	Questions  []Question     `json:"questions"`
	Answers    map[int]string `json:"answers"`
	Unanswered []int          `json:"unanswered"`
}

// CourseQuery filters a dashboard course list.
type CourseQuery struct {
	Tab        string `validate:"omitempty,oneof=free paid"`
	Difficulty string `validate:"omitempty,oneof=All Beginner Intermediate Advanced"`
	Query      string `validate:"max=200"`
}

// CoursesResponse is a filtered course list.
type CoursesResponse struct {
	Tab        CourseTab `json:"tab"`
	Difficulty string    `json:"difficulty"`
	Query      string    `json:"query"`
	Courses    []Course  `json:"courses"`
}

// RoadmapCoursesResponse lists courses related to one roadmap step.
type RoadmapCoursesResponse struct {
	Step    RoadmapStep `json:"step"`
	Tab     CourseTab   `json:"tab"`
	Query   string      `json:"query"`
	Courses []Course    `json:"courses"`
}
