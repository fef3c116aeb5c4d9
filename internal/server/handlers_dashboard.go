package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/skillsage/internal/assessment"
	"github.com/jonathan/skillsage/internal/types"
)

// handleGetDashboard returns the latest dashboard snapshot.
func (s *Server) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, ok := s.dashboard(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, dashboard)
}

// handleSearchSkills filters existing and missing skills by ?q=.
func (s *Server) handleSearchSkills(w http.ResponseWriter, r *http.Request) {
	dashboard, ok := s.dashboard(w, r)
	if !ok {
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	s.jsonResponse(w, http.StatusOK, assessment.SearchSkills(dashboard, query))
}

// handleFilterCourses filters one course tab by difficulty and search text.
func (s *Server) handleFilterCourses(w http.ResponseWriter, r *http.Request) {
	q, ok := s.courseQuery(w, r)
	if !ok {
		return
	}
	dashboard, ok := s.dashboard(w, r)
	if !ok {
		return
	}

	tab := types.CourseTab(q.Tab)
	s.jsonResponse(w, http.StatusOK, types.CoursesResponse{
		Tab:        tab,
		Difficulty: q.Difficulty,
		Query:      q.Query,
		Courses:    nonNilCourses(assessment.FilterCourses(dashboard.CoursesFor(tab), q.Difficulty, q.Query)),
	})
}

// handleRoadmapCourses lists courses matching a roadmap step's title.
func (s *Server) handleRoadmapCourses(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		s.fail(w, &ErrValidation{Field: "index", Message: "must be a non-negative integer"})
		return
	}
	q, ok := s.courseQuery(w, r)
	if !ok {
		return
	}
	dashboard, ok := s.dashboard(w, r)
	if !ok {
		return
	}
	if index >= len(dashboard.Roadmap) {
		s.fail(w, &ErrValidation{Field: "index", Message: "no such roadmap step"})
		return
	}

	step := dashboard.Roadmap[index]
	query := assessment.RoadmapKeywords(step)
	tab := types.CourseTab(q.Tab)
	s.jsonResponse(w, http.StatusOK, types.RoadmapCoursesResponse{
		Step:    step,
		Tab:     tab,
		Query:   query,
		Courses: nonNilCourses(assessment.FilterCourses(dashboard.CoursesFor(tab), assessment.DifficultyAll, query)),
	})
}

// dashboard loads the caller's dashboard, writing a 404 when none exists yet.
func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) (*types.DashboardData, bool) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return nil, false
	}
	sess, err := s.sessions.Get(r.Context(), userID)
	if err != nil {
		s.fail(w, err)
		return nil, false
	}
	if sess.Dashboard == nil {
		s.fail(w, &ErrNoDashboard{})
		return nil, false
	}
	return sess.Dashboard, true
}

// courseQuery reads tab, difficulty and q from the query string. The tab
// defaults to free and the difficulty to All.
func (s *Server) courseQuery(w http.ResponseWriter, r *http.Request) (types.CourseQuery, bool) {
	values := r.URL.Query()
	q := types.CourseQuery{
		Tab:        strings.ToLower(strings.TrimSpace(values.Get("tab"))),
		Difficulty: strings.TrimSpace(values.Get("difficulty")),
		Query:      strings.TrimSpace(values.Get("q")),
	}
	if err := s.validator.Struct(q); err != nil {
		s.fail(w, validationError(err))
		return q, false
	}
	if q.Tab == "" {
		q.Tab = string(types.CourseTabFree)
	}
	if q.Difficulty == "" {
		q.Difficulty = assessment.DifficultyAll
	}
	return q, true
}

func nonNilCourses(c []types.Course) []types.Course {
	if c == nil {
		return []types.Course{}
	}
	return c
}
