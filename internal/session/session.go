// Package session holds the per-user state of an assessment: the profile being
// built, the current question batch with its answers, and the latest dashboard.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/skillsage/internal/types"
)

var (
	// ErrUnknownQuestion is returned when an answer references a question id
	// that is not part of the current batch.
	ErrUnknownQuestion = errors.New("question is not part of the current batch")
	// ErrInvalidOption is returned when an answer is not one of the offered options.
	ErrInvalidOption = errors.New("answer is not one of the offered options")
	// ErrStaleResult is returned when a generated result was superseded by a
	// newer request before it could be committed.
	ErrStaleResult = errors.New("result superseded by a newer request")
)

// Ticket identifies one adapter invocation. A result may only be committed
// with the most recently issued ticket of its kind.
type Ticket struct {
	Epoch uuid.UUID `json:"epoch"`
	Seq   uint64    `json:"seq"`
}

// Session is the state owned by one authenticated user.
type Session struct {
	UserID       uuid.UUID            `json:"userId"`
	Epoch        uuid.UUID            `json:"epoch"`
	Profile      types.Profile        `json:"profile"`
	Questions    []types.Question     `json:"questions"`
	QuestionSeq  uint64               `json:"questionSeq"`
	Dashboard    *types.DashboardData `json:"dashboard,omitempty"`
	DashboardSeq uint64               `json:"dashboardSeq"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// New returns an empty session for the user.
func New(userID uuid.UUID) *Session {
	return &Session{
		UserID:    userID,
		Epoch:     uuid.New(),
		Profile:   types.NewProfile(),
		Questions: []types.Question{},
	}
}

// MergeProfile applies a partial update to the profile.
func (s *Session) MergeProfile(patch types.ProfilePatch) {
	s.Profile.Apply(patch)
}

// BeginQuestions issues the ticket for a new question generation.
func (s *Session) BeginQuestions() Ticket {
	s.QuestionSeq++
	return Ticket{Epoch: s.Epoch, Seq: s.QuestionSeq}
}

// AssignQuestions replaces the question batch and clears every recorded
// answer. It reports false, leaving the session untouched, when the ticket is
// no longer the latest.
func (s *Session) AssignQuestions(t Ticket, questions []types.Question) bool {
	if t.Epoch != s.Epoch || t.Seq != s.QuestionSeq {
		return false
	}
	s.Questions = types.CloneQuestions(questions)
	s.Profile.PsychometricAnswers = map[int]string{}
	return true
}

// RecordAnswers merges answers into the profile. The whole set is rejected if
// any answer refers to an unknown question or an option that was not offered.
func (s *Session) RecordAnswers(answers map[int]string) error {
	for id, answer := range answers {
		q, ok := s.question(id)
		if !ok {
			return fmt.Errorf("question %d: %w", id, ErrUnknownQuestion)
		}
		if !q.HasOption(answer) {
			return fmt.Errorf("question %d: %w", id, ErrInvalidOption)
		}
	}
	if s.Profile.PsychometricAnswers == nil {
		s.Profile.PsychometricAnswers = make(map[int]string, len(answers))
	}
	for id, answer := range answers {
		s.Profile.PsychometricAnswers[id] = answer
	}
	return nil
}

func (s *Session) question(id int) (types.Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return types.Question{}, false
}

// Unanswered returns the ids of questions in the current batch without an answer.
func (s *Session) Unanswered() []int {
	var ids []int
	for _, q := range s.Questions {
		if _, ok := s.Profile.PsychometricAnswers[q.ID]; !ok {
			ids = append(ids, q.ID)
		}
	}
	return ids
}

// AllAnswered reports whether a batch exists and every question in it has an answer.
func (s *Session) AllAnswered() bool {
	return len(s.Questions) > 0 && len(s.Unanswered()) == 0
}

// BeginDashboard issues the ticket for a new recommendation request.
func (s *Session) BeginDashboard() Ticket {
	s.DashboardSeq++
	return Ticket{Epoch: s.Epoch, Seq: s.DashboardSeq}
}

// AssignDashboard replaces the dashboard snapshot if the ticket is still the latest.
func (s *Session) AssignDashboard(t Ticket, d types.DashboardData) bool {
	if t.Epoch != s.Epoch || t.Seq != s.DashboardSeq {
		return false
	}
	s.Dashboard = &d
	return true
}

// Reset empties the session. A new epoch invalidates every outstanding ticket.
func (s *Session) Reset() {
	*s = *New(s.UserID)
}
