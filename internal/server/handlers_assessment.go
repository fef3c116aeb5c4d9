package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/skillsage/internal/session"
	"github.com/jonathan/skillsage/internal/types"
)

// handleGenerateQuestions asks the generator for a new question batch. The
// batch replaces the current one and clears recorded answers. If another
// generation was started meanwhile, this result is discarded with a 409.
func (s *Server) handleGenerateQuestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	var (
		ticket   session.Ticket
		snapshot types.Profile
	)
	if _, err := s.sessions.Update(r.Context(), userID, func(sess *session.Session) error {
		if missing := sess.Profile.MissingForAssessment(); len(missing) > 0 {
			return &ErrIncompleteProfile{Missing: missing}
		}
		ticket = sess.BeginQuestions()
		snapshot = sess.Profile.Clone()
		return nil
	}); err != nil {
		s.fail(w, err)
		return
	}

	questions := s.generator.GenerateQuestions(r.Context(), snapshot)
	if r.Context().Err() != nil {
		return
	}

	sess, err := s.commit(r.Context(), userID, func(sess *session.Session) bool {
		return sess.AssignQuestions(ticket, questions)
	})
	if err != nil {
		s.log.Info("question batch discarded", "user_id", userID, "seq", ticket.Seq, "error", err)
		s.fail(w, err)
		return
	}

	s.log.Info("questions generated", "user_id", userID, "count", len(questions))
	s.jsonResponse(w, http.StatusOK, questionsResponse(sess))
}

// handleGetQuestions returns the current batch and the answers recorded so far.
func (s *Server) handleGetQuestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	sess, err := s.sessions.Get(r.Context(), userID)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, questionsResponse(sess))
}

// handleRecordAnswers merges answers for the current batch. The whole request
// is rejected if any answer is invalid.
func (s *Server) handleRecordAnswers(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	var req types.AnswersRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.fail(w, validationError(err))
		return
	}

	sess, err := s.sessions.Update(r.Context(), userID, func(sess *session.Session) error {
		if err := sess.RecordAnswers(req.Answers); err != nil {
			return &ErrUnknownQuestion{Cause: err}
		}
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, questionsResponse(sess))
}

// handleGenerateRecommendations builds a new dashboard from the profile and
// the completed questionnaire.
func (s *Server) handleGenerateRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	var (
		ticket   session.Ticket
		snapshot types.Profile
	)
	if _, err := s.sessions.Update(r.Context(), userID, func(sess *session.Session) error {
		if missing := sess.Profile.MissingForAssessment(); len(missing) > 0 {
			return &ErrIncompleteProfile{Missing: missing}
		}
		if !sess.AllAnswered() {
			return &ErrAssessmentIncomplete{Unanswered: sess.Unanswered()}
		}
		ticket = sess.BeginDashboard()
		snapshot = sess.Profile.Clone()
		return nil
	}); err != nil {
		s.fail(w, err)
		return
	}

	dashboard := s.generator.GenerateRecommendations(r.Context(), snapshot)
	if r.Context().Err() != nil {
		return
	}

	if _, err := s.commit(r.Context(), userID, func(sess *session.Session) bool {
		return sess.AssignDashboard(ticket, dashboard)
	}); err != nil {
		s.log.Info("dashboard discarded", "user_id", userID, "seq", ticket.Seq, "error", err)
		s.fail(w, err)
		return
	}

	s.log.Info("dashboard generated", "user_id", userID,
		"readiness", dashboard.ReadinessScore, "target_role", dashboard.TargetRole)
	s.jsonResponse(w, http.StatusOK, dashboard)
}

// commit applies a ticketed assignment, failing with ErrStaleResult when the
// ticket was superseded.
func (s *Server) commit(ctx context.Context, userID uuid.UUID, assign func(*session.Session) bool) (*session.Session, error) {
	return s.sessions.Update(ctx, userID, func(sess *session.Session) error {
		if !assign(sess) {
			return session.ErrStaleResult
		}
		return nil
	})
}

func questionsResponse(sess *session.Session) types.QuestionsResponse {
	answers := sess.Profile.PsychometricAnswers
	if answers == nil {
		answers = map[int]string{}
	}
	unanswered := sess.Unanswered()
	if unanswered == nil {
		unanswered = []int{}
	}
	questions := sess.Questions
	if questions == nil {
		questions = []types.Question{}
	}
	return types.QuestionsResponse{
		Questions:  questions,
		Answers:    answers,
		Unanswered: unanswered,
	}
}
