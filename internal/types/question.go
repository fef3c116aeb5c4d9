package types

// QuestionBatchSize is the number of questions in every generated batch.
const QuestionBatchSize = 6

// Question is one multiple-choice assessment item. IDs are scoped to the batch
// that produced them and are not stable across regenerations.
type Question struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// HasOption reports whether option is one of the offered choices.
func (q Question) HasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// CloneQuestions returns a deep copy of a question batch.
func CloneQuestions(qs []Question) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = Question{
			ID:       q.ID,
			Question: q.Question,
			Options:  append([]string{}, q.Options...),
		}
	}
	return out
}
