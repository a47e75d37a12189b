package quiz

import (
	"strings"

	types "github.com/yungbote/practice-backend/internal/domain"
)

// Evaluation is the verdict for one submitted answer.
type Evaluation struct {
	IsCorrect    bool `json:"isCorrect"`
	PointsEarned int  `json:"pointsEarned"`
}

// Evaluate grades submitted against q. Choice questions expect the exact id of
// the correct option; short answers match any accepted variant after lower-casing and
// trimming. Anything unrecognized is wrong, never an error.
func Evaluate(q *types.Question, submitted string) Evaluation {
	if q == nil {
		return Evaluation{}
	}
	ok := false
	switch q.QuestionType {
	case types.QuestionTypeMultipleChoice, types.QuestionTypeTrueFalse:
		if opt, found := q.CorrectOption(); found {
			ok = submitted == opt.ID.String()
		}
	case types.QuestionTypeShortAnswer:
		want := normalizeShortAnswer(submitted)
		if want == "" {
			break
		}
		for _, o := range q.Options {
			if o.IsCorrect && normalizeShortAnswer(o.OptionText) == want {
				ok = true
				break
			}
		}
	}
	if !ok {
		return Evaluation{}
	}
	return Evaluation{IsCorrect: true, PointsEarned: q.Points}
}

func normalizeShortAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
