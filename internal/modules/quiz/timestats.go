package quiz

import (
	"math"

	types "github.com/yungbote/practice-backend/internal/domain"
)

// TimeStats summarizes per-question time, in seconds, over answers that recorded any.
type TimeStats struct {
	TotalTimeSpent         int `json:"totalTimeSpent"`
	AverageTimePerQuestion int `json:"averageTimePerQuestion"`
	FastestQuestion        int `json:"fastestQuestion"`
	SlowestQuestion        int `json:"slowestQuestion"`
}

func ComputeTimeStats(answers []*types.QuestionAnswer) TimeStats {
	var out TimeStats
	n := 0
	for _, a := range answers {
		if a == nil || a.TimeSpent <= 0 {
			continue
		}
		t := a.TimeSpent
		out.TotalTimeSpent += t
		if n == 0 || t < out.FastestQuestion {
			out.FastestQuestion = t
		}
		if t > out.SlowestQuestion {
			out.SlowestQuestion = t
		}
		n++
	}
	if n > 0 {
		out.AverageTimePerQuestion = int(math.Floor(float64(out.TotalTimeSpent)/float64(n) + 0.5))
	}
	return out
}

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
