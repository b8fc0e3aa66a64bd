package models

import "time"

type AttemptStatus string

const (
	StatusNotStarted AttemptStatus = "not_started"
	StatusInProgress AttemptStatus = "in_progress"
	StatusSubmitting AttemptStatus = "submitting"
	StatusGraded     AttemptStatus = "graded"
	StatusAbandoned  AttemptStatus = "abandoned"
	StatusExpired    AttemptStatus = "expired"
)

// Attempt is one user's run through a quiz. It is mutated only by the
// attempt engine; everyone else sees value copies.
type Attempt struct {
	ID               string              `bson:"_id,omitempty" json:"id"`
	QuizID           string              `bson:"quiz_id" json:"quizId"`
	UserID           string              `bson:"user_id" json:"userId"`
	StartTime        time.Time           `bson:"start_time" json:"startTime"`
	RemainingSeconds int                 `bson:"remaining_seconds" json:"remainingSeconds"`
	Answers          map[string][]string `bson:"answers" json:"answers"`
	Status           AttemptStatus       `bson:"status" json:"status"`
	Score            *int                `bson:"score,omitempty" json:"score,omitempty"`
}

// Clone returns a deep copy safe to hand outside the engine.
func (a *Attempt) Clone() Attempt {
	out := *a
	out.Answers = make(map[string][]string, len(a.Answers))
	for id, choices := range a.Answers {
		out.Answers[id] = append([]string(nil), choices...)
	}
	if a.Score != nil {
		score := *a.Score
		out.Score = &score
	}
	return out
}

// Submission is the payload sent to the backend when an attempt is
// finalized.
type Submission struct {
	AttemptID string              `json:"attemptId"`
	Answers   map[string][]string `json:"answers"`
}

type QuizResult struct {
	Score      int     `json:"score"`
	TotalMarks int     `json:"totalMarks"`
	Percentage float64 `json:"percentage"`
}
