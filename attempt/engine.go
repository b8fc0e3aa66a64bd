package attempt

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"techquiz-core/models"
)

var (
	// ErrInvalidState means an intent arrived in a state that cannot
	// accept it. Under correct presentation-layer usage this should not
	// happen.
	ErrInvalidState = errors.New("invalid attempt state")
	// ErrUnknownQuestion means the question id does not belong to the
	// loaded quiz.
	ErrUnknownQuestion = errors.New("unknown question")
)

// Submitter sends a finalized attempt for authoritative grading. The
// gateway client satisfies this.
type Submitter interface {
	SubmitAttempt(ctx context.Context, quizID string, sub models.Submission) (*models.QuizResult, error)
}

// Publisher receives attempt lifecycle events. The event package satisfies
// this; a nil publisher disables events.
type Publisher interface {
	Publish(eventType string, payload any) error
}

// Engine is the per-attempt state machine. Intents and timer ticks are
// serialized through one mutex so no two transitions apply concurrently.
//
//	NotStarted -> InProgress -> Submitting -> Graded
//	InProgress -> Abandoned   (user navigates away)
//	InProgress -> Expired -> Submitting   (timer exhausted)
type Engine struct {
	mu        sync.Mutex
	quiz      *models.Quiz
	att       models.Attempt
	submitter Submitter
	publisher Publisher
	inFlight  bool
}

// NewEngine builds an engine for one attempt by userID. publisher may be
// nil.
func NewEngine(userID string, submitter Submitter, publisher Publisher) *Engine {
	return &Engine{
		att:       models.Attempt{UserID: userID, Status: models.StatusNotStarted},
		submitter: submitter,
		publisher: publisher,
	}
}

// Snapshot returns a deep copy of the attempt for rendering or
// persistence.
func (e *Engine) Snapshot() models.Attempt {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.att.Clone()
}

// Start initializes the attempt against a validated quiz: full time
// budget, empty answer map, status in_progress. Valid only from
// not_started.
func (e *Engine) Start(quiz *models.Quiz) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.att.Status != models.StatusNotStarted {
		return fmt.Errorf("%w: start from %s", ErrInvalidState, e.att.Status)
	}
	if err := quiz.Validate(); err != nil {
		return err
	}

	e.quiz = quiz
	e.att.ID = uuid.NewString()
	e.att.QuizID = quiz.ID
	e.att.StartTime = time.Now()
	e.att.RemainingSeconds = quiz.Duration * 60
	e.att.Answers = make(map[string][]string, len(quiz.Questions))
	e.att.Status = models.StatusInProgress

	e.publish("attempt.started", map[string]any{
		"attempt_id": e.att.ID,
		"quiz_id":    quiz.ID,
		"user_id":    e.att.UserID,
	})
	return nil
}

// Resume reconstructs an in-progress attempt previously persisted with
// Snapshot. The quiz must be the one the attempt belongs to and the engine
// must be fresh.
func (e *Engine) Resume(att models.Attempt, quiz *models.Quiz) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.att.Status != models.StatusNotStarted {
		return fmt.Errorf("%w: resume from %s", ErrInvalidState, e.att.Status)
	}
	if att.Status != models.StatusInProgress && att.Status != models.StatusSubmitting {
		return fmt.Errorf("%w: cannot resume a %s attempt", ErrInvalidState, att.Status)
	}
	if att.QuizID != quiz.ID {
		return fmt.Errorf("%w: attempt belongs to quiz %s, not %s", models.ErrCorruptQuizData, att.QuizID, quiz.ID)
	}
	if err := quiz.Validate(); err != nil {
		return err
	}

	e.quiz = quiz
	e.att = att.Clone()
	if e.att.Answers == nil {
		e.att.Answers = make(map[string][]string, len(quiz.Questions))
	}
	return nil
}

// Answer records the selected choices for a question, overwriting any
// previous selection. Last write wins; no history is kept.
func (e *Engine) Answer(questionID string, choiceIDs ...string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.att.Status != models.StatusInProgress {
		return fmt.Errorf("%w: answer from %s", ErrInvalidState, e.att.Status)
	}
	if _, ok := e.quiz.QuestionByID(questionID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}

	e.att.Answers[questionID] = append([]string(nil), choiceIDs...)
	e.publish("attempt.answered", map[string]any{
		"attempt_id":  e.att.ID,
		"question_id": questionID,
	})
	return nil
}

// Tick advances the countdown. The clock is monotonic: non-positive deltas
// are ignored, the budget never goes below zero, and once it hits zero the
// attempt moves through expired into submitting exactly once. Further
// ticks are no-ops.
func (e *Engine) Tick(elapsedSeconds int) models.AttemptStatus {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.att.Status != models.StatusInProgress || elapsedSeconds <= 0 {
		return e.att.Status
	}

	e.att.RemainingSeconds -= elapsedSeconds
	if e.att.RemainingSeconds > 0 {
		return e.att.Status
	}

	e.att.RemainingSeconds = 0
	e.att.Status = models.StatusExpired
	e.publish("attempt.expired", map[string]any{
		"attempt_id": e.att.ID,
		"quiz_id":    e.att.QuizID,
	})
	// Expiry hands straight off to submission; the caller drives the
	// actual Submit.
	e.att.Status = models.StatusSubmitting
	e.gradeLocked()
	return e.att.Status
}

// Remaining returns the seconds left on the countdown.
func (e *Engine) Remaining() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.att.RemainingSeconds
}

// Abandon discards the attempt when the user navigates away. Nothing is
// sent to the backend.
func (e *Engine) Abandon() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.att.Status != models.StatusInProgress {
		return fmt.Errorf("%w: abandon from %s", ErrInvalidState, e.att.Status)
	}
	e.att.Status = models.StatusAbandoned
	e.publish("attempt.abandoned", map[string]any{
		"attempt_id": e.att.ID,
		"quiz_id":    e.att.QuizID,
	})
	return nil
}

// Submit finalizes the attempt: the score is computed locally, then the
// backend acknowledges. Valid manually from in_progress, automatically
// after expiry, or as a retry while submitting after a failed
// acknowledgment — but a call while another Submit is outstanding is
// rejected. On transport failure the attempt stays submitting and the
// locally computed score is held, not final.
func (e *Engine) Submit(ctx context.Context) (*models.QuizResult, error) {
	e.mu.Lock()
	switch {
	case e.att.Status == models.StatusInProgress:
	case e.att.Status == models.StatusSubmitting && !e.inFlight:
	default:
		status := e.att.Status
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: submit from %s", ErrInvalidState, status)
	}

	e.att.Status = models.StatusSubmitting
	e.gradeLocked()
	submission := models.Submission{
		AttemptID: e.att.ID,
		Answers:   e.att.Clone().Answers,
	}
	quizID := e.att.QuizID
	e.inFlight = true
	e.mu.Unlock()

	result, err := e.submitter.SubmitAttempt(ctx, quizID, submission)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.inFlight = false
	if err != nil {
		// Remains submitting; the caller retries. The local score is
		// kept but not final until acknowledged.
		return nil, err
	}

	e.att.Status = models.StatusGraded
	// The backend is the source of truth for the final grade.
	e.att.Score = &result.Score
	e.publish("attempt.submitted", map[string]any{
		"attempt_id": e.att.ID,
		"quiz_id":    quizID,
		"score":      result.Score,
	})
	return result, nil
}

// Grade computes the local score without contacting the backend: full
// marks for an exact answer-key match, zero otherwise, unanswered scores
// zero.
func (e *Engine) Grade() models.QuizResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.quiz == nil {
		return models.QuizResult{}
	}
	return e.gradeLocked()
}

func (e *Engine) gradeLocked() models.QuizResult {
	score := 0
	for i := range e.quiz.Questions {
		question := &e.quiz.Questions[i]
		selected, answered := e.att.Answers[question.ID]
		if answered && question.IsCorrect(selected) {
			score += question.Marks
		}
	}
	e.att.Score = &score

	result := models.QuizResult{Score: score, TotalMarks: e.quiz.TotalMarks}
	if e.quiz.TotalMarks > 0 {
		result.Percentage = float64(score) / float64(e.quiz.TotalMarks) * 100
	}
	return result
}

func (e *Engine) publish(eventType string, payload map[string]any) {
	if e.publisher == nil {
		return
	}
	// Events are best-effort; grading and state never depend on them.
	_ = e.publisher.Publish(eventType, payload)
}
