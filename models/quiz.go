package models

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyQuiz       = errors.New("quiz has no questions")
	ErrCorruptQuizData = errors.New("corrupt quiz data")
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type Choice struct {
	ID   string `bson:"id" json:"id"`
	Text string `bson:"text" json:"text"`
}

type Question struct {
	ID             string   `bson:"_id,omitempty" json:"_id"`
	Prompt         string   `bson:"prompt" json:"prompt"`
	Choices        []Choice `bson:"choices" json:"choices"`
	CorrectChoices []string `bson:"correct_choices" json:"correctChoices"`
	Marks          int      `bson:"marks" json:"marks"`
}

// IsCorrect reports whether the selected choice ids exactly match the
// question's answer key. Order and duplicates are ignored; partial matches
// earn nothing.
func (q *Question) IsCorrect(selected []string) bool {
	if len(selected) == 0 {
		return false
	}
	key := make(map[string]struct{}, len(q.CorrectChoices))
	for _, id := range q.CorrectChoices {
		key[id] = struct{}{}
	}
	picked := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		picked[id] = struct{}{}
	}
	if len(picked) != len(key) {
		return false
	}
	for id := range picked {
		if _, ok := key[id]; !ok {
			return false
		}
	}
	return true
}

type Quiz struct {
	ID          string     `bson:"_id,omitempty" json:"_id"`
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description" json:"description"`
	Questions   []Question `bson:"questions" json:"questions"`
	TotalMarks  int        `bson:"total_marks" json:"totalMarks"`
	Duration    int        `bson:"duration" json:"duration"`
	Difficulty  Difficulty `bson:"difficulty" json:"difficulty"`
}

// Validate checks the integrity invariants an attempt relies on: at least
// one question, unique question ids, an answer key per question, and
// TotalMarks matching the sum of question marks.
func (qz *Quiz) Validate() error {
	if len(qz.Questions) == 0 {
		return ErrEmptyQuiz
	}
	seen := make(map[string]struct{}, len(qz.Questions))
	sum := 0
	for _, question := range qz.Questions {
		if question.ID == "" {
			return fmt.Errorf("%w: question with empty id", ErrCorruptQuizData)
		}
		if _, dup := seen[question.ID]; dup {
			return fmt.Errorf("%w: duplicate question id %s", ErrCorruptQuizData, question.ID)
		}
		seen[question.ID] = struct{}{}
		if len(question.CorrectChoices) == 0 {
			return fmt.Errorf("%w: question %s has no answer key", ErrCorruptQuizData, question.ID)
		}
		sum += question.Marks
	}
	if sum != qz.TotalMarks {
		return fmt.Errorf("%w: total marks %d does not match question sum %d", ErrCorruptQuizData, qz.TotalMarks, sum)
	}
	return nil
}

func (qz *Quiz) QuestionByID(id string) (*Question, bool) {
	for i := range qz.Questions {
		if qz.Questions[i].ID == id {
			return &qz.Questions[i], true
		}
	}
	return nil, false
}
