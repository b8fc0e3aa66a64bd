package models

import (
	"errors"
	"testing"
)

func validQuiz() Quiz {
	return Quiz{
		ID:    "quiz-1",
		Title: "Go Basics",
		Questions: []Question{
			{
				ID:             "q1",
				Prompt:         "Which keyword declares a variable?",
				Choices:        []Choice{{ID: "a", Text: "var"}, {ID: "b", Text: "let"}},
				CorrectChoices: []string{"a"},
				Marks:          2,
			},
			{
				ID:             "q2",
				Prompt:         "Which types are built in?",
				Choices:        []Choice{{ID: "a", Text: "int"}, {ID: "b", Text: "string"}, {ID: "c", Text: "matrix"}},
				CorrectChoices: []string{"a", "b"},
				Marks:          2,
			},
		},
		TotalMarks: 4,
		Duration:   1,
		Difficulty: DifficultyEasy,
	}
}

func TestQuizValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Quiz)
		wantErr error
	}{
		{"valid quiz", func(*Quiz) {}, nil},
		{"no questions", func(q *Quiz) { q.Questions = nil }, ErrEmptyQuiz},
		{"duplicate question id", func(q *Quiz) { q.Questions[1].ID = "q1" }, ErrCorruptQuizData},
		{"empty question id", func(q *Quiz) { q.Questions[0].ID = "" }, ErrCorruptQuizData},
		{"missing answer key", func(q *Quiz) { q.Questions[0].CorrectChoices = nil }, ErrCorruptQuizData},
		{"marks mismatch", func(q *Quiz) { q.TotalMarks = 10 }, ErrCorruptQuizData},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			quiz := validQuiz()
			tc.mutate(&quiz)
			err := quiz.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestQuestionIsCorrect(t *testing.T) {
	question := Question{
		ID:             "q",
		CorrectChoices: []string{"a", "b"},
	}

	testCases := []struct {
		name     string
		selected []string
		want     bool
	}{
		{"exact match", []string{"a", "b"}, true},
		{"order insensitive", []string{"b", "a"}, true},
		{"duplicates collapse", []string{"a", "a", "b"}, true},
		{"partial selection", []string{"a"}, false},
		{"superset selection", []string{"a", "b", "c"}, false},
		{"wrong choice", []string{"c"}, false},
		{"unanswered", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := question.IsCorrect(tc.selected); got != tc.want {
				t.Errorf("IsCorrect(%v) = %v, want %v", tc.selected, got, tc.want)
			}
		})
	}
}

func TestAttemptClone(t *testing.T) {
	score := 3
	att := Attempt{
		ID:      "att-1",
		Answers: map[string][]string{"q1": {"a"}},
		Score:   &score,
	}

	clone := att.Clone()
	clone.Answers["q1"][0] = "b"
	clone.Answers["q2"] = []string{"c"}
	*clone.Score = 0

	if att.Answers["q1"][0] != "a" {
		t.Error("clone shares answer slice with original")
	}
	if _, ok := att.Answers["q2"]; ok {
		t.Error("clone shares answer map with original")
	}
	if *att.Score != 3 {
		t.Error("clone shares score pointer with original")
	}
}
