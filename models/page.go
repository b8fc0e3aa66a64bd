package models

// QuizPage is one bounded page of the quiz catalog. Rebuilt on every fetch.
type QuizPage struct {
	Items      []Quiz `json:"items"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
	TotalCount int    `json:"totalCount"`
}
