package store

import (
	"context"
	"errors"

	"techquiz-core/models"
)

var ErrNotFound = errors.New("attempt not found")

// AttemptStore persists attempt snapshots so an interrupted attempt can be
// resumed and an acknowledged one archived.
type AttemptStore interface {
	Save(ctx context.Context, att *models.Attempt) error
	Find(ctx context.Context, id string) (*models.Attempt, error)
	Delete(ctx context.Context, id string) error
}
