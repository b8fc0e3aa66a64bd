package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"techquiz-core/models"
)

var ErrInvalidPage = errors.New("page and page size must be positive")

// Fetcher is the slice of the gateway the loader needs.
type Fetcher interface {
	ListQuizzes(ctx context.Context, page, pageSize int) (*models.QuizPage, error)
}

// Page is the loader's state snapshot. Fetched distinguishes a genuinely
// empty catalog page from one that was never loaded.
type Page struct {
	Quizzes    []models.Quiz
	Page       int
	PageSize   int
	TotalPages int
	TotalCount int
	Loading    bool
	Fetched    bool
	Err        error
}

// Loader fetches and paginates the quiz catalog. A transport failure keeps
// the last successfully loaded page on display and only sets Err.
type Loader struct {
	mu      sync.Mutex
	fetcher Fetcher
	cache   PageCache
	ttl     time.Duration
	current Page
}

// NewLoader builds a loader. cache may be nil to fetch on every call; ttl
// only matters when a cache is set.
func NewLoader(fetcher Fetcher, cache PageCache, ttl time.Duration) *Loader {
	return &Loader{
		fetcher: fetcher,
		cache:   cache,
		ttl:     ttl,
	}
}

// Current returns the latest snapshot without fetching.
func (l *Loader) Current() Page {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// LoadPage fetches one page of quizzes. Idempotent per page; repeated calls
// with the same arguments may be served from the cache.
func (l *Loader) LoadPage(ctx context.Context, page, pageSize int) Page {
	if page <= 0 || pageSize <= 0 {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.current.Err = ErrInvalidPage
		return l.current
	}

	key := cacheKey(page, pageSize)
	if l.cache != nil {
		if cached, ok := l.cache.Get(ctx, key); ok {
			return l.adopt(cached, nil)
		}
	}

	l.mu.Lock()
	l.current.Loading = true
	l.mu.Unlock()

	fetched, err := l.fetcher.ListQuizzes(ctx, page, pageSize)
	if err != nil {
		return l.adopt(nil, err)
	}

	if l.cache != nil {
		l.cache.Set(ctx, key, fetched, l.ttl)
	}
	return l.adopt(fetched, nil)
}

// adopt folds a fetch outcome into the snapshot. On error the previously
// loaded quizzes stay in place.
func (l *Loader) adopt(fetched *models.QuizPage, err error) Page {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current.Loading = false
	l.current.Err = err
	if err == nil {
		l.current.Quizzes = fetched.Items
		l.current.Page = fetched.Page
		l.current.PageSize = fetched.PageSize
		l.current.TotalPages = fetched.TotalPages
		l.current.TotalCount = fetched.TotalCount
		l.current.Fetched = true
	}
	return l.current
}

func cacheKey(page, pageSize int) string {
	return fmt.Sprintf("quiz:page:%d:size:%d", page, pageSize)
}
