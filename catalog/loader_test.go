package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"techquiz-core/models"
)

type fakeFetcher struct {
	pages map[string]*models.QuizPage
	err   error
	calls int
}

func pageKey(page, pageSize int) string {
	return cacheKey(page, pageSize)
}

func (f *fakeFetcher) ListQuizzes(_ context.Context, page, pageSize int) (*models.QuizPage, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if result, ok := f.pages[pageKey(page, pageSize)]; ok {
		copied := *result
		return &copied, nil
	}
	return &models.QuizPage{Page: page, PageSize: pageSize, TotalPages: 1}, nil
}

func catalogFixture() *fakeFetcher {
	return &fakeFetcher{
		pages: map[string]*models.QuizPage{
			pageKey(1, 8): {
				Items: []models.Quiz{
					{ID: "quiz-1", Title: "Go Basics", Difficulty: models.DifficultyEasy},
					{ID: "quiz-2", Title: "Concurrency", Difficulty: models.DifficultyHard},
				},
				Page:       1,
				PageSize:   8,
				TotalPages: 1,
				TotalCount: 2,
			},
		},
	}
}

func TestLoadPagePopulatesSnapshot(t *testing.T) {
	loader := NewLoader(catalogFixture(), nil, 0)

	before := loader.Current()
	if before.Fetched {
		t.Fatal("fresh loader must not report a fetched page")
	}

	page := loader.LoadPage(context.Background(), 1, 8)
	if page.Err != nil {
		t.Fatalf("unexpected error: %v", page.Err)
	}
	if page.Loading {
		t.Error("snapshot after load must not be loading")
	}
	if !page.Fetched {
		t.Error("snapshot must be marked fetched")
	}
	if len(page.Quizzes) != 2 {
		t.Errorf("quizzes = %d, want 2", len(page.Quizzes))
	}
	if page.TotalPages != 1 {
		t.Errorf("totalPages = %d, want 1", page.TotalPages)
	}
}

func TestLoadPageBeyondCatalogIsEmptyButFetched(t *testing.T) {
	loader := NewLoader(catalogFixture(), nil, 0)

	page := loader.LoadPage(context.Background(), 2, 8)
	if page.Err != nil {
		t.Fatalf("unexpected error: %v", page.Err)
	}
	if len(page.Quizzes) != 0 {
		t.Errorf("quizzes = %v, want empty page", page.Quizzes)
	}
	if !page.Fetched {
		t.Error("an empty result is still a fetched page, distinct from never loaded")
	}
	if page.Loading {
		t.Error("loading must be false after the fetch completes")
	}
}

func TestLoadPageFailurePreservesLastGoodPage(t *testing.T) {
	fetcher := catalogFixture()
	loader := NewLoader(fetcher, nil, 0)

	good := loader.LoadPage(context.Background(), 1, 8)
	if good.Err != nil {
		t.Fatalf("unexpected error: %v", good.Err)
	}

	fetcher.err = errors.New("backend unreachable")
	failed := loader.LoadPage(context.Background(), 2, 8)
	if failed.Err == nil {
		t.Fatal("expected transport error surfaced")
	}
	if len(failed.Quizzes) != 2 {
		t.Errorf("quizzes = %d, want last good page preserved", len(failed.Quizzes))
	}
	if failed.Page != 1 {
		t.Errorf("page = %d, want last good page number 1", failed.Page)
	}
}

func TestLoadPageRejectsNonPositiveArguments(t *testing.T) {
	loader := NewLoader(catalogFixture(), nil, 0)

	for _, args := range [][2]int{{0, 8}, {1, 0}, {-1, -1}} {
		page := loader.LoadPage(context.Background(), args[0], args[1])
		if !errors.Is(page.Err, ErrInvalidPage) {
			t.Errorf("LoadPage(%d, %d) err = %v, want ErrInvalidPage", args[0], args[1], page.Err)
		}
	}
}

func TestLoadPageServesRepeatsFromCache(t *testing.T) {
	fetcher := catalogFixture()
	loader := NewLoader(fetcher, NewMemoryCache(), time.Minute)

	loader.LoadPage(context.Background(), 1, 8)
	loader.LoadPage(context.Background(), 1, 8)
	loader.LoadPage(context.Background(), 1, 8)

	if fetcher.calls != 1 {
		t.Errorf("backend calls = %d, want 1 (repeats served from cache)", fetcher.calls)
	}

	// A different page misses the cache.
	loader.LoadPage(context.Background(), 2, 8)
	if fetcher.calls != 2 {
		t.Errorf("backend calls = %d, want 2", fetcher.calls)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()
	page := &models.QuizPage{Page: 1, PageSize: 8, TotalPages: 1}

	cache.Set(ctx, "k", page, 10*time.Millisecond)
	if _, ok := cache.Get(ctx, "k"); !ok {
		t.Fatal("expected cache hit before expiry")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := cache.Get(ctx, "k"); ok {
		t.Fatal("expected cache miss after expiry")
	}
}
