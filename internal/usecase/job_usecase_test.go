package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/farukalways/freelancing-platform-create/internal/domain/job"
	"github.com/farukalways/freelancing-platform-create/internal/repository"

	"github.com/google/uuid"
)

type mockJobRepo struct {
	items []job.Job
	err   error

	searchCalls int
	lastSearch  repository.SearchParams
}

func (m *mockJobRepo) Insert(context.Context, job.Job) (uuid.UUID, error) {
	if m.err != nil {
		return uuid.Nil, m.err
	}
	return uuid.New(), nil
}

func (m *mockJobRepo) ListAll(context.Context) ([]job.Job, error) { return m.items, m.err }

func (m *mockJobRepo) Search(_ context.Context, params repository.SearchParams) ([]job.Job, error) {
	m.searchCalls++
	m.lastSearch = params
	return m.items, m.err
}

func (m *mockJobRepo) ListByOwner(context.Context, string) ([]job.Job, error) {
	return m.items, m.err
}

func (m *mockJobRepo) GetByID(context.Context, uuid.UUID) (job.Job, error) {
	if m.err != nil {
		return job.Job{}, m.err
	}
	if len(m.items) == 0 {
		return job.Job{}, repository.ErrJobNotFound
	}
	return m.items[0], nil
}

func (m *mockJobRepo) DeleteByID(context.Context, uuid.UUID) (int64, error) { return 1, m.err }

func (m *mockJobRepo) Upsert(context.Context, uuid.UUID, job.Job) (repository.UpsertResult, error) {
	return repository.UpsertResult{Inserted: true}, m.err
}

func (m *mockJobRepo) ReconcileBidCounts(context.Context) (int64, error) { return 0, m.err }

type mockCache struct {
	store map[string][]byte

	getHits     int
	sets        int
	invalidated []string
}

func newMockCache() *mockCache {
	return &mockCache{store: map[string][]byte{}}
}

func (m *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := m.store[key]
	if !ok {
		return false, nil
	}
	m.getHits++
	return true, json.Unmarshal(b, out)
}

func (m *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.sets++
	m.store[key] = b
	return nil
}

func (m *mockCache) DeleteByPattern(_ context.Context, pattern string) error {
	m.invalidated = append(m.invalidated, pattern)
	m.store = map[string][]byte{}
	return nil
}

func TestJobUsecase_Search_CacheMissThenHit(t *testing.T) {
	repo := &mockJobRepo{items: []job.Job{{Title: "Web scraper"}}}
	cache := newMockCache()
	uc := NewJobUsecase(repo, cache, nil)

	params := repository.SearchParams{Search: "web"}

	items, err := uc.Search(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 1 || repo.searchCalls != 1 {
		t.Fatalf("expected one repo call and one item, got calls=%d items=%d", repo.searchCalls, len(items))
	}
	if cache.sets != 1 {
		t.Fatalf("expected result cached, sets=%d", cache.sets)
	}

	items, err = uc.Search(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.searchCalls != 1 {
		t.Fatalf("second search must be served from cache, repo calls=%d", repo.searchCalls)
	}
	if len(items) != 1 || items[0].Title != "Web scraper" {
		t.Fatalf("cached result mismatch: %+v", items)
	}
}

func TestJobUsecase_Search_PaddedTermRunsTheSameQuery(t *testing.T) {
	repo := &mockJobRepo{items: []job.Job{{Title: "webdev"}}}
	cache := newMockCache()
	uc := NewJobUsecase(repo, cache, nil)

	if _, err := uc.Search(context.Background(), repository.SearchParams{Search: "web"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.lastSearch.Search != "web" {
		t.Fatalf("store saw %q", repo.lastSearch.Search)
	}

	// " web" trims to the same query, so serving it from the cached "web"
	// result is sound: the store would have received identical params.
	items, err := uc.Search(context.Background(), repository.SearchParams{Search: " web"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.searchCalls != 1 {
		t.Fatalf("trimmed-equivalent search must be a cache hit, repo calls=%d", repo.searchCalls)
	}
	if len(items) != 1 || items[0].Title != "webdev" {
		t.Fatalf("unexpected cached result: %+v", items)
	}
}

func TestJobUsecase_Create_InvalidatesSearchCache(t *testing.T) {
	repo := &mockJobRepo{}
	cache := newMockCache()
	uc := NewJobUsecase(repo, cache, nil)

	if _, err := uc.Create(context.Background(), job.Job{Title: "x"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "jobs:search:*" {
		t.Fatalf("expected search cache invalidation, got %v", cache.invalidated)
	}
}

func TestJobUsecase_Search_WorksWithoutCache(t *testing.T) {
	repo := &mockJobRepo{items: []job.Job{{Title: "a"}}}
	uc := NewJobUsecase(repo, nil, nil)

	items, err := uc.Search(context.Background(), repository.SearchParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
}

func TestJobUsecase_Get_NotFoundIsNotAnError(t *testing.T) {
	uc := NewJobUsecase(&mockJobRepo{}, nil, nil)

	_, found, err := uc.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if found {
		t.Fatalf("expected found=false")
	}
}

func TestJobUsecase_StoreFailureMapsToInternal(t *testing.T) {
	uc := NewJobUsecase(&mockJobRepo{err: errors.New("connection refused")}, nil, nil)

	if _, err := uc.ListAll(context.Background()); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if _, err := uc.Search(context.Background(), repository.SearchParams{}); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
