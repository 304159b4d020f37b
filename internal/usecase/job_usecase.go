package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/farukalways/freelancing-platform-create/internal/domain/job"
	"github.com/farukalways/freelancing-platform-create/internal/repository"

	"github.com/google/uuid"
)

type JobUsecase interface {
	Create(ctx context.Context, j job.Job) (uuid.UUID, error)
	ListAll(ctx context.Context) ([]job.Job, error)
	Search(ctx context.Context, params repository.SearchParams) ([]job.Job, error)
	ListByOwner(ctx context.Context, email string) ([]job.Job, error)
	Get(ctx context.Context, id uuid.UUID) (job.Job, bool, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	Upsert(ctx context.Context, id uuid.UUID, j job.Job) (repository.UpsertResult, error)
}

type Jobs struct {
	jobs   repository.JobRepository
	cache  SearchCache
	logger *log.Logger
}

func NewJobUsecase(jobs repository.JobRepository, cache SearchCache, logger *log.Logger) *Jobs {
	return &Jobs{jobs: jobs, cache: cache, logger: logger}
}

func (u *Jobs) Create(ctx context.Context, j job.Job) (uuid.UUID, error) {
	id, err := u.jobs.Insert(ctx, j)
	if err != nil {
		u.logf("[Jobs] insert error: %v", err)
		return uuid.Nil, ErrInternal
	}
	u.invalidateSearch(ctx)
	return id, nil
}

func (u *Jobs) ListAll(ctx context.Context) ([]job.Job, error) {
	items, err := u.jobs.ListAll(ctx)
	if err != nil {
		u.logf("[Jobs] list error: %v", err)
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Jobs) Search(ctx context.Context, params repository.SearchParams) ([]job.Job, error) {
	params = params.Normalize()
	key := JobsSearchCacheKey(params)

	if u.cache != nil {
		var cached []job.Job
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			return cached, nil
		}
	}

	items, err := u.jobs.Search(ctx, params)
	if err != nil {
		u.logf("[Jobs] search error: %v", err)
		return nil, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, items, 0); err != nil {
			u.logf("[Jobs] cache set error key=%s: %v", key, err)
		}
	}
	return items, nil
}

func (u *Jobs) ListByOwner(ctx context.Context, email string) ([]job.Job, error) {
	items, err := u.jobs.ListByOwner(ctx, email)
	if err != nil {
		u.logf("[Jobs] owner list error: %v", err)
		return nil, ErrInternal
	}
	return items, nil
}

// Get reports found=false for an unknown id; absence is not an error.
func (u *Jobs) Get(ctx context.Context, id uuid.UUID) (job.Job, bool, error) {
	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, false, nil
		}
		u.logf("[Jobs] get error id=%s: %v", id, err)
		return job.Job{}, false, ErrInternal
	}
	return j, true, nil
}

func (u *Jobs) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	n, err := u.jobs.DeleteByID(ctx, id)
	if err != nil {
		u.logf("[Jobs] delete error id=%s: %v", id, err)
		return 0, ErrInternal
	}
	u.invalidateSearch(ctx)
	return n, nil
}

func (u *Jobs) Upsert(ctx context.Context, id uuid.UUID, j job.Job) (repository.UpsertResult, error) {
	res, err := u.jobs.Upsert(ctx, id, j)
	if err != nil {
		u.logf("[Jobs] upsert error id=%s: %v", id, err)
		return repository.UpsertResult{}, ErrInternal
	}
	u.invalidateSearch(ctx)
	return res, nil
}

func (u *Jobs) invalidateSearch(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPattern(ctx, searchCachePattern); err != nil {
		u.logf("[Jobs] cache invalidate error: %v", err)
	}
}

func (u *Jobs) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
