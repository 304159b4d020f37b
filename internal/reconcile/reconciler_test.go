package reconcile

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/farukalways/freelancing-platform-create/internal/domain/job"
	"github.com/farukalways/freelancing-platform-create/internal/repository"

	"github.com/google/uuid"
)

type fakeJobRepo struct {
	fixed int64
	err   error

	calls  int
	passed chan struct{}
}

func (f *fakeJobRepo) ReconcileBidCounts(context.Context) (int64, error) {
	f.calls++
	if f.passed != nil {
		select {
		case f.passed <- struct{}{}:
		default:
		}
	}
	return f.fixed, f.err
}

func (f *fakeJobRepo) Insert(context.Context, job.Job) (uuid.UUID, error) { return uuid.Nil, nil }
func (f *fakeJobRepo) ListAll(context.Context) ([]job.Job, error)         { return nil, nil }
func (f *fakeJobRepo) Search(context.Context, repository.SearchParams) ([]job.Job, error) {
	return nil, nil
}
func (f *fakeJobRepo) ListByOwner(context.Context, string) ([]job.Job, error) { return nil, nil }
func (f *fakeJobRepo) GetByID(context.Context, uuid.UUID) (job.Job, error) {
	return job.Job{}, repository.ErrJobNotFound
}
func (f *fakeJobRepo) DeleteByID(context.Context, uuid.UUID) (int64, error) { return 0, nil }
func (f *fakeJobRepo) Upsert(context.Context, uuid.UUID, job.Job) (repository.UpsertResult, error) {
	return repository.UpsertResult{}, nil
}

func TestReconciler_RunOnceCorrectsDrift(t *testing.T) {
	repo := &fakeJobRepo{fixed: 3}
	var buf bytes.Buffer
	r := New(repo, time.Minute, log.New(&buf, "", 0))

	r.runOnce(context.Background())

	if repo.calls != 1 {
		t.Fatalf("expected one reconcile pass, got %d", repo.calls)
	}
	if !strings.Contains(buf.String(), "jobs=3") {
		t.Fatalf("corrected count must be logged, got %q", buf.String())
	}
}

func TestReconciler_RunOnceQuietWhenNothingDrifted(t *testing.T) {
	repo := &fakeJobRepo{fixed: 0}
	var buf bytes.Buffer
	r := New(repo, time.Minute, log.New(&buf, "", 0))

	r.runOnce(context.Background())

	if buf.Len() != 0 {
		t.Fatalf("clean pass must not log, got %q", buf.String())
	}
}

func TestReconciler_RunOnceLogsStoreFailure(t *testing.T) {
	repo := &fakeJobRepo{err: errors.New("connection refused")}
	var buf bytes.Buffer
	r := New(repo, time.Minute, log.New(&buf, "", 0))

	r.runOnce(context.Background())

	if !strings.Contains(buf.String(), "connection refused") {
		t.Fatalf("pass error must be logged, got %q", buf.String())
	}
}

func TestReconciler_StartRunsAPassImmediately(t *testing.T) {
	repo := &fakeJobRepo{passed: make(chan struct{}, 1)}
	r := New(repo, time.Hour, nil)

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	defer r.Stop()

	select {
	case <-repo.passed:
	case <-time.After(2 * time.Second):
		t.Fatalf("drift correction must not wait for the first tick")
	}
}
