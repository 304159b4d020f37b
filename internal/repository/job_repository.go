package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/farukalways/freelancing-platform-create/internal/database"
	"github.com/farukalways/freelancing-platform-create/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

// SearchParams mirrors the /all-jobs query string: case-insensitive
// substring on title, exact category, and deadline ordering.
type SearchParams struct {
	Search string
	Filter string
	Sort   string
}

// Normalize trims the free-text fields so equivalent queries run the same
// SQL and share one cache key. The category filter stays verbatim because
// its match is exact.
func (p SearchParams) Normalize() SearchParams {
	p.Search = strings.TrimSpace(p.Search)
	p.Sort = strings.TrimSpace(p.Sort)
	return p
}

type UpsertResult struct {
	Inserted bool
}

type JobRepository interface {
	Insert(ctx context.Context, j job.Job) (uuid.UUID, error)
	ListAll(ctx context.Context) ([]job.Job, error)
	Search(ctx context.Context, params SearchParams) ([]job.Job, error)
	ListByOwner(ctx context.Context, email string) ([]job.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (int64, error)
	Upsert(ctx context.Context, id uuid.UUID, j job.Job) (UpsertResult, error)
	ReconcileBidCounts(ctx context.Context) (int64, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, title, category, deadline, bid_count, buyer, extra`

func (r *PostgresJobRepository) Insert(ctx context.Context, j job.Job) (uuid.UUID, error) {
	id := j.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	buyer, extra, err := marshalJobDocs(j)
	if err != nil {
		return uuid.Nil, err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO jobs (id, title, category, deadline, bid_count, buyer, extra)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, j.Title, j.Category, j.Deadline, j.BidCount, buyer, extra,
	)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *PostgresJobRepository) ListAll(ctx context.Context) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, `SELECT `+jobColumns+` FROM jobs`)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *PostgresJobRepository) Search(ctx context.Context, params SearchParams) ([]job.Job, error) {
	// An empty search term matches every title, same as the regex it
	// replaces.
	q := `SELECT ` + jobColumns + ` FROM jobs WHERE title ILIKE '%' || $1 || '%' ESCAPE '\'`
	args := []any{escapeLike(params.Search)}

	if params.Filter != "" {
		args = append(args, params.Filter)
		q += fmt.Sprintf(` AND category = $%d`, len(args))
	}

	switch strings.ToLower(params.Sort) {
	case "asc":
		q += ` ORDER BY deadline ASC`
	case "desc":
		q += ` ORDER BY deadline DESC`
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *PostgresJobRepository) ListByOwner(ctx context.Context, email string) ([]job.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE buyer->>'email' = $1`, email)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) DeleteByID(ctx context.Context, id uuid.UUID) (int64, error) {
	// No cascade: bids referencing this job stay behind, orphaned.
	return r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
}

// Upsert replaces only the fields the caller supplied on an existing job, or
// inserts a new job under the given id when none matches.
func (r *PostgresJobRepository) Upsert(ctx context.Context, id uuid.UUID, j job.Job) (UpsertResult, error) {
	buyer, extra, err := marshalJobDocs(j)
	if err != nil {
		return UpsertResult{}, err
	}

	insert := `INSERT INTO jobs (id, title, category, deadline, bid_count, buyer, extra)
	 VALUES ($1, $2, $3, $4, $5, $6, $7)`
	args := []any{id, j.Title, j.Category, j.Deadline, j.BidCount, buyer, extra}

	var sets []string
	for _, f := range []string{job.FieldTitle, job.FieldCategory, job.FieldDeadline, job.FieldBidCount, job.FieldBuyer} {
		if j.Supplied(f) {
			sets = append(sets, fmt.Sprintf("%s = excluded.%s", f, f))
		}
	}
	if len(j.Extra) > 0 {
		sets = append(sets, "extra = jobs.extra || excluded.extra")
	}

	if len(sets) == 0 {
		n, err := r.db.Exec(ctx, insert+` ON CONFLICT (id) DO NOTHING`, args...)
		if err != nil {
			return UpsertResult{}, err
		}
		return UpsertResult{Inserted: n > 0}, nil
	}

	// xmax = 0 only holds for a freshly inserted row.
	q := insert + ` ON CONFLICT (id) DO UPDATE SET ` + strings.Join(sets, ", ") + ` RETURNING (xmax = 0)`
	var inserted bool
	if err := r.db.QueryRow(ctx, q, args...).Scan(&inserted); err != nil {
		return UpsertResult{}, err
	}
	return UpsertResult{Inserted: inserted}, nil
}

// ReconcileBidCounts recomputes bid_count from stored bids and corrects any
// drifted rows. Returns the number of corrected jobs.
func (r *PostgresJobRepository) ReconcileBidCounts(ctx context.Context) (int64, error) {
	fixed, err := r.db.Exec(ctx,
		`UPDATE jobs j SET bid_count = c.cnt
		 FROM (SELECT job_id, COUNT(*) AS cnt FROM bids GROUP BY job_id) c
		 WHERE c.job_id = j.id::text AND j.bid_count <> c.cnt`)
	if err != nil {
		return 0, err
	}

	zeroed, err := r.db.Exec(ctx,
		`UPDATE jobs j SET bid_count = 0
		 WHERE j.bid_count <> 0
		   AND NOT EXISTS (SELECT 1 FROM bids b WHERE b.job_id = j.id::text)`)
	if err != nil {
		return fixed, err
	}
	return fixed + zeroed, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes pattern metacharacters so the user-supplied term
// matches titles literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func marshalJobDocs(j job.Job) ([]byte, []byte, error) {
	buyerMap := j.Buyer
	if buyerMap == nil {
		buyerMap = map[string]any{}
	}
	buyer, err := json.Marshal(buyerMap)
	if err != nil {
		return nil, nil, err
	}

	extraMap := j.Extra
	if extraMap == nil {
		extraMap = map[string]any{}
	}
	extra, err := json.Marshal(extraMap)
	if err != nil {
		return nil, nil, err
	}
	return buyer, extra, nil
}

func collectJobs(rows database.Rows) ([]job.Job, error) {
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(s scanner) (job.Job, error) {
	var (
		j     job.Job
		buyer []byte
		extra []byte
	)
	if err := s.Scan(&j.ID, &j.Title, &j.Category, &j.Deadline, &j.BidCount, &buyer, &extra); err != nil {
		return job.Job{}, err
	}
	if len(buyer) > 0 {
		if err := json.Unmarshal(buyer, &j.Buyer); err != nil {
			return job.Job{}, err
		}
	}
	if len(extra) > 0 {
		if err := json.Unmarshal(extra, &j.Extra); err != nil {
			return job.Job{}, err
		}
		if len(j.Extra) == 0 {
			j.Extra = nil
		}
	}
	return j, nil
}
