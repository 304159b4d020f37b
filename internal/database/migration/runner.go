// Package migration bootstraps the jobs and bids tables. Statements are
// idempotent so the runner is safe to execute on every start.
package migration

import (
	"context"
	"errors"
	"fmt"

	"github.com/farukalways/freelancing-platform-create/internal/database"
)

const advisoryLockID = 881237402

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS jobs (
		id         uuid PRIMARY KEY,
		title      text NOT NULL DEFAULT '',
		category   text NOT NULL DEFAULT '',
		deadline   text NOT NULL DEFAULT '',
		bid_count  bigint NOT NULL DEFAULT 0,
		buyer      jsonb NOT NULL DEFAULT '{}'::jsonb,
		extra      jsonb NOT NULL DEFAULT '{}'::jsonb,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS bids (
		id         uuid PRIMARY KEY,
		email      text NOT NULL,
		job_id     text NOT NULL,
		buyer      text NOT NULL DEFAULT '',
		status     text NOT NULL DEFAULT '',
		extra      jsonb NOT NULL DEFAULT '{}'::jsonb,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	// The uniqueness invariant on (email, job_id) is enforced here rather
	// than by a read-before-insert, so concurrent placements cannot slip
	// past each other.
	`CREATE UNIQUE INDEX IF NOT EXISTS bids_email_job_id_idx ON bids (email, job_id)`,
	`CREATE INDEX IF NOT EXISTS jobs_buyer_email_idx ON jobs ((buyer->>'email'))`,
	`CREATE INDEX IF NOT EXISTS bids_buyer_idx ON bids (buyer)`,
}

type Runner struct{}

func (Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return errors.New("nil db")
	}

	if _, err := db.Exec(ctx, `SELECT pg_advisory_lock($1)`, advisoryLockID); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}
	defer func() {
		_, _ = db.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, advisoryLockID)
	}()

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
