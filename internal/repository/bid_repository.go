package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/farukalways/freelancing-platform-create/internal/database"
	"github.com/farukalways/freelancing-platform-create/internal/domain/bid"

	"github.com/google/uuid"
)

var (
	ErrDuplicateBid   = errors.New("bid already placed for this job")
	ErrMalformedJobID = errors.New("malformed job id")
)

type BidRepository interface {
	Place(ctx context.Context, b bid.Bid) (uuid.UUID, error)
	ListByBidder(ctx context.Context, email string) ([]bid.Bid, error)
	ListByOwner(ctx context.Context, email string) ([]bid.Bid, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (int64, error)
}

type PostgresBidRepository struct {
	db database.DB
}

func NewPostgresBidRepository(db database.DB) *PostgresBidRepository {
	return &PostgresBidRepository{db: db}
}

const bidColumns = `id, email, job_id, buyer, status, extra`

// Place inserts the bid and bumps the referenced job's bid_count in one
// transaction. The conditional insert rides on the (email, job_id) unique
// index, so two concurrent placements for the same pair cannot both land.
func (r *PostgresBidRepository) Place(ctx context.Context, b bid.Bid) (uuid.UUID, error) {
	jobID, err := uuid.Parse(strings.TrimSpace(b.JobID))
	if err != nil {
		return uuid.Nil, ErrMalformedJobID
	}

	extraMap := b.Extra
	if extraMap == nil {
		extraMap = map[string]any{}
	}
	extra, err := json.Marshal(extraMap)
	if err != nil {
		return uuid.Nil, err
	}

	id := b.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	n, err := tx.Exec(ctx,
		`INSERT INTO bids (id, email, job_id, buyer, status, extra)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (email, job_id) DO NOTHING`,
		id, b.Email, b.JobID, b.Buyer, b.Status, extra,
	)
	if err != nil {
		return uuid.Nil, err
	}
	if n == 0 {
		return uuid.Nil, ErrDuplicateBid
	}

	if _, err := tx.Exec(ctx,
		`UPDATE jobs SET bid_count = bid_count + 1 WHERE id = $1`, jobID); err != nil {
		return uuid.Nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *PostgresBidRepository) ListByBidder(ctx context.Context, email string) ([]bid.Bid, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+bidColumns+` FROM bids WHERE email = $1`, email)
	if err != nil {
		return nil, err
	}
	return collectBids(rows)
}

func (r *PostgresBidRepository) ListByOwner(ctx context.Context, email string) ([]bid.Bid, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+bidColumns+` FROM bids WHERE buyer = $1`, email)
	if err != nil {
		return nil, err
	}
	return collectBids(rows)
}

func (r *PostgresBidRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (int64, error) {
	return r.db.Exec(ctx, `UPDATE bids SET status = $2 WHERE id = $1`, id, status)
}

func collectBids(rows database.Rows) ([]bid.Bid, error) {
	defer rows.Close()

	out := make([]bid.Bid, 0)
	for rows.Next() {
		var (
			b     bid.Bid
			extra []byte
		)
		if err := rows.Scan(&b.ID, &b.Email, &b.JobID, &b.Buyer, &b.Status, &extra); err != nil {
			return nil, err
		}
		if len(extra) > 0 {
			if err := json.Unmarshal(extra, &b.Extra); err != nil {
				return nil, err
			}
			if len(b.Extra) == 0 {
				b.Extra = nil
			}
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
