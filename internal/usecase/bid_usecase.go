package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/farukalways/freelancing-platform-create/internal/domain/bid"
	"github.com/farukalways/freelancing-platform-create/internal/repository"

	"github.com/google/uuid"
)

// BidNotifier pushes a bid-placed event to the job owner's live connections.
// Delivery is best effort.
type BidNotifier interface {
	NotifyBidPlaced(ownerEmail, jobID, bidderEmail string)
}

type BidUsecase interface {
	Place(ctx context.Context, b bid.Bid) (uuid.UUID, error)
	ListByBidder(ctx context.Context, email string) ([]bid.Bid, error)
	ListByOwner(ctx context.Context, email string) ([]bid.Bid, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (int64, error)
}

type Bids struct {
	bids     repository.BidRepository
	cache    SearchCache
	notifier BidNotifier
	logger   *log.Logger
}

func NewBidUsecase(bids repository.BidRepository, cache SearchCache, notifier BidNotifier, logger *log.Logger) *Bids {
	return &Bids{bids: bids, cache: cache, notifier: notifier, logger: logger}
}

func (u *Bids) Place(ctx context.Context, b bid.Bid) (uuid.UUID, error) {
	id, err := u.bids.Place(ctx, b)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateBid) {
			return uuid.Nil, ErrDuplicateBid
		}
		u.logf("[Bids] place error jobId=%q: %v", b.JobID, err)
		return uuid.Nil, ErrInternal
	}

	// A successful placement changed a job's bid_count, so cached search
	// results are stale.
	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, searchCachePattern); err != nil {
			u.logf("[Bids] cache invalidate error: %v", err)
		}
	}
	if u.notifier != nil {
		u.notifier.NotifyBidPlaced(b.Buyer, b.JobID, b.Email)
	}
	return id, nil
}

func (u *Bids) ListByBidder(ctx context.Context, email string) ([]bid.Bid, error) {
	items, err := u.bids.ListByBidder(ctx, email)
	if err != nil {
		u.logf("[Bids] bidder list error: %v", err)
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Bids) ListByOwner(ctx context.Context, email string) ([]bid.Bid, error) {
	items, err := u.bids.ListByOwner(ctx, email)
	if err != nil {
		u.logf("[Bids] owner list error: %v", err)
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Bids) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (int64, error) {
	n, err := u.bids.UpdateStatus(ctx, id, status)
	if err != nil {
		u.logf("[Bids] status update error id=%s: %v", id, err)
		return 0, ErrInternal
	}
	return n, nil
}

func (u *Bids) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
