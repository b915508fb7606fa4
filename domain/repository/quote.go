package repository

import (
	"context"
	"time"

	"ember-scriptorium/domain/model"
)

// IQuote defines the quote bank collaborator contract.
type IQuote interface {
	// ReplaceAll drops the existing bank and inserts the given quotes.
	ReplaceAll(ctx context.Context, quotes []model.Quote) error
	// List returns a page of quotes plus the total bank size.
	List(ctx context.Context, skip, limit int64) ([]model.Quote, int64, error)
	// FindAvailable returns quotes never used or last used before cutoff.
	FindAvailable(ctx context.Context, cutoff time.Time) ([]model.Quote, error)
	// FindLeastRecentlyUsed returns up to limit quotes ordered by earliest
	// last_used, the forward-progress fallback when the whole bank is fresh.
	FindLeastRecentlyUsed(ctx context.Context, limit int64) ([]model.Quote, error)
	// StampUsage atomically sets last_used and increments times_used for one
	// quote, returning the updated record.
	StampUsage(ctx context.Context, id string, usedAt time.Time) (*model.Quote, error)
}
