package usecase

import (
	"context"
	"math/rand"
	"time"

	"ember-scriptorium/domain/dto"
	"ember-scriptorium/domain/model"
	"ember-scriptorium/domain/repository"
	"ember-scriptorium/infrastructure/cache"
	"ember-scriptorium/infrastructure/logger"

	"github.com/google/uuid"
)

// nonRepeatWindow is how long a quote sits out after being used.
const nonRepeatWindow = 14 * 24 * time.Hour

const defaultListLimit = 50

type IQuoteUsecase interface {
	ReplaceAll(ctx context.Context, rows []dto.QuoteRow) (int, error)
	List(ctx context.Context, skip, limit int64) ([]model.Quote, int64, error)
	SelectNext(ctx context.Context) (*model.Quote, error)
}

type quoteUsecase struct {
	quoteRepo repository.IQuote
	guard     cache.IDrawGuard
}

func NewQuoteUsecase(quoteRepo repository.IQuote, guard cache.IDrawGuard) IQuoteUsecase {
	return &quoteUsecase{quoteRepo: quoteRepo, guard: guard}
}

func (u *quoteUsecase) ReplaceAll(ctx context.Context, rows []dto.QuoteRow) (int, error) {
	quotes := make([]model.Quote, 0, len(rows))
	for _, row := range rows {
		quotes = append(quotes, model.Quote{
			ID:             uuid.NewString(),
			Quote:          row.Quote,
			Theme:          row.Theme,
			Tone:           row.Tone,
			Length:         row.Length,
			VisualKeywords: row.VisualKeywords,
			LastUsed:       nil,
			TimesUsed:      0,
		})
	}
	if err := u.quoteRepo.ReplaceAll(ctx, quotes); err != nil {
		return 0, err
	}
	return len(quotes), nil
}

func (u *quoteUsecase) List(ctx context.Context, skip, limit int64) ([]model.Quote, int64, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if skip < 0 {
		skip = 0
	}
	return u.quoteRepo.List(ctx, skip, limit)
}

// SelectNext draws a quote uniformly among those not used within the
// non-repeat window, falling back to the least-recently-used quote when the
// whole bank has been cycled, and stamps usage on the chosen quote only.
func (u *quoteUsecase) SelectNext(ctx context.Context) (*model.Quote, error) {
	cutoff := time.Now().UTC().Add(-nonRepeatWindow)
	candidates, err := u.quoteRepo.FindAvailable(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		candidates, err = u.quoteRepo.FindLeastRecentlyUsed(ctx, 1)
		if err != nil {
			return nil, err
		}
	}
	if len(candidates) == 0 {
		return nil, model.ErrNoQuotesAvailable
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		pick := candidates[rand.Intn(len(candidates))]
		// A lost claim means a concurrent draw holds this quote; re-pick once,
		// then accept the narrow duplicate-draw window the design tolerates.
		if !u.guard.TryClaim(ctx, pick.ID) && attempt == 0 {
			continue
		}
		quote, err := u.quoteRepo.StampUsage(ctx, pick.ID, time.Now().UTC())
		u.guard.Release(ctx, pick.ID)
		if err == nil {
			return quote, nil
		}
		// The quote can vanish between read and stamp when the bank is
		// replaced mid-draw.
		logger.GetLogger().WithField("quote_id", pick.ID).WithField("error", err).Warn("Usage stamp missed, re-picking")
		lastErr = err
	}
	return nil, lastErr
}
