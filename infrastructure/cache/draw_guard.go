package cache

import (
	"context"
	"time"

	"ember-scriptorium/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

const drawGuardTTL = 5 * time.Second

// IDrawGuard fences concurrent draws of the same quote. The selector's
// read-then-stamp has a narrow window where two draws can pick the same
// quote; the guard closes most of it without being load-bearing. A missing
// or failing Redis simply admits every claim.
type IDrawGuard interface {
	TryClaim(ctx context.Context, quoteID string) bool
	Release(ctx context.Context, quoteID string)
}

type DrawGuard struct {
	client *redis.Client
}

func NewDrawGuard(client *redis.Client) IDrawGuard {
	return &DrawGuard{client: client}
}

func (g *DrawGuard) TryClaim(ctx context.Context, quoteID string) bool {
	if g.client == nil {
		return true
	}
	ok, err := g.client.SetNX(ctx, "draw:"+quoteID, 1, drawGuardTTL).Result()
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Draw guard unavailable - admitting claim")
		return true
	}
	return ok
}

func (g *DrawGuard) Release(ctx context.Context, quoteID string) {
	if g.client == nil {
		return
	}
	g.client.Del(ctx, "draw:"+quoteID)
}
