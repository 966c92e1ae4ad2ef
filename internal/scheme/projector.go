package scheme

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rsawant/invest-engine/internal/domain"
)

// Projector answers "what would returns be for principal P" without
// materializing anything. Results may be cached by (schemeID, principal);
// correctness never depends on the cache.
type Projector struct {
	cache *redis.Client
	ttl   time.Duration
	log   *logrus.Logger
}

// NewProjector creates a projector. cache may be nil to disable caching.
func NewProjector(cache *redis.Client, ttl time.Duration, log *logrus.Logger) *Projector {
	return &Projector{cache: cache, ttl: ttl, log: log}
}

// Project previews the full schedule for an arbitrary principal using an
// ephemeral start date. Cache errors are logged and ignored.
func (p *Projector) Project(ctx context.Context, s *domain.FDScheme, principal decimal.Decimal, now time.Time) (*domain.ProjectionResponse, error) {
	key := fmt.Sprintf("projection:%s:%s", s.SchemeID, principal.String())

	if p.cache != nil {
		cached, err := p.cache.Get(ctx, key).Result()
		if err == nil {
			var projection domain.ProjectionResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &projection); unmarshalErr == nil {
				return &projection, nil
			}
		} else if err != redis.Nil {
			p.log.WithError(err).Warn("projection cache read failed")
		}
	}

	events := BuildSchedule(s, principal, now)

	projection := &domain.ProjectionResponse{
		SchemeID:      s.SchemeID,
		Principal:     principal,
		TotalInterest: decimal.Zero,
		TotalTax:      decimal.Zero,
		TotalPayout:   decimal.Zero,
		Events:        events,
	}
	for _, e := range events {
		if e.Type == domain.EventInterest {
			projection.TotalInterest = projection.TotalInterest.Add(e.NetAmount)
			projection.TotalTax = projection.TotalTax.Add(e.TaxAmount)
		}
		projection.TotalPayout = projection.TotalPayout.Add(e.NetAmount)
	}

	if p.cache != nil {
		if raw, err := json.Marshal(projection); err == nil {
			if err := p.cache.Set(ctx, key, raw, p.ttl).Err(); err != nil {
				p.log.WithError(err).Warn("projection cache write failed")
			}
		}
	}

	return projection, nil
}
