package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"receiptsplit-backend/database"
	"receiptsplit-backend/models"
)

const totalsCacheTTL = 10 * time.Minute

func totalsCacheKey(splitID uuid.UUID) string {
	return "split:totals:" + splitID.String()
}

// CacheMemberTotals stores computed totals for a split. No-op when redis is
// unavailable; the cache is an optimization, never a source of truth.
func CacheMemberTotals(ctx context.Context, splitID uuid.UUID, totals []models.MemberTotal) {
	if database.Redis == nil {
		return
	}

	data, err := json.Marshal(totals)
	if err != nil {
		return
	}

	if err := database.Redis.Set(ctx, totalsCacheKey(splitID), data, totalsCacheTTL).Err(); err != nil {
		logrus.Debug("Failed to cache member totals: ", err)
	}
}

// GetCachedMemberTotals returns cached totals, or ok=false on miss or when
// redis is unavailable.
func GetCachedMemberTotals(ctx context.Context, splitID uuid.UUID) ([]models.MemberTotal, bool) {
	if database.Redis == nil {
		return nil, false
	}

	data, err := database.Redis.Get(ctx, totalsCacheKey(splitID)).Bytes()
	if err != nil {
		return nil, false
	}

	var totals []models.MemberTotal
	if err := json.Unmarshal(data, &totals); err != nil {
		return nil, false
	}
	return totals, true
}

// InvalidateTotals drops the cached totals for a split. Call after any item,
// assignment, or paid-status mutation.
func InvalidateTotals(ctx context.Context, splitID uuid.UUID) {
	if database.Redis == nil {
		return
	}
	if err := database.Redis.Del(ctx, totalsCacheKey(splitID)).Err(); err != nil {
		logrus.Debug("Failed to invalidate totals cache: ", err)
	}
}
