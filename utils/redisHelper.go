package utils

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/bsm/redislock"
	"github.com/buildrise/costledger_backend/config"
)

func GetCacheLifespan() time.Duration {
	lifespan, err := strconv.Atoi(os.Getenv("CACHE_LIFESPAN"))
	if err != nil {
		lifespan = 1
	}
	return time.Duration(lifespan) * time.Hour
}

// CompanyLock serializes a posting operation per tenant via redislock.
// The lock is a best-effort optimization: reliability must not depend on Redis —
// the cascade's real guard is MySQL row locks inside the transaction. Returns a
// release func; when Redis is unavailable the release is a no-op.
func CompanyLock(ctx context.Context, companyId string, lockType string, moduleName string, functionName string) (func(), error) {
	locker := config.GetRedisLock()
	if locker == nil {
		return func() {}, nil
	}

	key := "lock:" + lockType + ":" + companyId
	lock, err := locker.Obtain(ctx, key, 30*time.Second, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(200*time.Millisecond), 25),
	})
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return func() {}, errors.New("another posting operation is in progress for this company")
		}
		// Redis trouble is not a reason to refuse the request.
		config.LogError(config.GetLogger(), moduleName, functionName, "CompanyLock "+key, nil, err)
		return func() {}, nil
	}

	return func() {
		_ = lock.Release(context.Background())
	}, nil
}

// remove a cached KPI snapshot after a write that changes the rollups
func InvalidateKPICache(companyId string) error {
	return config.RemoveRedisKey("kpis:" + companyId)
}
