package bootstrap

import (
	"context"
	"database/sql"

	"github.com/redis/go-redis/v9"

	httpx "github.com/target/invoice-dashboard/internal/http"
)

// HealthChecks returns a probe for each configured backing service.
func HealthChecks(db *sql.DB, rdb redis.UniversalClient) map[string]httpx.HealthCheck {
	checks := map[string]httpx.HealthCheck{}
	if db != nil {
		checks["postgres"] = db.PingContext
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	return checks
}
