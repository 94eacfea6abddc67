// Package testutil provides shared helpers for tests that need Postgres or Redis.
package testutil

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	// Register the pgx database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/target/invoice-dashboard/internal/migrate"
)

// TestingTB covers the subset of testing.TB the helpers need.
type TestingTB interface {
	Helper()
	Cleanup(func())
	Skip(args ...any)
	Skipf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	Logf(format string, args ...any)
}

// TestDatabaseURL returns TEST_DATABASE_URL, or "" when unset.
func TestDatabaseURL() string {
	return strings.TrimSpace(os.Getenv("TEST_DATABASE_URL"))
}

// SetupTestDB opens a connection scoped to a fresh schema, applies migrations,
// and drops the schema on cleanup. The test is skipped when no database is
// configured unless TEST_REQUIRE_DB is set.
func SetupTestDB(t TestingTB) *sql.DB {
	t.Helper()

	dsn := TestDatabaseURL()
	if dsn == "" {
		skipOrFail(t, requireDB(), "TEST_DATABASE_URL not set")
	}

	admin, err := openAndPing(dsn)
	if err != nil {
		skipOrFail(t, requireDB(), fmt.Sprintf("test database not available: %v", err))
	}

	schema := schemaName()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, execErr := admin.ExecContext(ctx, "CREATE SCHEMA "+schema); execErr != nil {
		_ = admin.Close()
		t.Fatalf("create schema %s: %v", schema, execErr)
	}

	scoped, err := withSearchPath(dsn, schema)
	if err != nil {
		_ = admin.Close()
		t.Fatalf("build schema DSN: %v", err)
	}
	db, err := openAndPing(scoped)
	if err != nil {
		_ = admin.Close()
		t.Fatalf("open schema DB: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		closeAndLog(t, "schema DB", db)
		if _, dropErr := admin.ExecContext(ctx, "DROP SCHEMA IF EXISTS "+schema+" CASCADE"); dropErr != nil {
			t.Logf("warning: drop schema %s: %v", schema, dropErr)
		}
		closeAndLog(t, "admin DB", admin)
	})

	if migrateErr := migrate.Run(ctx, db); migrateErr != nil {
		t.Fatalf("run migrations: %v", migrateErr)
	}
	return db
}

// SetupTestRedis returns a client on a flushed DB index. The test is skipped
// when Redis is not reachable unless TEST_REQUIRE_REDIS is set.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()

	addr := strings.TrimSpace(os.Getenv("TEST_REDIS_ADDR"))
	if addr == "" {
		skipOrFail(t, requireRedis(), "TEST_REDIS_ADDR not set")
	}

	dbIndex := 1
	if v := os.Getenv("TEST_REDIS_DB"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 {
			dbIndex = i
		}
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: dbIndex})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		closeAndLog(t, "redis client", client)
		skipOrFail(t, requireRedis(), fmt.Sprintf("redis not available at %s: %v", addr, err))
	}
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Logf("warning: flush redis db %d: %v", dbIndex, err)
	}
	t.Cleanup(func() { closeAndLog(t, "redis client", client) })
	return client
}

// FixedTimeFunc returns a clock that always reports ts.
func FixedTimeFunc(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

// TestTime is the reference instant used across tests.
func TestTime() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func openAndPing(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func withSearchPath(dsn, schema string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func schemaName() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("t_%d", time.Now().UnixNano())
	}
	return "t_" + hex.EncodeToString(b)
}

func skipOrFail(t TestingTB, required bool, reason string) {
	t.Helper()
	if required {
		t.Fatal(reason)
	}
	t.Skip(reason)
}

func closeAndLog(t TestingTB, name string, c interface{ Close() error }) {
	if err := c.Close(); err != nil {
		t.Logf("warning: failed to close %s: %v", name, err)
	}
}

func envBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

func requireDB() bool    { return envBool("TEST_REQUIRE_DB") || envBool("TEST_REQUIRE_INFRA") }
func requireRedis() bool { return envBool("TEST_REQUIRE_REDIS") || envBool("TEST_REQUIRE_INFRA") }
