// Package testutil 測試共用的環境建立函式。
//
// Postgres 與 Redis 使用 config.LoadTestConfig 的 5433 / 6380 port，
// 連不上時回傳 error，由呼叫端決定要 Skip 還是 Fatal。
package testutil

import (
	"context"
	"fmt"
	"testing"

	"go-event-hub/config"
	"go-event-hub/internal/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// SetupDatabase 連線測試 DB 並建立 schema
func SetupDatabase() (*pgxpool.Pool, func(), error) {
	cfg := config.LoadTestConfig()

	testDB, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	if err := database.Migrate(context.Background(), testDB); err != nil {
		testDB.Close()
		return nil, nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	cleanup := func() { testDB.Close() }
	return testDB, cleanup, nil
}

// SetupRedisOnly 僅初始化 Redis，用於只依賴 Redis 的測試（如 queue 整合測試）
func SetupRedisOnly() (*redis.Client, func(), error) {
	cfg := config.LoadTestConfig()
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	cleanup := func() { rdb.Close() }
	return rdb, cleanup, nil
}

// NewMiniRedis 啟動 in-process 的 Redis，測試結束時自動關閉
func NewMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}
