package database

import (
	"context"
	"fmt"
	"time"

	"go-event-hub/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

func InitDatabase(config *config.DatabaseConfig) (*pgxpool.Pool, error) {

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s timezone=%s",
		config.Host,
		config.Port,
		config.User,
		config.Password,
		config.DBName,
		config.SSLMode,
		"UTC",
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	// 設置連接池參數
	poolConfig.MaxConns = 10                      // 單一使用者，連線數不需太多
	poolConfig.MinConns = 1                       // 最小連接數
	poolConfig.MaxConnLifetime = time.Hour        // 連接最大生命週期
	poolConfig.MaxConnIdleTime = time.Minute * 30 // 最大閒置時間

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, err
	}

	err = pool.Ping(context.Background())
	if err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS events (
	seq            BIGSERIAL,
	event_id       TEXT PRIMARY KEY,
	title          TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	date           TEXT NOT NULL DEFAULT '',
	time           TEXT NOT NULL DEFAULT '',
	location       TEXT NOT NULL DEFAULT '',
	capacity       INTEGER NOT NULL,
	registered     INTEGER NOT NULL DEFAULT 0,
	price          DOUBLE PRECISION NOT NULL DEFAULT 0,
	category       TEXT NOT NULL DEFAULT '',
	image          TEXT NOT NULL DEFAULT '',
	organizer_id   TEXT NOT NULL,
	organizer_name TEXT NOT NULL,
	status         TEXT NOT NULL DEFAULT 'upcoming'
);

CREATE INDEX IF NOT EXISTS idx_events_seq ON events (seq);
`

// Migrate 建立 catalog 所需的資料表，可重複執行
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate events table: %w", err)
	}
	return nil
}
