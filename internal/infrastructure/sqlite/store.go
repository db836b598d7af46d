package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store はブラウザローカル保存の置き換えとなる SQLite バックエンド。
// 純 Go ドライバーなので単一バイナリのまま持ち運べる。
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS months (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	status      TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	images      TEXT NOT NULL DEFAULT '[]',
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS reviews (
	id           TEXT PRIMARY KEY,
	month_id     TEXT NOT NULL,
	nickname     TEXT NOT NULL,
	rating       INTEGER NOT NULL,
	taste        INTEGER NOT NULL,
	portion      INTEGER NOT NULL,
	presentation INTEGER NOT NULL,
	love         TEXT NOT NULL DEFAULT '',
	improve      TEXT NOT NULL DEFAULT '',
	images       TEXT NOT NULL DEFAULT '[]',
	is_featured  INTEGER NOT NULL DEFAULT 0,
	created_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reviews_month_id ON reviews(month_id);
CREATE TABLE IF NOT EXISTS settings (
	id         TEXT PRIMARY KEY,
	username   TEXT NOT NULL,
	password   TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// Open はデータベースファイルを開き、スキーマを適用した Store を返す。
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close は基底のデータベースを閉じる。
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping はヘルスチェック用の疎通確認。
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// formatTime / parseTime はタイムスタンプを RFC3339 (ナノ秒精度) の TEXT で保存するための変換。
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return t, nil
}
