package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/avcve/yakawa-sKitchen/internal/auth"
	"github.com/avcve/yakawa-sKitchen/internal/config"
	mongodoc "github.com/avcve/yakawa-sKitchen/internal/infrastructure/mongo"
	"github.com/avcve/yakawa-sKitchen/internal/infrastructure/sqlite"
	"github.com/avcve/yakawa-sKitchen/internal/review/application"
)

// Backend は STORAGE_DRIVER に応じて選んだ永続化層を束ねる。
// ここより上の層はリポジトリのインターフェースしか見ないため、
// Mongo / SQLite の違いはこのファイルに閉じる。
type Backend struct {
	logger *log.Logger
	client *mongo.Client
	store  *sqlite.Store

	months      application.MonthRepository
	reviews     application.ReviewRepository
	credentials auth.CredentialRepository
}

// Connect は設定されたドライバーへ接続し、各リポジトリを組み立てる。
func Connect(ctx context.Context, cfg config.Config) (*Backend, error) {
	backend := &Backend{logger: cfg.ServerLog}

	switch cfg.StorageDriver {
	case config.DriverMongo:
		connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()

		client, err := mongo.Connect(connectCtx, mongooptions.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}
		if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
			return nil, fmt.Errorf("mongo ping: %w", err)
		}

		db := client.Database(cfg.MongoDatabase)
		backend.client = client
		backend.months = mongodoc.NewMonthRepository(db, cfg.MonthCollection)
		backend.reviews = mongodoc.NewReviewRepository(db, cfg.ReviewCollection)
		backend.credentials = mongodoc.NewCredentialRepository(db, cfg.SettingsCollection)

	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite open: %w", err)
		}
		backend.store = store
		backend.months = sqlite.NewMonthRepository(store)
		backend.reviews = sqlite.NewReviewRepository(store)
		backend.credentials = sqlite.NewCredentialRepository(store)

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	return backend, nil
}

// Months は月リポジトリを返す。
func (b *Backend) Months() application.MonthRepository { return b.months }

// Reviews はレビューリポジトリを返す。
func (b *Backend) Reviews() application.ReviewRepository { return b.reviews }

// Credentials は管理者認証情報リポジトリを返す。
func (b *Backend) Credentials() auth.CredentialRepository { return b.credentials }

// Ping はヘルスチェック用にストレージへの疎通を確認する。
func (b *Backend) Ping(ctx context.Context) error {
	if b.client != nil {
		return b.client.Ping(ctx, readpref.Primary())
	}
	if b.store != nil {
		return b.store.Ping(ctx)
	}
	return fmt.Errorf("storage backend not connected")
}

// Close はストレージ接続をタイムアウト付きで切断する。
func (b *Backend) Close(ctx context.Context) {
	closeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if b.client != nil {
		if err := b.client.Disconnect(closeCtx); err != nil {
			b.logger.Printf("MongoDB 切断時にエラー: %v", err)
		}
	}
	if b.store != nil {
		if err := b.store.Close(); err != nil {
			b.logger.Printf("SQLite クローズ時にエラー: %v", err)
		}
	}
}
