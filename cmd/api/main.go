package main

import (
	"context"
	"log"

	"github.com/avcve/yakawa-sKitchen/internal/config"
	"github.com/avcve/yakawa-sKitchen/internal/server"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()
	backend, err := server.Connect(ctx, cfg)
	if err != nil {
		cfg.ServerLog.Fatalf("ストレージ接続に失敗しました: %v", err)
	}

	app, err := server.New(ctx, cfg, backend)
	if err != nil {
		cfg.ServerLog.Fatalf("サーバー初期化に失敗しました: %v", err)
	}
	if err := app.Run(); err != nil {
		log.Fatalf("サーバー起動に失敗: %v", err)
	}
}
