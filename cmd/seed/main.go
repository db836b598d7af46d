// cmd/seed はローカル開発用のダミーデータ投入ツール。
// STORAGE_DRIVER の設定に従い、Mongo / SQLite どちらにも投入できる。
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/avcve/yakawa-sKitchen/internal/config"
	"github.com/avcve/yakawa-sKitchen/internal/review/domain"
	"github.com/avcve/yakawa-sKitchen/internal/server"
)

var monthNames = []struct {
	name   string
	status domain.MonthStatus
}{
	{"January 2026", domain.MonthStatusClosed},
	{"February 2026", domain.MonthStatusActive},
	{"March 2026", domain.MonthStatusUpcoming},
}

var nicknames = []string{
	"Guest", "たろう", "はなこ", "常連さん", "近所の学生", "Mika", "けん",
}

var loveSamples = []string{
	"スープが絶品でした。また来月も来ます!",
	"盛り付けがきれいで写真映えしました。",
	"ボリュームたっぷりで大満足です。",
	"スタッフの方の対応が温かかったです。",
}

var improveSamples = []string{
	"",
	"もう少し辛さを選べると嬉しいです。",
	"混雑時の待ち時間が長めでした。",
}

func main() {
	reviewCount := flag.Int("reviews", 12, "投入するレビュー件数")
	randomSeed := flag.Int64("seed", time.Now().UnixNano(), "乱数シード")
	flag.Parse()

	cfg := config.Load()
	logger := cfg.ServerLog

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	backend, err := server.Connect(ctx, cfg)
	if err != nil {
		logger.Fatalf("ストレージ接続に失敗しました: %v", err)
	}
	defer backend.Close(context.Background())

	months, err := ensureMonths(ctx, backend)
	if err != nil {
		logger.Fatalf("月データの投入に失敗しました: %v", err)
	}
	logger.Printf("月データ: %d 件", len(months))

	rng := rand.New(rand.NewSource(*randomSeed))
	inserted := 0
	for i := 0; i < *reviewCount; i++ {
		review := buildReview(rng, months[rng.Intn(len(months))])
		if err := backend.Reviews().Insert(ctx, &review); err != nil {
			logger.Fatalf("レビューの投入に失敗しました: %v", err)
		}
		inserted++
	}
	logger.Printf("レビューを %d 件投入しました", inserted)
}

// ensureMonths は既定の月がなければ作成し、全月を返す。
func ensureMonths(ctx context.Context, backend *server.Backend) ([]domain.Month, error) {
	existing, err := backend.Months().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	now := time.Now().UTC()
	months := make([]domain.Month, 0, len(monthNames))
	for i, entry := range monthNames {
		id, err := domain.NewMonthID(entry.name)
		if err != nil {
			return nil, err
		}
		month := domain.Month{
			ID:          id,
			Name:        entry.name,
			Status:      entry.status,
			Description: fmt.Sprintf("%s の月替わりメニューです。", entry.name),
			CreatedAt:   now.Add(time.Duration(i) * time.Second),
			UpdatedAt:   now.Add(time.Duration(i) * time.Second),
		}
		if err := backend.Months().Insert(ctx, &month); err != nil {
			return nil, err
		}
		months = append(months, month)
	}
	return months, nil
}

// buildReview は 1 件分のダミーレビューを組み立てる。
func buildReview(rng *rand.Rand, month domain.Month) domain.Review {
	rating, _ := domain.NewRating(3 + rng.Intn(3))
	specifics, _ := domain.NewSpecifics(1+rng.Intn(5), 1+rng.Intn(5), 1+rng.Intn(5))

	love := loveSamples[rng.Intn(len(loveSamples))]
	improve := improveSamples[rng.Intn(len(improveSamples))]

	return domain.Review{
		MonthID:    month.ID,
		Nickname:   domain.NewNickname(nicknames[rng.Intn(len(nicknames))]),
		Rating:     rating,
		Specifics:  specifics,
		Love:       strings.TrimSpace(love),
		Improve:    strings.TrimSpace(improve),
		IsFeatured: rng.Intn(5) == 0,
		CreatedAt:  time.Now().UTC().Add(-time.Duration(rng.Intn(72)) * time.Hour),
	}
}
