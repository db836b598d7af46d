package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/avcve/yakawa-sKitchen/internal/review/application"
	"github.com/avcve/yakawa-sKitchen/internal/review/domain"
)

// MonthRepository は月間イベントを MongoDB 経由で扱うリポジトリ。
type MonthRepository struct {
	months *mongo.Collection
}

// NewMonthRepository は months コレクションを束縛したリポジトリを生成する。
func NewMonthRepository(db *mongo.Database, collection string) *MonthRepository {
	return &MonthRepository{months: db.Collection(collection)}
}

var _ application.MonthRepository = (*MonthRepository)(nil)

// FindAll は登録順(createdAt 昇順)で全件を返す。追加操作が末尾に並ぶ想定を保つ。
func (r *MonthRepository) FindAll(ctx context.Context) ([]domain.Month, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.months.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	months := make([]domain.Month, 0)
	for cursor.Next(ctx) {
		var doc MonthDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		month, err := mapMonthDocument(doc)
		if err != nil {
			return nil, err
		}
		months = append(months, month)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return months, nil
}

// Insert はドメイン月間イベントをドキュメントへ変換して新規登録する。
// _id はスラッグなのでバックエンド採番は行わない。
func (r *MonthRepository) Insert(ctx context.Context, month *domain.Month) error {
	if month == nil {
		return errors.New("month payload is nil")
	}
	doc := MonthDocument{
		ID:          month.ID.String(),
		Name:        month.Name,
		Status:      month.Status.String(),
		Description: month.Description,
		Images:      month.Images.Strings(),
		CreatedAt:   month.CreatedAt,
		UpdatedAt:   month.UpdatedAt,
	}
	_, err := r.months.InsertOne(ctx, doc)
	return err
}

// UpdateStatus は対象月のステータスのみを差し替える。他の月には触れない。
func (r *MonthRepository) UpdateStatus(ctx context.Context, id domain.MonthID, status domain.MonthStatus) error {
	result, err := r.months.UpdateByID(ctx, id.String(), bson.M{"$set": bson.M{
		"status":    status.String(),
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return application.ErrNotFound
	}
	return nil
}

// UpdateDetails はマージ済みの説明文と画像リストを保存する。
func (r *MonthRepository) UpdateDetails(ctx context.Context, month domain.Month) error {
	result, err := r.months.UpdateByID(ctx, month.ID.String(), bson.M{"$set": bson.M{
		"description": month.Description,
		"images":      month.Images.Strings(),
		"updatedAt":   month.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return application.ErrNotFound
	}
	return nil
}

// mapMonthDocument は Mongo ドキュメントをドメイン Month へ復元する。
func mapMonthDocument(doc MonthDocument) (domain.Month, error) {
	status, err := domain.NewMonthStatus(doc.Status)
	if err != nil {
		return domain.Month{}, err
	}
	images, err := domain.NewImageURLList(doc.Images, 0)
	if err != nil {
		return domain.Month{}, err
	}
	return domain.Month{
		ID:          domain.MonthID(doc.ID),
		Name:        doc.Name,
		Status:      status,
		Description: doc.Description,
		Images:      images,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}
