package mongo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/avcve/yakawa-sKitchen/internal/review/application"
	"github.com/avcve/yakawa-sKitchen/internal/review/domain"
)

// ReviewRepository は訪問者レビューを MongoDB 経由で扱うリポジトリ。
type ReviewRepository struct {
	reviews *mongo.Collection
}

// NewReviewRepository は reviews コレクションを束縛したリポジトリを生成する。
func NewReviewRepository(db *mongo.Database, collection string) *ReviewRepository {
	return &ReviewRepository{reviews: db.Collection(collection)}
}

var _ application.ReviewRepository = (*ReviewRepository)(nil)

// FindAll は createdAt 降順(新しい順)で全件を返す。
func (r *ReviewRepository) FindAll(ctx context.Context) ([]domain.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.reviews.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := make([]domain.Review, 0)
	for cursor.Next(ctx) {
		var doc ReviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		review, err := mapReviewDocument(doc)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// Insert はレビューを新規登録し、採番した ObjectID をドメイン側へ書き戻す。
func (r *ReviewRepository) Insert(ctx context.Context, review *domain.Review) error {
	if review == nil {
		return errors.New("review payload is nil")
	}
	doc := ReviewDocument{
		ID:       primitive.NewObjectID(),
		MonthID:  review.MonthID.String(),
		Nickname: review.Nickname.String(),
		Rating:   review.Rating.Int(),
		Specifics: SpecificsDocument{
			Taste:        review.Specifics.Taste.Int(),
			Portion:      review.Specifics.Portion.Int(),
			Presentation: review.Specifics.Presentation.Int(),
		},
		Love:       review.Love,
		Improve:    review.Improve,
		Images:     review.Images.Strings(),
		IsFeatured: review.IsFeatured,
		CreatedAt:  review.CreatedAt,
	}
	if _, err := r.reviews.InsertOne(ctx, doc); err != nil {
		return err
	}
	review.ID = doc.ID.Hex()
	return nil
}

// SetFeatured は注目フラグを指定値へ差し替える。
func (r *ReviewRepository) SetFeatured(ctx context.Context, id string, featured bool) error {
	objectID, err := parseReviewID(id)
	if err != nil {
		return err
	}
	result, err := r.reviews.UpdateByID(ctx, objectID, bson.M{"$set": bson.M{"isFeatured": featured}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return application.ErrNotFound
	}
	return nil
}

// Delete はレビューを 1 件だけ物理削除する。
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	objectID, err := parseReviewID(id)
	if err != nil {
		return err
	}
	result, err := r.reviews.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return application.ErrNotFound
	}
	return nil
}

// parseReviewID は不正な ID 文字列を NotFound として扱う。呼び出し側が
// ドライバーの都合を知らなくて済むようにするため。
func parseReviewID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, application.ErrNotFound
	}
	return objectID, nil
}

// mapReviewDocument は Mongo ドキュメントをドメイン Review へ復元する。
func mapReviewDocument(doc ReviewDocument) (domain.Review, error) {
	rating, err := domain.NewRating(doc.Rating)
	if err != nil {
		return domain.Review{}, err
	}
	specifics, err := domain.NewSpecifics(doc.Specifics.Taste, doc.Specifics.Portion, doc.Specifics.Presentation)
	if err != nil {
		return domain.Review{}, err
	}
	images, err := domain.NewImageURLList(doc.Images, 0)
	if err != nil {
		return domain.Review{}, err
	}
	return domain.Review{
		ID:         doc.ID.Hex(),
		MonthID:    domain.MonthID(doc.MonthID),
		Nickname:   domain.NewNickname(doc.Nickname),
		Rating:     rating,
		Specifics:  specifics,
		Love:       doc.Love,
		Improve:    doc.Improve,
		Images:     images,
		IsFeatured: doc.IsFeatured,
		CreatedAt:  doc.CreatedAt,
	}, nil
}
