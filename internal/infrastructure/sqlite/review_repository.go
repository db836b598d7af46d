package sqlite

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/avcve/yakawa-sKitchen/internal/review/application"
	"github.com/avcve/yakawa-sKitchen/internal/review/domain"
)

// ReviewRepository は訪問者レビューを SQLite 経由で扱うリポジトリ。
type ReviewRepository struct {
	store *Store
}

// NewReviewRepository は Store を束縛したリポジトリを生成する。
func NewReviewRepository(store *Store) *ReviewRepository {
	return &ReviewRepository{store: store}
}

var _ application.ReviewRepository = (*ReviewRepository)(nil)

// FindAll は createdAt 降順(新しい順)で全件を返す。
func (r *ReviewRepository) FindAll(ctx context.Context) ([]domain.Review, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT id, month_id, nickname, rating, taste, portion, presentation,
		       love, improve, images, is_featured, created_at
		FROM reviews ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var (
			id, monthID, nickname, love, improve, imagesJSON, createdAt string
			rating, taste, portion, presentation                        int
			isFeatured                                                  bool
		)
		if err := rows.Scan(&id, &monthID, &nickname, &rating, &taste, &portion, &presentation,
			&love, &improve, &imagesJSON, &isFeatured, &createdAt); err != nil {
			return nil, err
		}
		review, err := buildReviewRow(id, monthID, nickname, rating, taste, portion, presentation,
			love, improve, imagesJSON, isFeatured, createdAt)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

// Insert はレビューを新規登録し、採番した UUID をドメイン側へ書き戻す。
func (r *ReviewRepository) Insert(ctx context.Context, review *domain.Review) error {
	if review == nil {
		return errors.New("review payload is nil")
	}
	imagesJSON, err := marshalImages(review.Images)
	if err != nil {
		return err
	}
	id := uuid.NewString()
	_, err = r.store.db.ExecContext(ctx, `
		INSERT INTO reviews (id, month_id, nickname, rating, taste, portion, presentation,
		                     love, improve, images, is_featured, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, review.MonthID.String(), review.Nickname.String(), review.Rating.Int(),
		review.Specifics.Taste.Int(), review.Specifics.Portion.Int(), review.Specifics.Presentation.Int(),
		review.Love, review.Improve, imagesJSON, review.IsFeatured, formatTime(review.CreatedAt))
	if err != nil {
		return err
	}
	review.ID = id
	return nil
}

// SetFeatured は注目フラグを指定値へ差し替える。
func (r *ReviewRepository) SetFeatured(ctx context.Context, id string, featured bool) error {
	result, err := r.store.db.ExecContext(ctx,
		`UPDATE reviews SET is_featured = ? WHERE id = ?`, featured, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete はレビューを 1 件だけ物理削除する。
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	result, err := r.store.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func buildReviewRow(id, monthID, nickname string, rating, taste, portion, presentation int,
	love, improve, imagesJSON string, isFeatured bool, createdAt string) (domain.Review, error) {
	ratingValue, err := domain.NewRating(rating)
	if err != nil {
		return domain.Review{}, err
	}
	specifics, err := domain.NewSpecifics(taste, portion, presentation)
	if err != nil {
		return domain.Review{}, err
	}
	images, err := unmarshalImages(imagesJSON, 0)
	if err != nil {
		return domain.Review{}, err
	}
	created, err := parseTime(createdAt)
	if err != nil {
		return domain.Review{}, err
	}
	return domain.Review{
		ID:         id,
		MonthID:    domain.MonthID(monthID),
		Nickname:   domain.NewNickname(nickname),
		Rating:     ratingValue,
		Specifics:  specifics,
		Love:       love,
		Improve:    improve,
		Images:     images,
		IsFeatured: isFeatured,
		CreatedAt:  created,
	}, nil
}
