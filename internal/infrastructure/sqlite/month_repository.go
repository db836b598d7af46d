package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/avcve/yakawa-sKitchen/internal/review/application"
	"github.com/avcve/yakawa-sKitchen/internal/review/domain"
)

// MonthRepository は月間イベントを SQLite 経由で扱うリポジトリ。
type MonthRepository struct {
	store *Store
}

// NewMonthRepository は Store を束縛したリポジトリを生成する。
func NewMonthRepository(store *Store) *MonthRepository {
	return &MonthRepository{store: store}
}

var _ application.MonthRepository = (*MonthRepository)(nil)

// FindAll は登録順(createdAt 昇順)で全件を返す。
func (r *MonthRepository) FindAll(ctx context.Context) ([]domain.Month, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT id, name, status, description, images, created_at, updated_at
		FROM months ORDER BY created_at ASC, rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	months := make([]domain.Month, 0)
	for rows.Next() {
		var (
			id, name, status, description, imagesJSON string
			createdAt, updatedAt                      string
		)
		if err := rows.Scan(&id, &name, &status, &description, &imagesJSON, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		month, err := buildMonthRow(id, name, status, description, imagesJSON, createdAt, updatedAt)
		if err != nil {
			return nil, err
		}
		months = append(months, month)
	}
	return months, rows.Err()
}

// Insert は月間イベントを新規登録する。_id はスラッグなので採番は行わない。
func (r *MonthRepository) Insert(ctx context.Context, month *domain.Month) error {
	if month == nil {
		return errors.New("month payload is nil")
	}
	imagesJSON, err := marshalImages(month.Images)
	if err != nil {
		return err
	}
	_, err = r.store.db.ExecContext(ctx, `
		INSERT INTO months (id, name, status, description, images, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		month.ID.String(), month.Name, month.Status.String(), month.Description,
		imagesJSON, formatTime(month.CreatedAt), formatTime(month.UpdatedAt))
	return err
}

// UpdateStatus は対象月のステータスのみを差し替える。
func (r *MonthRepository) UpdateStatus(ctx context.Context, id domain.MonthID, status domain.MonthStatus) error {
	result, err := r.store.db.ExecContext(ctx,
		`UPDATE months SET status = ?, updated_at = ? WHERE id = ?`,
		status.String(), formatTime(time.Now().UTC()), id.String())
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// UpdateDetails はマージ済みの説明文と画像リストを保存する。
func (r *MonthRepository) UpdateDetails(ctx context.Context, month domain.Month) error {
	imagesJSON, err := marshalImages(month.Images)
	if err != nil {
		return err
	}
	result, err := r.store.db.ExecContext(ctx,
		`UPDATE months SET description = ?, images = ?, updated_at = ? WHERE id = ?`,
		month.Description, imagesJSON, formatTime(month.UpdatedAt), month.ID.String())
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return application.ErrNotFound
	}
	return nil
}

func marshalImages(images domain.ImageURLList) (string, error) {
	values := images.Strings()
	raw, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("marshal images: %w", err)
	}
	return string(raw), nil
}

func unmarshalImages(raw string, limit int) (domain.ImageURLList, error) {
	if raw == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("unmarshal images: %w", err)
	}
	return domain.NewImageURLList(values, limit)
}

func buildMonthRow(id, name, status, description, imagesJSON, createdAt, updatedAt string) (domain.Month, error) {
	monthStatus, err := domain.NewMonthStatus(status)
	if err != nil {
		return domain.Month{}, err
	}
	images, err := unmarshalImages(imagesJSON, 0)
	if err != nil {
		return domain.Month{}, err
	}
	created, err := parseTime(createdAt)
	if err != nil {
		return domain.Month{}, err
	}
	updated, err := parseTime(updatedAt)
	if err != nil {
		return domain.Month{}, err
	}
	return domain.Month{
		ID:          domain.MonthID(id),
		Name:        name,
		Status:      monthStatus,
		Description: description,
		Images:      images,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}
