package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/avcve/yakawa-sKitchen/internal/auth"
)

const credentialRowID = "admin"

// CredentialRepository は settings テーブルに管理者クレデンシャルを 1 行だけ保持する。
type CredentialRepository struct {
	store *Store
}

// NewCredentialRepository は Store を束縛したリポジトリを生成する。
func NewCredentialRepository(store *Store) *CredentialRepository {
	return &CredentialRepository{store: store}
}

var _ auth.CredentialRepository = (*CredentialRepository)(nil)

// Load は保存済みのクレデンシャルを返す。未保存なら nil を返し、設定値へフォールバックさせる。
func (r *CredentialRepository) Load(ctx context.Context) (*auth.Credentials, error) {
	var username, password string
	err := r.store.db.QueryRowContext(ctx,
		`SELECT username, password FROM settings WHERE id = ?`, credentialRowID).
		Scan(&username, &password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &auth.Credentials{Username: username, Password: password}, nil
}

// Save はクレデンシャルを upsert で差し替える。
func (r *CredentialRepository) Save(ctx context.Context, creds auth.Credentials) error {
	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO settings (id, username, password, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET username = excluded.username,
		                              password = excluded.password,
		                              updated_at = excluded.updated_at`,
		credentialRowID, creds.Username, creds.Password, formatTime(time.Now().UTC()))
	return err
}
