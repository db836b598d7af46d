package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/avcve/yakawa-sKitchen/internal/auth"
)

const credentialDocumentID = "admin"

// CredentialRepository は settings コレクションに管理者クレデンシャルを 1 件だけ保持する。
type CredentialRepository struct {
	settings *mongo.Collection
}

// NewCredentialRepository は settings コレクションを束縛したリポジトリを生成する。
func NewCredentialRepository(db *mongo.Database, collection string) *CredentialRepository {
	return &CredentialRepository{settings: db.Collection(collection)}
}

var _ auth.CredentialRepository = (*CredentialRepository)(nil)

// Load は保存済みのクレデンシャルを返す。未保存なら nil を返し、設定値へフォールバックさせる。
func (r *CredentialRepository) Load(ctx context.Context) (*auth.Credentials, error) {
	var doc CredentialDocument
	err := r.settings.FindOne(ctx, bson.M{"_id": credentialDocumentID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &auth.Credentials{Username: doc.Username, Password: doc.Password}, nil
}

// Save はクレデンシャルを upsert で差し替える。
func (r *CredentialRepository) Save(ctx context.Context, creds auth.Credentials) error {
	doc := CredentialDocument{
		ID:        credentialDocumentID,
		Username:  creds.Username,
		Password:  creds.Password,
		UpdatedAt: time.Now().UTC(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.settings.ReplaceOne(ctx, bson.M{"_id": credentialDocumentID}, doc, opts)
	return err
}
