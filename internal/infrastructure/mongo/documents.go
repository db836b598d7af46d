package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MonthDocument は MongoDB 上での月間イベントのスキーマを Go 構造体として表現したもの。
// _id にはスラッグをそのまま使う。
type MonthDocument struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Status      string    `bson:"status"`
	Description string    `bson:"description,omitempty"`
	Images      []string  `bson:"images,omitempty"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

// ReviewDocument は訪問者レビューの保存スキーマを表現する。
type ReviewDocument struct {
	ID         primitive.ObjectID `bson:"_id"`
	MonthID    string             `bson:"monthId"`
	Nickname   string             `bson:"nickname"`
	Rating     int                `bson:"rating"`
	Specifics  SpecificsDocument  `bson:"specifics"`
	Love       string             `bson:"love,omitempty"`
	Improve    string             `bson:"improve,omitempty"`
	Images     []string           `bson:"images,omitempty"`
	IsFeatured bool               `bson:"isFeatured"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

// SpecificsDocument は 3 項目のサブ評価を保持する埋め込みドキュメント。
type SpecificsDocument struct {
	Taste        int `bson:"taste"`
	Portion      int `bson:"portion"`
	Presentation int `bson:"presentation"`
}

// CredentialDocument は管理者クレデンシャルを 1 件だけ保持する settings ドキュメント。
type CredentialDocument struct {
	ID        string    `bson:"_id"`
	Username  string    `bson:"username"`
	Password  string    `bson:"password"`
	UpdatedAt time.Time `bson:"updatedAt"`
}
