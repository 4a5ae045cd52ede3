package model

import "time"

// TokenBlacklistModel keeps a logged-out access token refused until it expires.
// Token is the hex HMAC-SHA256 of the raw JWT keyed by the signing secret.
type TokenBlacklistModel struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Token       string    `gorm:"type:char(64);not null;uniqueIndex:uq_token_blacklist_token" json:"-"`
	OperatoreID uint      `gorm:"not null;index" json:"operatore_id"`
	ExpiredAt   time.Time `gorm:"not null;index" json:"expired_at"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (TokenBlacklistModel) TableName() string {
	return "token_blacklist"
}
