package repository

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fisiocatania_backend/internals/features/operators/auth/model"
	helper "fisiocatania_backend/internals/helpers"
	authMiddleware "fisiocatania_backend/internals/middlewares/auth"
)

// SessionStore backs logout revocation and the per-request session check.
type SessionStore struct {
	DB     *gorm.DB
	Secret string
}

func NewSessionStore(db *gorm.DB, secret string) *SessionStore {
	return &SessionStore{DB: db, Secret: secret}
}

// TokenHash is what token_blacklist stores instead of the raw JWT.
func TokenHash(raw, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(raw))
	return hex.EncodeToString(m.Sum(nil))
}

// Revoke blacklists raw until expiresAt. Revoking twice is a no-op.
func (s *SessionStore) Revoke(ctx context.Context, raw string, operatorID uint, expiresAt time.Time) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	row := model.TokenBlacklistModel{
		Token:       TokenHash(raw, s.Secret),
		OperatoreID: operatorID,
		ExpiredAt:   expiresAt,
	}
	err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token"}}, DoNothing: true}).
		Create(&row).Error
	if err != nil {
		return helper.NewStorageError("revoke token", err)
	}
	return nil
}

// Session reports whether the operator still exists and the token was not
// logged out, with the operator's current name and role.
func (s *SessionStore) Session(ctx context.Context, raw string, operatorID uint) (authMiddleware.Session, error) {
	var row struct {
		Nome    string
		Cognome string
		Email   string
		IsAdmin bool
		Revoked bool
	}
	res := s.DB.WithContext(ctx).Raw(`
		SELECT o.nome, o.cognome, o.email, o.is_admin,
		       EXISTS (SELECT 1 FROM token_blacklist b WHERE b.token = ?) AS revoked
		FROM operatori o
		WHERE o.id = ?`, TokenHash(raw, s.Secret), operatorID).Scan(&row)
	if res.Error != nil {
		return authMiddleware.Session{}, helper.NewStorageError("session lookup", res.Error)
	}
	if res.RowsAffected == 0 || row.Revoked {
		return authMiddleware.Session{}, nil
	}
	return authMiddleware.Session{
		Active:  true,
		Email:   row.Email,
		Name:    strings.TrimSpace(row.Nome + " " + row.Cognome),
		IsAdmin: row.IsAdmin,
	}, nil
}

// PurgeExpired drops rows whose token would be refused by its own expiry anyway.
func (s *SessionStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.DB.WithContext(ctx).Where("expired_at <= ?", now).Delete(&model.TokenBlacklistModel{})
	if res.Error != nil {
		return 0, helper.NewStorageError("purge token blacklist", res.Error)
	}
	return res.RowsAffected, nil
}
