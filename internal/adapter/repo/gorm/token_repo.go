package gormrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"fleurish/internal/adapter/repo/gorm/model"
	"fleurish/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TokenRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTokenRepo(db *gorm.DB) TokenRepo {
	return TokenRepo{db: db, now: time.Now}
}

func (r TokenRepo) Get(ctx context.Context, sessionID string) (string, error) {
	var row model.AuthSession
	if err := r.db.WithContext(ctx).Where(&model.AuthSession{SessionID: sessionID}).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ports.ErrNotFound
		}
		return "", err
	}
	return row.Token, nil
}

func (r TokenRepo) Save(ctx context.Context, sessionID, token string) error {
	if strings.TrimSpace(sessionID) == "" || strings.TrimSpace(token) == "" {
		return ports.ErrConflict
	}
	now := r.now().UTC()
	row := model.AuthSession{
		SessionID: sessionID,
		Token:     token,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "updated_at"}),
	}).Create(&row).Error
}

func (r TokenRepo) Delete(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&model.AuthSession{}).Error
}
