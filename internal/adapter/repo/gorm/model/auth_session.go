package model

import "time"

const TableNameAuthSession = "auth_sessions"

type AuthSession struct {
	SessionID string    `gorm:"column:session_id;primaryKey" json:"session_id"`
	Token     string    `gorm:"column:token;not null" json:"token"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (*AuthSession) TableName() string {
	return TableNameAuthSession
}
