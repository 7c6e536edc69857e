package persistence

import (
	"time"
)

// UserModel represents the users table
type UserModel struct {
	ID        string    `gorm:"column:id;primaryKey;not null"`
	Name      string    `gorm:"column:name;not null"`
	Email     string    `gorm:"column:email;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (UserModel) TableName() string {
	return "users"
}
