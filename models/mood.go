package models

import "time"

// Mood 每日心情记录，(user_id, date) 唯一，重复提交按upsert处理
type Mood struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:varchar(50);uniqueIndex:idx_moods_user_date" json:"user_id"`
	Date      string    `gorm:"type:varchar(10);uniqueIndex:idx_moods_user_date" json:"date"` // YYYY-MM-DD
	Level     int       `json:"level"`                                                        // 1 最差 ~ 5 最好
	Tags      string    `gorm:"type:text" json:"tags"`
	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`
}
