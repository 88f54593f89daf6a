package models

import "time"

// 对话角色
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage 对话消息，仅追加，按时间升序读取
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:varchar(50);index" json:"user_id"`
	Role      string    `gorm:"type:varchar(10)" json:"role"` // user / model
	Content   string    `gorm:"type:text" json:"content"`
	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`
}
