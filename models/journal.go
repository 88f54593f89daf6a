package models

import "time"

// Journal 日记记录，仅追加，AI分析结果原样入库不做复核
type Journal struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         string    `gorm:"type:varchar(50);index" json:"user_id"`
	Content        string    `gorm:"type:text" json:"content"`
	SentimentScore float64   `json:"sentiment_score"` // 0-100，100为最消极/危机
	RiskLabel      string    `gorm:"type:varchar(20)" json:"risk_label"` // Low / Medium / High
	Advice         string    `gorm:"type:text" json:"advice"`            // JSON编码的字符串数组
	Timestamp      time.Time `json:"timestamp"`
}
