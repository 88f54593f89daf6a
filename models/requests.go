package models

// UpsertMoodRequest 心情上报请求结构体
type UpsertMoodRequest struct {
	Level int    `json:"level"`
	Date  string `json:"date"` // YYYY-MM-DD，本层不校验格式
	Tags  string `json:"tags"`
}

// AnalyzeJournalRequest 日记分析请求结构体
type AnalyzeJournalRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreateJournalRequest 日记创建请求结构体
type CreateJournalRequest struct {
	Content        string  `json:"content" binding:"required"`
	SentimentScore float64 `json:"sentiment_score"`
	RiskLabel      string  `json:"risk_label"`
	Advice         string  `json:"advice"`
	// 可选的显式时间戳（ISO 8601），缺省时由服务端赋值
	Timestamp string `json:"timestamp"`
}

// AppendChatMessageRequest 对话消息追加请求结构体
type AppendChatMessageRequest struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// ChatRequest 对话请求结构体（服务端代调AI并落库）
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}
