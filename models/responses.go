package models

// UpsertMoodResponse 心情上报响应结构体
type UpsertMoodResponse struct {
	Success bool `json:"success"`
	// 连续两天低落（均≤2）时为true，客户端据此切换到对话页
	Escalate bool `json:"escalate"`
}

// DailySentiment 某一天的综合情绪值，Level为nil表示当天无数据（留空不插值）
type DailySentiment struct {
	Date  string   `json:"date"` // YYYY-MM-DD
	Name  string   `json:"name"` // 星期几的短名
	Level *float64 `json:"level"`
}

// WeeklyInsightsResponse 近7天综合情绪响应结构体
type WeeklyInsightsResponse struct {
	Days []DailySentiment `json:"days"`
}

// ChatResponse 对话响应结构体
type ChatResponse struct {
	Reply string `json:"reply"`
}

// GreetingResponse 主动问候响应结构体
type GreetingResponse struct {
	Greeting string `json:"greeting"`
}

// JournalAnalysis AI日记分析结果
type JournalAnalysis struct {
	SentimentScore float64  `json:"sentimentScore"`
	RiskLabel      string   `json:"riskLabel"`
	Advice         []string `json:"advice"`
	IsEmergency    bool     `json:"isEmergency"`
}
