package controllers

import (
	"net/http"
	"time"

	"github.com/nguynqun376/MindGuardAI/config"
	"github.com/nguynqun376/MindGuardAI/models"
	"github.com/nguynqun376/MindGuardAI/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ChatController struct {
	DB *gorm.DB
	AI services.AIClient
}

func NewChatController(db *gorm.DB, ai services.AIClient) *ChatController {
	return &ChatController{DB: db, AI: ai}
}

// GetChatHistory 返回全部对话消息，按时间升序（与心情/日记的倒序相反）
func (cc *ChatController) GetChatHistory(c *gin.Context) {
	uid := c.GetString("uid")

	var history []models.ChatMessage
	if err := cc.DB.Where("user_id = ?", uid).
		Order("timestamp ASC, id ASC").
		Find(&history).Error; err != nil {
		config.Logger.Errorw("查询对话记录失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询对话记录失败"})
		return
	}

	c.JSON(http.StatusOK, history)
}

// AppendChatMessage 无条件追加一条对话消息
func (cc *ChatController) AppendChatMessage(c *gin.Context) {
	uid := c.GetString("uid")

	var req models.AppendChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg := models.ChatMessage{
		UserID:  uid,
		Role:    req.Role,
		Content: req.Content,
	}
	if err := cc.DB.Create(&msg).Error; err != nil {
		config.Logger.Errorw("对话消息写入失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "对话消息写入失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SendMessage 代客户端完成一轮对话：落库用户消息，带上历史和当日心情
// 调AI生成回复，再落库模型消息。可见记录里只存干净文本，
// 隐藏上下文标签只出现在发给AI的内容里。
func (cc *ChatController) SendMessage(c *gin.Context) {
	uid := c.GetString("uid")

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 取发送前的历史对话
	var history []models.ChatMessage
	if err := cc.DB.Where("user_id = ?", uid).
		Order("timestamp ASC, id ASC").
		Find(&history).Error; err != nil {
		config.Logger.Errorw("查询对话记录失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询对话记录失败"})
		return
	}

	moodLevel, moodTag := cc.todayMood(uid)

	userMsg := models.ChatMessage{
		UserID:  uid,
		Role:    models.RoleUser,
		Content: req.Message,
	}
	if err := cc.DB.Create(&userMsg).Error; err != nil {
		config.Logger.Errorw("对话消息写入失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "对话消息写入失败"})
		return
	}

	reply, err := cc.AI.GenerateChatReply(c.Request.Context(), history, req.Message, moodLevel, moodTag)
	if err != nil {
		config.Logger.Errorw("生成对话回复失败", "error", err, "uid", uid)
		c.JSON(http.StatusBadGateway, gin.H{"error": services.ApologyReply})
		return
	}

	modelMsg := models.ChatMessage{
		UserID:  uid,
		Role:    models.RoleModel,
		Content: reply,
	}
	if err := cc.DB.Create(&modelMsg).Error; err != nil {
		config.Logger.Errorw("对话消息写入失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "对话消息写入失败"})
		return
	}

	c.JSON(http.StatusOK, models.ChatResponse{Reply: reply})
}

// GetGreeting 没有任何历史消息时的主动问候
func (cc *ChatController) GetGreeting(c *gin.Context) {
	uid := c.GetString("uid")

	moodLevel, _ := cc.todayMood(uid)

	greeting, err := cc.AI.GenerateGreeting(c.Request.Context(), moodLevel)
	if err != nil {
		config.Logger.Errorw("生成问候失败", "error", err, "uid", uid)
		c.JSON(http.StatusBadGateway, gin.H{"error": services.ApologyReply})
		return
	}

	c.JSON(http.StatusOK, models.GreetingResponse{Greeting: greeting})
}

// todayMood 当天的心情档位和标签，没有记录时档位为0
func (cc *ChatController) todayMood(uid string) (int, string) {
	today := time.Now().Format("2006-01-02")
	var mood models.Mood
	if err := cc.DB.Where("user_id = ? AND date = ?", uid, today).First(&mood).Error; err != nil {
		return 0, ""
	}
	return mood.Level, mood.Tags
}
