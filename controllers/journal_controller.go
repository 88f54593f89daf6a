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

type JournalController struct {
	DB       *gorm.DB
	Insights *services.InsightService
	AI       services.AIClient
}

// AnalyzeJournal 代客户端调AI分析日记文本。分析失败时AI层已经
// 返回固定的安抚性兜底结果，本接口永远200。
func (jc *JournalController) AnalyzeJournal(c *gin.Context) {
	var req models.AnalyzeJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	analysis := jc.AI.AnalyzeJournal(c.Request.Context(), req.Content)
	c.JSON(http.StatusOK, analysis)
}

// ListJournals 返回该用户全部日记，按时间倒序
func (jc *JournalController) ListJournals(c *gin.Context) {
	uid := c.GetString("uid")

	var journals []models.Journal
	if err := jc.DB.Where("user_id = ?", uid).
		Order("timestamp DESC").
		Find(&journals).Error; err != nil {
		config.Logger.Errorw("查询日记失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询日记失败"})
		return
	}

	c.JSON(http.StatusOK, journals)
}

// CreateJournal 追加一条日记。AI给出的分析字段原样入库；
// 带显式时间戳时按原值保存，否则服务端赋当前时间。
func (jc *JournalController) CreateJournal(c *gin.Context) {
	uid := c.GetString("uid")

	var req models.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	journal := models.Journal{
		UserID:         uid,
		Content:        req.Content,
		SentimentScore: req.SentimentScore,
		RiskLabel:      req.RiskLabel,
		Advice:         req.Advice,
	}

	if req.Timestamp != "" {
		t, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的时间格式"})
			return
		}
		journal.Timestamp = t
	} else {
		journal.Timestamp = time.Now().UTC()
	}

	if err := jc.DB.Create(&journal).Error; err != nil {
		config.Logger.Errorw("日记写入失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "日记写入失败"})
		return
	}

	jc.Insights.Invalidate(c.Request.Context(), uid)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
