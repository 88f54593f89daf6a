package controllers

import (
	"net/http"

	"github.com/nguynqun376/MindGuardAI/config"
	"github.com/nguynqun376/MindGuardAI/models"
	"github.com/nguynqun376/MindGuardAI/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MoodController struct {
	DB       *gorm.DB
	Insights *services.InsightService
}

// ListMoods 返回最近30条心情记录，按日期倒序
func (mc *MoodController) ListMoods(c *gin.Context) {
	uid := c.GetString("uid")

	var moods []models.Mood
	if err := mc.DB.Where("user_id = ?", uid).
		Order("date DESC").
		Limit(30).
		Find(&moods).Error; err != nil {
		config.Logger.Errorw("查询心情记录失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询心情记录失败"})
		return
	}

	c.JSON(http.StatusOK, moods)
}

// UpsertMood 写入某天的心情，(user_id, date) 已存在时整行替换。
// level和date格式本层不校验，由调用方保证。
func (mc *MoodController) UpsertMood(c *gin.Context) {
	uid := c.GetString("uid")

	var req models.UpsertMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mood := models.Mood{
		UserID: uid,
		Date:   req.Date,
		Level:  req.Level,
		Tags:   req.Tags,
	}

	if err := mc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"level", "tags", "timestamp"}),
	}).Create(&mood).Error; err != nil {
		config.Logger.Errorw("心情记录写入失败", "error", err, "uid", uid, "date", req.Date)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "心情记录写入失败"})
		return
	}

	mc.Insights.Invalidate(c.Request.Context(), uid)

	escalate, err := mc.Insights.ShouldEscalate(uid, req.Level)
	if err != nil {
		config.Logger.Errorw("升级判断失败", "error", err, "uid", uid)
		escalate = false
	}

	c.JSON(http.StatusOK, models.UpsertMoodResponse{
		Success:  true,
		Escalate: escalate,
	})
}
