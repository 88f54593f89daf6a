package controllers

import (
	"net/http"
	"time"

	"github.com/nguynqun376/MindGuardAI/config"
	"github.com/nguynqun376/MindGuardAI/services"

	"github.com/gin-gonic/gin"
)

type InsightController struct {
	Insights *services.InsightService
}

// GetWeeklyInsights 返回近7天每日综合情绪曲线
func (ic *InsightController) GetWeeklyInsights(c *gin.Context) {
	uid := c.GetString("uid")

	resp, err := ic.Insights.WeeklySeries(c.Request.Context(), uid, time.Now())
	if err != nil {
		config.Logger.Errorw("计算情绪曲线失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "计算情绪曲线失败"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
