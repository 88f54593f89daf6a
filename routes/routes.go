package routes

import (
	"github.com/nguynqun376/MindGuardAI/config"
	"github.com/nguynqun376/MindGuardAI/controllers"
	"github.com/nguynqun376/MindGuardAI/middleware"
	"github.com/nguynqun376/MindGuardAI/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, conf config.Config, db *gorm.DB, rdb *redis.Client, ai services.AIClient) {
	insightService := services.NewInsightService(db, services.NewRedisInsightCache(rdb))

	userController := &controllers.UserController{Email: conf.UserEmail}
	moodController := &controllers.MoodController{DB: db, Insights: insightService}
	journalController := &controllers.JournalController{DB: db, Insights: insightService, AI: ai}
	chatController := controllers.NewChatController(db, ai)
	insightController := &controllers.InsightController{Insights: insightService}

	resolver := middleware.NewResolver(conf.AuthMode, conf.JWTSecret)

	// 公开路由（无需身份头）
	public := r.Group("/api")
	{
		public.GET("/user", userController.GetUser)
	}

	// 需要身份的路由
	private := r.Group("/api")
	private.Use(middleware.IdentityMiddleware(resolver))
	{
		private.GET("/moods", moodController.ListMoods)
		private.POST("/moods", moodController.UpsertMood)
		private.GET("/journals", journalController.ListJournals)
		private.POST("/journals", journalController.CreateJournal)
		private.POST("/journals/analyze", journalController.AnalyzeJournal)
		private.GET("/chat-history", chatController.GetChatHistory)
		private.POST("/chat-history", chatController.AppendChatMessage)
		private.POST("/chat", chatController.SendMessage)
		private.GET("/chat/greeting", chatController.GetGreeting)
		private.GET("/insights/weekly", insightController.GetWeeklyInsights)
	}

	// 测试路由
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
