package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/nguynqun376/MindGuardAI/config"
	"github.com/nguynqun376/MindGuardAI/models"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	weeklyCacheTTL = 5 * time.Minute
	dateLayout     = "2006-01-02"
)

// 星期短名，周日在前
var dayNames = [7]string{"CN", "T2", "T3", "T4", "T5", "T6", "T7"}

// ErrCacheMiss 缓存未命中
var ErrCacheMiss = redis.Nil

// InsightCache 情绪曲线缓存抽象，未命中时Get返回ErrCacheMiss
type InsightCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// redisInsightCache InsightCache的redis实现
type redisInsightCache struct {
	rdb *redis.Client
}

func (c *redisInsightCache) Get(ctx context.Context, key string) (string, error) {
	return c.rdb.Get(ctx, key).Result()
}

func (c *redisInsightCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *redisInsightCache) Del(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// NewRedisInsightCache redis不可用（client为nil）时返回nil，关闭缓存
func NewRedisInsightCache(rdb *redis.Client) InsightCache {
	if rdb == nil {
		return nil
	}
	return &redisInsightCache{rdb: rdb}
}

// InsightService 计算近7天综合情绪曲线和连续低落升级判断。
// cache为nil时关闭缓存，直接重算。
type InsightService struct {
	db    *gorm.DB
	cache InsightCache
}

func NewInsightService(db *gorm.DB, cache InsightCache) *InsightService {
	return &InsightService{db: db, cache: cache}
}

func weeklyCacheKey(uid string) string {
	return fmt.Sprintf("insights:weekly:%s", uid)
}

// WeeklySeries 近7天每日综合情绪。每天取显式心情值与日记推导值
// （5 − sentiment/25 的均值）：两者都有取平均，只有一个取其一，
// 都没有则当天留空，不做插值。
func (s *InsightService) WeeklySeries(ctx context.Context, uid string, now time.Time) (models.WeeklyInsightsResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, weeklyCacheKey(uid)); err == nil {
			var resp models.WeeklyInsightsResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
			// 缓存内容坏了就当没命中，走重算
		} else if err != ErrCacheMiss {
			config.Logger.Warnw("读取情绪曲线缓存失败", "error", err, "uid", uid)
		}
	}

	windowStart := now.AddDate(0, 0, -6)
	startDate := windowStart.Format(dateLayout)

	var moods []models.Mood
	if err := s.db.Where("user_id = ? AND date >= ?", uid, startDate).Find(&moods).Error; err != nil {
		return models.WeeklyInsightsResponse{}, err
	}
	moodByDate := make(map[string]models.Mood, len(moods))
	for _, m := range moods {
		moodByDate[m.Date] = m
	}

	var journals []models.Journal
	dayStart := time.Date(windowStart.Year(), windowStart.Month(), windowStart.Day(), 0, 0, 0, 0, windowStart.Location())
	if err := s.db.Where("user_id = ? AND timestamp >= ?", uid, dayStart).Find(&journals).Error; err != nil {
		return models.WeeklyInsightsResponse{}, err
	}
	journalsByDate := make(map[string][]models.Journal)
	for _, j := range journals {
		d := j.Timestamp.In(now.Location()).Format(dateLayout)
		journalsByDate[d] = append(journalsByDate[d], j)
	}

	resp := models.WeeklyInsightsResponse{Days: make([]models.DailySentiment, 0, 7)}
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, -(6 - i))
		dateStr := day.Format(dateLayout)

		var level *float64
		mood, hasMood := moodByDate[dateStr]
		journalMood, hasJournal := meanJournalMood(journalsByDate[dateStr])

		switch {
		case hasMood && hasJournal:
			v := round1((float64(mood.Level) + journalMood) / 2)
			level = &v
		case hasMood:
			v := round1(float64(mood.Level))
			level = &v
		case hasJournal:
			v := round1(journalMood)
			level = &v
		}

		resp.Days = append(resp.Days, models.DailySentiment{
			Date:  dateStr,
			Name:  dayNames[day.Weekday()],
			Level: level,
		})
	}

	if s.cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, weeklyCacheKey(uid), string(data), weeklyCacheTTL); err != nil {
				config.Logger.Warnw("写入情绪曲线缓存失败", "error", err, "uid", uid)
			}
		}
	}

	return resp, nil
}

// Invalidate 心情或日记写入后清掉该用户的曲线缓存
func (s *InsightService) Invalidate(ctx context.Context, uid string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, weeklyCacheKey(uid)); err != nil {
		config.Logger.Warnw("清除情绪曲线缓存失败", "error", err, "uid", uid)
	}
}

// ShouldEscalate 两样本滑动窗判断：本次心情≤2，且按日期取最近两条
// 心情（含本次）都≤2时升级，客户端据此切到对话页
func (s *InsightService) ShouldEscalate(uid string, level int) (bool, error) {
	if level > 2 {
		return false, nil
	}

	var recent []models.Mood
	if err := s.db.Where("user_id = ?", uid).Order("date DESC").Limit(2).Find(&recent).Error; err != nil {
		return false, err
	}
	if len(recent) < 2 {
		return false, nil
	}
	for _, m := range recent {
		if m.Level > 2 {
			return false, nil
		}
	}
	return true, nil
}

// meanJournalMood 当天日记情绪分的推导心情均值（5 − score/25）
func meanJournalMood(journals []models.Journal) (float64, bool) {
	if len(journals) == 0 {
		return 0, false
	}
	var sum float64
	for _, j := range journals {
		sum += 5 - j.SentimentScore/25
	}
	return sum / float64(len(journals)), true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
