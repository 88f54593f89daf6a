package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nguynqun376/MindGuardAI/config"
	"github.com/nguynqun376/MindGuardAI/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupInsights(t *testing.T) (*InsightService, *gorm.DB) {
	t.Helper()
	config.Logger = zap.NewNop().Sugar()

	db, err := config.InitDB(config.Config{DBPath: ":memory:"})
	require.NoError(t, err)
	return NewInsightService(db, nil), db
}

func levelAt(t *testing.T, resp models.WeeklyInsightsResponse, date string) *float64 {
	t.Helper()
	for _, d := range resp.Days {
		if d.Date == date {
			return d.Level
		}
	}
	t.Fatalf("日期 %s 不在曲线中", date)
	return nil
}

func TestWeeklySeriesCompositeArithmetic(t *testing.T) {
	svc, db := setupInsights(t)

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	uid := "u1"
	day := func(offset int) string { return now.AddDate(0, 0, offset).Format("2006-01-02") }
	at := func(offset int) time.Time { return now.AddDate(0, 0, offset) }

	// 今天：显式心情4 + 日记分50（推导3.0）→ 平均3.5
	require.NoError(t, db.Create(&models.Mood{UserID: uid, Date: day(0), Level: 4}).Error)
	require.NoError(t, db.Create(&models.Journal{UserID: uid, Content: "a", SentimentScore: 50, Timestamp: at(0)}).Error)

	// 昨天：只有心情2 → 2.0
	require.NoError(t, db.Create(&models.Mood{UserID: uid, Date: day(-1), Level: 2}).Error)

	// 前天：只有日记，分25 → 5 − 25/25 = 4.0
	require.NoError(t, db.Create(&models.Journal{UserID: uid, Content: "b", SentimentScore: 25, Timestamp: at(-2)}).Error)

	// 3天前：两篇日记分0和100 → (5.0 + 1.0)/2 = 3.0
	require.NoError(t, db.Create(&models.Journal{UserID: uid, Content: "c", SentimentScore: 0, Timestamp: at(-3)}).Error)
	require.NoError(t, db.Create(&models.Journal{UserID: uid, Content: "d", SentimentScore: 100, Timestamp: at(-3)}).Error)

	resp, err := svc.WeeklySeries(context.Background(), uid, now)
	require.NoError(t, err)
	require.Len(t, resp.Days, 7)

	require.NotNil(t, levelAt(t, resp, day(0)))
	require.Equal(t, 3.5, *levelAt(t, resp, day(0)))
	require.Equal(t, 2.0, *levelAt(t, resp, day(-1)))
	require.Equal(t, 4.0, *levelAt(t, resp, day(-2)))
	require.Equal(t, 3.0, *levelAt(t, resp, day(-3)))

	// 没有任何数据的日子留空，不插值
	require.Nil(t, levelAt(t, resp, day(-4)))
	require.Nil(t, levelAt(t, resp, day(-5)))
	require.Nil(t, levelAt(t, resp, day(-6)))
}

func TestWeeklySeriesIgnoresOtherUsers(t *testing.T) {
	svc, db := setupInsights(t)

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	today := now.Format("2006-01-02")

	require.NoError(t, db.Create(&models.Mood{UserID: "other", Date: today, Level: 1}).Error)

	resp, err := svc.WeeklySeries(context.Background(), "u1", now)
	require.NoError(t, err)
	require.Nil(t, levelAt(t, resp, today))
}

// fakeInsightCache 内存版InsightCache，可注入读写错误
type fakeInsightCache struct {
	data   map[string]string
	getErr error
	setErr error
}

func newFakeInsightCache() *fakeInsightCache {
	return &fakeInsightCache{data: make(map[string]string)}
}

func (f *fakeInsightCache) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return "", ErrCacheMiss
	}
	return v, nil
}

func (f *fakeInsightCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func (f *fakeInsightCache) Del(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func TestWeeklySeriesCacheHitSkipsRecomputation(t *testing.T) {
	svc, db := setupInsights(t)
	cache := newFakeInsightCache()
	svc.cache = cache

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	uid := "u1"
	today := now.Format("2006-01-02")

	// 库里是4，缓存里是1.5，命中时必须返回缓存值
	require.NoError(t, db.Create(&models.Mood{UserID: uid, Date: today, Level: 4}).Error)
	cached := models.WeeklyInsightsResponse{Days: []models.DailySentiment{
		{Date: today, Name: "T6", Level: ptr(1.5)},
	}}
	data, err := json.Marshal(cached)
	require.NoError(t, err)
	cache.data[weeklyCacheKey(uid)] = string(data)

	resp, err := svc.WeeklySeries(context.Background(), uid, now)
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	require.Equal(t, 1.5, *resp.Days[0].Level)
}

func TestWeeklySeriesCachesAndInvalidates(t *testing.T) {
	svc, db := setupInsights(t)
	cache := newFakeInsightCache()
	svc.cache = cache

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	uid := "u1"
	today := now.Format("2006-01-02")
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Mood{UserID: uid, Date: today, Level: 4}).Error)

	// 第一次计算后写入缓存
	resp, err := svc.WeeklySeries(ctx, uid, now)
	require.NoError(t, err)
	require.Equal(t, 4.0, *levelAt(t, resp, today))
	require.Contains(t, cache.data, weeklyCacheKey(uid))

	// 库变了但缓存没失效，返回旧值
	require.NoError(t, db.Model(&models.Mood{}).
		Where("user_id = ? AND date = ?", uid, today).
		Update("level", 1).Error)
	resp, err = svc.WeeklySeries(ctx, uid, now)
	require.NoError(t, err)
	require.Equal(t, 4.0, *levelAt(t, resp, today))

	// 失效后重算出新值
	svc.Invalidate(ctx, uid)
	require.NotContains(t, cache.data, weeklyCacheKey(uid))
	resp, err = svc.WeeklySeries(ctx, uid, now)
	require.NoError(t, err)
	require.Equal(t, 1.0, *levelAt(t, resp, today))
}

func TestWeeklySeriesCorruptCacheRecomputes(t *testing.T) {
	svc, db := setupInsights(t)
	cache := newFakeInsightCache()
	svc.cache = cache

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	uid := "u1"
	today := now.Format("2006-01-02")

	require.NoError(t, db.Create(&models.Mood{UserID: uid, Date: today, Level: 3}).Error)
	cache.data[weeklyCacheKey(uid)] = "{not json"

	resp, err := svc.WeeklySeries(context.Background(), uid, now)
	require.NoError(t, err)
	require.Equal(t, 3.0, *levelAt(t, resp, today))

	// 坏缓存被重算结果覆盖
	var rewritten models.WeeklyInsightsResponse
	require.NoError(t, json.Unmarshal([]byte(cache.data[weeklyCacheKey(uid)]), &rewritten))
	require.Len(t, rewritten.Days, 7)
}

func TestWeeklySeriesDegradesOnCacheFailure(t *testing.T) {
	svc, db := setupInsights(t)
	cache := newFakeInsightCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	svc.cache = cache

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	uid := "u1"
	today := now.Format("2006-01-02")

	require.NoError(t, db.Create(&models.Mood{UserID: uid, Date: today, Level: 5}).Error)

	// 缓存读写都挂了也只是降级重算，不报错
	resp, err := svc.WeeklySeries(context.Background(), uid, now)
	require.NoError(t, err)
	require.Equal(t, 5.0, *levelAt(t, resp, today))
}

func ptr(v float64) *float64 { return &v }

func TestShouldEscalate(t *testing.T) {
	svc, db := setupInsights(t)
	uid := "u1"

	// 只有一条记录，窗口不满
	require.NoError(t, db.Create(&models.Mood{UserID: uid, Date: "2024-01-01", Level: 2}).Error)
	got, err := svc.ShouldEscalate(uid, 2)
	require.NoError(t, err)
	require.False(t, got)

	// 最近两条都≤2
	require.NoError(t, db.Create(&models.Mood{UserID: uid, Date: "2024-01-02", Level: 1}).Error)
	got, err = svc.ShouldEscalate(uid, 1)
	require.NoError(t, err)
	require.True(t, got)

	// 本次心情≥3，永不升级
	got, err = svc.ShouldEscalate(uid, 3)
	require.NoError(t, err)
	require.False(t, got)

	// 最近两条中有一条>2
	require.NoError(t, db.Create(&models.Mood{UserID: uid, Date: "2024-01-03", Level: 5}).Error)
	got, err = svc.ShouldEscalate(uid, 2)
	require.NoError(t, err)
	require.False(t, got)
}
