package config

import (
	"fmt"
	"time"

	"github.com/nguynqun376/MindGuardAI/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 打开本地sqlite数据库并返回句柄
func InitDB(config Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(config.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// 设置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// sqlite单文件库，写入由存储引擎串行化，连接数保持保守
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// 自动迁移表结构
	if err := migrateDB(db); err != nil {
		return nil, err
	}

	return db, nil
}

// migrateDB 进行数据库表结构迁移
func migrateDB(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Mood{},
		&models.Journal{},
		&models.ChatMessage{},
	)
	if err != nil {
		return fmt.Errorf("数据库迁移失败: %v", err)
	}
	return nil
}
