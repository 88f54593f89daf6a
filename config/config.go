package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config 存储所有配置信息
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	ServerPort  string `mapstructure:"SERVER_PORT"`

	// 数据库配置（单个本地sqlite文件）
	DBPath string `mapstructure:"DB_PATH"`

	// Redis配置
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// Gemini API配置
	GeminiAPIKey     string `mapstructure:"GEMINI_API_KEY"`
	GeminiFlashModel string `mapstructure:"GEMINI_FLASH_MODEL"`
	GeminiProModel   string `mapstructure:"GEMINI_PRO_MODEL"`

	// 账号邮箱，未配置时 /api/user 返回 null
	UserEmail string `mapstructure:"USER_EMAIL"`

	// 身份解析模式：header（信任x-user-id）或 jwt
	AuthMode  string `mapstructure:"AUTH_MODE"`
	JWTSecret string `mapstructure:"JWT_SECRET"`
}

// LoadConfig 从环境变量或配置文件加载配置
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "3000")
	viper.SetDefault("DB_PATH", "mindguard.db")
	viper.SetDefault("GEMINI_FLASH_MODEL", "gemini-1.5-flash")
	viper.SetDefault("GEMINI_PRO_MODEL", "gemini-1.5-pro")
	viper.SetDefault("AUTH_MODE", "header")

	err = viper.ReadInConfig()
	if err != nil {
		// 允许配置文件不存在，此时会从环境变量中读取
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}

// GetRedisConnString 返回Redis连接字符串
func (c *Config) GetRedisConnString() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
