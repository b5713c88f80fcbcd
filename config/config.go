package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// 服务配置
	ServerPort  string `env:"SERVER_PORT" envDefault:"8888"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName string `env:"SERVICE_NAME" envDefault:"dayflow"`

	// MySQL 配置
	MySQLHost     string `env:"MYSQL_HOST" envDefault:"localhost"`
	MySQLPort     string `env:"MYSQL_PORT" envDefault:"3306"`
	MySQLUser     string `env:"MYSQL_USER" envDefault:"root"`
	MySQLPassword string `env:"MYSQL_PASSWORD" envDefault:"root"`
	MySQLDatabase string `env:"MYSQL_DATABASE" envDefault:"dayflow"`
	MySQLMaxIdle  int    `env:"MYSQL_MAX_IDLE" envDefault:"30"`
	MySQLMaxOpen  int    `env:"MYSQL_MAX_OPEN" envDefault:"200"`

	// Redis 配置
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"dayflow"`

	// RabbitMQ 配置
	RabbitMQAddr     string `env:"RABBITMQ_ADDR" envDefault:"localhost"`
	RabbitMQPort     string `env:"RABBITMQ_PORT" envDefault:"5672"`
	RabbitMQUsername string `env:"RABBITMQ_USERNAME" envDefault:"guest"`
	RabbitMQPassword string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	RabbitMQVhost    string `env:"RABBITMQ_VHOST" envDefault:"/"`

	// JWT 配置
	JWTSecret        string `env:"JWT_SECRET"` // 必填，用于签名 JWT
	JWTExpireMinutes int    `env:"JWT_EXPIRE_MINUTES" envDefault:"30"`
	JWTRefreshDays   int    `env:"JWT_REFRESH_DAYS" envDefault:"7"`

	// 密码哈希配置
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	// 默认时区，用户未设置时按此计算 date key
	DefaultTimezone string `env:"DEFAULT_TIMEZONE" envDefault:"Local"`

	// 导出配置
	ExportDir         string `env:"EXPORT_DIR" envDefault:"./exports"`
	ExportJobTTLHours int    `env:"EXPORT_JOB_TTL_HOURS" envDefault:"24"`

	// Snowflake ID 生成器配置
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// 日志配置
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`

	// 链路追踪配置
	TracingEnabled bool   `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint   string `env:"OTLP_ENDPOINT" envDefault:"localhost:4317"`

	// 速率限制配置, 配置在中间件内
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRPS     int  `env:"RATE_LIMIT_RPS" envDefault:"100"` // 每秒请求数

	// 提醒调度配置
	ReminderScanHour   int `env:"REMINDER_SCAN_HOUR" envDefault:"20"` // 本地时间几点扫描濒危 streak
	ReminderScanMinute int `env:"REMINDER_SCAN_MINUTE" envDefault:"30"`
	ReminderBatchSize  int `env:"REMINDER_BATCH_SIZE" envDefault:"200"`
}

func init() {

	if err := godotenv.Load(); err != nil {

		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}

	validateConfig()
}

func validateConfig() {
	if Cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	if Cfg.BcryptCost < 4 || Cfg.BcryptCost > 31 {
		log.Fatal("BCRYPT_COST must be between 4 and 31")
	}

	if Cfg.ExportDir == "" {
		log.Printf("WARN: EXPORT_DIR is empty, export downloads will not work")
	}
}

func (c *Config) GetDSN() string {
	// parseTime=true 让 driver 把 DATE/DATETIME 扫描成 time.Time
	return c.MySQLUser + ":" + c.MySQLPassword +
		"@tcp(" + c.MySQLHost + ":" + c.MySQLPort + ")/" + c.MySQLDatabase +
		"?charset=utf8mb4&parseTime=true&loc=Local"
}

func (c *Config) GetRabbitMQURL() string {
	return "amqp://" + c.RabbitMQUsername + ":" + c.RabbitMQPassword + "@" + c.RabbitMQAddr + ":" + c.RabbitMQPort + c.RabbitMQVhost
}

// Location 返回默认时区，解析失败时退回本地时区
func (c *Config) Location() *time.Location {
	if c.DefaultTimezone == "" || c.DefaultTimezone == "Local" {
		return time.Local
	}

	loc, err := time.LoadLocation(c.DefaultTimezone)
	if err != nil {
		log.Printf("WARN: invalid DEFAULT_TIMEZONE %q, falling back to local: %v", c.DefaultTimezone, err)
		return time.Local
	}
	return loc
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
