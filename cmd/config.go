package cmd

import (
	"fmt"
	"time"

	"fitcourse/internal/pkg/logger"
)

// Config is populated by kong from flags and the environment. main loads
// .env first, so the file and the process environment share the same names.
type Config struct {
	HTTPPort string `name:"http-port" env:"HTTP_PORT" default:"8080" help:"HTTP listen port."`

	DBHost     string `name:"db-host" env:"DB_HOST" default:"localhost"`
	DBPort     string `name:"db-port" env:"DB_PORT" default:"5432"`
	DBUser     string `name:"db-user" env:"DB_USER" default:"postgres"`
	DBPassword string `name:"db-password" env:"DB_PASSWORD" default:""`
	DBName     string `name:"db-name" env:"DB_NAME" default:"fitcourse"`
	DBSslMode  string `name:"db-sslmode" env:"DB_SSLMODE" default:"disable"`

	// RedisAddr empty selects the log notifier and the in-memory draft store.
	RedisAddr     string `name:"redis-addr" env:"REDIS_ADDR" default:"" help:"Redis address, host:port."`
	RedisPassword string `name:"redis-password" env:"REDIS_PASSWORD" default:""`
	RedisDB       int    `name:"redis-db" env:"REDIS_DB" default:"0"`
	RedisChannel  string `name:"redis-channel" env:"REDIS_CHANNEL" default:"fitcourse:outbound" help:"Channel outbound messages are published to."`

	DefaultTimezone string `name:"default-timezone" env:"DEFAULT_TIMEZONE" default:"Europe/Moscow" help:"Zone for participants without a valid timezone."`
	ServerTimezone  string `name:"server-timezone" env:"SERVER_TIMEZONE" default:"Europe/Moscow" help:"Zone system jobs are evaluated in."`

	JobTimeout     time.Duration `name:"job-timeout" env:"JOB_TIMEOUT" default:"30s"`
	WorkerPoolSize int           `name:"worker-pool-size" env:"WORKER_POOL_SIZE" default:"4"`
	DraftTTL       time.Duration `name:"draft-ttl" env:"DRAFT_TTL" default:"30m"`
	BackupDir      string        `name:"backup-dir" env:"BACKUP_DIR" default:"backups"`

	LogLevel  string `name:"log-level" env:"LOG_LEVEL" default:"info" enum:"debug,info,warn,error"`
	LogFormat string `name:"log-format" env:"LOG_FORMAT" default:"text" enum:"text,json,logfmt"`
	LogFile   string `name:"log-file" env:"LOG_FILE" default:"" help:"Rotating log file; stderr only when empty."`
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) Logger() logger.Config {
	return logger.Config{Level: c.LogLevel, Format: c.LogFormat, File: c.LogFile}
}
