package config

import (
	"fmt"
	"strconv"
	"time"

	"blog-backend/internal/infrastructure/database"
)

const defaultDBPassword = "postgres"

// loadDatabaseConfig đọc connection + pool/retry settings từ env
// Số hoặc duration sai format là lỗi, không fallback về default
func loadDatabaseConfig() (DatabaseConfig, error) {
	var (
		cfg DatabaseConfig
		err error
	)

	cfg.Host = getEnv("DB_HOST", "localhost")
	cfg.User = getEnv("DB_USER", "postgres")
	cfg.Password = getEnv("DB_PASSWORD", defaultDBPassword)
	cfg.Database = getEnv("DB_NAME", "blog")
	cfg.SSLMode = getEnv("DB_SSLMODE", "disable")

	if cfg.Port, err = parseInt("DB_PORT", "5432"); err != nil {
		return cfg, err
	}
	if cfg.MaxConns, err = parseInt("DB_MAX_CONNS", "25"); err != nil {
		return cfg, err
	}
	if cfg.MinConns, err = parseInt("DB_MIN_CONNS", "2"); err != nil {
		return cfg, err
	}
	if cfg.MaxRetries, err = parseInt("DB_MAX_RETRIES", "5"); err != nil {
		return cfg, err
	}

	if cfg.MaxConnLifetime, err = parseDuration("DB_MAX_CONN_LIFETIME", "5m"); err != nil {
		return cfg, err
	}
	if cfg.MaxConnIdleTime, err = parseDuration("DB_MAX_CONN_IDLE_TIME", "1m"); err != nil {
		return cfg, err
	}
	if cfg.HealthCheckPeriod, err = parseDuration("DB_HEALTH_CHECK_PERIOD", "1m"); err != nil {
		return cfg, err
	}
	if cfg.RetryDelay, err = parseDuration("DB_RETRY_DELAY", "1s"); err != nil {
		return cfg, err
	}
	if cfg.ConnectTimeout, err = parseDuration("DB_CONNECT_TIMEOUT", "10s"); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// DBConfig chuyển sang config của database package (pool + retry)
func (d DatabaseConfig) DBConfig() *database.DBConfig {
	return &database.DBConfig{
		Host:              d.Host,
		Port:              d.Port,
		Username:          d.User,
		Password:          d.Password,
		DBName:            d.Database,
		SSLMode:           d.SSLMode,
		MaxConns:          int32(d.MaxConns),
		MinConns:          int32(d.MinConns),
		MaxConnLifetime:   d.MaxConnLifetime,
		MaxConnIdleTime:   d.MaxConnIdleTime,
		HealthCheckPeriod: d.HealthCheckPeriod,
		MaxRetries:        d.MaxRetries,
		RetryDelay:        d.RetryDelay,
		ConnectTimeout:    d.ConnectTimeout,
	}
}

func parseInt(key, defaultValue string) (int, error) {
	n, err := strconv.Atoi(getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func parseDuration(key, defaultValue string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
