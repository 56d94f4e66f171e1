package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	productionEnv = "production"
)

// Config - структура для хранения конфигураций приложения
type Config struct {
	ServerAddress  string        `mapstructure:"SERVER_ADDRESS"`
	PostgresConn   string        `mapstructure:"POSTGRES_CONN"`
	PostgresUser   string        `mapstructure:"POSTGRES_USERNAME"`
	PostgresPass   string        `mapstructure:"POSTGRES_PASSWORD"`
	PostgresHost   string        `mapstructure:"POSTGRES_HOST"`
	PostgresPort   string        `mapstructure:"POSTGRES_PORT"`
	PostgresDB     string        `mapstructure:"POSTGRES_DATABASE"`
	MigrationURL   string        `mapstructure:"MIGRATION_URL"`
	SecretKey      string        `mapstructure:"SECRET_KEY"`
	AppEnv         string        `mapstructure:"APP_ENV"`
	TokenTTL       time.Duration `mapstructure:"TOKEN_TTL"`
	CORSOrigins    string        `mapstructure:"CORS_ORIGINS"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	StorageDriver  string        `mapstructure:"STORAGE_DRIVER"`
}

var keys = []string{
	"SERVER_ADDRESS", "POSTGRES_CONN", "POSTGRES_USERNAME", "POSTGRES_PASSWORD",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_DATABASE", "MIGRATION_URL",
	"SECRET_KEY", "APP_ENV", "TOKEN_TTL", "CORS_ORIGINS", "REQUEST_TIMEOUT", "STORAGE_DRIVER",
}

// LoadConfig загружает конфигурацию из файла app.env; переменные окружения имеют приоритет.
// Отсутствие файла не считается ошибкой.
func LoadConfig(path string) (cfg Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("SERVER_ADDRESS", ":5000")
	v.SetDefault("MIGRATION_URL", "file://migrations")
	v.SetDefault("TOKEN_TTL", "5h")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("REQUEST_TIMEOUT", "5s")
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)

	v.AutomaticEnv()
	for _, key := range keys {
		if err = v.BindEnv(key); err != nil {
			return
		}
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
	}
	err = v.Unmarshal(&cfg)
	return
}

// Validate проверяет обязательные параметры.
func (c Config) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}
	switch c.StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	return nil
}

// Production сообщает, что сервис запущен в production-режиме.
func (c Config) Production() bool {
	return c.AppEnv == productionEnv
}

// Origins возвращает список разрешённых CORS-источников.
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
