// config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит полную конфигурацию сервиса
type Config struct {
	// Настройки HTTP-сервера
	Server ServerConfig

	// Настройки подключения к базе данных
	Database DatabaseConfig

	// Настройки JWT-токенов
	JWT JWTConfig

	// Ключ шифрования сообщений в БД (ровно 32 байта для AES-256-GCM)
	MessageKey []byte
}

// ServerConfig содержит настройки HTTP-сервера
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig содержит настройки подключения к базе данных
type DatabaseConfig struct {
	Username string
	Password string
	Host     string
	Port     string
	Database string
}

// JWTConfig содержит настройки выдачи и проверки токенов
type JWTConfig struct {
	Secret          string
	AccessLifetime  time.Duration
	RefreshLifetime time.Duration
}

// DSN формирует строку подключения к MySQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

// Load загружает конфигурацию из переменных окружения.
// Файл .env подхватывается, если он существует рядом с бинарником.
func Load() (*Config, error) {
	// .env не обязателен: в продакшене переменные задаются окружением
	if err := godotenv.Load(); err != nil {
		log.Println("ℹ️ Файл .env не найден, используем переменные окружения")
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:         getEnv("SERVER_ADDR", ":8080"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			Username: getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			Database: getEnv("DB_NAME", "lostfounddb"),
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", ""),
			AccessLifetime:  getEnvDuration("JWT_ACCESS_LIFETIME_MIN", 15) * time.Minute,
			RefreshLifetime: getEnvDuration("JWT_REFRESH_LIFETIME_MIN", 7*24*60) * time.Minute,
		},
		MessageKey: []byte(getEnv("MESSAGE_KEY", "")),
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("не задана переменная окружения JWT_SECRET")
	}

	if len(cfg.MessageKey) != 32 {
		return nil, fmt.Errorf("MESSAGE_KEY должен содержать ровно 32 байта, получено %d", len(cfg.MessageKey))
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvDuration читает числовое значение (в минутах) из окружения
func getEnvDuration(key string, fallback int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return time.Duration(parsed)
		}
		log.Printf("⚠️ Неверный формат переменной %s, используем значение по умолчанию %d", key, fallback)
	}
	return time.Duration(fallback)
}
