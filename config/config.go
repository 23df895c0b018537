package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rudolfs-eglitis/wasa-risk-assessment/models"
)

var (
	DB        *gorm.DB
	AppConfig Config
)

type RedisConfig struct {
	Enabled  bool   `json:"enabled"`
	Address  string `json:"address"`
	Password string `json:"-"`
	DB       int    `json:"db"`
}

type Config struct {
	Environment      string        `json:"environment"`
	ServerPort       string        `json:"server_port"`
	DBHost           string        `json:"db_host"`
	DBPort           string        `json:"db_port"`
	DBUser           string        `json:"db_user"`
	DBPassword       string        `json:"-"`
	DBName           string        `json:"db_name"`
	DBSSLMode        string        `json:"db_ssl_mode"`
	JWTSecret        string        `json:"-"`
	TokenTTL         time.Duration `json:"token_ttl"`
	GoogleMapsAPIKey string        `json:"-"`
	SentryDSN        string        `json:"-"`
	Redis            RedisConfig   `json:"redis"`
}

func init() {
	// .env is optional; system environment wins in deployment
	_ = godotenv.Load()
}

func LoadConfig() error {
	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "8760h"))
	if err != nil {
		return fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	AppConfig = Config{
		Environment:      getEnv("ENVIRONMENT", "development"),
		ServerPort:       getEnv("PORT", "4000"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "postgres"),
		DBPassword:       getEnv("DB_PASSWORD", ""),
		DBName:           getEnv("DB_NAME", "wasa_risk"),
		DBSSLMode:        getEnv("DB_SSL_MODE", "disable"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		TokenTTL:         tokenTTL,
		GoogleMapsAPIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
		SentryDSN:        getEnv("SENTRY_DSN", ""),
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
	}

	if AppConfig.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

func ConnectDB() error {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		AppConfig.DBHost, AppConfig.DBPort, AppConfig.DBUser,
		AppConfig.DBPassword, AppConfig.DBName, AppConfig.DBSSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	DB = db

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Condition{},
		&models.Mitigation{},
		&models.ConditionMitigation{},
		&models.Assessment{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := models.SeedDefaults(DB); err != nil {
		log.Printf("Warning: seeding encountered issues: %v", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
