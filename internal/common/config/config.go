package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int

	PlannerURL  string
	BuildsURL   string
	CORSOrigins string

	DBPath         string
	MigrationsPath string
	ArtifactsDir   string
	MaterialsPath  string

	MinIO   MinIOConfig
	Costing CostingConfig
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// CostingConfig: параметры сметы по умолчанию.
type CostingConfig struct {
	SheetWidth   float64
	SheetHeight  float64
	Kerf         float64
	WastePercent float64
	BackingPrice float64
}

// Load загружает конфигурацию из переменных окружения.
// Если рядом есть .env, он читается первым и не перекрывает уже заданные переменные.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[CONFIG] .env not loaded: %v", err)
	}

	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),

		PlannerURL:  getEnv("PLANNER_URL", "http://localhost:3001"),
		BuildsURL:   getEnv("BUILDS_URL", "http://localhost:3002"),
		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		DBPath:         getEnv("BUILDS_DB_PATH", "data/db/builds.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations/001_init_builds.sql"),
		ArtifactsDir:   getEnv("ARTIFACTS_DIR", "data/artifacts"),
		MaterialsPath:  getEnv("MATERIALS_PATH", ""),

		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "wardrobe-builds"),
			UseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
		},

		Costing: CostingConfig{
			SheetWidth:   getEnvAsFloat("SHEET_WIDTH", 2440),
			SheetHeight:  getEnvAsFloat("SHEET_HEIGHT", 1220),
			Kerf:         getEnvAsFloat("KERF_WIDTH", 3),
			WastePercent: getEnvAsFloat("WASTE_PERCENT", 10),
			BackingPrice: getEnvAsFloat("BACKING_PRICE", 0),
		},
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("[CONFIG] invalid number for %s: %s", key, value)
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		log.Printf("[CONFIG] invalid boolean for %s: %s", key, value)
	}
	return defaultVal
}
