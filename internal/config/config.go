package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI   string
	DBName     string
	Port       string
	UploadsDir string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:   getEnvOrDefault("MONGO_URI", ""),
		DBName:     getEnvOrDefault("DB_NAME", "lrstore"),
		Port:       getEnvOrDefault("PORT", "8080"),
		UploadsDir: getEnvOrDefault("UPLOADS_DIR", "./uploads"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
