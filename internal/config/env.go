package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	UploadDir      string
	DBPath         string
	MaxUploadBytes int64
	OCRLanguages   []string
	TessdataPrefix string
	PdftoppmPath   string
	RenderDPI      int
	WorkerCount    int
}

// LoadConfig loads the environment variables and returns the config.
func LoadConfig() *Config {

	_ = godotenv.Load()

	uploadDir := getEnv("UPLOAD_DIR", "uploads")

	cfg := &Config{
		UploadDir:      uploadDir,
		DBPath:         getEnv("DB_PATH", filepath.Join(uploadDir, "sessions.db")),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 50*1024*1024)),
		OCRLanguages:   splitList(getEnv("OCR_LANGUAGES", "eng")),
		TessdataPrefix: getEnv("TESSDATA_PREFIX", ""),
		PdftoppmPath:   getEnv("PDFTOPPM_PATH", "pdftoppm"),
		RenderDPI:      getEnvInt("RENDER_DPI", 150),
		WorkerCount:    getEnvInt("WORKER_COUNT", 4),
	}

	if cfg.WorkerCount < 1 {
		log.Printf("WARN: WORKER_COUNT=%d invalid, using 1", cfg.WorkerCount)
		cfg.WorkerCount = 1
	}

	return cfg
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
