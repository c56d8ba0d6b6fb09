package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AwsAccessKey string
	AwsSecretKey string
	AwsRegion    string
	BucketName   string
	TableName    string

	// Ingestion gate. Files above MaxUploadBytes are rejected before any
	// extraction work; above 80% of it a warning is logged.
	MaxUploadBytes int64

	// Chat assembly knobs. MaxContextLength bounds system prompt plus kept
	// history; CVTextLimit and JDTextLimit cap the truncated texts embedded
	// in the system prompt.
	MaxContextLength int
	CVTextLimit      int
	JDTextLimit      int

	// Bedrock model used for chat inference.
	InferenceModelID string
	ChatMaxTokens    int

	// Gemini model used to turn matched/missing skills into an improvement plan.
	AIAPIKey string
	GenModel string

	// Name of the analysis Lambda. Empty means the analysis stage runs
	// in-process (single-binary deployment).
	AnalyzerFunction string

	JWTSecret string
	Port      string
}

// LoadConfig loads the environment variables and returns the config.
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		AwsAccessKey:     getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey:     getEnv("AWS_SECRET_KEY", ""),
		AwsRegion:        getEnv("AWS_REGION", "us-east-2"),
		BucketName:       getEnv("BUCKET_NAME", "resumepilot-uploads"),
		TableName:        getEnv("TABLE_NAME", "resumepilot"),
		MaxUploadBytes:   int64(getEnvInt("MAX_UPLOAD_BYTES", 10*1024*1024)),
		MaxContextLength: getEnvInt("MAX_CONTEXT_LENGTH", 24000),
		CVTextLimit:      getEnvInt("CV_TEXT_LIMIT", 6000),
		JDTextLimit:      getEnvInt("JD_TEXT_LIMIT", 2000),
		InferenceModelID: getEnv("INFERENCE_MODEL_ID", "anthropic.claude-3-haiku-20240307-v1:0"),
		ChatMaxTokens:    getEnvInt("CHAT_MAX_TOKENS", 1024),
		AIAPIKey:         getEnv("GEMINI_API_KEY", ""),
		GenModel:         getEnv("GEN_MODEL", "gemini-1.5-flash"),
		AnalyzerFunction: getEnv("ANALYZER_FUNCTION", ""),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		Port:             getEnv("PORT", "8080"),
	}

	if cfg.TableName == "" {
		log.Fatal("TABLE_NAME not set")
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
