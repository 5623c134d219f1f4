package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"pdf-uploader/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort         string
	LogLevel           string
	MaxFileSize        int64
	UploadBackend      string
	APIBaseURL         string
	APIUploadPath      string
	APIFileField       string
	UploadTimeout      time.Duration
	SupabaseURL        string
	SupabaseKey        string
	SupabaseBucket     string
	S3Bucket           string
	S3Region           string
	S3Endpoint         string
	S3Prefix           string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	SessionTTL         time.Duration
	AllowedOrigins     []string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		ServerPort:         getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		MaxFileSize:        getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		UploadBackend:      strings.ToLower(getEnvOrDefault("UPLOAD_BACKEND", domain.BackendAPI)),
		APIBaseURL:         strings.TrimRight(getEnvOrDefault("API_BASE_URL", "http://localhost:8000"), "/"),
		APIUploadPath:      getEnvOrDefault("API_UPLOAD_PATH", "/index"),
		APIFileField:       getEnvOrDefault("API_FILE_FIELD", "file"),
		UploadTimeout:      time.Duration(getEnvInt64OrDefault("UPLOAD_TIMEOUT_SECONDS", 120)) * time.Second,
		SupabaseURL:        getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:        getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		SupabaseBucket:     getEnvOrDefault("SUPABASE_BUCKET", "documents"),
		S3Bucket:           getEnvOrDefault("S3_BUCKET", ""),
		S3Region:           getEnvOrDefault("S3_REGION", "us-east-1"),
		S3Endpoint:         getEnvOrDefault("S3_ENDPOINT", ""),
		S3Prefix:           getEnvOrDefault("S3_PREFIX", "uploads/"),
		AWSAccessKeyID:     getEnvOrDefault("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnvOrDefault("AWS_SECRET_ACCESS_KEY", ""),
		SessionTTL:         time.Duration(getEnvInt64OrDefault("SESSION_TTL_MINUTES", 30)) * time.Minute,
		AllowedOrigins: getEnvListOrDefault("ALLOWED_ORIGINS", []string{
			"http://localhost:5173",
			"http://localhost:4173",
			"http://localhost:3000",
		}),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetUploadBackend returns which upload client to wire: api, supabase or s3
func (c *AppConfig) GetUploadBackend() string {
	return c.UploadBackend
}

func (c *AppConfig) GetAPIBaseURL() string {
	return c.APIBaseURL
}

func (c *AppConfig) GetAPIUploadPath() string {
	return c.APIUploadPath
}

func (c *AppConfig) GetAPIFileField() string {
	return c.APIFileField
}

// GetUploadTimeout bounds a single transfer at the HTTP transport level
func (c *AppConfig) GetUploadTimeout() time.Duration {
	return c.UploadTimeout
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

func (c *AppConfig) GetSupabaseBucket() string {
	return c.SupabaseBucket
}

func (c *AppConfig) GetS3Bucket() string {
	return c.S3Bucket
}

func (c *AppConfig) GetS3Region() string {
	return c.S3Region
}

func (c *AppConfig) GetS3Endpoint() string {
	return c.S3Endpoint
}

func (c *AppConfig) GetS3Prefix() string {
	return c.S3Prefix
}

func (c *AppConfig) GetAWSAccessKeyID() string {
	return c.AWSAccessKeyID
}

func (c *AppConfig) GetAWSSecretAccessKey() string {
	return c.AWSSecretAccessKey
}

// GetSessionTTL returns how long an idle upload session is kept
func (c *AppConfig) GetSessionTTL() time.Duration {
	return c.SessionTTL
}

// GetAllowedOrigins returns the CORS origin allow-list
func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
