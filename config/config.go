package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds every recognized environment option. Each value selects
// which backend instance and privilege level subsequent calls use.
type Config struct {
	// HTTP listen port, without the colon.
	Port string

	// Supabase REST endpoint and keys. The anon key is safe for reads;
	// the service-role key bypasses row-level restrictions and must only
	// reach the server-side write paths.
	SupabaseURL            string
	SupabaseAnonKey        string
	SupabaseServiceRoleKey string

	// Coze workflow API.
	CozeAPIToken   string
	CozeAPIBaseURL string

	// Redis, for server-held user preferences (search history, favorites).
	RedisAddr string
	RedisPass string
	RedisDB   int

	// S3-compatible storage for uploaded tool icons/images.
	S3Bucket        string
	S3Region        string
	S3Profile       string
	S3Prefix        string
	S3PublicBaseURL string
	S3UsePathStyle  bool

	// Directory holding the markdown articles the migration reads.
	ContentDir string
}

// FromEnv builds a Config from environment variables, applying defaults
// for everything that has a sensible one. Credentials default to empty;
// the call sites that need them validate before any remote call.
func FromEnv() Config {
	return Config{
		Port:                   getEnv("PORT", "8080"),
		SupabaseURL:            strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseAnonKey:        os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseServiceRoleKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		CozeAPIToken:           os.Getenv("COZE_API_TOKEN"),
		CozeAPIBaseURL:         getEnv("COZE_API_BASE_URL", "https://api.coze.cn"),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:              os.Getenv("REDIS_PASS"),
		RedisDB:                getEnvInt("REDIS_DB", 0),
		S3Bucket:               strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:               strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Profile:              strings.TrimSpace(os.Getenv("S3_PROFILE")),
		S3Prefix:               strings.TrimSpace(os.Getenv("S3_PREFIX")),
		S3PublicBaseURL:        strings.TrimRight(os.Getenv("S3_PUBLIC_BASE_URL"), "/"),
		S3UsePathStyle:         getEnvBool("S3_USE_PATH_STYLE", false),
		ContentDir:             getEnv("CONTENT_DIR", "content/articles"),
	}
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
