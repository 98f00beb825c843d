package gateway

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	RegistryBackend string // memory | file | mysql
	RegistryPath    string
	MySQLDSN        string
	AWSRegion       string
	AWSAccessKey    string
	AWSSecretKey    string
	UploadBucket    string
	ReportBucket    string
	GrantTTL        time.Duration
	SweepInterval   time.Duration
	PollInterval    time.Duration
}

func LoadConfig() Config {
	return Config{
		Port:            getEnv("PORT", "8080"),
		RegistryBackend: getEnv("REGISTRY_BACKEND", "file"),
		RegistryPath:    getEnv("REGISTRY_PATH", filepath.Join("data", "meetings.json")),
		MySQLDSN:        getEnv("MYSQL_DSN", ""),
		AWSRegion:       getEnv("AWS_REGION", ""),
		AWSAccessKey:    getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:    getEnv("AWS_SECRET_ACCESS_KEY", ""),
		UploadBucket:    getEnv("AUDIO_UPLOAD_BUCKET", ""),
		ReportBucket:    getEnv("REPORT_BUCKET", ""),
		GrantTTL:        getDurationEnv("UPLOAD_GRANT_TTL", time.Hour),
		SweepInterval:   getDurationEnv("SWEEP_INTERVAL", 5*time.Minute),
		PollInterval:    getDurationEnv("POLL_INTERVAL", 10*time.Second),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if ms, err := strconv.Atoi(val); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	return defaultVal
}
