package utils

import (
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	AppPort     string `yaml:"APP_PORT"`
	AppURL      string `yaml:"APP_URL"`
	LogLevel    string `yaml:"LOG_LEVEL"`
	CORSOrigins string `yaml:"CORS_ORIGINS"`
	RateLimit   string `yaml:"RATE_LIMIT"`
	AdminEmails string `yaml:"ADMIN_EMAILS"`

	// Document store configuration
	StoreDriver string `yaml:"STORE_DRIVER"`
	MongoURI    string `yaml:"MONGO_URI"`
	MongoDB     string `yaml:"MONGO_DB"`

	// Ingredient catalog (PostgreSQL)
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// Cache
	RedisAddr     string `yaml:"REDIS_ADDR"`
	RedisPassword string `yaml:"REDIS_PASSWORD"`
	CacheTTL      string `yaml:"CACHE_TTL"`

	// Identity
	AuthProvider        string `yaml:"AUTH_PROVIDER"`
	JWTSecret           string `yaml:"JWT_SECRET"`
	JWTTTL              string `yaml:"JWT_TTL"`
	FirebaseProjectID   string `yaml:"FIREBASE_PROJECT_ID"`
	FirebaseCredentials string `yaml:"FIREBASE_CREDENTIALS"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Background jobs
	CleanupSchedule string `yaml:"CLEANUP_SCHEDULE"`
}

var (
	config   Config
	loadOnce sync.Once
)

// LoadConfig reads .env, then config.yaml (or CONFIG_FILE), then lets the
// process environment override any key. Only the first call does work.
func LoadConfig() {
	loadOnce.Do(func() {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("Error reading .env file: %s\n", err)
		}

		path := os.Getenv("CONFIG_FILE")
		if path == "" {
			path = "config.yaml"
		}
		file, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Error reading YAML file: %s\n", err)
		} else if err := yaml.Unmarshal(file, &config); err != nil {
			log.Printf("Error parsing YAML file: %s\n", err)
		}

		for key, field := range config.fields() {
			if v, ok := os.LookupEnv(key); ok {
				*field = v
			}
		}
		applyDefaults(&config)
	})
}

func applyDefaults(c *Config) {
	defaults := map[*string]string{
		&c.AppPort:         "8080",
		&c.LogLevel:        "info",
		&c.CORSOrigins:     "*",
		&c.RateLimit:       "20",
		&c.StoreDriver:     "mongo",
		&c.MongoURI:        "mongodb://localhost:27017",
		&c.MongoDB:         "cookapp",
		&c.CacheTTL:        "300",
		&c.AuthProvider:    "jwt",
		&c.JWTTTL:          "120",
		&c.CleanupSchedule: "@daily",
	}
	for field, v := range defaults {
		if *field == "" {
			*field = v
		}
	}
}

func (c *Config) fields() map[string]*string {
	return map[string]*string{
		"APP_PORT":             &c.AppPort,
		"APP_URL":              &c.AppURL,
		"LOG_LEVEL":            &c.LogLevel,
		"CORS_ORIGINS":         &c.CORSOrigins,
		"RATE_LIMIT":           &c.RateLimit,
		"ADMIN_EMAILS":         &c.AdminEmails,
		"STORE_DRIVER":         &c.StoreDriver,
		"MONGO_URI":            &c.MongoURI,
		"MONGO_DB":             &c.MongoDB,
		"DB_USER":              &c.DBUser,
		"DB_NAME":              &c.DBName,
		"DB_PASSWORD":          &c.DBPassword,
		"DB_PORT":              &c.DBPort,
		"DB_HOST":              &c.DBHost,
		"REDIS_ADDR":           &c.RedisAddr,
		"REDIS_PASSWORD":       &c.RedisPassword,
		"CACHE_TTL":            &c.CacheTTL,
		"AUTH_PROVIDER":        &c.AuthProvider,
		"JWT_SECRET":           &c.JWTSecret,
		"JWT_TTL":              &c.JWTTTL,
		"FIREBASE_PROJECT_ID":  &c.FirebaseProjectID,
		"FIREBASE_CREDENTIALS": &c.FirebaseCredentials,
		"SMTP_HOST":            &c.SMTPHost,
		"SMTP_PORT":            &c.SMTPPort,
		"SMTP_SENDER_NAME":     &c.SMTPSenderName,
		"SMTP_AUTH_EMAIL":      &c.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD":   &c.SMTPAuthPassword,
		"AWS_S3_BUCKET":        &c.AWSS3Bucket,
		"AWS_S3_REGION":        &c.AWSS3Region,
		"AWS_ACCESS_KEY":       &c.AWSAccessKey,
		"AWS_SECRET_KEY":       &c.AWSSecretKey,
		"CLEANUP_SCHEDULE":     &c.CleanupSchedule,
	}
}

func GetConfig(key string) string {
	if field, ok := config.fields()[key]; ok {
		return *field
	}
	return ""
}

// GetConfigInt falls back to def when the key is unset or not a number.
func GetConfigInt(key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(GetConfig(key)))
	if err != nil {
		return def
	}
	return n
}

// GetConfigList splits a comma separated value, dropping blanks.
func GetConfigList(key string) []string {
	var out []string
	for _, part := range strings.Split(GetConfig(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
