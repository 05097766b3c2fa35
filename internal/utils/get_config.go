package utils

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// App
	AppPort       string `yaml:"APP_PORT"`
	AppEnv        string `yaml:"APP_ENV"`
	SystemOwnerID string `yaml:"SYSTEM_OWNER_ID"`

	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBPath     string `yaml:"DB_PATH"`
	DBSSLMode  string `yaml:"DB_SSLMODE"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`
	JWTIssuer string `yaml:"JWT_ISSUER"`
	JWTTTL    string `yaml:"JWT_TTL"`

	// HTTP
	CORSOrigins string `yaml:"CORS_ORIGINS"`
	RateLimit   string `yaml:"RATE_LIMIT"`
	LogFile     string `yaml:"LOG_FILE"`

	// Storage
	StorageDriver    string `yaml:"STORAGE_DRIVER"`
	MediaRoot        string `yaml:"MEDIA_ROOT"`
	MediaURL         string `yaml:"MEDIA_URL"`
	MaxUploadSize    string `yaml:"MAX_UPLOAD_SIZE"`
	ImageMaxDim      string `yaml:"IMAGE_MAX_DIMENSION"`
	ImageMaxPixels   string `yaml:"IMAGE_MAX_PIXELS"`
	ImageJPEGQuality string `yaml:"IMAGE_JPEG_QUALITY"`
	ImageTimeout     string `yaml:"IMAGE_PROCESS_TIMEOUT"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
	AWSEndpoint  string `yaml:"AWS_S3_ENDPOINT"`

	// MinIO configuration
	MinioEndpoint  string `yaml:"MINIO_ENDPOINT"`
	MinioAccessKey string `yaml:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `yaml:"MINIO_SECRET_KEY"`
	MinioBucket    string `yaml:"MINIO_BUCKET"`
	MinioUseSSL    string `yaml:"MINIO_USE_SSL"`

	// Redis
	RedisAddr     string `yaml:"REDIS_ADDR"`
	RedisPassword string `yaml:"REDIS_PASSWORD"`
	RedisDB       string `yaml:"REDIS_DB"`
	CacheTTL      string `yaml:"CACHE_TTL"`
}

var config Config

var defaults = map[string]string{
	"APP_PORT":              "8080",
	"APP_ENV":               "development",
	"SYSTEM_OWNER_ID":       "1",
	"DB_DRIVER":             "postgres",
	"DB_PATH":               "cookflow.db",
	"DB_SSLMODE":            "disable",
	"JWT_ISSUER":            "COOKFLOW",
	"JWT_TTL":               "120m",
	"CORS_ORIGINS":          "*",
	"RATE_LIMIT":            "20",
	"LOG_FILE":              "./logs/app.log",
	"STORAGE_DRIVER":        "local",
	"MEDIA_ROOT":            "./media",
	"MEDIA_URL":             "/media",
	"MAX_UPLOAD_SIZE":       "10485760",
	"IMAGE_MAX_DIMENSION":   "2048",
	"IMAGE_MAX_PIXELS":      "40000000",
	"IMAGE_JPEG_QUALITY":    "85",
	"IMAGE_PROCESS_TIMEOUT": "5s",
	"CACHE_TTL":             "60s",
}

// LoadConfig reads config.yaml, then lets .env and the process environment
// override individual keys.
func LoadConfig() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error reading .env file: %s\n", err)
	}

	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}
}

// SetConfig overrides a single key in process. Used by tests and the CLI.
func SetConfig(key, value string) {
	os.Setenv(key, value)
}

func GetConfig(key string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	if v := fromFile(key); v != "" {
		return v
	}
	return defaults[key]
}

func GetConfigInt(key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(GetConfig(key)))
	if err != nil {
		d, _ := strconv.Atoi(defaults[key])
		return d
	}
	return v
}

func GetConfigBool(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(GetConfig(key)))
	if err != nil {
		return false
	}
	return v
}

func GetConfigDuration(key string) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(GetConfig(key)))
	if err != nil {
		d, _ := time.ParseDuration(defaults[key])
		return d
	}
	return v
}

func fromFile(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "APP_ENV":
		return config.AppEnv
	case "SYSTEM_OWNER_ID":
		return config.SystemOwnerID
	case "DB_DRIVER":
		return config.DBDriver
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_PATH":
		return config.DBPath
	case "DB_SSLMODE":
		return config.DBSSLMode
	case "JWT_SECRET":
		return config.JWTSecret
	case "JWT_ISSUER":
		return config.JWTIssuer
	case "JWT_TTL":
		return config.JWTTTL
	case "CORS_ORIGINS":
		return config.CORSOrigins
	case "RATE_LIMIT":
		return config.RateLimit
	case "LOG_FILE":
		return config.LogFile
	case "STORAGE_DRIVER":
		return config.StorageDriver
	case "MEDIA_ROOT":
		return config.MediaRoot
	case "MEDIA_URL":
		return config.MediaURL
	case "MAX_UPLOAD_SIZE":
		return config.MaxUploadSize
	case "IMAGE_MAX_DIMENSION":
		return config.ImageMaxDim
	case "IMAGE_MAX_PIXELS":
		return config.ImageMaxPixels
	case "IMAGE_JPEG_QUALITY":
		return config.ImageJPEGQuality
	case "IMAGE_PROCESS_TIMEOUT":
		return config.ImageTimeout
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "AWS_S3_ENDPOINT":
		return config.AWSEndpoint
	case "MINIO_ENDPOINT":
		return config.MinioEndpoint
	case "MINIO_ACCESS_KEY":
		return config.MinioAccessKey
	case "MINIO_SECRET_KEY":
		return config.MinioSecretKey
	case "MINIO_BUCKET":
		return config.MinioBucket
	case "MINIO_USE_SSL":
		return config.MinioUseSSL
	case "REDIS_ADDR":
		return config.RedisAddr
	case "REDIS_PASSWORD":
		return config.RedisPassword
	case "REDIS_DB":
		return config.RedisDB
	case "CACHE_TTL":
		return config.CacheTTL
	default:
		return ""
	}
}
