package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config ค่าตั้งค่าทั้งหมดที่อ่านจาก .env / environment
type Config struct {
	AppPort        string
	AppBaseURL     string
	AllowedOrigins string

	MongoURI string
	MongoDB  string
	RedisURI string

	JWTSecret string
	JWTTTL    time.Duration
	OTPTTL    time.Duration

	EngineURL     string
	EngineTimeout time.Duration

	TestCatalogue     string
	ListCacheTTL      time.Duration
	WorkerConcurrency int

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string
}

var (
	cfg  *Config
	once sync.Once
)

// Load โหลด .env แค่ครั้งเดียวแล้วคืนค่า Config ที่ใช้ร่วมกัน
func Load() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Warning: No .env file found")
		}
		cfg = FromEnv()
	})
	return cfg
}

// FromEnv อ่านค่าจาก environment ปัจจุบัน (ไม่โหลด .env)
func FromEnv() *Config {
	return &Config{
		AppPort:        getEnv("APP_URI", "8888"),
		AppBaseURL:     strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:3000"), "/"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),

		MongoURI: os.Getenv("MONGO_URI"),
		MongoDB:  getEnv("MONGO_DB", "PollSenseiDB"),
		RedisURI: os.Getenv("REDIS_URI"),

		JWTSecret: getEnv("JWT_SECRET", "your_secret_key"),
		JWTTTL:    getDuration("JWT_TTL", 24*time.Hour),
		OTPTTL:    getDuration("OTP_TTL", 10*time.Minute),

		EngineURL:     strings.TrimRight(getEnv("ENGINE_URL", "http://localhost:8000"), "/"),
		EngineTimeout: getDuration("ENGINE_TIMEOUT", 120*time.Second),

		TestCatalogue: getEnv("TEST_CATALOGUE", "config/tests_library.yaml"),
		ListCacheTTL:  getDuration("LIST_CACHE_TTL", 5*time.Minute),

		WorkerConcurrency: getInt("WORKER_CONCURRENCY", 5),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: getInt("SMTP_PORT", 0),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		SMTPFrom: os.Getenv("SMTP_FROM"),
	}
}

// SMTPMissing คืนชื่อ env ของ SMTP ที่ยังไม่ได้ตั้ง
func (c *Config) SMTPMissing() []string {
	missing := []string{}
	if c.SMTPHost == "" {
		missing = append(missing, "SMTP_HOST")
	}
	if c.SMTPPort == 0 {
		missing = append(missing, "SMTP_PORT")
	}
	if c.SMTPUser == "" {
		missing = append(missing, "SMTP_USER")
	}
	if c.SMTPPass == "" {
		missing = append(missing, "SMTP_PASS")
	}
	if c.SMTPFrom == "" {
		missing = append(missing, "SMTP_FROM")
	}
	return missing
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
