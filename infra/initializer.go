package infra

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Env         string
	Port        string
	SecretKey   string
	TokenTTL    time.Duration
	BcryptCost  int
	DBName      string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBPort      string
	SQLitePath  string
	TokenDBPath string
	RedisAddr   string
	RedisPass   string
	AutoMigrate bool
	Seed        bool
	CORSOrigins []string
	LogLevel    string
}

func Initialize() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using environment variables")
	}
}

// LoadConfig reads the process environment. Initialize should run first so .env values are visible.
func LoadConfig() Config {
	cfg := Config{
		Env:         os.Getenv("ENV"),
		Port:        getEnv("PORT", "8080"),
		SecretKey:   os.Getenv("SECRET_KEY"),
		TokenTTL:    2 * time.Hour,
		BcryptCost:  bcrypt.DefaultCost,
		DBName:      os.Getenv("DB_NAME"),
		DBHost:      os.Getenv("DB_HOST"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBPort:      os.Getenv("DB_PORT"),
		SQLitePath:  getEnv("SQLITE_PATH", "file::memory:?cache=shared"),
		TokenDBPath: getEnv("TOKEN_DB_PATH", "token_blacklist.db"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		AutoMigrate: os.Getenv("AUTO_MIGRATE") == "true",
		Seed:        os.Getenv("SEED") == "true",
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			log.Printf("Invalid TOKEN_TTL %q, using %s", ttl, cfg.TokenTTL)
		} else {
			cfg.TokenTTL = d
		}
	}
	if cost := os.Getenv("BCRYPT_COST"); cost != "" {
		c, err := strconv.Atoi(cost)
		if err != nil || c < bcrypt.MinCost || c > bcrypt.MaxCost {
			log.Printf("Invalid BCRYPT_COST %q, using %d", cost, cfg.BcryptCost)
		} else {
			cfg.BcryptCost = c
		}
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}
	return cfg
}

func (c Config) IsProd() bool {
	return c.Env == "prod"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
