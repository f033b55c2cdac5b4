package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	AppEnv       string
	IsProduction bool

	Port        string
	VerifyToken string

	// Graph API egress
	GraphAPIToken string
	GraphAPIBase  string

	// durable mirror
	StoreDriver  string // file | sqlite | mysql
	MessagesFile string
	DatabaseDSN  string

	// runtime tunables
	RateLimitWindowSeconds int
	RateLimitCapacity      int
	DuplicateWindowSeconds int
)

// Load reads configuration from the environment, loading .env first outside
// production. Call once from main before anything else.
func Load() {
	AppEnv = os.Getenv("APP_ENV")

	// do not load .env file in production
	if AppEnv != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("[config] no .env file loaded: %v", err)
		}
	}

	AppEnv = os.Getenv("APP_ENV")
	if AppEnv == "" {
		AppEnv = "staging"
	}
	IsProduction = AppEnv == "production"

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "5000"
	}

	VerifyToken = os.Getenv("WEBHOOK_VERIFY_TOKEN")
	GraphAPIToken = os.Getenv("GRAPH_API_TOKEN")
	GraphAPIBase = os.Getenv("GRAPH_API_BASE")

	StoreDriver = os.Getenv("STORE_DRIVER")
	if StoreDriver == "" {
		StoreDriver = "file"
	}
	MessagesFile = os.Getenv("MESSAGES_FILE")
	if MessagesFile == "" {
		MessagesFile = "messages.json"
	}
	DatabaseDSN = os.Getenv("DATABASE_DSN")
	if DatabaseDSN == "" && StoreDriver == "sqlite" {
		DatabaseDSN = "wadesk.db"
	}

	RateLimitWindowSeconds = atoiOr(os.Getenv("RATE_LIMIT_WINDOW_SECONDS"), 10)
	RateLimitCapacity = atoiOr(os.Getenv("RATE_LIMIT_CAPACITY"), 20)
	DuplicateWindowSeconds = atoiOr(os.Getenv("DUPLICATE_WINDOW_SECONDS"), 45)

	// webhook verification cannot work without the shared token
	if IsProduction && VerifyToken == "" {
		log.Fatal("WEBHOOK_VERIFY_TOKEN must be set in production")
	}

	log.Printf("[config] AppEnv=%s StoreDriver=%s GraphTokenPresent=%v", AppEnv, StoreDriver, GraphAPIToken != "")
	log.Printf("[config] RateLimit window=%ds capacity=%d dupWindow=%ds",
		RateLimitWindowSeconds, RateLimitCapacity, DuplicateWindowSeconds)
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
