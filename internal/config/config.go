package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config collects the process configuration. Every field has a usable
// default; the GraphQL endpoint in particular may be absent, which disables
// CMS-backed content rather than failing startup.
type Config struct {
	Addr         string
	TemplatesDir string
	PublicDir    string
	Dev          bool

	GraphQLURL string
	RedisAddr  string

	BookingURL     string
	BookingChannel string
	AirportsFile   string
}

// Load reads configuration from the environment. A local .env file is
// loaded first when present; real environment variables win over it.
func Load() Config {
	_ = godotenv.Load()

	port := firstEnv("PACIFICAIR_WEB_PORT", "PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		Addr:         ":" + port,
		TemplatesDir: envDefault("PACIFICAIR_WEB_TEMPLATES", "templates"),
		PublicDir:    envDefault("PACIFICAIR_WEB_PUBLIC", "public"),
		Dev:          firstEnv("PACIFICAIR_WEB_DEV", "DEV") != "",

		GraphQLURL: firstEnv("PACIFICAIR_GRAPHQL_URL", "GRAPHQL_URL"),
		RedisAddr:  os.Getenv("PACIFICAIR_REDIS_ADDR"),

		BookingURL:     envDefault("PACIFICAIR_BOOKING_URL", "https://book.pacificair.example/search"),
		BookingChannel: envDefault("PACIFICAIR_BOOKING_CHANNEL", "web"),
		AirportsFile:   envDefault("PACIFICAIR_AIRPORTS_FILE", "config/airports.yaml"),
	}
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

func envDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
