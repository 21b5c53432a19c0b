package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backends de stockage du panier
const (
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

type Config struct {
	Env  string
	Port string

	StoreBackend string
	StoreKey     string
	CartTTL      time.Duration

	RedisHost     string
	RedisPassword string
	RedisDB       int

	SQLitePath string

	OrderServiceURL       string
	OrderConfirmationPath string
	OrderServiceCookie    string

	CORSOrigins []string
}

// Load charge le .env (s'il existe) puis lit la configuration depuis l'environnement
func Load() Config {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé, on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}

	return FromEnv()
}

// FromEnv construit la configuration sans toucher au .env
func FromEnv() Config {
	cfg := Config{
		Env:                   getEnv("APP_ENV", "development"),
		Port:                  getEnv("PORT", "8080"),
		StoreKey:              getEnv("CART_STORE_KEY", "swiftCart"),
		CartTTL:               getDuration("CART_TTL", 0),
		RedisHost:             os.Getenv("REDIS_HOST"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:               getInt("REDIS_DB", 0),
		SQLitePath:            getEnv("SQLITE_PATH", "swiftcart.db"),
		OrderServiceURL:       strings.TrimRight(getEnv("ORDER_SERVICE_URL", "http://localhost:5000"), "/"),
		OrderConfirmationPath: getEnv("ORDER_CONFIRMATION_PATH", "/orders/latest"),
		OrderServiceCookie:    os.Getenv("ORDER_SERVICE_COOKIE"),
		CORSOrigins:           splitList(getEnv("CORS_ORIGINS", "http://localhost:5000")),
	}

	cfg.StoreBackend = strings.ToLower(os.Getenv("CART_STORE"))
	if cfg.StoreBackend == "" {
		if cfg.RedisHost != "" {
			cfg.StoreBackend = StoreRedis
		} else {
			cfg.StoreBackend = StoreSQLite
		}
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ %s invalide (%q), valeur par défaut %d utilisée", key, v, def)
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("⚠️ %s invalide (%q), valeur par défaut %s utilisée", key, v, def)
		return def
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
