package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	// Database Configuration
	DBDriver    string // "sqlite3" or "postgres"
	SQLitePath  string
	DatabaseURL string
	AutoMigrate bool
	SeedDemo    bool
	// JWT Configuration
	JWTSecret string
	// Redis Configuration (optional - caches item lookups)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CacheTTL      int  // Cache TTL in seconds
	UseCache      bool // Whether to use cache (Redis) or not
	// Kafka Configuration (optional - item cache invalidation)
	KafkaBrokers     []string
	KafkaTopicItems  string
	KafkaTopicQuotes string
	KafkaGroupID     string
	UseKafka         bool
	// Availability engine
	BreakdownConcurrency int
	MetricsEnabled       bool
}

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

func Load() *Config {
	// .env is optional, environment variables win either way
	_ = godotenv.Load()

	kafkaBrokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9093"), ",")
	for i, broker := range kafkaBrokers {
		kafkaBrokers[i] = strings.TrimSpace(broker)
	}

	return &Config{
		Port:        getEnv("PORT", "8081"),
		Environment: getEnv("ENVIRONMENT", "development"),
		// Database Configuration
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		SQLitePath:  getEnv("SQLITE_PATH", "./inventory.db"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		AutoMigrate: getEnvAsBool("AUTO_MIGRATE", true),
		SeedDemo:    getEnvAsBool("SEED_DEMO", false),
		// JWT Configuration
		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production-min-32-chars"),
		// Redis Configuration (optional)
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		CacheTTL:      getEnvAsInt("CACHE_TTL", 300),
		UseCache:      getEnvAsBool("USE_CACHE", false),
		// Kafka Configuration (optional)
		KafkaBrokers:     kafkaBrokers,
		KafkaTopicItems:  getEnv("KAFKA_TOPIC_ITEMS", "inventory.items"),
		KafkaTopicQuotes: getEnv("KAFKA_TOPIC_QUOTES", "inventory.quotes"),
		KafkaGroupID:     getEnv("KAFKA_GROUP_ID", "availability-service"),
		UseKafka:         getEnvAsBool("USE_KAFKA", false),
		// Availability engine
		BreakdownConcurrency: getEnvAsInt("BREAKDOWN_CONCURRENCY", 8),
		MetricsEnabled:       getEnvAsBool("METRICS_ENABLED", true),
	}
}

// DSN returns the data source name for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == DriverPostgres {
		return c.DatabaseURL
	}
	return c.SQLitePath
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return strings.ToLower(value) == "true" || value == "1"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return result
}
