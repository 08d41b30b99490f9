package config

import (
	"errors"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port       string
	DBDriver   string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTKey          string
	AuthHeader      string
	TokenTTLMinutes int
	SaltRound       int

	PaySettleDelaySec  int
	OrderExpireMinutes int
	PayNotifyURL       string

	EmailSender string
	Password    string // SMTP password
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// ValidateJWTKey rejects signing keys shorter than 256 bits. HS256 with a
// short key cannot be operated securely, so startup aborts instead.
func ValidateJWTKey(key string) error {
	if len(key) < 32 {
		return errors.New("JWT_SECRET_KEY must be at least 32 bytes (256 bits)")
	}
	return nil
}

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:       getEnv("PORT", "3000"),
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "eduapi"),
		DBPort:     getEnv("DB_PORT", "5432"),

		JWTKey:          getEnv("JWT_SECRET_KEY", ""),
		AuthHeader:      getEnv("AUTH_HEADER", "Authorization"),
		TokenTTLMinutes: getEnvInt("TOKEN_TTL_MINUTES", 24*60),
		SaltRound:       getEnvInt("SALT_ROUND", 10),

		PaySettleDelaySec:  getEnvInt("PAY_SETTLE_DELAY_SEC", 1),
		OrderExpireMinutes: getEnvInt("ORDER_EXPIRE_MINUTES", 30),
		PayNotifyURL:       getEnv("PAY_NOTIFY_URL", ""),

		EmailSender: getEnv("EMAIL_SENDER", ""),
		Password:    getEnv("PASSWORD", ""),
	}

	if err := ValidateJWTKey(AppConfig.JWTKey); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
