package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	AppBaseURL string // public base URL used for payment redirect links

	EmailSender string
	SendgridKey string
	AdminEmail  string // receives reconciliation alerts

	StripeSecretKey string
	Currency        string

	EthProviderURL  string
	AdminPrivateKey string
	ChainID         int64

	MintMaxAttempts  int
	MintBackoffMs    int
	MintFallbackGas  uint64
	ExternalTimeoutS int // per external call (payment / chain RPC)
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		AppBaseURL: getEnv("APP_BASE_URL", "http://localhost:5173"),

		EmailSender: getEnv("EMAIL_SENDER", "noreply@learnhub.io"),
		SendgridKey: getEnv("SENDGRID_API_KEY", ""),
		AdminEmail:  getEnv("ADMIN_EMAIL", ""),

		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		Currency:        getEnv("CURRENCY", "aud"),

		EthProviderURL:  getEnv("ETHEREUM_PROVIDER_URL", ""),
		AdminPrivateKey: getEnv("ADMIN_PRIVATE_KEY", ""),
		ChainID:         int64(getEnvInt("CHAIN_ID", 11155111)), // Sepolia

		MintMaxAttempts:  getEnvInt("MINT_MAX_ATTEMPTS", 3),
		MintBackoffMs:    getEnvInt("MINT_BACKOFF_MS", 1000),
		MintFallbackGas:  uint64(getEnvInt("MINT_FALLBACK_GAS", 300000)),
		ExternalTimeoutS: getEnvInt("EXTERNAL_TIMEOUT_S", 30),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.StripeSecretKey == "" {
		log.Println("Warning: STRIPE_SECRET_KEY is not set. Token purchases will fail.")
	}
	if AppConfig.EthProviderURL == "" || AppConfig.AdminPrivateKey == "" {
		log.Println("Warning: Ethereum provider or admin key not configured. Badge minting is disabled.")
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
