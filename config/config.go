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

	AdmissionSession string // e.g. "2026/2027"

	ApplicationFee uint // naira, major units
	AcceptanceFee  uint // naira, major units
	SkillFee       uint // naira, major units

	PaystackBaseURL   string
	PaystackSecretKey string
	PaystackTimeout   int // seconds, bound on initialize/verify calls

	PortalBaseURL string // public base URL used to build payment callback links
	UploadDir     string

	EmailSender string
	Password    string // SMTP App Password
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

		AdmissionSession: getEnv("ADMISSION_SESSION", "2026/2027"),

		ApplicationFee: uint(getEnvInt("APPLICATION_FEE", 10000)),
		AcceptanceFee:  uint(getEnvInt("ACCEPTANCE_FEE", 50000)),
		SkillFee:       uint(getEnvInt("SKILL_FEE", 25000)),

		PaystackBaseURL:   getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		PaystackSecretKey: getEnv("PAYSTACK_SECRET_KEY", "defaultSecret"),
		PaystackTimeout:   getEnvInt("PAYSTACK_TIMEOUT", 15),

		PortalBaseURL: getEnv("PORTAL_BASE_URL", "http://localhost:3000"),
		UploadDir:     getEnv("UPLOAD_DIR", "./public/uploads"),

		EmailSender: getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:    getEnv("PASSWORD", "defaultSecret"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.PaystackSecretKey == "defaultSecret" {
		log.Println("Warning: PAYSTACK_SECRET_KEY is not set. Payment calls will fail.")
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
