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
	DBName    string
	JWTKey    string
	SaltRound int

	// Placement engine tuning. The tier cutoffs here are the single source
	// of truth; nothing else may redefine them.
	AnswerFailureThreshold int     // failed answer loads before a question is degraded
	LoadFailureThreshold   int     // consecutive quiz-load failures before a run fails
	IntermediateCutoff     float64 // score fraction for INTERMEDIATE
	AdvancedCutoff         float64 // score fraction for ADVANCED
	StoreTimeoutSec        int     // per-call data store timeout
	RunIdleTimeoutMin      int     // minutes before an abandoned run is reaped
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		DBName:    getEnv("DB_NAME", "lms"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		AnswerFailureThreshold: getEnvInt("ANSWER_FAILURE_THRESHOLD", 3),
		LoadFailureThreshold:   getEnvInt("LOAD_FAILURE_THRESHOLD", 3),
		IntermediateCutoff:     getEnvFloat("INTERMEDIATE_CUTOFF", 0.50),
		AdvancedCutoff:         getEnvFloat("ADVANCED_CUTOFF", 0.80),
		StoreTimeoutSec:        getEnvInt("STORE_TIMEOUT_SEC", 10),
		RunIdleTimeoutMin:      getEnvInt("RUN_IDLE_TIMEOUT_MIN", 30),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
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

// getEnvFloat retrieves an environment variable as a float or returns the default float value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Error converting environment variable %s to float: %v", key, err)
		return defaultValue
	}
	return floatValue
}
