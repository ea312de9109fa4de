package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values. Each field
// corresponds to an environment variable: strings for identifiers and
// secrets, ints for durations and costs. The root credentials are
// consumed once by the seeding routine to guarantee an administrator
// account exists.
type Config struct {
	Env              string // application environment (e.g. "dev", "prod")
	Port             string // HTTP port to listen on
	DBUser           string // database username
	DBPass           string // database password (optional)
	DBHost           string // database host address
	DBPort           string // database port number
	DBName           string // database name
	DBMaxOpenConns   int    // connection pool: max open connections
	DBMaxIdleConns   int    // connection pool: max idle connections
	DBConnMaxLifeMin int    // connection pool: max connection lifetime in minutes
	JWTSecret        string // secret used to sign JWTs
	TokenTTLHours    int    // access token time-to-live in hours
	BcryptCost       int    // bcrypt cost for password hashing
	RootEmail        string // email of the seeded root administrator
	RootPassword     string // plain password of the seeded root administrator
}

// Load reads configuration values from environment variables and
// returns a Config. Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:              must("APP_ENV"),
		Port:             must("APP_PORT"),
		DBUser:           must("DB_USER"),
		DBPass:           os.Getenv("DB_PASS"), // empty allowed
		DBHost:           must("DB_HOST"),
		DBPort:           must("DB_PORT"),
		DBName:           must("DB_NAME"),
		DBMaxOpenConns:   mustIntDefault("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:   mustIntDefault("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifeMin: mustIntDefault("DB_CONN_MAX_LIFETIME_MIN", 30),
		JWTSecret:        must("JWT_SECRET"),
		TokenTTLHours:    mustIntDefault("TOKEN_TTL_HOURS", 24),
		BcryptCost:       mustInt("BCRYPT_COST"),
		RootEmail:        must("ROOT_EMAIL"),
		RootPassword:     must("ROOT_PASSWORD"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an
// integer. If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// mustIntDefault reads an optional integer variable, falling back to
// def when unset. A set-but-malformed value is still fatal.
func mustIntDefault(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
