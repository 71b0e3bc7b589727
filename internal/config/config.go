package config // package config loads application configuration from environment variables

import (
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Every field has a working
// default so the demo starts with no environment at all: an in-memory store,
// the two fixed credential pairs and a development JWT secret.
type Config struct {
    Env          string // application environment (e.g. "dev", "prod")
    Port         string // HTTP port to listen on
    JWTSecret    string // secret used to sign session JWTs
    AccessTTLMin int    // session token time-to-live in minutes
    BcryptCost   int    // bcrypt cost for hashing the fixed credentials

    StoreDriver string // persistence backend: "memory", "redis" or "mysql"
    DBUser      string // database username (mysql driver only)
    DBPass      string // database password (optional)
    DBHost      string // database host address
    DBPort      string // database port number
    DBName      string // database name

    StudentUser string // username of the fixed student account
    StudentPass string // password of the fixed student account
    AdminUser   string // username of the fixed admin account
    AdminPass   string // password of the fixed admin account
}

// Load reads configuration values from environment variables, falling back
// to demo defaults for anything unset.
func Load() Config {
    return Config{
        Env:          getenv("APP_ENV", "dev"),
        Port:         getenv("APP_PORT", "8080"),
        JWTSecret:    getenv("JWT_SECRET", "dev-only-secret"),
        AccessTTLMin: getenvInt("ACCESS_TOKEN_TTL_MIN", 120),
        BcryptCost:   getenvInt("BCRYPT_COST", 10),

        StoreDriver: getenv("STORE_DRIVER", "memory"),
        DBUser:      getenv("DB_USER", "root"),
        DBPass:      os.Getenv("DB_PASS"), // empty allowed
        DBHost:      getenv("DB_HOST", "localhost"),
        DBPort:      getenv("DB_PORT", "3306"),
        DBName:      getenv("DB_NAME", "hostel"),

        StudentUser: getenv("STUDENT_USER", "student"),
        StudentPass: getenv("STUDENT_PASS", "student123"),
        AdminUser:   getenv("ADMIN_USER", "admin"),
        AdminPass:   getenv("ADMIN_PASS", "admin123"),
    }
}

// getenv retrieves an environment variable or the given default when unset
// or empty.
func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

// getenvInt is like getenv but converts the value to an integer, keeping the
// default on parse failure.
func getenvInt(key string, def int) int {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    n, err := strconv.Atoi(v)
    if err != nil {
        return def
    }
    return n
}
