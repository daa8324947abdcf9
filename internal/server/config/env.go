package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays settings from environment variables. A .env file in
// the working directory is loaded first; variables already set in the
// process environment take precedence over it.
//
// DATABASE_URL wins over the split DATABASE_HOST / DATABASE_PORT /
// DATABASE_NAME / DATABASE_USER / DATABASE_PASSWORD / DATABASE_SSLMODE
// variables, which only build a DSN when DATABASE_HOST is set.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		config.DatabaseDSN = dsn
	} else if host := os.Getenv("DATABASE_HOST"); host != "" {
		config.DatabaseDSN = buildDSN(
			host,
			envOr("DATABASE_PORT", "5432"),
			envOr("DATABASE_NAME", "personal"),
			envOr("DATABASE_USER", "postgres"),
			envOr("DATABASE_PASSWORD", "postgres"),
			envOr("DATABASE_SSLMODE", "require"),
		)
	}

	setString(&config.EndpointAddrHTTP, "HTTP_ADDRESS")
	setString(&config.EndpointAddrGRPC, "GRPC_ADDRESS")
	setString(&config.S3RootUser, "S3_ACCESS_KEY")
	setString(&config.S3RootPassword, "S3_SECRET_KEY")
	setString(&config.S3Bucket, "S3_BUCKET")
	setString(&config.S3Region, "S3_REGION")
	setString(&config.S3BaseEndpoint, "S3_ENDPOINT")
	setString(&config.LogLevel, "LOG_LEVEL")
}

func buildDSN(host, port, name, user, password, sslmode string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     fmt.Sprintf("%s:%s", host, port),
		Path:     "/" + name,
		RawQuery: url.Values{"sslmode": []string{sslmode}}.Encode(),
	}
	return u.String()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
