package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/expensekeeper/internal/flagx"
	"github.com/dmitrijs2005/expensekeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "30s" strings and integer nanoseconds are accepted.
// Fields that are absent from the file leave the current value untouched.
type JsonConfig struct {
	EndpointAddrHTTP        *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC        *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN             *string         `json:"database_dsn"`
	DatabaseMaxOpenConns    *int            `json:"database_max_open_conns"`
	DatabaseMaxIdleConns    *int            `json:"database_max_idle_conns"`
	DatabaseConnMaxLifetime *timex.Duration `json:"database_conn_max_lifetime"`
	RunMigrations           *bool           `json:"run_migrations"`
	HealthCheckInterval     *timex.Duration `json:"health_check_interval"`
	ShutdownTimeout         *timex.Duration `json:"shutdown_timeout"`
	S3RootUser              *string         `json:"s3_root_user"`
	S3RootPassword          *string         `json:"s3_root_password"`
	S3Bucket                *string         `json:"s3_bucket"`
	S3Region                *string         `json:"s3_region"`
	S3BaseEndpoint          *string         `json:"s3_base_endpoint"`
	LogLevel                *string         `json:"log_level"`
}

// parseJson loads the file named by -c / -config, if any, and copies every
// field it sets into config. An unreadable file or invalid JSON panics,
// since the server cannot start with a half-read configuration.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	copyValue(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	copyValue(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	copyValue(&config.DatabaseDSN, c.DatabaseDSN)
	copyValue(&config.DatabaseMaxOpenConns, c.DatabaseMaxOpenConns)
	copyValue(&config.DatabaseMaxIdleConns, c.DatabaseMaxIdleConns)
	copyValue(&config.RunMigrations, c.RunMigrations)
	copyValue(&config.S3RootUser, c.S3RootUser)
	copyValue(&config.S3RootPassword, c.S3RootPassword)
	copyValue(&config.S3Bucket, c.S3Bucket)
	copyValue(&config.S3Region, c.S3Region)
	copyValue(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	copyValue(&config.LogLevel, c.LogLevel)

	if c.DatabaseConnMaxLifetime != nil {
		config.DatabaseConnMaxLifetime = c.DatabaseConnMaxLifetime.Duration
	}
	if c.HealthCheckInterval != nil {
		config.HealthCheckInterval = c.HealthCheckInterval.Duration
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func copyValue[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
