package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Storage drivers understood by storage.Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverS3       = "s3"
	DriverMemory   = "memory"
)

var drivers = []string{DriverSQLite, DriverPostgres, DriverRedis, DriverS3, DriverMemory}

// Config holds runtime settings for the gophauth CLI.
//
// Storage fields are only consulted for the selected StorageDriver. The
// session and directory keys name the two entries kept in the store.
type Config struct {
	StorageDriver string `json:"storage_driver" yaml:"storage_driver"`
	SQLitePath    string `json:"sqlite_path" yaml:"sqlite_path"`
	PostgresDSN   string `json:"postgres_dsn" yaml:"postgres_dsn"`

	RedisAddr     string `json:"redis_addr" yaml:"redis_addr"`
	RedisPassword string `json:"redis_password" yaml:"redis_password"`
	RedisDB       int    `json:"redis_db" yaml:"redis_db"`
	RedisPrefix   string `json:"redis_prefix" yaml:"redis_prefix"`

	S3Bucket       string `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region       string `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3AccessKey    string `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey    string `json:"s3_secret_key" yaml:"s3_secret_key"`
	S3Prefix       string `json:"s3_prefix" yaml:"s3_prefix"`

	SessionKey      string `json:"session_key" yaml:"session_key"`
	DirectoryKey    string `json:"directory_key" yaml:"directory_key"`
	PasswordHashing string `json:"password_hashing" yaml:"password_hashing"`

	LogLevel  string `json:"log_level" yaml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageDriver = DriverSQLite
	c.SQLitePath = defaultSQLitePath()
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = "gophauth:"
	c.S3Region = "us-east-1"
	c.S3Prefix = "gophauth"
	c.SessionKey = "@auth_user"
	c.DirectoryKey = "@app_users"
	c.PasswordHashing = "argon2id"
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

func defaultSQLitePath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "gophauth.db"
	}
	return filepath.Join(dir, "gophauth", "gophauth.db")
}

// Validate reports the first setting that cannot be used as-is.
func (c *Config) Validate() error {
	if !slices.Contains(drivers, c.StorageDriver) {
		return fmt.Errorf("unknown storage driver %q (want one of %s)", c.StorageDriver, strings.Join(drivers, ", "))
	}
	switch c.StorageDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required")
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("postgres dsn is required")
		}
	case DriverRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis address is required")
		}
	case DriverS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("s3 bucket is required")
		}
	}
	if c.SessionKey == "" || c.DirectoryKey == "" {
		return fmt.Errorf("session and directory keys must not be empty")
	}
	if c.SessionKey == c.DirectoryKey {
		return fmt.Errorf("session and directory keys must differ")
	}
	return nil
}
