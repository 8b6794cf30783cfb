package config

// binding ties one Config field to its flag and environment variable.
// Exactly one of str or num is set.
type binding struct {
	flag  string
	env   string
	usage string
	str   *string
	num   *int
}

func (c *Config) bindings() []binding {
	return []binding{
		{flag: "storage", env: "GOPHAUTH_STORAGE_DRIVER", usage: "storage driver: sqlite, postgres, redis, s3 or memory", str: &c.StorageDriver},
		{flag: "sqlite-path", env: "GOPHAUTH_SQLITE_PATH", usage: "path to the SQLite database file", str: &c.SQLitePath},
		{flag: "postgres-dsn", env: "GOPHAUTH_POSTGRES_DSN", usage: "PostgreSQL connection string", str: &c.PostgresDSN},
		{flag: "redis-addr", env: "GOPHAUTH_REDIS_ADDR", usage: "Redis host:port", str: &c.RedisAddr},
		{flag: "redis-password", env: "GOPHAUTH_REDIS_PASSWORD", usage: "Redis password", str: &c.RedisPassword},
		{flag: "redis-db", env: "GOPHAUTH_REDIS_DB", usage: "Redis database number", num: &c.RedisDB},
		{flag: "redis-prefix", env: "GOPHAUTH_REDIS_PREFIX", usage: "prefix for Redis keys", str: &c.RedisPrefix},
		{flag: "s3-bucket", env: "GOPHAUTH_S3_BUCKET", usage: "S3 bucket name", str: &c.S3Bucket},
		{flag: "s3-region", env: "GOPHAUTH_S3_REGION", usage: "S3 region", str: &c.S3Region},
		{flag: "s3-endpoint", env: "GOPHAUTH_S3_BASE_ENDPOINT", usage: "custom S3 endpoint (MinIO and friends)", str: &c.S3BaseEndpoint},
		{flag: "s3-access-key", env: "GOPHAUTH_S3_ACCESS_KEY", usage: "static S3 access key", str: &c.S3AccessKey},
		{flag: "s3-secret-key", env: "GOPHAUTH_S3_SECRET_KEY", usage: "static S3 secret key", str: &c.S3SecretKey},
		{flag: "s3-prefix", env: "GOPHAUTH_S3_PREFIX", usage: "object key prefix in the bucket", str: &c.S3Prefix},
		{flag: "session-key", env: "GOPHAUTH_SESSION_KEY", usage: "store key holding the active session", str: &c.SessionKey},
		{flag: "directory-key", env: "GOPHAUTH_DIRECTORY_KEY", usage: "store key holding the user directory", str: &c.DirectoryKey},
		{flag: "hash", env: "GOPHAUTH_PASSWORD_HASHING", usage: "password hashing scheme: argon2id, bcrypt or plain", str: &c.PasswordHashing},
		{flag: "log-level", env: "GOPHAUTH_LOG_LEVEL", usage: "log level: debug, info, warn or error", str: &c.LogLevel},
		{flag: "log-format", env: "GOPHAUTH_LOG_FORMAT", usage: "log format: text or json", str: &c.LogFormat},
	}
}
