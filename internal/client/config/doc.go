// Package config loads runtime configuration for the gophauth CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c/--config or GOPHAUTH_CONFIG.
//     Files ending in .yaml or .yml are YAML, everything else is JSON.
//  3. Environment variables GOPHAUTH_*.
//  4. Command-line flags, but only those set explicitly.
//
// The dotenv file named by --env-file (default .env) is loaded before step
// 2, so it may set GOPHAUTH_CONFIG as well as the other variables.
//
// # File schema
//
//	{
//	  "storage_driver": "sqlite",
//	  "sqlite_path": "/home/ann/.config/gophauth/gophauth.db",
//	  "session_key": "@auth_user",
//	  "directory_key": "@app_users",
//	  "password_hashing": "argon2id",
//	  "log_level": "warn",
//	  "log_format": "text"
//	}
//
// Primary API
//
//   - type Config                          holds all settings
//   - func RegisterFlags(*pflag.FlagSet)   defines the flags on a cobra command
//   - func Load(*pflag.FlagSet)            applies every source and validates
package config
