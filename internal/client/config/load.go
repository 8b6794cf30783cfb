package config

import (
	"os"

	"github.com/spf13/pflag"
)

const envConfig = "GOPHAUTH_CONFIG"

// Load builds a Config from defaults, then the config file, then the
// environment, then explicitly set flags. The dotenv file is loaded before
// anything else, so GOPHAUTH_CONFIG may come from it.
// fs must have been populated by RegisterFlags and parsed. A nil fs skips
// the dotenv and flag stages.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	var cfgPath, envFile string
	if fs != nil {
		cfgPath, _ = fs.GetString(flagConfig)
		envFile, _ = fs.GetString(flagEnvFile)
	}
	// The dotenv file is loaded first so it can name the config file.
	if err := loadDotEnv(envFile); err != nil {
		return nil, err
	}

	if cfgPath == "" {
		cfgPath = os.Getenv(envConfig)
	}
	if err := parseFile(cfg, cfgPath); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if fs != nil {
		if err := parseFlags(cfg, fs); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
