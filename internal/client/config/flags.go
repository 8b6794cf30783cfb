package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

const (
	flagConfig    = "config"
	flagEnvFile   = "env-file"
	flagEphemeral = "ephemeral"
)

// RegisterFlags defines every configuration flag on fs. Defaults shown in
// help come from LoadDefaults; Load only applies flags the user set.
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(flagConfig, "c", "", "path to a JSON or YAML config file")
	fs.String(flagEnvFile, ".env", "dotenv file to load before reading GOPHAUTH_* variables")
	fs.Bool(flagEphemeral, false, "keep everything in memory for this run (same as --storage memory)")

	for _, b := range d.bindings() {
		if b.num != nil {
			fs.Int(b.flag, *b.num, b.usage)
			continue
		}
		fs.String(b.flag, *b.str, b.usage)
	}
}

// parseFlags copies explicitly set flags from fs into cfg.
func parseFlags(cfg *Config, fs *pflag.FlagSet) error {
	byName := make(map[string]binding)
	for _, b := range cfg.bindings() {
		byName[b.flag] = b
	}

	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		if f.Name == flagEphemeral {
			if f.Value.String() == "true" {
				cfg.StorageDriver = DriverMemory
			}
			return
		}
		b, ok := byName[f.Name]
		if !ok {
			return
		}
		if setErr := b.set(f.Value.String()); setErr != nil {
			err = fmt.Errorf("--%s: %w", f.Name, setErr)
		}
	})
	return err
}
