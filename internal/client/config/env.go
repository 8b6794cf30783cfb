package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/joho/godotenv"
)

// loadDotEnv exports the variables in path into the process environment.
// Variables that are already set win. A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// parseEnv overlays cfg with GOPHAUTH_* variables returned by lookup.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	for _, b := range cfg.bindings() {
		v, ok := lookup(b.env)
		if !ok {
			continue
		}
		if err := b.set(v); err != nil {
			return fmt.Errorf("%s: %w", b.env, err)
		}
	}
	return nil
}

func (b binding) set(v string) error {
	if b.num != nil {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid number %q", v)
		}
		*b.num = n
		return nil
	}
	*b.str = v
	return nil
}
