// Copyright (c) 2025 The xgtsh Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config supplies the startup defaults for the shell: host,
// port, and user identity. Values come from an optional ~/.xgtsh.yaml
// overridden by XGTSH_* environment variables; secrets never live here.
package config

import (
	"os"
	"os/user"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// fileName is the optional per-user config file.
const fileName = ".xgtsh.yaml"

// Config holds non-sensitive connection defaults.
type Config struct {
	Host string `yaml:"host" env:"XGTSH_HOST" env-default:"localhost"`
	Port int    `yaml:"port" env:"XGTSH_PORT" env-default:"4367"`
	User string `yaml:"user" env:"XGTSH_USER"`
}

// Load reads the config file when present, then applies environment
// overrides. A missing file is not an error.
func Load() (Config, error) {
	var c Config
	path := filePath()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			err := cleanenv.ReadConfig(path, &c)
			return c, err
		}
	}
	err := cleanenv.ReadEnv(&c)
	return c, err
}

// Defaults returns the effective flag defaults, falling back to the
// built-in values when loading fails and to the current OS user when no
// identity is configured.
func Defaults() Config {
	c, err := Load()
	if err != nil {
		c = Config{Host: "localhost", Port: 4367}
	}
	if c.User == "" {
		c.User = currentUser()
	}
	return c
}

func filePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, fileName)
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if v := os.Getenv("USER"); v != "" {
		return v
	}
	return os.Getenv("USERNAME")
}
