// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files and an
// optional .env file. Each file in the directory represents one secret: the
// filename is the key name and the file contents (trimmed) are the value.
// Variables in the .env file are mapped to the same names, so
// ANTHROPIC_API_KEY becomes anthropic-api-key.
//
// Supported keys: anthropic-api-key, openai-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Key names read by the CLI.
const (
	AnthropicAPIKey = "anthropic-api-key"
	OpenAIAPIKey    = "openai-api-key"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// LoadEnvFile reads a dotenv file and returns its variables under secret key
// names. A missing file is not an error.
func LoadEnvFile(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}

	secrets := make(map[string]string, len(vars))
	for k, v := range vars {
		if v = strings.TrimSpace(v); v != "" {
			secrets[KeyName(k)] = v
		}
	}
	return secrets, nil
}

// LoadAll merges the env file and the secrets directory. Directory files
// take precedence.
func LoadAll(dir, envFile string) (map[string]string, error) {
	merged, err := LoadEnvFile(envFile)
	if err != nil {
		return nil, err
	}
	fromDir, err := Load(dir)
	if err != nil {
		return nil, err
	}
	for k, v := range fromDir {
		merged[k] = v
	}
	return merged, nil
}

// KeyName converts an environment variable name to a secret key name.
func KeyName(envVar string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(envVar)), "_", "-")
}
