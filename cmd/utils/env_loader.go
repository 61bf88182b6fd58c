package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvFileFlagName = "env-file"
	envFileFlag     = "--" + EnvFileFlagName
	envFileEnvVar   = "NETKI_ENV_FILE"
)

// LoadEnvFile loads environment variables before the CLI options are parsed, so they can be used as option values.
// The files come from the --env-file flag, then NETKI_ENV_FILE, then a .env in the working directory. Both the flag
// and the env var accept a comma separated list, and variables that are already set are never overridden.
func LoadEnvFile() error {
	envFilePaths := determineEnvFilePaths()

	if len(envFilePaths) > 0 {
		return loadExplicitEnvFiles(envFilePaths)
	}

	return loadDefaultEnvFile()
}

func determineEnvFilePaths() []string {
	value := parseEnvFileFlag()
	if value == "" {
		value = os.Getenv(envFileEnvVar)
	}

	var paths []string
	for _, path := range strings.Split(value, ",") {
		if path = strings.TrimSpace(path); path != "" {
			paths = append(paths, toAbsolutePath(path))
		}
	}
	return paths
}

// parseEnvFileFlag reads --env-file from os.Args since it's needed before cobra parses the flags.
func parseEnvFileFlag() string {
	for i, arg := range os.Args {
		if arg == envFileFlag && i+1 < len(os.Args) {
			return os.Args[i+1]
		}
		if value, found := strings.CutPrefix(arg, envFileFlag+"="); found {
			return value
		}
	}
	return ""
}

func toAbsolutePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func loadExplicitEnvFiles(paths []string) error {
	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("loading env files %s: %w", strings.Join(paths, ", "), err)
	}
	return nil
}

// loadDefaultEnvFile loads .env from the working directory, if there is one.
func loadDefaultEnvFile() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("loading .env file: %w", err)
}
