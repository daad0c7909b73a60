package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
)

const localhostHost = "localhost"

// Common errors.
var (
	ErrEmptyValue         = errors.New("value cannot be empty")
	ErrFileNotAccessible  = errors.New("file is not accessible")
	ErrDirectoryNotExists = errors.New("directory does not exist")
	ErrInvalidPort        = errors.New("invalid port number")
	ErrInvalidTimeout     = errors.New("invalid timeout value")
	ErrInvalidFormat      = errors.New("invalid format")
)

// Validate checks if the configuration is valid.
func Validate(cfg *Config) error {
	if err := ValidateServer(cfg.Server); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := ValidateAuth(cfg.Auth); err != nil {
		return fmt.Errorf("auth config: %w", err)
	}

	if err := ValidateLogging(cfg.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	if err := ValidateTranslation(cfg.Translation); err != nil {
		return fmt.Errorf("translation config: %w", err)
	}

	return nil
}

// ValidateServer validates server configuration.
func ValidateServer(server ServerConfig) error {
	if server.Host != "" {
		if ip := net.ParseIP(server.Host); ip == nil && server.Host != localhostHost {
			if _, err := net.LookupHost(server.Host); err != nil {
				return fmt.Errorf("invalid host: %w", err)
			}
		}
	}

	if server.Port < 1 || server.Port > 65535 {
		return fmt.Errorf("port %d: %w", server.Port, ErrInvalidPort)
	}

	if server.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout: %w", ErrInvalidTimeout)
	}

	if server.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout: %w", ErrInvalidTimeout)
	}

	if server.TLS.Enabled {
		if server.TLS.CertFile == "" {
			return fmt.Errorf("TLS cert file: %w", ErrEmptyValue)
		}

		if server.TLS.KeyFile == "" {
			return fmt.Errorf("TLS key file: %w", ErrEmptyValue)
		}

		if err := checkFileReadable(server.TLS.CertFile); err != nil {
			return fmt.Errorf("TLS cert file: %w", err)
		}

		if err := checkFileReadable(server.TLS.KeyFile); err != nil {
			return fmt.Errorf("TLS key file: %w", err)
		}
	}

	return nil
}

// ValidateAuth validates authentication configuration.
func ValidateAuth(auth AuthConfig) error {
	if !auth.Enabled {
		return nil
	}

	if auth.JWTSecretKey == "" {
		return fmt.Errorf("JWT secret key: %w", ErrEmptyValue)
	}

	if auth.TokenExpiration <= 0 {
		return fmt.Errorf("token expiration: %w", ErrInvalidTimeout)
	}

	validMethods := map[string]bool{
		"HS256": true, "HS384": true, "HS512": true,
		"RS256": true, "RS384": true, "RS512": true,
		"ES256": true, "ES384": true, "ES512": true,
	}

	if !validMethods[auth.SigningMethod] {
		return fmt.Errorf("signing method %s: %w", auth.SigningMethod, ErrInvalidFormat)
	}

	return nil
}

// ValidateLogging validates logging configuration.
func ValidateLogging(logging LoggingConfig) error {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
		"dpanic": true, "panic": true, "fatal": true,
	}

	if !validLevels[strings.ToLower(logging.Level)] {
		return fmt.Errorf("log level %s: %w", logging.Level, ErrInvalidFormat)
	}

	validFormats := map[string]bool{"json": true, "console": true}

	if !validFormats[strings.ToLower(logging.Format)] {
		return fmt.Errorf("log format %s: %w", logging.Format, ErrInvalidFormat)
	}

	if logging.FilePath != "" {
		dir := filepath.Dir(logging.FilePath)
		if err := checkDirWritable(dir); err != nil {
			return fmt.Errorf("log directory: %w", err)
		}
	}

	if logging.MaxSize < 0 {
		return fmt.Errorf("max size must be non-negative")
	}

	if logging.MaxBackups < 0 {
		return fmt.Errorf("max backups must be non-negative")
	}

	if logging.MaxAge < 0 {
		return fmt.Errorf("max age must be non-negative")
	}

	return nil
}

// ValidateTranslation validates the SDF<->Matter pipeline settings.
func ValidateTranslation(t TranslationConfig) error {
	if t.SchemaDir != "" {
		if err := checkDirWritable(t.SchemaDir); err != nil {
			// A read-only schema directory is fine; only missing/non-dir is an error.
			if errors.Is(err, ErrDirectoryNotExists) {
				return fmt.Errorf("schema directory: %w", err)
			}
		}
	}

	if t.MaxDocumentBytes < 0 {
		return fmt.Errorf("max document bytes must be non-negative")
	}

	return nil
}

// Helper functions.

// checkFileReadable checks if a file exists and is readable.
func checkFileReadable(path string) error {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", path, ErrFileNotAccessible)
	}
	if err != nil {
		return fmt.Errorf("accessing %s: %w", path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	return nil
}

// checkDirWritable checks if a directory exists and is writable.
func checkDirWritable(path string) error {
	fi, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", path, ErrDirectoryNotExists)
	}
	if err != nil {
		return fmt.Errorf("accessing %s: %w", path, err)
	}

	if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}

	tempFile := filepath.Join(path, ".sdfmatterctl-write-test")
	f, err := os.Create(tempFile)
	if err != nil {
		return fmt.Errorf("directory %s is not writable: %w", path, err)
	}

	f.Close()
	os.Remove(tempFile)

	return nil
}
