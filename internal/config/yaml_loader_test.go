package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestYAMLLoader_LoadFromFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "sdfmatterctl-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	configContent := `server:
  host: localhost
  port: 8080
  readTimeout: 30s
  writeTimeout: 30s
  maxHeaderBytes: 1048576
  tls:
    enabled: false

auth:
  enabled: true
  jwtSecretKey: my-secret-key
  issuer: sdfmatterctl
  audience: sdfmatterctl-clients
  tokenExpiration: 15m
  signingMethod: HS256

logging:
  level: info
  format: json
  filePath: ""
  maxSize: 10
  maxBackups: 5
  maxAge: 30
  compress: true

translation:
  schemaDir: /etc/sdfmatterctl/schemas
  defaultMappingNamespace: org.example
  strictConformance: false
  maxDocumentBytes: 10485760

features:
  roundTrip: true
  schemaValidation: true
  metrics: true
  rbacEnabled: true
`

	configPath := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	loader := NewYAMLLoader(configPath)
	cfg := &Config{}

	if err := loader.LoadFromFile(configPath, cfg); err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Host != "localhost" {
		t.Errorf("Expected server.host to be 'localhost', got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected server.port to be 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("Expected server.readTimeout to be 30s, got %v", cfg.Server.ReadTimeout)
	}

	if !cfg.Auth.Enabled {
		t.Errorf("Expected auth.enabled to be true")
	}
	if cfg.Auth.TokenExpiration != 15*time.Minute {
		t.Errorf("Expected auth.tokenExpiration to be 15m, got %v", cfg.Auth.TokenExpiration)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("Expected logging.level to be 'info', got %s", cfg.Logging.Level)
	}

	if cfg.Translation.SchemaDir != "/etc/sdfmatterctl/schemas" {
		t.Errorf("Expected translation.schemaDir to be '/etc/sdfmatterctl/schemas', got %s", cfg.Translation.SchemaDir)
	}
	if cfg.Translation.MaxDocumentBytes != 10485760 {
		t.Errorf("Expected translation.maxDocumentBytes to be 10485760, got %d", cfg.Translation.MaxDocumentBytes)
	}

	if !cfg.Features.RoundTrip {
		t.Errorf("Expected features.roundTrip to be true")
	}
}

func TestYAMLLoader_LoadFromFile_Error(t *testing.T) {
	loader := NewYAMLLoader("non-existent-file.yaml")
	cfg := &Config{}

	if err := loader.LoadFromFile("non-existent-file.yaml", cfg); err == nil {
		t.Errorf("Expected an error when loading a non-existent file, got nil")
	}

	tempDir, err := os.MkdirTemp("", "sdfmatterctl-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	invalidYAMLPath := filepath.Join(tempDir, "invalid.yaml")
	if err := os.WriteFile(invalidYAMLPath, []byte("invalid: yaml: content:"), 0644); err != nil {
		t.Fatalf("Failed to write invalid YAML file: %v", err)
	}

	if err := loader.LoadFromFile(invalidYAMLPath, cfg); err == nil {
		t.Errorf("Expected an error when loading invalid YAML, got nil")
	}
}

func TestYAMLLoader_LoadWithOverrides(t *testing.T) {
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("AUTH_ENABLED", "false")
	os.Setenv("LOGGING_LEVEL", "debug")
	os.Setenv("TRANSLATION_SCHEMADIR", "/opt/schemas")
	defer func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("AUTH_ENABLED")
		os.Unsetenv("LOGGING_LEVEL")
		os.Unsetenv("TRANSLATION_SCHEMADIR")
	}()

	cfg := &Config{
		Server:      ServerConfig{Host: "localhost", Port: 8080},
		Auth:        AuthConfig{Enabled: true},
		Logging:     LoggingConfig{Level: "info"},
		Translation: TranslationConfig{SchemaDir: "/etc/schemas"},
	}

	loader := NewYAMLLoader("")
	if err := loader.LoadWithOverrides(cfg); err != nil {
		t.Fatalf("Failed to apply environment overrides: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected server.port to be 9090, got %d", cfg.Server.Port)
	}
	if cfg.Auth.Enabled {
		t.Errorf("Expected auth.enabled to be false")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected logging.level to be 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Translation.SchemaDir != "/opt/schemas" {
		t.Errorf("Expected translation.schemaDir to be '/opt/schemas', got %s", cfg.Translation.SchemaDir)
	}
}

func TestYAMLLoader_Load(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "sdfmatterctl-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	configContent := `server:
  host: localhost
  port: 8080
`

	configPath := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	os.Setenv("SERVER_PORT", "9090")
	defer os.Unsetenv("SERVER_PORT")

	loader := NewYAMLLoader(configPath)
	cfg := &Config{}

	if err := loader.Load(cfg); err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Host != "localhost" {
		t.Errorf("Expected server.host to be 'localhost', got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Expected server.port to be 9090, got %d", cfg.Server.Port)
	}
}

func TestYAMLLoader_Load_Error(t *testing.T) {
	loader := NewYAMLLoader("non-existent-file.yaml")
	cfg := &Config{}

	if err := loader.Load(cfg); err == nil {
		t.Errorf("Expected an error when loading a non-existent file, got nil")
	}
}

func TestBuildEnvVarName(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		field    string
		expected string
	}{
		{name: "No prefix", prefix: "", field: "port", expected: "PORT"},
		{name: "With prefix", prefix: "server", field: "port", expected: "SERVER_PORT"},
		{name: "Nested prefix", prefix: "server_tls", field: "enabled", expected: "SERVER_TLS_ENABLED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := buildEnvVarName(tt.prefix, tt.field)
			if result != tt.expected {
				t.Errorf("buildEnvVarName(%q, %q) = %q; want %q", tt.prefix, tt.field, result, tt.expected)
			}
		})
	}
}

func TestApplyEnvValueToField(t *testing.T) {
	type testStruct struct {
		String      string
		Int         int
		Bool        bool
		Float       float64
		Duration    time.Duration
		Map         map[string]string
		StringSlice []string
		IntSlice    []int
	}

	tests := []struct {
		name      string
		field     string
		envValue  string
		expected  interface{}
		expectErr bool
	}{
		{name: "String value", field: "String", envValue: "test-value", expected: "test-value"},
		{name: "Int value", field: "Int", envValue: "42", expected: 42},
		{name: "Bool value true", field: "Bool", envValue: "true", expected: true},
		{name: "Bool value false", field: "Bool", envValue: "false", expected: false},
		{name: "Invalid bool value", field: "Bool", envValue: "not-a-bool", expectErr: true},
		{name: "Float value", field: "Float", envValue: "3.14159", expected: 3.14159},
		{name: "Invalid float value", field: "Float", envValue: "not-a-float", expectErr: true},
		{name: "Duration value", field: "Duration", envValue: "10m", expected: 10 * time.Minute},
		{name: "Invalid duration value", field: "Duration", envValue: "not-a-duration", expectErr: true},
		{
			name: "Map value", field: "Map", envValue: "key1:value1,key2:value2",
			expected: map[string]string{"key1": "value1", "key2": "value2"},
		},
		{name: "Invalid map format", field: "Map", envValue: "invalid-format", expectErr: true},
		{
			name: "String slice", field: "StringSlice", envValue: "value1,value2,value3",
			expected: []string{"value1", "value2", "value3"},
		},
		{name: "Int slice", field: "IntSlice", envValue: "1,2,3", expected: []int{1, 2, 3}},
		{name: "Invalid int slice", field: "IntSlice", envValue: "1,not-an-int,3", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testStruct{}

			v := reflect.ValueOf(&s).Elem()
			field := v.FieldByName(tt.field)

			err := applyEnvValueToField(field, tt.envValue)

			if (err != nil) != tt.expectErr {
				t.Errorf("applyEnvValueToField() error = %v, expectErr %v", err, tt.expectErr)
				return
			}

			if err != nil {
				return
			}

			switch tt.field {
			case "String":
				if s.String != tt.expected.(string) {
					t.Errorf("s.String = %v; want %v", s.String, tt.expected)
				}
			case "Int":
				if s.Int != tt.expected.(int) {
					t.Errorf("s.Int = %v; want %v", s.Int, tt.expected)
				}
			case "Bool":
				if s.Bool != tt.expected.(bool) {
					t.Errorf("s.Bool = %v; want %v", s.Bool, tt.expected)
				}
			case "Float":
				if s.Float != tt.expected.(float64) {
					t.Errorf("s.Float = %v; want %v", s.Float, tt.expected)
				}
			case "Duration":
				if s.Duration != tt.expected.(time.Duration) {
					t.Errorf("s.Duration = %v; want %v", s.Duration, tt.expected)
				}
			case "Map":
				expectedMap := tt.expected.(map[string]string)
				if len(s.Map) != len(expectedMap) {
					t.Errorf("len(s.Map) = %v; want %v", len(s.Map), len(expectedMap))
				}
				for k, v := range expectedMap {
					if s.Map[k] != v {
						t.Errorf("s.Map[%q] = %v; want %v", k, s.Map[k], v)
					}
				}
			case "StringSlice":
				expectedSlice := tt.expected.([]string)
				if len(s.StringSlice) != len(expectedSlice) {
					t.Errorf("len(s.StringSlice) = %v; want %v", len(s.StringSlice), len(expectedSlice))
				}
				for i, v := range expectedSlice {
					if s.StringSlice[i] != v {
						t.Errorf("s.StringSlice[%d] = %v; want %v", i, s.StringSlice[i], v)
					}
				}
			case "IntSlice":
				expectedSlice := tt.expected.([]int)
				if len(s.IntSlice) != len(expectedSlice) {
					t.Errorf("len(s.IntSlice) = %v; want %v", len(s.IntSlice), len(expectedSlice))
				}
				for i, v := range expectedSlice {
					if s.IntSlice[i] != v {
						t.Errorf("s.IntSlice[%d] = %v; want %v", i, s.IntSlice[i], v)
					}
				}
			}
		})
	}
}
