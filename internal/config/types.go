package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server" json:"server"`
	Auth        AuthConfig        `yaml:"auth" json:"auth"`
	Logging     LoggingConfig     `yaml:"logging" json:"logging"`
	Translation TranslationConfig `yaml:"translation" json:"translation"`
	Features    FeaturesConfig    `yaml:"features" json:"features"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host           string        `yaml:"host" json:"host"`
	Port           int           `yaml:"port" json:"port"`
	Mode           string        `yaml:"mode" json:"mode"`
	ReadTimeout    time.Duration `yaml:"readTimeout" json:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout" json:"writeTimeout"`
	MaxHeaderBytes int           `yaml:"maxHeaderBytes" json:"maxHeaderBytes"`
	TLS            TLSConfig     `yaml:"tls" json:"tls"`
}

// TLSConfig holds TLS configuration.
type TLSConfig struct {
	Enabled    bool   `yaml:"enabled" json:"enabled"`
	CertFile   string `yaml:"certFile" json:"certFile"`
	KeyFile    string `yaml:"keyFile" json:"keyFile"`
	MinVersion string `yaml:"minVersion" json:"minVersion"`
}

// AuthConfig holds bearer-token authentication configuration for the HTTP
// API.
type AuthConfig struct {
	Enabled         bool          `yaml:"enabled" json:"enabled"`
	JWTSecretKey    string        `yaml:"jwtSecretKey" json:"jwtSecretKey"`
	Issuer          string        `yaml:"issuer" json:"issuer"`
	Audience        string        `yaml:"audience" json:"audience"`
	TokenExpiration time.Duration `yaml:"tokenExpiration" json:"tokenExpiration"`
	SigningMethod   string        `yaml:"signingMethod" json:"signingMethod"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `yaml:"level" json:"level"`
	Format     string `yaml:"format" json:"format"`
	FilePath   string `yaml:"filePath" json:"filePath"`
	MaxSize    int    `yaml:"maxSize" json:"maxSize"`
	MaxBackups int    `yaml:"maxBackups" json:"maxBackups"`
	MaxAge     int    `yaml:"maxAge" json:"maxAge"`
	Compress   bool   `yaml:"compress" json:"compress"`
}

// TranslationConfig holds the settings governing the SDF<->Matter pipelines
// themselves.
type TranslationConfig struct {
	// SchemaDir names a schema directory. Validate checks that it is a
	// writable directory when set; the --validate structural checks do not
	// read it.
	SchemaDir string `yaml:"schemaDir" json:"schemaDir"`
	// DefaultMappingNamespace is loaded from the config file; the pipelines
	// do not read it.
	DefaultMappingNamespace string `yaml:"defaultMappingNamespace" json:"defaultMappingNamespace"`
	// StrictConformance is loaded from the config file; the pipelines do
	// not read it, and unresolvable conformance expressions are handled the
	// same way whatever its value.
	StrictConformance bool `yaml:"strictConformance" json:"strictConformance"`
	// MaxDocumentBytes is loaded from the config file and Validate rejects a
	// negative value; the document readers do not enforce it as a size
	// limit.
	MaxDocumentBytes int64 `yaml:"maxDocumentBytes" json:"maxDocumentBytes"`
}

// FeaturesConfig holds feature flags.
type FeaturesConfig struct {
	RoundTrip        bool `yaml:"roundTrip" json:"roundTrip"`
	SchemaValidation bool `yaml:"schemaValidation" json:"schemaValidation"`
	Metrics          bool `yaml:"metrics" json:"metrics"`
	RBACEnabled      bool `yaml:"rbacEnabled" json:"rbacEnabled"`
}
