package config

// Config holds all application configuration.
// It is constructed once at startup and passed explicitly to the
// components that need it; there is no ambient mutable state.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Upload   UploadConfig   `mapstructure:"upload"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// MaxBodyBytes caps the size of accepted request bodies.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes" validate:"required,gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeMinutes is the validity window of issued tokens.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// UploadConfig contains file upload storage settings.
type UploadConfig struct {
	// Dir is the local directory uploaded files are written to. The
	// directory is served publicly under /assets.
	Dir string `mapstructure:"dir" validate:"required"`
}
