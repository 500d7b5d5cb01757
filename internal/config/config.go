package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Store  StoreConfig  `mapstructure:"store"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=1,lte=300"`
}

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// StoreConfig selects and configures the task store backend.
type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=memory postgres sqlite"`
	// DatabaseURL is a postgres URL or a sqlite file path / DSN.
	DatabaseURL string `mapstructure:"database_url" validate:"required_unless=Driver memory"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// IsSQL reports whether the configured driver is backed by a SQL database.
func (c StoreConfig) IsSQL() bool {
	return c.Driver == DriverPostgres || c.Driver == DriverSQLite
}
