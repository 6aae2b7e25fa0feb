package config

// DBConfig contains PostgreSQL database configuration.
// Only used when the allow-list source is set to postgres.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"acceso"`
	Password string `env:"PASSWORD" envDefault:"acceso"`
	Name     string `env:"NAME"     envDefault:"acceso"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
}
