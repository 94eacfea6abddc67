package config

import (
	"net"
	"net/url"
	"strconv"
)

// DBConfig contains PostgreSQL database configuration.
// An empty Host keeps customers and invoices in memory.
type DBConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"invoices"`
	Password string `env:"PASSWORD" envDefault:"invoices"`
	Name     string `env:"NAME"     envDefault:"invoices"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// Enabled reports whether a Postgres host is configured.
func (c DBConfig) Enabled() bool { return c.Host != "" }

// DSN builds a URL-form DSN so credentials with special characters survive.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// RedisConfig contains Redis configuration.
// Sessions are kept in memory when no Redis endpoint is configured.
type RedisConfig struct {
	URI                string   `env:"URI"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelNodes      []string `env:"SENTINEL_NODES"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
	// SessionPrefix namespaces session keys.
	SessionPrefix string `env:"SESSION_PREFIX" envDefault:"session:"`
}

// Enabled reports whether any Redis topology is configured.
func (c RedisConfig) Enabled() bool {
	switch {
	case c.UseCluster:
		return len(c.ClusterNodes) > 0 || c.URI != ""
	case c.UseSentinel:
		return len(c.SentinelNodes) > 0
	default:
		return c.URI != ""
	}
}
