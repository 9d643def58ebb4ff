package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vestern/vestern/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadHost        string        `mapstructure:"read_host"`
	ReadPort        int           `mapstructure:"read_port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // e.g. "5m", "1h"
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // e.g. "10m", "30m"
}

// NATSConfig holds NATS JetStream configuration. An empty URL disables publishing.
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	SubjectPrefix  string        `mapstructure:"subject_prefix"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
	// CORSOrigins restricts cross-origin callers; empty allows all
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// AssignerConfig holds the one-shot token assignment settings
type AssignerConfig struct {
	Delay time.Duration     `mapstructure:"delay"`
	Field domain.TokenField `mapstructure:"field"`
}

// ListenerConfig holds the insert listener settings
type ListenerConfig struct {
	Channel        string            `mapstructure:"channel"`
	Field          domain.TokenField `mapstructure:"field"`
	ProcessDelay   time.Duration     `mapstructure:"process_delay"`
	InstallTrigger bool              `mapstructure:"install_trigger"`
}

// TokenAssignerConfig holds configuration for token-assigner
type TokenAssignerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Assigner   AssignerConfig `mapstructure:"assigner"`
}

// InsertListenerConfig holds configuration for insert-listener
type InsertListenerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Listener   ListenerConfig `mapstructure:"listener"`
}

// APIConfig holds configuration for the dashboard API server
type APIConfig struct {
	BaseConfig        `mapstructure:",squash"`
	Server            ServerConfig   `mapstructure:"server"`
	Database          DatabaseConfig `mapstructure:"database"`
	Auth              AuthConfig     `mapstructure:"auth"`
	TransactionsLimit int            `mapstructure:"transactions_limit"`
}

// LoadTokenAssignerConfig loads configuration for token-assigner
func LoadTokenAssignerConfig(configFile string, envPath string) (*TokenAssignerConfig, error) {
	v := configureViper("token-assigner", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	v.SetDefault("database.max_open_conns", 1)
	v.SetDefault("database.max_idle_conns", 1)
	v.SetDefault("assigner.delay", domain.DEFAULT_ASSIGN_DELAY)
	v.SetDefault("assigner.field", string(domain.TokenFieldTransactionNumber))

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg TokenAssignerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Database.validate(); err != nil {
		return nil, err
	}
	if cfg.Assigner.Delay < 0 {
		return nil, errors.New("assigner.delay must not be negative")
	}
	if _, err := domain.ParseTokenField(string(cfg.Assigner.Field)); err != nil {
		return nil, fmt.Errorf("assigner.field: %w", err)
	}

	return &cfg, nil
}

// LoadInsertListenerConfig loads configuration for insert-listener
func LoadInsertListenerConfig(configFile string, envPath string) (*InsertListenerConfig, error) {
	v := configureViper("insert-listener", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	v.SetDefault("database.max_open_conns", 2)
	v.SetDefault("database.max_idle_conns", 1)
	v.SetDefault("nats.stream_name", "VESTERN_EVENTS")
	v.SetDefault("nats.subject_prefix", "vestern.transactions")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.connection_name", "insert-listener")
	v.SetDefault("listener.channel", domain.DEFAULT_NOTIFY_CHANNEL)
	v.SetDefault("listener.field", string(domain.TokenFieldTransactionNumber))
	v.SetDefault("listener.process_delay", "0s")
	v.SetDefault("listener.install_trigger", true)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg InsertListenerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Database.validate(); err != nil {
		return nil, err
	}
	if err := domain.ValidateChannel(cfg.Listener.Channel); err != nil {
		return nil, fmt.Errorf("listener.channel: %w", err)
	}
	if _, err := domain.ParseTokenField(string(cfg.Listener.Field)); err != nil {
		return nil, fmt.Errorf("listener.field: %w", err)
	}
	if cfg.Listener.ProcessDelay < 0 {
		return nil, errors.New("listener.process_delay must not be negative")
	}

	return &cfg, nil
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("transactions_limit", domain.MAX_TRANSACTIONS_LIMIT)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Database.validate(); err != nil {
		return nil, err
	}
	if cfg.TransactionsLimit <= 0 || cfg.TransactionsLimit > domain.MAX_TRANSACTIONS_LIMIT {
		cfg.TransactionsLimit = domain.MAX_TRANSACTIONS_LIMIT
	}

	return &cfg, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.conn_max_idle_time", "5m")
}

// readConfig reads the config file; a missing file is fine, env vars are enough
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func (c *DatabaseConfig) validate() error {
	if c.Host == "" {
		return errors.New("database.host is required")
	}
	if c.DBName == "" {
		return errors.New("database.dbname is required")
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	// VESTERN_DATABASE_HOST maps to database.host
	v.SetEnvPrefix("VESTERN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.read_host",
		"database.read_port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.subject_prefix",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.cors_origins",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Assigner
		"assigner.delay",
		"assigner.field",
		// Listener
		"listener.channel",
		"listener.field",
		"listener.process_delay",
		"listener.install_trigger",
		// API
		"transactions_limit",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Shared base first, then local, then optional per-service local
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		_ = godotenv.Overload(filepath.Join(envPath, envFile)) // later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ReadDSN returns the read-replica connection string.
// If ReadPort is not configured, it falls back to Port.
func (c *DatabaseConfig) ReadDSN() string {
	port := c.ReadPort
	if port == 0 {
		port = c.Port
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.ReadHost, port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedactedDSN returns the connection string with the password masked, for logs
func (c *DatabaseConfig) RedactedDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=*** dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.DBName, c.SSLMode)
}

// URL returns the primary database as a postgres:// URL
func (c *DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}
