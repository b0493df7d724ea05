package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// HTTPConfig is the HTTP configuration for the server.
type HTTPConfig struct {
	// ListenAddr is the address on which the HTTP server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`

	// TLSKeyPath is the path to the TLS private key.
	TLSKeyPath string `env:"TLS_KEY_PATH" yaml:"tls_key_path"`

	// TLSCertPath is the path to the TLS certificate.
	TLSCertPath string `env:"TLS_CERT_PATH" yaml:"tls_cert_path"`

	// PublicURL is the public URL of the HTTP server.
	// This is the address used in invitation links.
	PublicURL string `env:"PUBLIC_URL" yaml:"public_url"`

	// CORS is the CORS configuration.
	CORS CORSConfig `envPrefix:"CORS_" yaml:"cors"`
}

// CORSConfig is the CORS configuration for the HTTP server.
type CORSConfig struct {
	// AllowedOrigins is the list of origins allowed to make requests.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" yaml:"allowed_origins"`

	// AllowedHeaders is the list of headers allowed in requests.
	AllowedHeaders []string `env:"ALLOWED_HEADERS" yaml:"allowed_headers"`

	// AllowedMethods is the list of allowed request methods.
	AllowedMethods []string `env:"ALLOWED_METHODS" yaml:"allowed_methods"`
}

// StatsConfig is the configuration for the stats server.
type StatsConfig struct {
	// ListenAddr is the address on which the stats server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`
}

// LogConfig is the logger configuration.
type LogConfig struct {
	// Format is the format of the logs.
	// Valid values are "json", "logfmt", and "text".
	Format string `env:"FORMAT" yaml:"format"`

	// Time format for the log `ts` field.
	// Format must be described in Golang's time format.
	TimeFormat string `env:"TIME_FORMAT" yaml:"time_format"`

	// Path to a file to write logs to.
	// If not set, logs will be written to stderr.
	Path string `env:"PATH" yaml:"path"`
}

// DBConfig is the database connection configuration.
type DBConfig struct {
	// Driver is the driver for the database.
	Driver string `env:"DRIVER" yaml:"driver"`

	// DataSource is the database data source name.
	DataSource string `env:"DATA_SOURCE" yaml:"data_source"`
}

// SMTPConfig is the mail delivery configuration.
// When Host is empty, deliveries are simulated and logged instead of sent.
type SMTPConfig struct {
	// Host is the SMTP server host.
	Host string `env:"HOST" yaml:"host"`

	// Port is the SMTP server port.
	Port int `env:"PORT" yaml:"port"`

	// Username is the SMTP user name.
	Username string `env:"USERNAME" yaml:"username"`

	// Password is the SMTP password.
	Password string `env:"PASSWORD" yaml:"password"`

	// From is the sender address used on outgoing mail.
	From string `env:"FROM" yaml:"from"`

	// TLS forces an implicit TLS connection to the SMTP server.
	TLS bool `env:"TLS" yaml:"tls"`
}

// AuthConfig is the authentication configuration.
type AuthConfig struct {
	// KeyPath is the path to the server's session signing key.
	KeyPath string `env:"KEY_PATH" yaml:"key_path"`
}

// JobsConfig is the configuration for cron jobs.
type JobsConfig struct {
	// ReminderSweep is the cron spec for the reminder sweep job.
	ReminderSweep string `env:"REMINDER_SWEEP" yaml:"reminder_sweep"`

	// ReminderAge is the number of seconds a sent meeting can wait before
	// pending participants are reminded.
	ReminderAge int `env:"REMINDER_AGE" yaml:"reminder_age"`
}

// Config is the configuration for Convene.
type Config struct {
	// Name is the name of the server.
	Name string `env:"NAME" yaml:"name"`

	// HTTP is the configuration for the HTTP server.
	HTTP HTTPConfig `envPrefix:"HTTP_" yaml:"http"`

	// Stats is the configuration for the stats server.
	Stats StatsConfig `envPrefix:"STATS_" yaml:"stats"`

	// Log is the logger configuration.
	Log LogConfig `envPrefix:"LOG_" yaml:"log"`

	// DB is the database configuration.
	DB DBConfig `envPrefix:"DB_" yaml:"db"`

	// SMTP is the mail delivery configuration.
	SMTP SMTPConfig `envPrefix:"SMTP_" yaml:"smtp"`

	// Auth is the authentication configuration.
	Auth AuthConfig `envPrefix:"AUTH_" yaml:"auth"`

	// Jobs is the configuration for cron jobs.
	Jobs JobsConfig `envPrefix:"JOBS_" yaml:"jobs"`

	// InitialAdminEmails is a list of organizer accounts created on first run.
	InitialAdminEmails []string `env:"INITIAL_ADMIN_EMAILS" envSeparator:"," yaml:"initial_admin_emails"`

	// DataPath is the path to the directory where Convene will store its data.
	DataPath string `env:"DATA_PATH" yaml:"-"`
}

// Environ returns the config as a list of environment variables.
func (c *Config) Environ() []string {
	envs := []string{}
	if c == nil {
		return envs
	}

	// TODO: do this dynamically
	envs = append(envs, []string{
		fmt.Sprintf("CONVENE_DATA_PATH=%s", c.DataPath),
		fmt.Sprintf("CONVENE_NAME=%s", c.Name),
		fmt.Sprintf("CONVENE_INITIAL_ADMIN_EMAILS=%s", strings.Join(c.InitialAdminEmails, ",")),
		fmt.Sprintf("CONVENE_HTTP_LISTEN_ADDR=%s", c.HTTP.ListenAddr),
		fmt.Sprintf("CONVENE_HTTP_TLS_KEY_PATH=%s", c.HTTP.TLSKeyPath),
		fmt.Sprintf("CONVENE_HTTP_TLS_CERT_PATH=%s", c.HTTP.TLSCertPath),
		fmt.Sprintf("CONVENE_HTTP_PUBLIC_URL=%s", c.HTTP.PublicURL),
		fmt.Sprintf("CONVENE_STATS_LISTEN_ADDR=%s", c.Stats.ListenAddr),
		fmt.Sprintf("CONVENE_LOG_FORMAT=%s", c.Log.Format),
		fmt.Sprintf("CONVENE_LOG_TIME_FORMAT=%s", c.Log.TimeFormat),
		fmt.Sprintf("CONVENE_DB_DRIVER=%s", c.DB.Driver),
		fmt.Sprintf("CONVENE_DB_DATA_SOURCE=%s", c.DB.DataSource),
		fmt.Sprintf("CONVENE_SMTP_HOST=%s", c.SMTP.Host),
		fmt.Sprintf("CONVENE_SMTP_PORT=%d", c.SMTP.Port),
		fmt.Sprintf("CONVENE_SMTP_USERNAME=%s", c.SMTP.Username),
		fmt.Sprintf("CONVENE_SMTP_PASSWORD=%s", c.SMTP.Password),
		fmt.Sprintf("CONVENE_SMTP_FROM=%s", c.SMTP.From),
		fmt.Sprintf("CONVENE_SMTP_TLS=%t", c.SMTP.TLS),
		fmt.Sprintf("CONVENE_AUTH_KEY_PATH=%s", c.Auth.KeyPath),
		fmt.Sprintf("CONVENE_JOBS_REMINDER_SWEEP=%s", c.Jobs.ReminderSweep),
		fmt.Sprintf("CONVENE_JOBS_REMINDER_AGE=%d", c.Jobs.ReminderAge),
	}...)

	return envs
}

// IsDebug returns true if the server is running in debug mode.
func IsDebug() bool {
	debug, _ := strconv.ParseBool(os.Getenv("CONVENE_DEBUG"))
	return debug
}

// IsVerbose returns true if the server is running in verbose mode.
// Verbose mode is only enabled if debug mode is enabled.
func IsVerbose() bool {
	verbose, _ := strconv.ParseBool(os.Getenv("CONVENE_VERBOSE"))
	return IsDebug() && verbose
}

// parseFile parses the given file as a configuration file.
// The file must be in YAML format.
func parseFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	defer f.Close() // nolint: errcheck
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return cfg.Validate()
}

// ParseFile parses the config from the default file path.
// This also calls Validate() on the config.
func (c *Config) ParseFile() error {
	return parseFile(c, c.ConfigPath())
}

// parseEnv parses the environment variables as a configuration file.
func parseEnv(cfg *Config) error {
	// Merge initial admin emails from both config file and environment variables.
	initialAdminEmails := append([]string{}, cfg.InitialAdminEmails...)

	// Override with environment variables
	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix: "CONVENE_",
	}); err != nil {
		return fmt.Errorf("parse environment variables: %w", err)
	}

	// Merge initial admin emails from environment variables.
	if initialAdminEmailsEnv := os.Getenv("CONVENE_INITIAL_ADMIN_EMAILS"); initialAdminEmailsEnv != "" {
		cfg.InitialAdminEmails = append(cfg.InitialAdminEmails, initialAdminEmails...)
	}

	return cfg.Validate()
}

// ParseEnv parses the config from the environment variables.
// This also calls Validate() on the config.
func (c *Config) ParseEnv() error {
	return parseEnv(c)
}

// Parse parses the config from the default file path and environment variables.
// This also calls Validate() on the config.
func (c *Config) Parse() error {
	if err := c.ParseFile(); err != nil {
		return err
	}

	return c.ParseEnv()
}

// writeConfig writes the configuration to the given file.
func writeConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(newConfigFile(cfg)), 0o644) // nolint: errcheck, gosec
}

// WriteConfig writes the configuration to the default file.
func (c *Config) WriteConfig() error {
	return writeConfig(c, c.ConfigPath())
}

// DefaultDataPath returns the path to the data directory.
// It uses the CONVENE_DATA_PATH environment variable if set, otherwise it
// uses "data".
func DefaultDataPath() string {
	dp := os.Getenv("CONVENE_DATA_PATH")
	if dp == "" {
		dp = "data"
	}

	return dp
}

// ConfigPath returns the path to the config file.
// The CONVENE_CONFIG_LOCATION environment variable takes precedence when it
// points at an existing file.
func (c *Config) ConfigPath() string { // nolint:revive
	if p := os.Getenv("CONVENE_CONFIG_LOCATION"); p != "" && exist(p) {
		return p
	}

	return filepath.Join(c.DataPath, "config.yaml")
}

func exist(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Exist returns true if the config file exists.
func (c *Config) Exist() bool {
	return exist(c.ConfigPath())
}

// DefaultConfig returns the default Config. All the path values are relative
// to the data directory.
// Use Validate() to validate the config and ensure absolute paths.
func DefaultConfig() *Config {
	return &Config{
		Name:     "Convene",
		DataPath: DefaultDataPath(),
		HTTP: HTTPConfig{
			ListenAddr: ":8080",
			PublicURL:  "http://localhost:8080",
			CORS: CORSConfig{
				AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type", "Authorization"},
				AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			},
		},
		Stats: StatsConfig{
			ListenAddr: "localhost:9090",
		},
		Log: LogConfig{
			Format:     "text",
			TimeFormat: time.DateTime,
		},
		DB: DBConfig{
			Driver: "sqlite",
			DataSource: "convene.db" +
				"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)",
		},
		SMTP: SMTPConfig{
			Port: 587,
		},
		Auth: AuthConfig{
			KeyPath: filepath.Join("auth", "convene_ed25519"),
		},
		Jobs: JobsConfig{
			ReminderSweep: "@every 1h",
			ReminderAge:   2 * 24 * 60 * 60, // 2 days
		},
	}
}

// Validate validates the configuration.
// It updates the configuration with absolute paths.
func (c *Config) Validate() error {
	// Use absolute paths
	if !filepath.IsAbs(c.DataPath) {
		dp, err := filepath.Abs(c.DataPath)
		if err != nil {
			return err
		}
		c.DataPath = dp
	}

	c.HTTP.PublicURL = strings.TrimSuffix(c.HTTP.PublicURL, "/")

	if c.HTTP.TLSKeyPath != "" && !filepath.IsAbs(c.HTTP.TLSKeyPath) {
		c.HTTP.TLSKeyPath = filepath.Join(c.DataPath, c.HTTP.TLSKeyPath)
	}

	if c.HTTP.TLSCertPath != "" && !filepath.IsAbs(c.HTTP.TLSCertPath) {
		c.HTTP.TLSCertPath = filepath.Join(c.DataPath, c.HTTP.TLSCertPath)
	}

	if c.Auth.KeyPath != "" && !filepath.IsAbs(c.Auth.KeyPath) {
		c.Auth.KeyPath = filepath.Join(c.DataPath, c.Auth.KeyPath)
	}

	if strings.HasPrefix(c.DB.Driver, "sqlite") && !filepath.IsAbs(c.DB.DataSource) {
		c.DB.DataSource = filepath.Join(c.DataPath, c.DB.DataSource)
	}

	// The public URL is always an allowed origin.
	origins := []string{c.HTTP.PublicURL}
	for _, origin := range c.HTTP.CORS.AllowedOrigins {
		if origin != c.HTTP.PublicURL {
			origins = append(origins, origin)
		}
	}
	c.HTTP.CORS.AllowedOrigins = origins

	c.InitialAdminEmails = normalizeEmails(c.InitialAdminEmails)

	return nil
}

// normalizeEmails lowercases, dedupes, and drops malformed addresses.
func normalizeEmails(emails []string) []string {
	exist := make(map[string]struct{}, 0)
	out := make([]string, 0)
	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if !strings.Contains(email, "@") {
			continue
		}

		if _, ok := exist[email]; !ok {
			out = append(out, email)
			exist[email] = struct{}{}
		}
	}
	return out
}
