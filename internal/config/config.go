package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

var validEnvs = map[string]bool{
	"local": true,
	"alpha": true,
	"beta":  true,
	"prod":  true,
}

var validLogFormats = map[string]bool{
	"json": true,
	"text": true,
}

type Config struct {
	ServerPort  string     `toml:"server_port" yaml:"server_port"`
	AppEnv      string     `toml:"app_env" yaml:"app_env"`
	LogLevel    string     `toml:"log_level" yaml:"log_level"`
	LogFormat   string     `toml:"log_format" yaml:"log_format"`
	DatabaseURL string     `toml:"database_url" yaml:"database_url"`
	DB          DBConfig   `toml:"db" yaml:"db"`
	CORS        CORSConfig `toml:"cors" yaml:"cors"`
}

func (c Config) ParseLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("invalid SERVER_PORT %q: %w", c.ServerPort, err)
	}
	if !validEnvs[c.AppEnv] {
		return fmt.Errorf("invalid APP_ENV %q: must be one of local, alpha, beta, prod", c.AppEnv)
	}
	if !validLogFormats[strings.ToLower(c.LogFormat)] {
		return fmt.Errorf("invalid LOG_FORMAT %q: must be json or text", c.LogFormat)
	}

	driver, _, err := c.Database()
	if err != nil {
		return err
	}

	if c.DB.IAMAuth {
		if c.DatabaseURL != "" {
			return fmt.Errorf("DB_IAM_AUTH cannot be combined with DATABASE_URL")
		}
		if driver != DriverPostgres {
			return fmt.Errorf("DB_IAM_AUTH requires DB_DRIVER=postgres, got %q", driver)
		}
		if c.DB.AWSRegion == "" {
			return fmt.Errorf("DB_AWS_REGION is required when DB_IAM_AUTH is enabled")
		}
		if c.DB.SSLMode == "disable" {
			return fmt.Errorf("DB_SSLMODE must not be disable when DB_IAM_AUTH is enabled")
		}
	}
	return nil
}

// Database resolves the driver name and DSN to connect with. DATABASE_URL
// wins over the discrete DB_* settings when set.
func (c Config) Database() (driver, dsn string, err error) {
	if c.DatabaseURL == "" {
		switch c.DB.Driver {
		case DriverPostgres, DriverSQLite:
			return c.DB.Driver, c.DB.DSN(), nil
		default:
			return "", "", fmt.Errorf("invalid DB_DRIVER %q: must be postgres or sqlite3", c.DB.Driver)
		}
	}

	scheme, rest, ok := strings.Cut(c.DatabaseURL, ":")
	if !ok {
		return "", "", fmt.Errorf("invalid DATABASE_URL: missing scheme")
	}
	switch scheme {
	case "postgres", "postgresql":
		return DriverPostgres, c.DatabaseURL, nil
	case "sqlite", "sqlite3":
		path := strings.TrimPrefix(rest, "//")
		if path == "" {
			return "", "", fmt.Errorf("invalid DATABASE_URL: empty sqlite path")
		}
		return DriverSQLite, path, nil
	default:
		return "", "", fmt.Errorf("invalid DATABASE_URL: unsupported scheme %q", scheme)
	}
}

type DBConfig struct {
	Driver    string `toml:"driver" yaml:"driver"`
	Host      string `toml:"host" yaml:"host"`
	Port      string `toml:"port" yaml:"port"`
	User      string `toml:"user" yaml:"user"`
	Password  string `toml:"password" yaml:"password"`
	Name      string `toml:"name" yaml:"name"`
	SSLMode   string `toml:"sslmode" yaml:"sslmode"`
	Path      string `toml:"path" yaml:"path"`
	IAMAuth   bool   `toml:"iam_auth" yaml:"iam_auth"`
	AWSRegion string `toml:"aws_region" yaml:"aws_region"`
}

func (d DBConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return d.Path
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     d.Name,
		RawQuery: fmt.Sprintf("sslmode=%s", url.QueryEscape(d.SSLMode)),
	}
	return u.String()
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins" yaml:"allowed_origins"`
}

func Defaults() Config {
	return Config{
		ServerPort: "8000",
		AppEnv:     "local",
		LogLevel:   "info",
		LogFormat:  "json",
		DB: DBConfig{
			Driver:    DriverPostgres,
			Host:      "localhost",
			Port:      "5432",
			User:      "todo",
			Password:  "todo",
			Name:      "todo",
			SSLMode:   "disable",
			Path:      "todo.db",
			AWSRegion: "ap-northeast-1",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

// Load reads the optional file named by CONFIG_FILE, then applies environment overrides.
func Load() (Config, error) {
	return LoadFile(os.Getenv("CONFIG_FILE"))
}

// LoadFile is Load with an explicit config file path. An empty path skips the file.
func LoadFile(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.ServerPort = envOrDefault("SERVER_PORT", cfg.ServerPort)
	cfg.AppEnv = envOrDefault("APP_ENV", cfg.AppEnv)
	cfg.LogLevel = envOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envOrDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.DatabaseURL = envOrDefault("DATABASE_URL", cfg.DatabaseURL)

	cfg.DB.Driver = envOrDefault("DB_DRIVER", cfg.DB.Driver)
	cfg.DB.Host = envOrDefault("DB_HOST", cfg.DB.Host)
	cfg.DB.Port = envOrDefault("DB_PORT", cfg.DB.Port)
	cfg.DB.User = envOrDefault("DB_USER", cfg.DB.User)
	cfg.DB.Password = envOrDefault("DB_PASSWORD", cfg.DB.Password)
	cfg.DB.Name = envOrDefault("DB_NAME", cfg.DB.Name)
	cfg.DB.SSLMode = envOrDefault("DB_SSLMODE", cfg.DB.SSLMode)
	cfg.DB.Path = envOrDefault("DB_PATH", cfg.DB.Path)
	cfg.DB.AWSRegion = envOrDefault("DB_AWS_REGION", cfg.DB.AWSRegion)
	if v := os.Getenv("DB_IAM_AUTH"); v != "" {
		cfg.DB.IAMAuth = strings.EqualFold(v, "true")
	}

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORS.AllowedOrigins = splitList(v)
	}
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
