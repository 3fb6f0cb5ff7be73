package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type serverConfig struct {
	Port           int    `koanf:"port" validate:"required,gt=0"`
	AppName        string `koanf:"app_name" validate:"required"`
	BodyLimit      int    `koanf:"body_limit" validate:"required,gt=0"`
	Concurrency    int    `koanf:"concurrency" validate:"gte=0"`
	MaxConnections int    `koanf:"max_connections" validate:"gte=0"`
}

type LogLevel string

const (
	Debug LogLevel = "debug"
	Info  LogLevel = "info"
	Warn  LogLevel = "warn"
	Error LogLevel = "error"
	Fatal LogLevel = "fatal"
	Panic LogLevel = "panic"
)

type Module string

const (
	ModuleIngest    Module = "ingest"
	ModuleDatabase  Module = "database"
	ModuleDocuments Module = "documents"
	ModuleExtractor Module = "extractor"
	ModuleS3        Module = "s3"
	ModuleServer    Module = "server"
	ModuleSetting   Module = "setting"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type DatabaseConfig struct {
	Driver       string   `koanf:"driver" validate:"required,oneof=mysql postgres"`
	DSN          string   `koanf:"dsn"`
	Host         string   `koanf:"host" validate:"required_without=DSN"`
	Port         int      `koanf:"port" validate:"required_without=DSN"`
	User         string   `koanf:"user" validate:"required_without=DSN"`
	Password     string   `koanf:"password" validate:"required_without=DSN"`
	Name         string   `koanf:"name" validate:"required_without=DSN"`
	MaxIdleConns int      `koanf:"max_idle_conns" validate:"gte=0"`
	MaxOpenConns int      `koanf:"max_open_conns" validate:"gte=0"`
	MaxLifetime  int      `koanf:"max_lifetime" validate:"gte=0"`
	Replicas     []string `koanf:"replicas"`
	AutoMigrate  bool     `koanf:"auto_migrate"`
}

type IngestConfig struct {
	ChunkTargetSize   int      `koanf:"chunk_target_size" validate:"required,gt=0"`
	AllowedExtensions []string `koanf:"allowed_extensions" validate:"required,min=1"`
}

type S3Config struct {
	Enabled   bool   `koanf:"enabled"`
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	Region    string `koanf:"region"`
	Bucket    string `koanf:"bucket" validate:"required_if=Enabled true"`
	Prefix    string `koanf:"prefix"`
}

type Config struct {
	Server    serverConfig   `koanf:"server"`
	Database  DatabaseConfig `koanf:"database"`
	LogLevel  LogLevel       `koanf:"log_level" validate:"oneof=debug info warn error fatal panic"`
	LogFormat string         `koanf:"log_format" validate:"oneof=text json"`
	Ingest    IngestConfig   `koanf:"ingest"`
	S3        S3Config       `koanf:"s3"`
}

// ConfigurationError reports a configuration that cannot be used, most
// commonly missing store credentials.
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: invalid configuration: %s", ModuleSetting, strings.Join(e.Problems, "; "))
}

// BuildDSN returns the explicit dsn or builds one for the configured driver.
func (c DatabaseConfig) BuildDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	if c.Driver == DriverPostgres {
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			c.User,
			c.Password,
			c.Host,
			c.Port,
			c.Name,
		)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
	)
}

// Default returns the built-in configuration. Store credentials are left
// empty on purpose so a deployment has to provide them.
func Default() Config {
	return Config{
		Server: serverConfig{
			Port:           8000,
			AppName:        "pdf-chunk-queue",
			BodyLimit:      50 * 1024 * 1024,
			MaxConnections: 256,
		},
		Database: DatabaseConfig{
			Driver:       DriverMySQL,
			Host:         "127.0.0.1",
			Port:         3306,
			Name:         "chunk_queue",
			MaxIdleConns: 5,
			MaxOpenConns: 20,
			MaxLifetime:  30,
			AutoMigrate:  true,
		},
		LogLevel:  Info,
		LogFormat: "text",
		Ingest: IngestConfig{
			ChunkTargetSize:   10000,
			AllowedExtensions: []string{".pdf"},
		},
		S3: S3Config{
			Region: "us-east-1",
			Prefix: "documents",
		},
	}
}

// Load reads defaults, then the yaml file at path (optional), then a .env
// file and APP_ prefixed environment variables. APP_DATABASE__PASSWORD maps
// to database.password.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%v: load .env: %w", ModuleSetting, err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%v: load %s: %w", ModuleSetting, path, err)
		}
	}

	if err := k.Load(env.Provider("APP_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "APP_")), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("%v: load env: %w", ModuleSetting, err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("%v: unmarshal: %w", ModuleSetting, err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg and reports every failing field at once.
func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return &ConfigurationError{Problems: []string{err.Error()}}
	}
	problems := make([]string, 0, len(errs))
	for _, e := range errs {
		problems = append(problems, fmt.Sprintf("%s: failed '%s'", e.Namespace(), e.Tag()))
	}
	return &ConfigurationError{Problems: problems}
}
