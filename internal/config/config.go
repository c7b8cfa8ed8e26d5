package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger = zerolog.Nop()

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

// Config represents the complete configuration structure
type Config struct {
	Version string        `yaml:"version" default:"1"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Theme   ThemeConfig   `yaml:"theme"`
	Web     WebConfig     `yaml:"web"`
	Logging LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Level string `yaml:"level" default:"warn" env:"QUOTES_LOG_LEVEL"`
}

type StorageConfig struct {
	// Backend is one of memory, fs, sqlite or s3.
	Backend     string       `yaml:"backend" default:"fs" env:"QUOTES_STORAGE_BACKEND"`
	Key         string       `yaml:"key" default:"quotes" env:"QUOTES_STORAGE_KEY"`
	Dir         string       `yaml:"dir" default:".quotes" env:"QUOTES_STORAGE_DIR"`
	Compression string       `yaml:"compression" default:"none" env:"QUOTES_STORAGE_COMPRESSION"`
	SQLite      SQLiteConfig `yaml:"sqlite"`
	S3          S3Config     `yaml:"s3"`
}

type SQLiteConfig struct {
	Path string `yaml:"path" default:"./quotes.db" env:"QUOTES_SQLITE_PATH"`
}

type S3Config struct {
	Bucket          string `yaml:"bucket" default:"" env:"QUOTES_S3_BUCKET"`
	Prefix          string `yaml:"prefix" default:"quote-saver/" env:"QUOTES_S3_PREFIX"`
	Region          string `yaml:"region" default:"auto" env:"QUOTES_S3_REGION"`
	Endpoint        string `yaml:"endpoint" default:"" env:"QUOTES_S3_ENDPOINT"`
	AccessKeyID     string `yaml:"-" env:"QUOTES_S3_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"-" env:"QUOTES_S3_SECRET_ACCESS_KEY"`
	TimeoutSeconds  int    `yaml:"timeout_seconds" default:"10"`
}

type ServerConfig struct {
	Host string `yaml:"host" default:"127.0.0.1" env:"QUOTES_SERVER_HOST"`
	Port string `yaml:"port" default:"12601" env:"QUOTES_SERVER_PORT"`
}

type ThemeConfig struct {
	Accent  string `yaml:"accent" default:"63"`
	Quote   string `yaml:"quote" default:"252"`
	Muted   string `yaml:"muted" default:"241"`
	Warning string `yaml:"warning" default:"214"`
	Update  string `yaml:"update" default:"212"`
}

type WebConfig struct {
	Markdown bool   `yaml:"markdown" default:"true"`
	Title    string `yaml:"title" default:"Quote Saver"`
}

// Load reads the YAML file at path over the defaults, then applies QUOTES_*
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	config := &Config{}

	// Apply default values first
	applyDefaults(config)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
	} else if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	} else if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.Version != DefaultVersion {
		return fmt.Errorf("unsupported configuration version %q", c.Version)
	}
	switch c.Storage.Backend {
	case BackendMemory, BackendFS, BackendSQLite:
	case BackendS3:
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("storage backend %q requires s3.bucket", BackendS3)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return fmt.Errorf("storage key must not be empty")
	}
	return nil
}

func ApplyDefaults(config interface{}) {
	applyDefaults(config)
}

func applyDefaults(config interface{}) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		// Recursively apply defaults to nested structs
		if field.Kind() == reflect.Struct {
			applyDefaults(field.Addr().Interface())
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(defaultValue)
		case reflect.Bool:
			if val, err := strconv.ParseBool(defaultValue); err == nil {
				field.SetBool(val)
			}
		case reflect.Int:
			if val, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(val)
			}
		case reflect.Slice:
			if field.Len() == 0 && field.Type().Elem().Kind() == reflect.String {
				parts := strings.Split(defaultValue, ",")
				slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
				for j, part := range parts {
					slice.Index(j).SetString(strings.TrimSpace(part))
				}
				field.Set(slice)
			}
		default:
			configLogger.Warn().
				Str("field_name", fieldType.Name).
				Str("field_type", field.Kind().String()).
				Msg("Unsupported field type for default value")
		}
	}
}
