package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Admin    AdminConfig
	Seed     SeedConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

// Configured reports whether enough settings are present to reach the
// database. When false the service runs read-only from the seed snapshot.
func (c DatabaseConfig) Configured() bool {
	return c.Host != "" && c.User != "" && c.Database != ""
}

// DSN builds the pgx connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.Schema,
	)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Configured reports whether rate limiting can be backed by redis
func (c RedisConfig) Configured() bool {
	return c.Host != ""
}

// Addr builds the redis address
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  int // in minutes
	RefreshExpiry int // in days
}

// StorageConfig holds the object storage connection settings
type StorageConfig struct {
	BaseURL    string
	Bucket     string
	ServiceKey string
}

// Configured reports whether image uploads can be forwarded to storage
func (c StorageConfig) Configured() bool {
	return c.BaseURL != "" && c.ServiceKey != ""
}

// AdminConfig holds the bootstrap admin account, provisioned at startup
// when set
type AdminConfig struct {
	Email    string
	Password string
}

// SeedConfig points at the read-only JSON snapshot used when the
// database is not configured
type SeedConfig struct {
	Path string
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("JWT_ACCESS_EXPIRY", 15)
	viper.SetDefault("JWT_REFRESH_EXPIRY", 7)
	viper.SetDefault("STORAGE_BUCKET", "rabbits")
	viper.SetDefault("SEED_PATH", "data/rabbits.json")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  viper.GetInt("JWT_ACCESS_EXPIRY"),
			RefreshExpiry: viper.GetInt("JWT_REFRESH_EXPIRY"),
		},
		Storage: StorageConfig{
			BaseURL:    viper.GetString("STORAGE_BASE_URL"),
			Bucket:     viper.GetString("STORAGE_BUCKET"),
			ServiceKey: viper.GetString("STORAGE_SERVICE_KEY"),
		},
		Admin: AdminConfig{
			Email:    viper.GetString("ADMIN_EMAIL"),
			Password: viper.GetString("ADMIN_PASSWORD"),
		},
		Seed: SeedConfig{
			Path: viper.GetString("SEED_PATH"),
		},
	}
}
