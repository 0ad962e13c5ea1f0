package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Auth     Auth
	Redis    Redis
	RabbitMQ RabbitMQ
	Admin    Admin
	Log      Log
}

type Server struct {
	Port    string
	GinMode string
}

type Database struct {
	Driver   string // "postgres" or "sqlite"
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Path     string // sqlite file, ":memory:" allowed
}

type Auth struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type RabbitMQ struct {
	URI      string
	Exchange string
}

// Admin seeds an administrative account on start when both fields are set.
type Admin struct {
	Username string
	Password string
}

type Log struct {
	Level  string
	Pretty bool
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("DATABASE_PATH", "surveyhub.sqlite")
	viper.SetDefault("JWT_TTL", "24h")
	viper.SetDefault("RABBITMQ_EXCHANGE", "survey.events")
	viper.SetDefault("LOG_LEVEL", "info")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.GinMode = viper.GetString("GIN_MODE")

	config.Database.Driver = viper.GetString("DATABASE_DRIVER")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")
	config.Database.Path = viper.GetString("DATABASE_PATH")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")
	config.Auth.TokenTTL = viper.GetDuration("JWT_TTL")

	config.Redis.Addr = viper.GetString("REDIS_ADDR")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")
	config.Redis.DB = viper.GetInt("REDIS_DB")

	config.RabbitMQ.URI = viper.GetString("RABBITMQ_URI")
	config.RabbitMQ.Exchange = viper.GetString("RABBITMQ_EXCHANGE")

	config.Admin.Username = viper.GetString("ADMIN_USERNAME")
	config.Admin.Password = viper.GetString("ADMIN_PASSWORD")

	config.Log.Level = viper.GetString("LOG_LEVEL")
	config.Log.Pretty = viper.GetBool("LOG_PRETTY")

	if config.Auth.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set, using an insecure development secret")
		config.Auth.JWTSecret = "dev-secret-change-me"
	}

	log.Info().
		Str("port", config.Server.Port).
		Str("dbDriver", config.Database.Driver).
		Str("dbHost", config.Database.Host).
		Str("dbName", config.Database.Name).
		Bool("redis", config.Redis.Addr != "").
		Bool("rabbitmq", config.RabbitMQ.URI != "").
		Msg("Config loaded")
	return &config, nil
}
