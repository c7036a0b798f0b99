// internal/config/config.go
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Env         string `mapstructure:"env"`
	FrontendURL string `mapstructure:"frontend_url"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// LegacyDatabaseConfig は移行元MySQLの接続情報（ETL専用）
type LegacyDatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type SupabaseConfig struct {
	URL            string        `mapstructure:"url"`
	AnonKey        string        `mapstructure:"anon_key"`
	ServiceRoleKey string        `mapstructure:"service_role_key"`
	HTTPTimeout    time.Duration `mapstructure:"http_timeout"`
}

type JWTConfig struct {
	SecretKey      string        `mapstructure:"secret_key"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type MailerConfig struct {
	Type string `mapstructure:"type"` // "log", "smtp", "ses"
}

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	From string `mapstructure:"from"`
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	From            string `mapstructure:"from"`
	AuthType        string `mapstructure:"auth_type"` // "iam_role" or "static_credentials"
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

type Config struct {
	App            AppConfig            `mapstructure:"app"`
	Server         ServerConfig         `mapstructure:"server"`
	Log            LogConfig            `mapstructure:"log"`
	Database       DatabaseConfig       `mapstructure:"database"`
	LegacyDatabase LegacyDatabaseConfig `mapstructure:"legacy_database"`
	Supabase       SupabaseConfig       `mapstructure:"supabase"`
	JWT            JWTConfig            `mapstructure:"jwt"`
	CORS           CORSConfig           `mapstructure:"cors"`
	Mailer         MailerConfig         `mapstructure:"mailer"`
	SMTP           SMTPConfig           `mapstructure:"smtp"`
	SES            SESConfig            `mapstructure:"ses"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// 機密値は環境変数からの上書きを許可する (例: SUPABASE_SERVICE_ROLE_KEY)
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("legacy_database.dsn", "LEGACY_DATABASE_DSN")
	viper.BindEnv("supabase.url", "SUPABASE_URL")
	viper.BindEnv("supabase.anon_key", "SUPABASE_ANON_KEY")
	viper.BindEnv("supabase.service_role_key", "SUPABASE_SERVICE_ROLE_KEY")
	viper.BindEnv("jwt.secret_key", "JWT_SECRET")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	err := viper.Unmarshal(&Cfg)
	if err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// --- デフォルト値の設定 ---
	if Cfg.App.Name == "" {
		Cfg.App.Name = AppName
	}
	if Cfg.App.FrontendURL == "" {
		Cfg.App.FrontendURL = DefaultFrontendURL
	}
	if Cfg.Server.Port == "" {
		log.Printf("Server port not set, using default '%s'", DefaultServerPort)
		Cfg.Server.Port = DefaultServerPort
	}
	if Cfg.Log.Level == "" {
		Cfg.Log.Level = DefaultLogLevel
	}
	if Cfg.JWT.AccessTokenTTL <= 0 {
		// 元システムと同じく7日間有効
		Cfg.JWT.AccessTokenTTL = DefaultAccessTokenTTL
	}
	if Cfg.Supabase.HTTPTimeout <= 0 {
		Cfg.Supabase.HTTPTimeout = DefaultProviderTimeout
	}
	if Cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	if Cfg.JWT.SecretKey == "" {
		log.Println("Warning: JWT secret key is not set in config.")
	}

	log.Println("Config loaded successfully")
	log.Printf("App Env: %s", Cfg.App.Env)
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Access Token TTL: %s", Cfg.JWT.AccessTokenTTL)

	return nil
}
