package configs

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"APP_ENV"`

	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSSLMode  string `mapstructure:"DB_SSLMODE"`
	// milliseconds, also the per-request deadline
	DBStatementTimeout int `mapstructure:"DB_STATEMENT_TIMEOUT_MS"`

	JWTSecret   string `mapstructure:"JWT_SECRET"`
	CorsOrigins string `mapstructure:"CORS_ORIGINS"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	TokenBlacklistTTLDays int `mapstructure:"TOKEN_BLACKLIST_TTL_DAYS"`
	ChallengeDefaultDays  int `mapstructure:"CHALLENGE_DEFAULT_DAYS"`

	SeedDemoData bool   `mapstructure:"SEED_DEMO_DATA"`
	SeedDir      string `mapstructure:"SEED_DIR"`
}

var (
	AppConfig Config
	JWTSecret string
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "africrea")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_STATEMENT_TIMEOUT_MS", 5000)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("TOKEN_BLACKLIST_TTL_DAYS", 7)
	v.SetDefault("CHALLENGE_DEFAULT_DAYS", 7)
	v.SetDefault("SEED_DEMO_DATA", false)
	v.SetDefault("SEED_DIR", "internals/seeds")
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file found, using system environment")
		} else {
			log.Println(".env file loaded")
		}
	} else {
		log.Println("running in Railway, using system environment")
	}

	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	AppConfig = cfg
	JWTSecret = cfg.JWTSecret

	InitLogger(cfg)

	if JWTSecret == "" {
		log.Error("JWT_SECRET is not set")
	} else {
		log.Info("JWT_SECRET loaded")
	}
}

// Load reads configuration from the environment (and an optional config file) into Config.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)
	return cfg, nil
}

func (c Config) AllowedOrigins() []string {
	out := make([]string, 0, 4)
	for _, o := range strings.Split(c.CorsOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
