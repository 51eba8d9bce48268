package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret     string `yaml:"secret"`
		TTL        int    `yaml:"ttl"`         // минуты, access token
		RefreshTTL int    `yaml:"refresh_ttl"` // минуты, refresh token
	} `yaml:"jwt"`

	Redis struct {
		Addr     string `yaml:"addr"` // пусто = аналитика отключена
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Payments struct {
		Provider  string `yaml:"provider"` // "stripe" или "sandbox"
		StripeKey string `yaml:"stripe_key"`
	} `yaml:"payments"`

	Commission struct {
		Enabled     bool    `yaml:"enabled"`
		SenderRate  float64 `yaml:"sender_rate"`
		CarrierRate float64 `yaml:"carrier_rate"`
	} `yaml:"commission"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")
	serverEnv := os.Getenv("SERVER_ENV")
	portStr := os.Getenv("SERVER_PORT")
	jwtSecret := os.Getenv("JWT_SECRET")

	if dbURL == "" {
		log.Println("Загрузка из config.yaml (режим НЕ-тест)")

		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	log.Println("Загрузка конфигурации из ПЕРЕМЕННЫХ ОКРУЖЕНИЯ (режим теста)")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = serverEnv
	cfg.Server.Port, _ = strconv.Atoi(portStr)
	cfg.JWT.Secret = jwtSecret
	cfg.JWT.TTL = 60
	cfg.JWT.RefreshTTL = 60 * 24 * 30

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")

	cfg.Payments.Provider = "sandbox"
	cfg.Commission.Enabled = true
	cfg.Commission.SenderRate = 0.01
	cfg.Commission.CarrierRate = 0.01

	cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")

	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60
	}
	if cfg.JWT.RefreshTTL == 0 {
		cfg.JWT.RefreshTTL = 60 * 24 * 30
	}
	if cfg.Payments.Provider == "" {
		cfg.Payments.Provider = "sandbox"
	}
	if cfg.Commission.SenderRate == 0 {
		cfg.Commission.SenderRate = 0.01
	}
	if cfg.Commission.CarrierRate == 0 {
		cfg.Commission.CarrierRate = 0.01
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
