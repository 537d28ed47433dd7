package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env              string        `yaml:"env" env:"ENV" env-default:"local"`
	DSN              string        `yaml:"dsn" env:"DSN" env-required:"true"`
	TokenSecret      string        `yaml:"token_secret" env:"TOKEN_SECRET" env-required:"true"`
	AccessTokenTTL   time.Duration `yaml:"access_token_ttl" env-default:"15m"`
	RefreshTokenTTL  time.Duration `yaml:"refresh_token_ttl" env-default:"168h"`
	StatementTimeout time.Duration `yaml:"statement_timeout" env-default:"10s"`
	HTTP             HTTPConfig    `yaml:"http"`
	Redis            RedisConfig   `yaml:"redis"`
	Assets           AssetsConfig  `yaml:"assets"`
}

type HTTPConfig struct {
	Host         string   `yaml:"host"`
	Port         string   `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	AllowOrigins []string `yaml:"allow_origins"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type AssetsConfig struct {
	Endpoint  string `yaml:"endpoint" env:"ASSETS_ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"ASSETS_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"ASSETS_SECRET_KEY"`
	Bucket    string `yaml:"bucket" env:"ASSETS_BUCKET" env-default:"blog-images"`
	UseSSL    bool   `yaml:"use_ssl" env:"ASSETS_USE_SSL" env-default:"false"`
	// PublicBaseURL is prepended to object keys to build browser-facing URLs.
	PublicBaseURL string `yaml:"public_base_url" env:"ASSETS_PUBLIC_BASE_URL"`
}

// IsProd gates error detail in responses and CORS strictness.
func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

func MustLoad() *Config {
	// .env is optional; real config comes from the YAML file and env vars
	_ = godotenv.Load()

	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
