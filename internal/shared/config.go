package shared

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read when HOTEL_CONFIG is unset. A missing file is not an error.
const DefaultConfigFile = "hotel.yaml"

type Config struct {
	App struct {
		Env      string `yaml:"env"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`
	HTTP struct {
		Addr           string        `yaml:"addr"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
		CORSOrigins    []string      `yaml:"cors_origins"`
	} `yaml:"http"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Mongo struct {
		URI            string        `yaml:"uri"`
		Database       string        `yaml:"database"`
		ConnectTimeout time.Duration `yaml:"connect_timeout"`
	} `yaml:"mongo"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Cache struct {
		TTLSeconds int   `yaml:"ttl"`
		L1MaxMB    int64 `yaml:"l1_max_mb"`
	} `yaml:"cache"`
	Images struct {
		BaseURL string `yaml:"base_url"`
		RPS     int    `yaml:"rps"`
	} `yaml:"images"`
	Seed struct {
		Workers int `yaml:"workers"`
	} `yaml:"seed"`
}

func Defaults() Config {
	var c Config
	c.App.Env = "prod"
	c.App.LogLevel = "info"
	c.HTTP.Addr = ":8083"
	c.HTTP.RequestTimeout = 15 * time.Second
	c.HTTP.CORSOrigins = []string{
		"http://localhost:3000", "http://localhost:3001",
		"https://localhost:3000", "https://localhost:3001",
	}
	c.Metrics.Addr = ""
	c.Mongo.URI = "mongodb://localhost:27017"
	c.Mongo.Database = "hotel_service"
	c.Mongo.ConnectTimeout = 10 * time.Second
	c.Redis.Addr = "localhost:6379"
	c.Cache.TTLSeconds = 300
	c.Cache.L1MaxMB = 32
	c.Images.RPS = 5
	c.Seed.Workers = 8
	return c
}

// Load reads defaults < YAML (HOTEL_CONFIG or hotel.yaml) < environment.
func Load() (Config, error) {
	return LoadFrom(env("HOTEL_CONFIG", DefaultConfigFile))
}

func LoadFrom(path string) (Config, error) {
	c := Defaults()
	if err := loadYAML(&c, path); err != nil {
		return Config{}, fmt.Errorf("config yaml: %w", err)
	}
	loadEnv(&c)
	if err := validate(c); err != nil {
		return Config{}, fmt.Errorf("config validate: %w", err)
	}
	return c, nil
}

func loadYAML(c *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func loadEnv(c *Config) {
	setString(&c.App.Env, "APP_ENV")
	setString(&c.App.LogLevel, "LOG_LEVEL")
	setString(&c.HTTP.Addr, "HTTP_ADDR")
	setDuration(&c.HTTP.RequestTimeout, "HTTP_REQUEST_TIMEOUT")
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.HTTP.CORSOrigins = splitList(v)
	}
	setString(&c.Metrics.Addr, "METRICS_ADDR")
	setString(&c.Mongo.URI, "MONGO_URI")
	setString(&c.Mongo.Database, "MONGO_DATABASE")
	setDuration(&c.Mongo.ConnectTimeout, "MONGO_CONNECT_TIMEOUT")
	// REDIS_ADDR may be set to "" explicitly to fall back to the in-process cache.
	if v, ok := os.LookupEnv("REDIS_ADDR"); ok {
		c.Redis.Addr = v
	}
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setInt(&c.Redis.DB, "REDIS_DB")
	setInt(&c.Cache.TTLSeconds, "CACHE_TTL_SECONDS")
	if v := os.Getenv("CACHE_L1_MAX_MB"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Cache.L1MaxMB = n
		}
	}
	setString(&c.Images.BaseURL, "IMAGE_SERVICE_URL")
	setInt(&c.Images.RPS, "IMAGE_SERVICE_RPS")
	setInt(&c.Seed.Workers, "SEED_WORKERS")
}

func validate(c Config) error {
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	if c.Mongo.URI == "" {
		return errors.New("mongo.uri is required")
	}
	if c.Mongo.Database == "" {
		return errors.New("mongo.database is required")
	}
	if c.Cache.TTLSeconds < 0 {
		return errors.New("cache.ttl must be >= 0")
	}
	if c.Cache.TTLSeconds > 0 && c.Redis.Addr == "" && c.Cache.L1MaxMB < 1 {
		return errors.New("cache.l1_max_mb must be >= 1 when caching in-process")
	}
	if c.Seed.Workers < 1 {
		return errors.New("seed.workers must be >= 1")
	}
	return nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
