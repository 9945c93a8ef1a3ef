package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Configはアプリ全体の設定
type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
	JWT   JWTConfig
	Store StoreConfig
}

type AppConfig struct {
	Env          string        `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	Port         string        `envconfig:"PORT" default:"8080"`
	LogLevel     string        `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogFormat    string        `envconfig:"LOG_FORMAT" default:"json"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_WRITE_TIMEOUT" default:"15s"`
	// CORSで許可するフロントURL（空なら全許可）
	FEURL string `envconfig:"FE_URL"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// ":8080" 形式のアドレス
func (a AppConfig) Addr() string {
	if strings.HasPrefix(a.Port, ":") {
		return a.Port
	}
	return ":" + a.Port
}

type DBConfig struct {
	// DATABASE_URL があれば最優先
	DSN string `envconfig:"DATABASE_URL"`

	Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" default:"postgres"`
	Password string `envconfig:"POSTGRES_PASSWORD" default:"postgres"`
	Name     string `envconfig:"POSTGRES_DB" default:"storefront"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	AutoMigrate     bool          `envconfig:"STOREFRONT_DB_AUTO_MIGRATE" default:"true"`
}

// DSNが無ければ個別項目から組み立てる
func (c *DBConfig) ensureDSN() error {
	if strings.TrimSpace(c.DSN) != "" {
		if _, err := url.Parse(c.DSN); err != nil {
			return fmt.Errorf("DATABASE_URL is invalid: %w", err)
		}
		return nil
	}
	if c.Host == "" || c.User == "" || c.Name == "" {
		return fmt.Errorf("POSTGRES_HOST, POSTGRES_USER and POSTGRES_DB are required when DATABASE_URL is empty")
	}
	c.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	// 空ならフラッシュはメモリ保持
	URL string        `envconfig:"REDIS_URL"`
	TTL time.Duration `envconfig:"STOREFRONT_FLASH_TTL" default:"10m"`
}

type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET"`
}

type StoreConfig struct {
	ShippingCost decimal.Decimal `envconfig:"STOREFRONT_SHIPPING_COST" default:"15000"`
	// trueなら在庫不足で注文失敗
	StrictStock bool `envconfig:"STOREFRONT_STRICT_STOCK" default:"false"`
	// POST /cart, /checkout のIPごとの上限
	RateLimitRPS   float64 `envconfig:"STOREFRONT_RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst int     `envconfig:"STOREFRONT_RATE_LIMIT_BURST" default:"10"`
}

// Loadは.env（あれば）と環境変数
func Load() (Config, error) {
	//.envは任意
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	// 空文字で設定されたときも既定値に寄せる
	if strings.TrimSpace(cfg.App.Env) == "" {
		cfg.App.Env = AppEnvDev
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return Config{}, err
	}

	//必須チェック
	if cfg.App.IsProd() && cfg.JWT.Secret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Store.ShippingCost.IsNegative() {
		return Config{}, fmt.Errorf("STOREFRONT_SHIPPING_COST must be >= 0")
	}
	return cfg, nil
}
